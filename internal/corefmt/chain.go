package corefmt

// Chain is an ordered sequence of Format, outermost-first: foo.tar.gz
// parses to Chain{Tar, Gzip}. An empty chain means "no known compression
// extension".
type Chain []Format

// Archive returns the first archive-kind format in the chain and whether
// it sits at index 0, the only position the validator accepts. The bool
// is false both when the chain has no archive format and when its first
// archive format is at a later index.
func (c Chain) Archive() (Format, bool) {
	for i, f := range c {
		if f.IsArchive() {
			return f, i == 0
		}
	}
	return 0, false
}

// Outermost returns chain[0] and whether the chain is non-empty.
func (c Chain) Outermost() (Format, bool) {
	if len(c) == 0 {
		return 0, false
	}
	return c[0], true
}

// String renders the chain as a dotted extension, e.g. "tar.gz".
func (c Chain) String() string {
	s := ""
	for i, f := range c {
		if i > 0 {
			s += "."
		}
		s += f.String()
	}
	return s
}

// Extension is a parsed filename: the residual stem plus its chain.
type Extension struct {
	Stem  string
	Chain Chain
}
