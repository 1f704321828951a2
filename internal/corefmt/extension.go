package corefmt

import (
	"strings"
)

// ParseExtension walks the filename tail, repeatedly splitting off the
// last dot-separated suffix, lowercasing it, and
// looking it up in the registry. Recognized suffixes are prepended to
// the chain (so the chain stays outermost-first) and parsing continues
// with the shortened name; the first unrecognized suffix stops parsing
// and everything remaining becomes the stem.
//
// Leading dots on an otherwise-empty basename (".tar") are treated as
// part of the stem, not as extensions, mirroring
// original_source/src/extension.rs's separate_known_extensions_from_name.
func ParseExtension(name string) Extension {
	rest := name
	var chain Chain

	for {
		base, suffix, ok := splitLastSuffix(rest)
		if !ok {
			break
		}

		token := strings.ToLower(suffix)
		formats, known := FormatsForToken(token)
		if !known {
			break
		}

		chain = append(append(Chain{}, formats...), chain...)
		rest = base
	}

	return Extension{Stem: rest, Chain: chain}
}

// splitLastSuffix splits name into (base, suffix, true) at the last dot,
// unless that dot only introduces a leading-dot "hidden file" basename
// (e.g. ".tar" has no extension to split off; the whole thing is the
// stem), in which case it returns ("", "", false).
func splitLastSuffix(name string) (base, suffix string, ok bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		// no dot, or the only dot is the leading character of the name
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}
