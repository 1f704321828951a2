// Package corefmt implements the format registry, the extension
// parser, and the chain validator: the part of archio that turns a
// filename tail into an ordered, validated codec pipeline.
package corefmt

// Format is one of the 14 recognized compression/archive tags.
type Format int

const (
	Tar Format = iota
	Zip
	SevenZip
	Rar
	Gzip
	Bzip2
	Bzip3
	Xz
	Lzma
	Lzip
	Lz4
	Snappy
	Zstd
	Brotli
)

// Meta carries the immutable metadata the registry exposes for a Format.
type Meta struct {
	IsArchive     bool
	CanCompress   bool
	CanDecompress bool
	CanonicalExt  string
	LongName      string
	Aliases       []string
	Notes         string
}

var meta = map[Format]Meta{
	Tar:      {IsArchive: true, CanCompress: true, CanDecompress: true, CanonicalExt: "tar", LongName: "Tar"},
	Zip:      {IsArchive: true, CanCompress: true, CanDecompress: true, CanonicalExt: "zip", LongName: "ZIP", Notes: "cannot be streamed when chained"},
	SevenZip: {IsArchive: true, CanCompress: true, CanDecompress: true, CanonicalExt: "7z", LongName: "7-Zip", Notes: "cannot be streamed when chained"},
	Rar:      {IsArchive: true, CanCompress: false, CanDecompress: true, CanonicalExt: "rar", LongName: "RAR"},

	Gzip:   {CanCompress: true, CanDecompress: true, CanonicalExt: "gz", LongName: "Gzip"},
	Bzip2:  {CanCompress: true, CanDecompress: true, CanonicalExt: "bz2", LongName: "Bzip2", Aliases: []string{"bz"}},
	Bzip3:  {CanCompress: true, CanDecompress: true, CanonicalExt: "bz3", LongName: "Bzip3"},
	Xz:     {CanCompress: true, CanDecompress: true, CanonicalExt: "xz", LongName: "XZ (LZMA2)"},
	Lzma:   {CanCompress: false, CanDecompress: true, CanonicalExt: "lzma", LongName: "LZMA (v1)", Notes: "compression not supported, use .xz"},
	Lzip:   {CanCompress: false, CanDecompress: true, CanonicalExt: "lz", LongName: "Lzip", Aliases: []string{"lzip"}, Notes: "compression not supported"},
	Lz4:    {CanCompress: true, CanDecompress: true, CanonicalExt: "lz4", LongName: "LZ4"},
	Snappy: {CanCompress: true, CanDecompress: true, CanonicalExt: "sz", LongName: "Snappy (sz)"},
	Zstd:   {CanCompress: true, CanDecompress: true, CanonicalExt: "zst", LongName: "Zstandard"},
	Brotli: {CanCompress: true, CanDecompress: true, CanonicalExt: "br", LongName: "Brotli"},
}

// Meta returns the registry metadata for f.
func (f Format) Meta() Meta { return meta[f] }

// String returns the canonical extension token, e.g. "gz".
func (f Format) String() string { return meta[f].CanonicalExt }

// IsArchive reports whether f can hold multiple named entries.
func (f Format) IsArchive() bool { return meta[f].IsArchive }

// Capabilities returns (can_compress, can_decompress) for f.
func (f Format) Capabilities() (bool, bool) {
	m := meta[f]
	return m.CanCompress, m.CanDecompress
}

// InDisplayOrder lists every format, archives first, in the same order
// as original_source/src/formats.rs's formats_in_display_order.
func InDisplayOrder() []Format {
	return []Format{Tar, Zip, SevenZip, Rar, Gzip, Bzip2, Bzip3, Xz, Lzma, Lzip, Lz4, Snappy, Zstd, Brotli}
}

// singleTokens maps a single filename-suffix token to the one format it
// names.
var singleTokens = map[string][]Format{
	"tar":  {Tar},
	"zip":  {Zip},
	"7z":   {SevenZip},
	"rar":  {Rar},
	"gz":   {Gzip},
	"bz":   {Bzip2},
	"bz2":  {Bzip2},
	"bz3":  {Bzip3},
	"xz":   {Xz},
	"lzma": {Lzma},
	"lz":   {Lzip},
	"lzip": {Lzip},
	"lz4":  {Lz4},
	"sz":   {Snappy},
	"zst":  {Zstd},
	"br":   {Brotli},
}

// shorthands maps a shorthand token to the ordered [archive, compressor]
// chain it expands to.
var shorthands = map[string][]Format{
	"tgz":   {Tar, Gzip},
	"tbz":   {Tar, Bzip2},
	"tbz2":  {Tar, Bzip2},
	"tbz3":  {Tar, Bzip3},
	"txz":   {Tar, Xz},
	"tlzma": {Tar, Lzma},
	"tlz":   {Tar, Lzip},
	"tlz4":  {Tar, Lz4},
	"tsz":   {Tar, Snappy},
	"tzst":  {Tar, Zstd},
}

// FormatsForToken looks up a single lowercased filename-suffix token
// (either a plain extension like "gz" or a shorthand like "tgz") and
// returns the ordered list of formats it expands to, outermost first.
func FormatsForToken(token string) ([]Format, bool) {
	if fs, ok := shorthands[token]; ok {
		return fs, true
	}
	if fs, ok := singleTokens[token]; ok {
		return fs, true
	}
	return nil, false
}

// TokenForFormat returns a canonical single-token spelling for f.
func TokenForFormat(f Format) string { return meta[f].CanonicalExt }
