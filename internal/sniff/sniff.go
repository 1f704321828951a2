// Package sniff infers a format from magic bytes when the extension
// parser found nothing, or contradicts what's on disk. The magic-byte
// tables below are ported from the per-format Match methods in
// mholt-archiver (gz.go, bz2.go, xz.go, lzip.go, lz4.go, zstd.go,
// rar.go, 7z.go, zip.go, tar.go).
package sniff

import (
	"bytes"
	"io"

	"github.com/archio-dev/archio/internal/corefmt"
)

// MaxSniffBytes is how many leading bytes of a candidate file are read
// before giving up on identifying it.
const MaxSniffBytes = 270

type magic struct {
	format corefmt.Format
	offset int
	bytes  []byte
}

// fixedMagics are matched in this order; the first hit wins. Patterns
// that would otherwise collide with a shorter prefix (e.g. zip's three
// third/fourth byte variants) are expressed with matchZip below instead.
var fixedMagics = []magic{
	{corefmt.Gzip, 0, []byte{0x1f, 0x8b, 0x08}},
	{corefmt.Bzip2, 0, []byte("BZh")},
	{corefmt.Xz, 0, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{corefmt.Lzip, 0, []byte("LZIP")},
	{corefmt.Lz4, 0, []byte{0x04, 0x22, 0x4d, 0x18}},
	{corefmt.Zstd, 0, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{corefmt.SevenZip, 0, []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}},
	{corefmt.Rar, 0, []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x01, 0x00}},
	{corefmt.Tar, 257, []byte("ustar")},
}

// Sniff reads up to MaxSniffBytes from the start of r and matches one of
// the known magic patterns. Short reads are "no match", not an error.
// Returns the matched format and true, or (0, false) if nothing matched.
func Sniff(r io.Reader) (corefmt.Format, bool, error) {
	buf := make([]byte, MaxSniffBytes)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, false, err
	}
	buf = buf[:n]

	if f, ok := matchZip(buf); ok {
		return f, true, nil
	}
	for _, m := range fixedMagics {
		end := m.offset + len(m.bytes)
		if end > len(buf) {
			continue
		}
		if bytes.Equal(buf[m.offset:end], m.bytes) {
			return m.format, true, nil
		}
	}
	return 0, false, nil
}

// matchZip matches the "PK" family headers: local file header (03 04),
// empty archive (05 06), and spanned archive (07 08).
func matchZip(buf []byte) (corefmt.Format, bool) {
	if len(buf) < 4 || buf[0] != 0x50 || buf[1] != 0x4b {
		return 0, false
	}
	switch {
	case buf[2] == 0x03 && buf[3] == 0x04:
		return corefmt.Zip, true
	case buf[2] == 0x05 && buf[3] == 0x06:
		return corefmt.Zip, true
	case buf[2] == 0x07 && buf[3] == 0x08:
		return corefmt.Zip, true
	}
	return 0, false
}
