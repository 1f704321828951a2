// Package codec adapts the third-party compression and archive
// libraries used by archio behind small interfaces: Compressor for
// single-stream formats, and ArchiveWriter, ArchiveReader and
// SeekingArchiveReader for multi-entry container formats.
// Each adapter is a thin port of the matching mholt-archiver file
// (gz.go, bz2.go, xz.go, ...), generalized to plain io.Writer/io.Reader
// wrapping instead of mholt-archiver's Format/MatchResult machinery,
// since format identification already lives in corefmt and sniff.
package codec

import (
	"io"
	"os"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corerr"
)

// Compressor wraps a single byte stream; used for every non-archive
// format (Gzip, Bzip2, Xz, ...).
type Compressor interface {
	OpenWriter(w io.Writer, level int) (io.WriteCloser, error)
	OpenReader(r io.Reader) (io.ReadCloser, error)
}

// Entry is one file queued for writing into an archive container.
type Entry struct {
	NameInArchive string
	Info          os.FileInfo
	LinkTarget    string
	Open          func() (io.ReadCloser, error)
}

// ArchiveEntry is one file read back out of an archive container.
type ArchiveEntry struct {
	NameInArchive string
	Info          os.FileInfo
	Open          func() (io.ReadCloser, error)
}

// ArchiveWriter is implemented by container formats that can be built
// (Tar, Zip). SevenZip has no ArchiveWriter, since no pure-Go 7z writer
// exists in the corpus; ForArchiveWriter rejects it at lookup time.
type ArchiveWriter interface {
	NewArchiveWriter(w io.Writer) (ArchiveHandle, error)
}

// ArchiveHandle streams entries into a container as they're walked.
type ArchiveHandle interface {
	WriteEntry(Entry) error
	Close() error
}

// ArchiveReader is implemented by container formats that can be read as
// a plain forward-only stream: Tar and Rar need nothing more than the
// bytes as they arrive, which matters because they're often the inner
// link of a chain (e.g. .tar.gz) fed straight from a decompressor.
type ArchiveReader interface {
	OpenArchive(r io.Reader) (ArchiveIterator, error)
}

// SeekingArchiveReader is implemented by container formats whose layout
// requires random access to the whole stream (Zip's and 7z's central
// directories live at the end of the file). size is the stream's total
// length.
type SeekingArchiveReader interface {
	OpenArchive(r io.ReaderAt, size int64) (ArchiveIterator, error)
}

// ArchiveIterator yields ArchiveEntry values until io.EOF.
type ArchiveIterator interface {
	Next() (ArchiveEntry, error)
}

// compressors maps a corefmt.Format to its Compressor adapter. Archive
// formats are absent here; they're looked up via archiveWriters /
// archiveReaders instead.
var compressors = map[corefmt.Format]Compressor{
	corefmt.Gzip:   gzipCodec{},
	corefmt.Bzip2:  bzip2Codec{},
	corefmt.Bzip3:  bzip3Codec{},
	corefmt.Xz:     xzCodec{},
	corefmt.Lzma:   lzmaCodec{},
	corefmt.Lzip:   lzipCodec{},
	corefmt.Lz4:    lz4Codec{},
	corefmt.Snappy: snappyCodec{},
	corefmt.Zstd:   zstdCodec{},
	corefmt.Brotli: brotliCodec{},
}

// ForCompression looks up the Compressor for a pure-compression format.
func ForCompression(f corefmt.Format) (Compressor, error) {
	c, ok := compressors[f]
	if !ok {
		return nil, corerr.UnsupportedFormat(f.String() + " is not a single-stream compression format")
	}
	return c, nil
}

var archiveWriters = map[corefmt.Format]ArchiveWriter{
	corefmt.Tar: tarCodec{},
	corefmt.Zip: zipCodec{},
}

// ForArchiveWriter looks up the ArchiveWriter for a container format.
// SevenZip and Rar are deliberately absent: the corpus carries no
// pure-Go 7z writer (bodgit/sevenzip is read-only) and RAR is a
// proprietary format nobody in the corpus writes either.
func ForArchiveWriter(f corefmt.Format) (ArchiveWriter, error) {
	w, ok := archiveWriters[f]
	if !ok {
		return nil, corerr.UnsupportedFormat(f.String() + " has no archive writer available").
			WithHint("7z and RAR archives can only be read, not created")
	}
	return w, nil
}

var streamingArchiveReaders = map[corefmt.Format]ArchiveReader{
	corefmt.Tar: tarCodec{},
	corefmt.Rar: rarCodec{},
}

var seekingArchiveReaders = map[corefmt.Format]SeekingArchiveReader{
	corefmt.Zip:      zipCodec{},
	corefmt.SevenZip: sevenZipCodec{},
}

// ForArchiveReader looks up the streaming ArchiveReader for a container
// format that can be read forward-only (Tar, Rar).
func ForArchiveReader(f corefmt.Format) (ArchiveReader, error) {
	r, ok := streamingArchiveReaders[f]
	if !ok {
		return nil, corerr.UnsupportedFormat(f.String() + " has no streaming archive reader available")
	}
	return r, nil
}

// ForSeekingArchiveReader looks up the random-access ArchiveReader for a
// container format whose layout requires it (Zip, SevenZip).
func ForSeekingArchiveReader(f corefmt.Format) (SeekingArchiveReader, error) {
	r, ok := seekingArchiveReaders[f]
	if !ok {
		return nil, corerr.UnsupportedFormat(f.String() + " has no seeking archive reader available")
	}
	return r, nil
}

// RequiresSeek reports whether f's archive reader needs random access
// (Zip, SevenZip) rather than a forward-only stream.
func RequiresSeek(f corefmt.Format) bool {
	_, ok := seekingArchiveReaders[f]
	return ok
}
