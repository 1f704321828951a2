package codec

import (
	"io"

	"github.com/bodgit/sevenzip"
)

// sevenZipCodec is read-only: bodgit/sevenzip, the only pure-Go 7z
// library found anywhere in the corpus, does not implement writing,
// exactly as noted in mholt-archiver's own 7z.go ("not implemented for
// 7z because there is no pure Go implementation found"). corefmt still
// marks SevenZip.CanCompress=true, so the validator accepts
// 7z-compression chains; this is where that promise runs into the real
// ecosystem and fails at codec lookup time instead (see DESIGN.md).
type sevenZipCodec struct{}

type sevenZipIterator struct {
	files []*sevenzip.File
	pos   int
}

func (sevenZipCodec) OpenArchive(r io.ReaderAt, size int64) (ArchiveIterator, error) {
	zr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &sevenZipIterator{files: zr.File}, nil
}

func (it *sevenZipIterator) Next() (ArchiveEntry, error) {
	if it.pos >= len(it.files) {
		return ArchiveEntry{}, io.EOF
	}
	f := it.files[it.pos]
	it.pos++
	return ArchiveEntry{
		NameInArchive: f.Name,
		Info:          f.FileInfo(),
		Open: func() (io.ReadCloser, error) {
			return f.Open()
		},
	}, nil
}
