package codec

import (
	"io"
	"os"
	"time"

	"github.com/nwaples/rardecode/v2"
)

// rarCodec is read-only, matching rar.go's "RAR is a proprietary format"
// rationale for never implementing Archive.
type rarCodec struct{}

func (rarCodec) OpenArchive(r io.Reader) (ArchiveIterator, error) {
	rr, err := rardecode.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &rarIterator{rr: rr}, nil
}

type rarIterator struct {
	rr *rardecode.Reader
}

func (it *rarIterator) Next() (ArchiveEntry, error) {
	hdr, err := it.rr.Next()
	if err != nil {
		return ArchiveEntry{}, err
	}
	rr := it.rr
	return ArchiveEntry{
		NameInArchive: hdr.Name,
		Info:          rarFileInfo{hdr},
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(rr), nil
		},
	}, nil
}

// rarFileInfo adapts rardecode's FileHeader to os.FileInfo, the shape
// every other archive iterator in this package exposes.
type rarFileInfo struct {
	hdr *rardecode.FileHeader
}

func (i rarFileInfo) Name() string       { return i.hdr.Name }
func (i rarFileInfo) Size() int64        { return i.hdr.UnPackedSize }
func (i rarFileInfo) Mode() os.FileMode  { return i.hdr.Mode() }
func (i rarFileInfo) ModTime() time.Time { return i.hdr.ModificationTime }
func (i rarFileInfo) IsDir() bool        { return i.hdr.IsDir }
func (i rarFileInfo) Sys() any           { return i.hdr }
