package codec

import (
	"archive/tar"
	"io"
)

// tarCodec ports tar.go's Archive/Extract methods to the Entry/
// ArchiveEntry shape shared by every container format in this package.
type tarCodec struct{}

type tarHandle struct {
	tw *tar.Writer
}

func (tarCodec) NewArchiveWriter(w io.Writer) (ArchiveHandle, error) {
	return &tarHandle{tw: tar.NewWriter(w)}, nil
}

func (h *tarHandle) WriteEntry(e Entry) error {
	hdr, err := tar.FileInfoHeader(e.Info, e.LinkTarget)
	if err != nil {
		return err
	}
	hdr.Name = e.NameInArchive
	if err := h.tw.WriteHeader(hdr); err != nil {
		return err
	}
	if e.Info.IsDir() || e.LinkTarget != "" {
		return nil
	}
	rc, err := e.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(h.tw, rc)
	return err
}

func (h *tarHandle) Close() error { return h.tw.Close() }

type tarIterator struct {
	tr *tar.Reader
}

func (tarCodec) OpenArchive(r io.Reader) (ArchiveIterator, error) {
	return &tarIterator{tr: tar.NewReader(r)}, nil
}

func (it *tarIterator) Next() (ArchiveEntry, error) {
	hdr, err := it.tr.Next()
	if err != nil {
		return ArchiveEntry{}, err
	}
	tr := it.tr
	return ArchiveEntry{
		NameInArchive: hdr.Name,
		Info:          hdr.FileInfo(),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(tr), nil
		},
	}, nil
}
