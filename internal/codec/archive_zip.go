package codec

import (
	"io"
	"path"
	"strings"

	starryzip "github.com/STARRY-S/zip"
	stdzip "archive/zip"
)

// zipCodec writes with github.com/STARRY-S/zip, the drop-in archive/zip
// fork the real mholt-archiver depends on for zip64 and Deflate64
// support, and reads with the standard library's archive/zip, which
// performs just as well for random-access reads and needs no extra
// dependency surface beyond what's already linked.
type zipCodec struct{}

type zipHandle struct {
	zw *starryzip.Writer
}

// compressedExtensions are stored rather than re-compressed, mirroring
// zip.go's CompressedFormats lookup.
var compressedExtensions = map[string]bool{
	".gz": true, ".bz2": true, ".xz": true, ".zst": true, ".br": true,
	".lz4": true, ".lz": true, ".sz": true, ".7z": true, ".rar": true, ".zip": true,
}

func (zipCodec) NewArchiveWriter(w io.Writer) (ArchiveHandle, error) {
	return &zipHandle{zw: starryzip.NewWriter(w)}, nil
}

func (h *zipHandle) WriteEntry(e Entry) error {
	hdr, err := starryzip.FileInfoHeader(e.Info)
	if err != nil {
		return err
	}
	hdr.Name = e.NameInArchive

	if e.Info.IsDir() {
		hdr.Name += "/"
		hdr.Method = starryzip.Store
	} else {
		ext := strings.ToLower(path.Ext(hdr.Name))
		if compressedExtensions[ext] {
			hdr.Method = starryzip.Store
		} else {
			hdr.Method = starryzip.Deflate
		}
	}

	writer, err := h.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if e.Info.IsDir() {
		return nil
	}

	rc, err := e.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(writer, rc)
	return err
}

func (h *zipHandle) Close() error { return h.zw.Close() }

type zipIterator struct {
	files []*stdzip.File
	pos   int
}

func (zipCodec) OpenArchive(r io.ReaderAt, size int64) (ArchiveIterator, error) {
	zr, err := stdzip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &zipIterator{files: zr.File}, nil
}

func (it *zipIterator) Next() (ArchiveEntry, error) {
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
