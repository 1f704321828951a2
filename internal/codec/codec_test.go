package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/archio-dev/archio/internal/corefmt"
)

func TestGzipRoundTrip(t *testing.T) {
	c, err := ForCompression(corefmt.Gzip)
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, c, []byte("hello, archio"))
}

func TestZstdRoundTrip(t *testing.T) {
	c, err := ForCompression(corefmt.Zstd)
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, c, bytes.Repeat([]byte("abc"), 1000))
}

func TestLzmaIsDecompressOnly(t *testing.T) {
	c, err := ForCompression(corefmt.Lzma)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.OpenWriter(&bytes.Buffer{}, 0); err == nil {
		t.Fatal("expected lzma compression to be rejected")
	}
}

func TestBzip3IsUnsupported(t *testing.T) {
	c, err := ForCompression(corefmt.Bzip3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.OpenWriter(&bytes.Buffer{}, 0); err == nil {
		t.Fatal("expected bzip3 to be rejected")
	}
	if _, err := c.OpenReader(&bytes.Buffer{}); err == nil {
		t.Fatal("expected bzip3 to be rejected")
	}
}

func TestSevenZipHasNoArchiveWriter(t *testing.T) {
	if _, err := ForArchiveWriter(corefmt.SevenZip); err == nil {
		t.Fatal("expected SevenZip to have no writer")
	}
}

func TestArchiveWriterLookupSucceedsForTarAndZip(t *testing.T) {
	if _, err := ForArchiveWriter(corefmt.Tar); err != nil {
		t.Fatalf("tar should have a writer: %v", err)
	}
	if _, err := ForArchiveWriter(corefmt.Zip); err != nil {
		t.Fatalf("zip should have a writer: %v", err)
	}
}

func TestRequiresSeek(t *testing.T) {
	if !RequiresSeek(corefmt.Zip) {
		t.Fatal("zip should require seeking")
	}
	if RequiresSeek(corefmt.Tar) {
		t.Fatal("tar should not require seeking")
	}
}

func roundTrip(t *testing.T, c Compressor, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w, err := c.OpenWriter(&buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := c.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}
