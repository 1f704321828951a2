package sniff

import (
	"bytes"
	"testing"

	"github.com/archio-dev/archio/internal/corefmt"
)

func TestSniffMagicBytes(t *testing.T) {
	cases := []struct {
		name   string
		prefix []byte
		want   corefmt.Format
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0, 0, 0}, corefmt.Gzip},
		{"bzip2", []byte("BZh91AY&SY"), corefmt.Bzip2},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0, 0}, corefmt.Xz},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0, 0}, corefmt.Zstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0, 0}, corefmt.Lz4},
		{"sevenzip", []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}, corefmt.SevenZip},
		{"zip", []byte{0x50, 0x4b, 0x03, 0x04, 0, 0}, corefmt.Zip},
		{"rar5", []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x01, 0x00}, corefmt.Rar},
		{"lzip", []byte("LZIP"), corefmt.Lzip},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := Sniff(bytes.NewReader(tc.prefix))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Fatalf("expected a match")
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSniffNoMatchOnShortOrUnknown(t *testing.T) {
	got, ok, err := Sniff(bytes.NewReader([]byte{0, 1, 2}))
	if err != nil {
		t.Fatalf("short read should not be an error: %v", err)
	}
	if ok {
		t.Fatalf("did not expect a match, got %v", got)
	}
}

func TestSniffTarAtOffset257(t *testing.T) {
	buf := make([]byte, 270)
	copy(buf[257:], []byte("ustar"))
	got, ok, err := Sniff(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got != corefmt.Tar {
		t.Fatalf("expected tar match, got %v ok=%v", got, ok)
	}
}
