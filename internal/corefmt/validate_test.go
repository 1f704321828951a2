package corefmt

import "testing"

func TestValidateArchivePositionRule(t *testing.T) {
	// chain [Gzip, Tar] has the archive format at index 1, invalid both
	// for compression and decompression.
	chain := Chain{Gzip, Tar}
	if err := ValidateForCompress(chain, 1); err == nil {
		t.Fatal("expected error for archive format not at index 0")
	}
	if err := ValidateForDecompress(chain); err == nil {
		t.Fatal("expected error for archive format not at index 0")
	}
}

func TestValidateMultiFilePureCompressorRule(t *testing.T) {
	// compressing 2+ inputs with a chain whose first format is a pure
	// compressor is rejected.
	if err := ValidateForCompress(Chain{Gzip}, 2); err == nil {
		t.Fatal("expected error compressing multiple inputs into a pure compressor")
	}
	if err := ValidateForCompress(Chain{Tar, Gzip}, 2); err != nil {
		t.Fatalf("archive-first chain should be accepted for multiple inputs: %v", err)
	}
	if err := ValidateForCompress(Chain{Gzip}, 1); err != nil {
		t.Fatalf("single input into a pure compressor should be accepted: %v", err)
	}
}

func TestValidateCapabilities(t *testing.T) {
	if err := ValidateForCompress(Chain{Rar}, 1); err == nil {
		t.Fatal("rar cannot compress")
	}
	if err := ValidateForDecompress(Chain{Rar}); err != nil {
		t.Fatalf("rar can decompress: %v", err)
	}
	if err := ValidateForCompress(Chain{Lzma}, 1); err == nil {
		t.Fatal("lzma cannot compress")
	}
}

func TestValidateForList(t *testing.T) {
	if err := ValidateForList(Chain{Tar, Gzip}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateForList(Chain{Gzip}); err == nil {
		t.Fatal("expected error: list requires an archive format first")
	}
}
