package corefmt

import (
	"fmt"

	"github.com/archio-dev/archio/internal/corerr"
)

// ValidateForCompress enforces: at most one archive format at index 0,
// every format must support compression, and compressing more than one
// input path requires the chain to begin with an archive format.
func ValidateForCompress(chain Chain, numInputs int) error {
	if err := validatePlacement(chain); err != nil {
		return err
	}
	for _, f := range chain {
		canCompress, _ := f.Capabilities()
		if !canCompress {
			return corerr.New(corerr.KindUnsupportedFormat, fmt.Sprintf("cannot compress: %q does not support compression", f.String())).
				WithHint("see `archio formats` for supported operations per format")
		}
	}
	if numInputs > 1 {
		first, hasArchive := chain.Outermost()
		if !hasArchive || !first.IsArchive() {
			return corerr.New(corerr.KindInvalidInput, "cannot compress multiple files into a single compressor").
				WithDetail("the extension chain must begin with an archive format (tar, zip, 7z, rar) to hold more than one input").
				WithHint("wrap the inputs with an archive format, e.g. output.tar.gz")
		}
	}
	return nil
}

// ValidateForDecompress requires every format in the chain to support
// decompression.
func ValidateForDecompress(chain Chain) error {
	if err := validatePlacement(chain); err != nil {
		return err
	}
	for _, f := range chain {
		_, canDecompress := f.Capabilities()
		if !canDecompress {
			return corerr.New(corerr.KindUnsupportedFormat, fmt.Sprintf("cannot decompress: %q does not support decompression", f.String())).
				WithHint("see `archio formats` for supported operations per format")
		}
	}
	return nil
}

// ValidateForList requires chain[0] to be archive-kind.
func ValidateForList(chain Chain) error {
	first, ok := chain.Outermost()
	if !ok || !first.IsArchive() {
		return corerr.New(corerr.KindInvalidInput, "cannot list: no archive format in extension chain").
			WithHint("pass --format to specify the archive format explicitly")
	}
	return validatePlacement(chain)
}

// validatePlacement enforces that at most one archive-kind format is
// present, and if present it must be at index 0.
func validatePlacement(chain Chain) error {
	archiveSeen := false
	for i, f := range chain {
		if !f.IsArchive() {
			continue
		}
		if i != 0 {
			return corerr.New(corerr.KindUnsupportedFormat, fmt.Sprintf("cannot compress/decompress: %q must be innermost", f.String())).
				WithDetail(fmt.Sprintf("format %q may only appear at the start of the extension", f.String()))
		}
		if archiveSeen {
			return corerr.New(corerr.KindUnsupportedFormat, "chain contains more than one archive format")
		}
		archiveSeen = true
	}
	return nil
}
