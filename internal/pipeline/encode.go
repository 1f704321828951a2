// Package pipeline implements the encoder and decoder: the
// wrapping/unwrapping of a compression chain around a destination
// writer or source reader, grounded in mholt-archiver's
// Compressor/Archiver split (interfaces.go) and its FileSystem/fs.go
// walking helpers for producing archive entries from real files.
package pipeline

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/archio-dev/archio/internal/codec"
	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corepolicy"
	"github.com/archio-dev/archio/internal/corerr"
	"github.com/archio-dev/archio/internal/corewalk"
	"github.com/archio-dev/archio/internal/logx"
)

const bufferedWriterSize = 64 * 1024

// EncodeRequest bundles the encoder's inputs.
type EncodeRequest struct {
	Chain   corefmt.Chain
	Sources []string
	Dest    io.Writer
	Visible corewalk.Policy
	Level   int
	Logger  *logx.Worker
	Policy  *corepolicy.Engine
}

// Encode builds the compressor/archive stack described by req.Chain
// around req.Dest and streams req.Sources into it.
func Encode(req EncodeRequest) error {
	bufW := bufio.NewWriterSize(req.Dest, bufferedWriterSize)

	current := io.Writer(bufW)
	var closers []io.Closer
	for i := len(req.Chain) - 1; i >= 1; i-- {
		c, err := codec.ForCompression(req.Chain[i])
		if err != nil {
			return err
		}
		wc, err := c.OpenWriter(current, req.Level)
		if err != nil {
			return err
		}
		closers = append(closers, wc)
		current = wc
	}

	outermost := req.Chain[0]
	var encodeErr error
	switch {
	case !outermost.IsArchive():
		encodeErr = encodePureCompressor(outermost, current, req.Sources, req.Level)
	case outermost == corefmt.Tar:
		encodeErr = encodeArchive(outermost, current, req.Sources, req.Visible)
	case outermost == corefmt.Zip || outermost == corefmt.SevenZip:
		encodeErr = encodeSeekingArchive(outermost, current, req.Sources, req.Visible, len(req.Chain) > 1, req.Logger, req.Policy)
	default:
		encodeErr = corerr.UnsupportedFormat(outermost.String() + " cannot be used to create an archive")
	}

	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil && encodeErr == nil {
			encodeErr = cerr
		}
	}
	if encodeErr != nil {
		return encodeErr
	}
	return bufW.Flush()
}

func encodePureCompressor(format corefmt.Format, w io.Writer, sources []string, level int) error {
	if len(sources) != 1 {
		return corerr.InvalidInput("a pure compression format requires exactly one source file")
	}
	c, err := codec.ForCompression(format)
	if err != nil {
		return err
	}
	wc, err := c.OpenWriter(w, level)
	if err != nil {
		return err
	}
	f, err := os.Open(sources[0])
	if err != nil {
		return corerr.Wrap("could not open source file", err)
	}
	defer f.Close()

	if _, err := io.Copy(wc, f); err != nil {
		wc.Close()
		return corerr.Wrap("error while compressing", err)
	}
	return wc.Close()
}

func encodeArchive(format corefmt.Format, w io.Writer, sources []string, vis corewalk.Policy) error {
	aw, err := codec.ForArchiveWriter(format)
	if err != nil {
		return err
	}
	handle, err := aw.NewArchiveWriter(w)
	if err != nil {
		return err
	}
	if err := walkSourcesIntoArchive(handle, sources, vis); err != nil {
		handle.Close()
		return err
	}
	return handle.Close()
}

// encodeSeekingArchive implements step 3's Zip/7z branch: when chained
// with outer compressors, the archive is built into memory first (with
// a confirmation prompt, since that can be large), then copied into w.
// When it's the only format in the chain, it's written straight to w.
func encodeSeekingArchive(format corefmt.Format, w io.Writer, sources []string, vis corewalk.Policy, chained bool, logger *logx.Worker, policy *corepolicy.Engine) error {
	if !chained {
		return encodeArchive(format, w, sources, vis)
	}

	if logger != nil {
		logger.Warning("building %s in memory before compressing further; this may use significant RAM", format)
	}
	if policy != nil {
		ok, err := policy.Confirm("continue building an in-memory archive for", format.String())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	var buf bytes.Buffer
	if err := encodeArchive(format, &buf, sources, vis); err != nil {
		return err
	}
	_, err := io.Copy(w, &buf)
	return err
}

func walkSourcesIntoArchive(handle codec.ArchiveHandle, sources []string, vis corewalk.Policy) error {
	for _, src := range sources {
		info, err := os.Lstat(src)
		if err != nil {
			return corerr.FileNotFound(src)
		}

		base := filepath.Base(src)
		if !info.IsDir() {
			if err := writeEntryFor(handle, src, base, info); err != nil {
				return err
			}
			continue
		}

		// Per-entry walk errors are dropped, not logged; the walk goes on.
		err = corewalk.Walk(src, vis, func(werr error) {}, func(e corewalk.Entry) error {
			nameInArchive := filepath.ToSlash(filepath.Join(base, e.Path))
			info, err := e.Info.Info()
			if err != nil {
				return err
			}
			return writeEntryFor(handle, e.AbsPath, nameInArchive, info)
		})
		if err != nil {
			return corerr.WalkError(err)
		}
	}
	return nil
}

func writeEntryFor(handle codec.ArchiveHandle, absPath, nameInArchive string, info os.FileInfo) error {
	var linkTarget string
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(absPath)
		if err != nil {
			return err
		}
		linkTarget = target
	}

	return handle.WriteEntry(codec.Entry{
		NameInArchive: nameInArchive,
		Info:          info,
		LinkTarget:    linkTarget,
		Open: func() (io.ReadCloser, error) {
			return os.Open(absPath)
		},
	})
}

