package pipeline

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/archio-dev/archio/internal/codec"
	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corepolicy"
	"github.com/archio-dev/archio/internal/corerr"
	"github.com/archio-dev/archio/internal/logx"
)

// DecodeRequest bundles the decoder's inputs. SourcePath is empty when
// reading stdin.
type DecodeRequest struct {
	Chain     corefmt.Chain
	SourcePath string // "" when reading from Stdin
	Stdin     io.Reader
	DestDir   string
	Logger    *logx.Worker
	Policy    *corepolicy.Engine
}

// DecodeSummary reports what Decode did, for the logger to report.
type DecodeSummary struct {
	FilesUnpacked int
	BytesIn       int64
	BytesOut      int64
}

// Decode unwraps req.Chain and materializes its contents under
// req.DestDir.
func Decode(req DecodeRequest) (DecodeSummary, error) {
	var summary DecodeSummary

	fromStdin := req.SourcePath == ""
	var base io.Reader
	var file *os.File
	if fromStdin {
		base = req.Stdin
	} else {
		f, err := os.Open(req.SourcePath)
		if err != nil {
			return summary, corerr.FileNotFound(req.SourcePath)
		}
		file = f
		defer f.Close()
		base = bufio.NewReaderSize(f, bufferedWriterSize)
	}

	current := base
	for i := len(req.Chain) - 1; i >= 1; i-- {
		c, err := codec.ForCompression(req.Chain[i])
		if err != nil {
			return summary, err
		}
		rc, err := c.OpenReader(current)
		if err != nil {
			return summary, corerr.Wrap("error opening "+req.Chain[i].String()+" stream", err)
		}
		defer rc.Close()
		current = rc
	}

	outermost := req.Chain[0]
	switch {
	case !outermost.IsArchive():
		return decodePureCompressor(outermost, current, req.DestDir, req.SourcePath, req.Policy)
	case outermost == corefmt.Tar:
		return decodeStreamingArchive(outermost, current, req.DestDir, req.Policy)
	case outermost == corefmt.Rar:
		return decodeRar(current, fromStdin, len(req.Chain) > 1, req.DestDir, req.Policy, req.Logger)
	case outermost == corefmt.Zip || outermost == corefmt.SevenZip:
		return decodeSeekingArchive(outermost, current, file, fromStdin, len(req.Chain) > 1, req.DestDir, req.Policy, req.Logger)
	default:
		return summary, corerr.UnsupportedFormat(outermost.String() + " cannot be extracted")
	}
}

func decodePureCompressor(format corefmt.Format, r io.Reader, destDir, sourcePath string, policy *corepolicy.Engine) (DecodeSummary, error) {
	var summary DecodeSummary
	c, err := codec.ForCompression(format)
	if err != nil {
		return summary, err
	}
	rc, err := c.OpenReader(r)
	if err != nil {
		return summary, corerr.Wrap("error opening "+format.String()+" stream", err)
	}
	defer rc.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return summary, corerr.Wrap("could not create destination directory", err)
	}
	stem := outputStem(sourcePath)
	outPath := filepath.Join(destDir, stem)

	var w io.WriteCloser
	var final string
	if policy != nil {
		w, final, err = policy.CreateOrResolve(outPath)
		if err != nil {
			return summary, err
		}
		if w == nil {
			return summary, nil
		}
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return summary, corerr.Wrap("could not create output file", err)
		}
		w, final = f, outPath
	}
	defer w.Close()

	n, err := io.Copy(w, rc)
	if err != nil {
		return summary, corerr.Wrap("error while decompressing into "+final, err)
	}
	summary.BytesOut = n
	summary.FilesUnpacked = 1
	return summary, nil
}

func outputStem(sourcePath string) string {
	ext := corefmt.ParseExtension(filepath.Base(sourcePath))
	if ext.Stem != "" {
		return ext.Stem
	}
	return "decompressed-output"
}

func decodeStreamingArchive(format corefmt.Format, r io.Reader, destDir string, policy *corepolicy.Engine) (DecodeSummary, error) {
	var summary DecodeSummary
	reader, err := codec.ForArchiveReader(format)
	if err != nil {
		return summary, err
	}
	it, err := reader.OpenArchive(r)
	if err != nil {
		return summary, corerr.Wrap("error opening "+format.String()+" archive", err)
	}
	return extractAll(it, destDir, policy)
}

func decodeSeekingArchive(format corefmt.Format, r io.Reader, file *os.File, fromStdin, chained bool, destDir string, policy *corepolicy.Engine, logger *logx.Worker) (DecodeSummary, error) {
	var summary DecodeSummary
	reader, err := codec.ForSeekingArchiveReader(format)
	if err != nil {
		return summary, err
	}

	if !fromStdin && !chained {
		info, statErr := file.Stat()
		if statErr != nil {
			return summary, corerr.Wrap("could not stat source archive", statErr)
		}
		it, err := reader.OpenArchive(file, info.Size())
		if err != nil {
			return summary, corerr.Wrap("error opening "+format.String()+" archive", err)
		}
		return extractAll(it, destDir, policy)
	}

	if logger != nil {
		logger.Warning("materializing the whole %s stream in memory to allow random access", format)
	}
	if policy != nil {
		ok, err := policy.Confirm("load the entire archive into memory to extract", format.String())
		if err != nil {
			return summary, err
		}
		if !ok {
			return summary, nil
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return summary, corerr.Wrap("error buffering archive into memory", err)
	}
	cursor := bytes.NewReader(buf.Bytes())
	it, err := reader.OpenArchive(cursor, int64(buf.Len()))
	if err != nil {
		return summary, corerr.Wrap("error opening "+format.String()+" archive", err)
	}
	return extractAll(it, destDir, policy)
}

// decodeRar reads a plain rar file straight from its buffered source
// stream. For stdin or a chained stream it first spills the decoded
// bytes to a temporary file and reads the archive back from that file;
// both paths use the same forward-only rar reader.
func decodeRar(r io.Reader, fromStdin, chained bool, destDir string, policy *corepolicy.Engine, logger *logx.Worker) (DecodeSummary, error) {
	var summary DecodeSummary

	if !fromStdin && !chained {
		reader, err := codec.ForArchiveReader(corefmt.Rar)
		if err != nil {
			return summary, err
		}
		it, err := reader.OpenArchive(r)
		if err != nil {
			return summary, corerr.Wrap("error opening rar archive", err)
		}
		return extractAll(it, destDir, policy)
	}

	tmp, err := os.CreateTemp("", "archio-rar-*.rar")
	if err != nil {
		return summary, corerr.Wrap("could not create temporary file for rar extraction", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if logger != nil {
		logger.Warning("spilling rar stream to a temporary file before extraction")
	}

	if _, err := io.Copy(tmp, r); err != nil {
		return summary, corerr.Wrap("error spilling rar stream to disk", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return summary, corerr.Wrap("could not rewind spilled rar file", err)
	}

	reader, err := codec.ForArchiveReader(corefmt.Rar)
	if err != nil {
		return summary, err
	}
	it, err := reader.OpenArchive(tmp)
	if err != nil {
		return summary, corerr.Wrap("error opening rar archive", err)
	}
	return extractAll(it, destDir, policy)
}

func extractAll(it codec.ArchiveIterator, destDir string, policy *corepolicy.Engine) (DecodeSummary, error) {
	var summary DecodeSummary

	destDir, proceed, err := prepareDestDir(destDir, policy)
	if err != nil {
		return summary, err
	}
	if !proceed {
		return summary, nil
	}

	for {
		entry, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, corerr.Wrap("error reading archive entry", err)
		}

		target := filepath.Join(destDir, filepath.FromSlash(entry.NameInArchive))
		if entry.Info.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return summary, corerr.Wrap("could not create directory "+target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return summary, corerr.Wrap("could not create parent directory for "+target, err)
		}

		rc, err := entry.Open()
		if err != nil {
			return summary, corerr.Wrap("could not open entry "+entry.NameInArchive, err)
		}

		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Info.Mode().Perm())
		if err != nil {
			rc.Close()
			return summary, corerr.Wrap("could not create "+target, err)
		}

		n, copyErr := io.Copy(out, rc)
		rc.Close()
		out.Close()
		if copyErr != nil {
			return summary, corerr.Wrap("error extracting "+entry.NameInArchive, copyErr)
		}

		if mtime := entry.Info.ModTime(); !mtime.IsZero() {
			_ = os.Chtimes(target, time.Now(), mtime)
		}

		summary.BytesOut += n
		summary.FilesUnpacked++
	}
	return summary, nil
}

// prepareDestDir implements the "valid target iff it doesn't exist or is
// an empty directory" rule. It returns the directory extraction should
// actually use: destDir itself when there's no conflict or the user
// chose to overwrite, a freshly derived sibling when the user chose to
// rename, or ("", false, nil) when the user cancelled.
func prepareDestDir(destDir string, policy *corepolicy.Engine) (string, bool, error) {
	info, statErr := os.Stat(destDir)
	switch {
	case os.IsNotExist(statErr):
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", false, corerr.Wrap("could not create destination directory", err)
		}
		return destDir, true, nil
	case statErr != nil:
		return "", false, corerr.Wrap("could not stat destination directory", statErr)
	}

	conflict := !info.IsDir()
	if !conflict {
		entries, err := os.ReadDir(destDir)
		if err != nil {
			return "", false, corerr.Wrap("could not read destination directory", err)
		}
		conflict = len(entries) > 0
	}
	if !conflict {
		return destDir, true, nil
	}

	if policy == nil {
		return "", false, corerr.AlreadyExists(destDir)
	}

	resolution, err := policy.ResolveConflict(destDir)
	if err != nil {
		return "", false, err
	}
	return applyConflictResolution(destDir, info, resolution)
}

// applyConflictResolution turns an already-decided Resolution into the
// directory extraction should use, separated out from prepareDestDir so
// each outcome can be exercised without a live policy prompt.
func applyConflictResolution(destDir string, info os.FileInfo, resolution corepolicy.Resolution) (string, bool, error) {
	switch resolution {
	case corepolicy.Cancel:
		return "", false, nil
	case corepolicy.Rename:
		renamed := corepolicy.RenamePath(destDir)
		if err := os.MkdirAll(renamed, 0o755); err != nil {
			return "", false, corerr.Wrap("could not create renamed destination directory", err)
		}
		return renamed, true, nil
	default: // Overwrite
		if !info.IsDir() {
			if err := os.Remove(destDir); err != nil {
				return "", false, corerr.Wrap("could not remove existing file at destination", err)
			}
		}
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", false, corerr.Wrap("could not prepare destination directory", err)
		}
		return destDir, true, nil
	}
}
