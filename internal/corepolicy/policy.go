// Package corepolicy implements confirmation prompts, the tri-state
// question policy, and conflict resolution (overwrite / cancel /
// rename). Prompt rendering is grounded in
// original_source/src/dialogs.rs's colored "[Y/n]" confirmation, ported
// to github.com/fatih/color (which honors NO_COLOR automatically).
package corepolicy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/archio-dev/archio/internal/corerr"
	"github.com/archio-dev/archio/internal/logx"
)

// Tristate is the process-wide QuestionPolicy: Ask, AlwaysYes, or AlwaysNo.
type Tristate int

const (
	Ask Tristate = iota
	AlwaysYes
	AlwaysNo
)

// Resolution is what the conflict engine decided to do about a path
// conflict.
type Resolution int

const (
	Overwrite Resolution = iota
	Cancel
	Rename
)

// ioLocks serializes stdout/stderr access across every prompt in the
// process: they're held only for the duration of a prompt, never across
// codec I/O.
var ioLocks sync.Mutex

// Engine owns confirmation prompts, bound to a policy, a logger to flush
// before prompting, and an input/output pair (normally stdin/stderr).
type Engine struct {
	Policy Tristate
	Logger *logx.Worker
	In     io.Reader
	Out    io.Writer

	reader     *bufio.Reader
	readerOnce sync.Once
}

// New creates an Engine reading prompts from stdin and writing them to
// stderr.
func New(policy Tristate, logger *logx.Worker) *Engine {
	return &Engine{Policy: policy, Logger: logger, In: os.Stdin, Out: os.Stderr}
}

func (e *Engine) stdinReader() *bufio.Reader {
	e.readerOnce.Do(func() { e.reader = bufio.NewReader(e.In) })
	return e.reader
}

// isInteractive reports whether In looks like an interactive terminal.
func (e *Engine) isInteractive() bool {
	f, ok := e.In.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Confirm implements "do you want to {action} '{path}'?" with the
// tri-state policy short-circuit.
func (e *Engine) Confirm(action, path string) (bool, error) {
	switch e.Policy {
	case AlwaysYes:
		return true, nil
	case AlwaysNo:
		return false, nil
	}
	return e.promptYesNo(fmt.Sprintf("do you want to %s '%s'?", action, path))
}

// ResolveConflict prompts for Overwrite/Cancel/Rename, default Yes ->
// Overwrite.
func (e *Engine) ResolveConflict(path string) (Resolution, error) {
	switch e.Policy {
	case AlwaysYes:
		return Overwrite, nil
	case AlwaysNo:
		return Cancel, nil
	}

	return e.promptConflict(fmt.Sprintf("'%s' already exists, overwrite it?", path))
}

// CreateOrResolve attempts an exclusive create at path; on AlreadyExists
// it consults ResolveConflict and either truncates-and-recreates or
// derives a renamed path. Returns (writer, finalPath, error). A nil
// writer with a nil error means the user cancelled.
func (e *Engine) CreateOrResolve(path string) (io.WriteCloser, string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err == nil {
		return f, path, nil
	}
	if !os.IsExist(err) {
		return nil, "", corerr.Wrap("could not create output file", err)
	}

	resolution, err := e.ResolveConflict(path)
	if err != nil {
		return nil, "", err
	}

	switch resolution {
	case Cancel:
		return nil, "", nil
	case Overwrite:
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, "", corerr.Wrap("could not overwrite output file", err)
		}
		return f, path, nil
	case Rename:
		renamed := RenamePath(path)
		f, err := os.OpenFile(renamed, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return nil, "", corerr.Wrap("could not create renamed output file", err)
		}
		return f, renamed, nil
	}
	return nil, "", nil
}

// RenamePath implements the deterministic rename algorithm: append
// "_1", "_2", ... to the stem (everything before the first dot of the
// base name) and probe until a non-existent path is found, e.g.
// foo.tar.gz -> foo_1.tar.gz.
func RenamePath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	stem, rest := splitKnownStem(base)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, rest))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// splitKnownStem finds the stem boundary at the first dot in base,
// whether or not the suffixes after it are recognized formats, so
// foo.bak.tar.gz splits into "foo" and ".bak.tar.gz" (unlike
// corefmt.ParseExtension, whose stem there is "foo.bak"). It does not
// consult the format registry.
func splitKnownStem(base string) (stem, rest string) {
	idx := strings.IndexByte(base, '.')
	if idx <= 0 {
		return base, ""
	}
	return base[:idx], base[idx:]
}

// promptYesNo renders a colored [Y/n] prompt to Out after flushing the
// logger and acquiring the process-wide I/O lock. It blocks on a single
// line of stdin input; an empty line defaults to yes.
func (e *Engine) promptYesNo(message string) (bool, error) {
	if !e.isInteractive() && e.Policy == Ask {
		return false, corerr.EOFOnPrompt()
	}

	ioLocks.Lock()
	defer ioLocks.Unlock()

	if e.Logger != nil {
		e.Logger.Flush()
	}

	yes := color.New(color.FgGreen).Sprint("Y")
	no := color.New(color.FgRed).Sprint("n")

	for {
		fmt.Fprintf(e.Out, "%s [%s/%s] ", message, yes, no)
		line, err := e.stdinReader().ReadString('\n')
		if err != nil && line == "" {
			return false, corerr.EOFOnPrompt().WithCause(err)
		}
		if yes, recognized := parseYesNoAnswer(line); recognized {
			return yes, nil
		}
	}
}

// parseYesNoAnswer interprets a single line of user input for a [Y/n]
// prompt, returning the answer and whether the line was recognized. An
// empty line defaults to yes.
func parseYesNoAnswer(line string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// promptConflict renders a colored [Y/n/r] prompt offering
// Overwrite/Cancel/Rename, after flushing the logger and acquiring the
// process-wide I/O lock. An empty line defaults to Overwrite.
func (e *Engine) promptConflict(message string) (Resolution, error) {
	if !e.isInteractive() && e.Policy == Ask {
		return Cancel, corerr.EOFOnPrompt()
	}

	ioLocks.Lock()
	defer ioLocks.Unlock()

	if e.Logger != nil {
		e.Logger.Flush()
	}

	yes := color.New(color.FgGreen).Sprint("Y")
	no := color.New(color.FgRed).Sprint("n")
	rename := color.New(color.FgYellow).Sprint("r")

	for {
		fmt.Fprintf(e.Out, "%s [%s/%s/%s] ", message, yes, no, rename)
		line, err := e.stdinReader().ReadString('\n')
		if err != nil && line == "" {
			return Cancel, corerr.EOFOnPrompt().WithCause(err)
		}
		if resolution, recognized := parseConflictAnswer(line); recognized {
			return resolution, nil
		}
	}
}

// parseConflictAnswer interprets a single line of user input for a
// [Y/n/r] conflict prompt, returning the resolution and whether the
// line was recognized. An empty line defaults to Overwrite.
func parseConflictAnswer(line string) (Resolution, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return Overwrite, true
	case "n", "no":
		return Cancel, true
	case "r", "rename":
		return Rename, true
	}
	return Cancel, false
}
