// Package logx implements a single background worker draining a
// channel of formatted log lines, with buffered flush and ordered,
// rendezvous-synchronized shutdown. Producers never touch stderr
// directly; everything funnels through the Worker's channel.
//
// There is no off-the-shelf logging library in the corpus exposing this
// bounded-buffer-plus-rendezvous-flush contract, so this is hand-built
// on chan/select/time.Timer, the idiom the corpus uses for its own
// background channel drains.
package logx

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level distinguishes Info from Warning messages.
type Level int

const (
	Info Level = iota
	Warning
)

// Message is one line pushed onto the worker's channel.
type Message struct {
	Level      Level
	Accessible bool
	Text       string
}

const (
	bufferCap     = 16
	flushInterval = 200 * time.Millisecond
)

type commandKind int

const (
	cmdFlush commandKind = iota
	cmdFlushAndShutdown
)

type command struct {
	kind       commandKind
	rendezvous chan struct{}
}

// entry is the single wire type sent on the worker's channel so that
// messages and commands from the same producer are observed by the
// worker in the exact order they were sent (a second channel for
// commands would let select reorder them relative to pending messages).
type entry struct {
	msg *Message
	cmd *command
}

// Worker is the single dedicated draining goroutine all log producers
// funnel through.
type Worker struct {
	out        io.Writer
	entries    chan entry
	accessible bool
	quiet      bool
	mu         sync.Mutex // guards accessible, quiet
	stopped    chan struct{}
}

// New creates a Worker that flushes its buffer to out.
func New(out io.Writer) *Worker {
	return &Worker{
		out:     out,
		entries: make(chan entry, bufferCap),
		stopped: make(chan struct{}),
	}
}

// SetAccessible toggles accessibility-mode formatting.
func (w *Worker) SetAccessible(v bool) {
	w.mu.Lock()
	w.accessible = v
	w.mu.Unlock()
}

// SetQuiet toggles --quiet: once set, Info messages are dropped and
// only Warning messages reach out.
func (w *Worker) SetQuiet(v bool) {
	w.mu.Lock()
	w.quiet = v
	w.mu.Unlock()
}

// Send enqueues a message.
func (w *Worker) Send(msg Message) {
	m := msg
	w.entries <- entry{msg: &m}
}

// Info enqueues an Info-level message.
func (w *Worker) Info(accessible bool, format string, args ...any) {
	w.Send(Message{Level: Info, Accessible: accessible, Text: fmt.Sprintf(format, args...)})
}

// Warning enqueues a Warning-level message.
func (w *Worker) Warning(format string, args ...any) {
	w.Send(Message{Level: Warning, Text: fmt.Sprintf(format, args...)})
}

// Flush blocks until every message enqueued before this call (from the
// calling goroutine) has been written to out.
func (w *Worker) Flush() {
	rendezvous := make(chan struct{})
	w.entries <- entry{cmd: &command{kind: cmdFlush, rendezvous: rendezvous}}
	<-rendezvous
}

// FlushAndShutdown flushes the buffer and stops the worker goroutine,
// synchronously from the caller's point of view.
func (w *Worker) FlushAndShutdown() {
	rendezvous := make(chan struct{})
	w.entries <- entry{cmd: &command{kind: cmdFlushAndShutdown, rendezvous: rendezvous}}
	<-rendezvous
	<-w.stopped
}

// Run drains the worker's channel until shut down. Call it once, in its
// own goroutine, before any producer calls Send.
func (w *Worker) Run() {
	defer close(w.stopped)

	buf := make([]string, 0, bufferCap)
	timer := time.NewTimer(flushInterval)
	defer timer.Stop()

	flush := func() {
		if len(buf) == 0 {
			return
		}
		joined := buf[0]
		for _, line := range buf[1:] {
			joined += "\n" + line
		}
		fmt.Fprintln(w.out, joined)
		buf = buf[:0]
	}

	for {
		select {
		case e := <-w.entries:
			switch {
			case e.msg != nil:
				if line, ok := w.render(*e.msg); ok {
					buf = append(buf, line)
				}
				if len(buf) >= bufferCap {
					flush()
				}
			case e.cmd != nil:
				flush()
				close(e.cmd.rendezvous)
				if e.cmd.kind == cmdFlushAndShutdown {
					return
				}
			}
		case <-timer.C:
			flush()
			timer.Reset(flushInterval)
		}
	}
}

// render formats a message per the current accessibility and quiet
// settings. It returns (line, false) when the message must be dropped
// (a non-accessible Info message while running in accessible mode, or
// any Info message while quiet).
func (w *Worker) render(msg Message) (string, bool) {
	w.mu.Lock()
	accessible := w.accessible
	quiet := w.quiet
	w.mu.Unlock()

	if quiet && msg.Level == Info {
		return "", false
	}

	if accessible {
		switch msg.Level {
		case Info:
			if !msg.Accessible {
				return "", false
			}
			return "Info: " + msg.Text, true
		case Warning:
			return "Warning: " + msg.Text, true
		}
	}

	switch msg.Level {
	case Info:
		return "[INFO] " + msg.Text, true
	case Warning:
		return "[WARNING] " + msg.Text, true
	}
	return msg.Text, true
}
