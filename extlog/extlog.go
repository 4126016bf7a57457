// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package extlog provides the append-only diagnostic log that Awasu
// extensions write to.
//
// A Logger is opened from a destination string: "+path" appends to path and
// marks the start of a new session, while "path" truncates it. A Logger that
// could not be opened is inert: every method is a no-op. Logging never
// reports errors to its callers.
//
// *Logger implements zombiezen.com/go/log.Logger, so it can be installed with
// log.SetDefault and used from library code through log.Infof and friends.
package extlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"zombiezen.com/go/log"
)

// SessionBanner is written when a log is opened for appending.
const SessionBanner = "\n\n\n=== NEW SESSION ===\n"

const timeFormat = "2006-01-02 15:04:05"

// A Logger writes timestamped messages to a file. A nil *Logger is inert.
// Loggers are safe to use from multiple goroutines.
type Logger struct {
	mu   sync.Mutex
	w    io.WriteCloser
	lock *flock.Flock // guards writes from other processes sharing the log
	now  func() time.Time
}

// Open opens the log named by dest. An empty dest or a file that cannot be
// opened yields an inert Logger.
func Open(dest string) *Logger {
	if dest == "" {
		return new(Logger)
	}
	path := dest
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	appending := strings.HasPrefix(dest, "+")
	if appending {
		path = dest[1:]
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o666)
	if err != nil {
		return new(Logger)
	}
	l := &Logger{
		w:    f,
		lock: flock.New(lockPath(path)),
		now:  time.Now,
	}
	if appending {
		l.write(SessionBanner)
	}
	return l
}

// lockPath returns the file locked around each write. It must not be the log
// itself: Windows byte-range locks are mandatory and would refuse the writes.
func lockPath(path string) string {
	return path + ".lock"
}

// Enabled reports whether messages written to l go anywhere.
func (l *Logger) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w != nil
}

// Printf writes a timestamped message formatted with fmt.Sprintf rules.
// An empty format writes a blank line.
func (l *Logger) Printf(format string, args ...interface{}) {
	if format == "" {
		l.write("\n")
		return
	}
	l.write(l.timestamp() + " | " + fmt.Sprintf(format, args...) + "\n")
}

// Raw writes pre-formatted text, such as an XML dump, without a timestamp.
// A trailing newline is added if msg does not end with one.
func (l *Logger) Raw(msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	l.write(msg)
}

// Log implements log.Logger. Warnings and errors are prefixed with their
// level.
func (l *Logger) Log(ctx context.Context, entry log.Entry) {
	msg := entry.Msg
	switch {
	case entry.Level >= log.Error:
		msg = "ERROR: " + msg
	case entry.Level >= log.Warn:
		msg = "WARNING: " + msg
	}
	l.Printf("%s", msg)
}

// LogEnabled implements log.Logger.
func (l *Logger) LogEnabled(entry log.Entry) bool {
	return l.Enabled()
}

// Close closes the log file. Afterwards, l is inert.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return nil
	}
	err := l.w.Close()
	l.w = nil
	if l.lock != nil {
		l.lock.Close()
		l.lock = nil
	}
	return err
}

func (l *Logger) timestamp() string {
	if l == nil || l.now == nil {
		return time.Now().Format(timeFormat)
	}
	return l.now().Format(timeFormat)
}

// write appends s to the log, holding the file lock so that whole messages
// from concurrent extension processes do not interleave. Failures are
// swallowed.
func (l *Logger) write(s string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return
	}
	if l.lock != nil {
		if err := l.lock.Lock(); err == nil {
			defer l.lock.Unlock()
		}
	}
	io.WriteString(l.w, s)
}
