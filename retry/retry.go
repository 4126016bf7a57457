// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying a file operation that can
// fail transiently, such as replacing a file that another process is
// reading.
package retry

import (
	"context"
	"time"

	"zombiezen.com/go/log"
)

// A Backoff is called after each failed attempt. It returns how long to wait
// before the next attempt, or false to give up.
type Backoff interface {
	Next() (time.Duration, bool)
}

// Exponential returns a Backoff that allows up to n retries, waiting
// initial before the first and doubling the wait each time.
func Exponential(initial time.Duration, n int) Backoff {
	return &exponential{next: initial, left: n}
}

type exponential struct {
	next time.Duration
	left int
}

func (b *exponential) Next() (time.Duration, bool) {
	if b.left <= 0 {
		return 0, false
	}
	b.left--
	d := b.next
	b.next *= 2
	return d, true
}

// Do calls f until it returns nil, the Backoff gives up, or the Context is
// Done. In the latter two cases, Do returns the last error from f. f is
// always called at least once.
//
// The operation should be a verb phrase like "replacing feed.xml" for
// logging.
func Do(ctx context.Context, operation string, b Backoff, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		d, ok := b.Next()
		if !ok {
			return err
		}
		if d <= 0 {
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
			continue
		}
		log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
		if t == nil {
			t = time.NewTimer(d)
			defer t.Stop()
		} else {
			t.Reset(d)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return err
		}
	}
}
