// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package timestamp converts between the timestamp formats found in feeds.
package timestamp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnparsable is returned by ParseRFC2822 for text that is not a timestamp.
var ErrUnparsable = errors.New("unparsable timestamp")

var monthNames = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseRFC2822 parses an RFC 2822 timestamp as found in RSS feeds, such as
// "Tue, 01 Apr 2014 15:07:51 +0000", and returns it in UTC.
//
// Parsing is lenient in the ways real feeds require: the day of the week is
// optional, the day of the month may be a single digit, month names are
// always English, and a missing or named zone is taken to be UTC.
func ParseRFC2822(s string) (time.Time, error) {
	orig := s
	if len(s) >= 5 && isAlpha(s[0]) && isAlpha(s[1]) && isAlpha(s[2]) && s[3] == ',' && s[4] == ' ' {
		s = s[5:]
	}

	n := 0
	for n < 2 && n < len(s) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return time.Time{}, fmt.Errorf("parse %q: %w", orig, ErrUnparsable)
	}
	day, _ := strconv.Atoi(s[:n])
	if n+1 > len(s) {
		return time.Time{}, fmt.Errorf("parse %q: %w", orig, ErrUnparsable)
	}
	// Fixed layout from here on: "Apr 2014 15:07:51 +0000".
	s = s[n+1:]
	if len(s) < 17 {
		return time.Time{}, fmt.Errorf("parse %q: %w", orig, ErrUnparsable)
	}
	month, ok := monthNames[strings.ToLower(s[:3])]
	if !ok {
		return time.Time{}, fmt.Errorf("parse %q: unknown month %q: %w", orig, s[:3], ErrUnparsable)
	}
	var fields [4]int
	for i, span := range [][2]int{{4, 8}, {9, 11}, {12, 14}, {15, 17}} {
		v, err := strconv.Atoi(s[span[0]:span[1]])
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %q: %w", orig, ErrUnparsable)
		}
		fields[i] = v
	}
	t := time.Date(fields[0], month, day, fields[1], fields[2], fields[3], 0, time.UTC)

	if len(s) >= 23 && (s[18] == '+' || s[18] == '-') {
		hours, err1 := strconv.Atoi(s[19:21])
		minutes, err2 := strconv.Atoi(s[21:23])
		if err1 != nil || err2 != nil {
			return time.Time{}, fmt.Errorf("parse %q: bad zone offset: %w", orig, ErrUnparsable)
		}
		offset := time.Duration(60*hours+minutes) * time.Minute
		if s[18] == '+' {
			offset = -offset
		}
		t = t.Add(offset)
	}
	return t, nil
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// ISO8601 formats t in UTC the way Atom feeds expect, for example
// "2014-04-01T15:07:51Z".
func ISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
