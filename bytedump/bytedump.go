// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package bytedump formats binary data for debugging output.
package bytedump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const bytesPerRow = 16

// Dump writes buf to w as rows of 16 bytes: the offset, the bytes in hex with
// an extra gap after the eighth, and the printable ASCII characters.
//
//	0000: 48 65 6c 6c 6f 2c 20 77  6f 72 6c 64 21 0a       | Hello, world!.
//
// If caption is not empty, it is written on its own line first. prefix is
// written at the start of each row, but not before the caption.
func Dump(w io.Writer, buf []byte, caption, prefix string) error {
	bw := bufio.NewWriter(w)
	if caption != "" {
		bw.WriteString(caption)
		bw.WriteByte('\n')
	}
	for off := 0; off < len(buf); off += bytesPerRow {
		end := off + bytesPerRow
		if end > len(buf) {
			end = len(buf)
		}
		row := buf[off:end]
		fmt.Fprintf(bw, "%s%04x: ", prefix, off)
		n := 0
		for i, b := range row {
			switch {
			case i == 8:
				bw.WriteString("  ")
				n += 2
			case i > 0:
				bw.WriteByte(' ')
				n++
			}
			fmt.Fprintf(bw, "%02x", b)
			n += 2
		}
		for ; n < 3*bytesPerRow; n++ {
			bw.WriteByte(' ')
		}
		bw.WriteString(" | ")
		for _, b := range row {
			if 32 <= b && b < 127 {
				bw.WriteByte(b)
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SafeString returns s with control characters and invalid UTF-8 escaped
// using Go syntax, without surrounding quotes. It is meant for logging
// values that may contain arbitrary bytes.
func SafeString(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
