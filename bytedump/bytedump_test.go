// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package bytedump

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		caption string
		prefix  string
		want    string
	}{
		{
			name: "Empty",
		},
		{
			name:    "EmptyWithCaption",
			caption: "Nothing:",
			want:    "Nothing:\n",
		},
		{
			name: "Short",
			buf:  []byte("Hello"),
			want: "0000: 48 65 6c 6c 6f" + strings.Repeat(" ", 34) + " | Hello\n",
		},
		{
			name: "ExactlyEight",
			buf:  []byte("abcdefgh"),
			want: "0000: 61 62 63 64 65 66 67 68" + strings.Repeat(" ", 25) + " | abcdefgh\n",
		},
		{
			name: "FullRow",
			buf:  []byte("0123456789abcdef"),
			want: "0000: 30 31 32 33 34 35 36 37  38 39 61 62 63 64 65 66 | 0123456789abcdef\n",
		},
		{
			name:    "MultipleRowsWithPrefix",
			buf:     []byte("Hello, world!\n\x00\xff\x7fXYZ"),
			caption: "Response body:",
			prefix:  "  ",
			want: "Response body:\n" +
				"  0000: 48 65 6c 6c 6f 2c 20 77  6f 72 6c 64 21 0a 00 ff | Hello, world!...\n" +
				"  0010: 7f 58 59 5a" + strings.Repeat(" ", 37) + " | .XYZ\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sb := new(strings.Builder)
			if err := Dump(sb, test.buf, test.caption, test.prefix); err != nil {
				t.Fatal("Dump:", err)
			}
			if diff := cmp.Diff(test.want, sb.String()); diff != "" {
				t.Errorf("Dump (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSafeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"tab\there", `tab\there`},
		{"line\n", `line\n`},
		{"bad\xff", `bad\xff`},
		{"日本", "日本"},
	}
	for _, test := range tests {
		if got := SafeString(test.in); got != test.want {
			t.Errorf("SafeString(%q) = %q; want %q", test.in, got, test.want)
		}
	}
}
