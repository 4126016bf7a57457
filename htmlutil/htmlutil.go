// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package htmlutil extracts readable text from HTML content.
package htmlutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Text inside these elements is never visible.
var hiddenElements = map[string]bool{
	"style":  true,
	"script": true,
	"head":   true,
	"title":  true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// StripHTML returns the visible text of the HTML read from r. Each text run
// is trimmed of surrounding whitespace, empty runs are dropped, and the rest
// are joined with sep.
//
// encoding names the character set of r, such as "windows-1252". If it is
// empty, the character set is detected from the content. Text that is not
// inside any element is dropped unless allowNonHTML is set, which is useful
// for content that may or may not be HTML.
func StripHTML(r io.Reader, encoding string, allowNonHTML bool, sep string) (string, error) {
	var err error
	if encoding == "" {
		r, err = charset.NewReader(r, "text/html")
	} else {
		r, err = charset.NewReaderLabel(encoding, r)
	}
	if errors.Is(err, io.EOF) {
		// Nothing to sniff.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("strip html: %w", err)
	}

	var texts []string
	var stack []string
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("strip html: %w", err)
			}
			return strings.Join(texts, sep), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == string(name) {
					stack = stack[:i]
					break
				}
			}
		case html.TextToken:
			if len(stack) == 0 {
				if !allowNonHTML {
					continue
				}
			} else if hiddenElements[stack[len(stack)-1]] {
				continue
			}
			if text := strings.TrimSpace(string(z.Text())); text != "" {
				texts = append(texts, text)
			}
		}
	}
}
