// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package feed generates Atom feeds for Awasu channels.
//
// Feeds and items are rendered from text templates containing named
// placeholders in braces, such as {title}. Doubled braces ("{{" and "}}")
// stand for literal braces. Every value is XML-escaped before it is
// substituted, except for the rendered items of a feed.
package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2/maybe"
	"github.com/yourbase/awasutools/extlog"
	"github.com/yourbase/awasutools/retry"
	"github.com/yourbase/awasutools/timestamp"
)

// DefaultFeedTemplate is used for feeds that don't set a Template.
const DefaultFeedTemplate = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:xh="http://www.w3.org/1999/xhtml">` + "\n" +
	`<title type="text">{title}</title>` + "\n" +
	`<subtitle type="html">{description}</subtitle>` + "\n" +
	`<link href="{url}" />` + "\n" +
	`<logo>{image_url}</logo>` + "\n" +
	`<updated>{updated_time}</updated>` + "\n" +
	`{feed_items}` + "\n" +
	`</feed>`

// DefaultItemTemplate is used for items that don't set a Template.
const DefaultItemTemplate = `<entry>` +
	`<title type="text">{title}</title>` +
	`<link href="{url}" />` +
	`<updated>{updated_time}</updated>` +
	`<content type="html">{content}</content>` +
	`</entry>`

const feedItemsLine = "{feed_items}\n"

// ErrUnknownPlaceholder is reported when a template refers to a value that
// was not supplied.
var ErrUnknownPlaceholder = errors.New("unknown template placeholder")

// A Feed is a channel and its items.
type Feed struct {
	Title       string
	HomeURL     string
	Description string
	// ImageURL is the channel logo. A value that is not an http, https or
	// file URL is taken to be a file relative to BaseDir.
	ImageURL string
	// Updated defaults to the time the XML is generated.
	Updated time.Time
	// BaseDir is where relative image files live. It defaults to the
	// directory of the running executable.
	BaseDir string
	// Template defaults to DefaultFeedTemplate.
	Template string
	// ExtraArgs supplies values for additional placeholders. They override
	// the values derived from the fields above.
	ExtraArgs map[string]string
	Items     []*Item
}

// An Item is a single feed entry.
type Item struct {
	Title   string
	URL     string
	Content string
	// Updated is rendered empty if it is the zero time.
	Updated time.Time
	// Template defaults to DefaultItemTemplate.
	Template  string
	ExtraArgs map[string]string
}

// XML renders the feed. If log is enabled, each item's values and the
// resulting XML are written to it.
func (f *Feed) XML(log *extlog.Logger) (string, error) {
	templ := f.Template
	if templ == "" {
		templ = DefaultFeedTemplate
	}
	updated := f.Updated
	if updated.IsZero() {
		updated = time.Now()
	}
	args := map[string]string{
		"title":        f.Title,
		"description":  f.Description,
		"url":          f.HomeURL,
		"image_url":    f.imageURL(),
		"updated_time": timestamp.ISO8601(updated),
	}
	for k, v := range f.ExtraArgs {
		args[k] = v
	}
	for k, v := range args {
		args[k] = EscapeXML(v)
	}

	items := make([]string, 0, len(f.Items))
	for i, item := range f.Items {
		x, err := item.XML(log)
		if err != nil {
			return "", fmt.Errorf("generate feed: item %d: %w", i+1, err)
		}
		items = append(items, x)
	}
	args["feed_items"] = strings.Join(items, "\n")
	if len(items) == 0 {
		if i := strings.Index(templ, feedItemsLine); i >= 0 {
			templ = templ[:i] + templ[i+len(feedItemsLine):]
		}
	}

	out, err := expand(templ, args)
	if err != nil {
		return "", fmt.Errorf("generate feed: %w", err)
	}
	return out, nil
}

func (f *Feed) imageURL() string {
	img := f.ImageURL
	if img == "" || hasAnyPrefix(img, "http://", "https://", "file://") {
		return img
	}
	dir := f.BaseDir
	if dir == "" {
		if exe, err := os.Executable(); err == nil {
			dir = filepath.Dir(exe)
		}
	}
	return "file:///" + strings.TrimPrefix(filepath.ToSlash(filepath.Join(dir, img)), "/")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// XML renders the item. If log is enabled, the item's values and the
// resulting XML are written to it.
func (item *Item) XML(log *extlog.Logger) (string, error) {
	templ := item.Template
	if templ == "" {
		templ = DefaultItemTemplate
	}
	var updated string
	if !item.Updated.IsZero() {
		updated = timestamp.ISO8601(item.Updated)
	}
	args := map[string]string{
		"title":        item.Title,
		"url":          item.URL,
		"updated_time": updated,
		"content":      item.Content,
	}
	for k, v := range item.ExtraArgs {
		args[k] = v
	}
	if log.Enabled() {
		log.Printf("")
		log.Printf("Generating feed item...")
		keys := make([]string, 0, len(args))
		for k := range args {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			log.Printf("- %s = %s", k, args[k])
		}
	}
	for k, v := range args {
		args[k] = EscapeXML(v)
	}
	out, err := expand(templ, args)
	if err != nil {
		return "", fmt.Errorf("generate feed item: %w", err)
	}
	if log.Enabled() {
		log.Printf("Generated feed item XML:")
		log.Raw(PrettyXML(out))
	}
	return out, nil
}

// expand replaces each {name} in templ with args[name].
func expand(templ string, args map[string]string) (string, error) {
	sb := new(strings.Builder)
	sb.Grow(len(templ))
	for i := 0; i < len(templ); i++ {
		c := templ[i]
		switch {
		case c == '{' && strings.HasPrefix(templ[i:], "{{"):
			sb.WriteByte('{')
			i++
		case c == '}' && strings.HasPrefix(templ[i:], "}}"):
			sb.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(templ[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			name := templ[i+1 : i+end]
			v, ok := args[name]
			if !ok {
				return "", fmt.Errorf("%w {%s}", ErrUnknownPlaceholder, name)
			}
			sb.WriteString(v)
			i += end
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

// Backoff between attempts to replace a feed file that Awasu has open.
const (
	replaceRetryWait = 50 * time.Millisecond
	replaceRetries   = 5
)

// WriteFile renders the feed and writes it to path. Where the platform
// allows it, the old file is replaced atomically so that Awasu never reads a
// partially written feed. If the write fails, for instance because Awasu is
// reading the old file, it is retried a few times with backoff.
func WriteFile(ctx context.Context, path string, f *Feed, log *extlog.Logger) error {
	out, err := f.XML(log)
	if err != nil {
		return err
	}
	b := retry.Exponential(replaceRetryWait, replaceRetries)
	err = retry.Do(ctx, "replacing "+path, b, func() error {
		return replaceFile(path, out)
	})
	if err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}

// replaceFile writes content to path. On Windows, where renaming over an open
// file is not possible, the file is overwritten in place.
func replaceFile(path, content string) error {
	return maybe.WriteFile(path, []byte(content), 0o644)
}
