// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A File is a parsed configuration file. The zero value is an empty file.
// Files are never modified after parsing, so they can be read by multiple
// concurrent goroutines.
type File struct {
	filename string
	sections []*section
	index    map[string]*section
}

type section struct {
	name   string
	keys   []string
	values map[string]string
}

const byteOrderMark = "\ufeff"

// Parse parses a configuration file from r.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. Malformed lines are skipped. The only error Parse
// reports for well-delivered input is text that is not valid UTF-8.
func Parse(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	f := new(File)
	var curr *section
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return f, fmt.Errorf("parse ini file: line %d: %w", lineno, err)
		}
		if lineno == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		if !utf8.ValidString(line) {
			return f, fmt.Errorf("parse ini file: line %d: %w", lineno, errInvalidUTF8)
		}
		curr = f.parseLine(curr, strings.TrimSpace(line))
		if err == io.EOF {
			return f, nil
		}
	}
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

// parseLine applies one trimmed line to f and returns the section that
// subsequent properties belong to.
func (f *File) parseLine(curr *section, line string) *section {
	if line == "" {
		return curr
	}
	switch line[0] {
	case '#', ';', '\'':
		return curr
	case '[':
		if end := strings.IndexByte(line, ']'); end > 1 {
			name := strings.TrimSpace(line[1:end])
			if name == "" {
				// A blank section name leaves nothing to attach properties to.
				return nil
			}
			return f.section(name)
		}
	}
	key, value, ok := splitProperty(line)
	if !ok || curr == nil {
		return curr
	}
	curr.set(fold(key), value)
	return curr
}

// splitProperty finds the first '=' that is directly preceded by at least
// one character other than '[' or '='. The key is the run of such characters
// in front of it and the value is the rest of the line.
func splitProperty(line string) (key, value string, ok bool) {
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '[':
			start = i + 1
		case '=':
			if i > start {
				return strings.TrimSpace(line[start:i]), strings.TrimSpace(line[i+1:]), true
			}
			start = i + 1
		}
	}
	return "", "", false
}

func (f *File) section(name string) *section {
	name = fold(name)
	if s := f.index[name]; s != nil {
		return s
	}
	s := &section{name: name, values: make(map[string]string)}
	if f.index == nil {
		f.index = make(map[string]*section)
	}
	f.index[name] = s
	f.sections = append(f.sections, s)
	return s
}

func (s *section) set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// fold returns the canonical, lower-cased form of a section name or key.
// Lower-casing rather than full case folding keeps names such as "groß" and
// "gross" apart. A new Caser is used for each call because Casers are not
// safe for concurrent use.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Open parses the configuration file at the given path. The path is
// recorded and reported by File.Filename.
func Open(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ini file: %w", err)
	}
	defer fp.Close()
	f, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.filename = path
	return f, nil
}

// Load builds a File from src the way Awasu extensions receive their
// configuration. A string naming an existing regular file is opened with
// Open. A byte slice is parsed as UTF-8 text. Anything else, including a
// string that does not name a file, is formatted with fmt.Sprint and parsed
// as the text of the file.
func Load(src interface{}) (*File, error) {
	switch src := src.(type) {
	case string:
		if isRegularFile(src) {
			return Open(src)
		}
		return Parse(strings.NewReader(src))
	case []byte:
		return Parse(bytes.NewReader(src))
	case io.Reader:
		return Parse(src)
	default:
		return Parse(strings.NewReader(fmt.Sprint(src)))
	}
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// UnmarshalText parses the configuration data, replacing any sections in f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// Filename returns the path the file was opened from or the empty string
// if it was parsed from memory.
func (f *File) Filename() string {
	if f == nil {
		return ""
	}
	return f.filename
}

// Sections returns the folded names of the file's sections in the order
// they first appeared.
func (f *File) Sections() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		names = append(names, s.name)
	}
	return names
}

// Keys returns the folded keys of the named section in the order they first
// appeared.
func (f *File) Keys(sectionName string) []string {
	s := f.lookupSection(sectionName)
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

func (f *File) lookupSection(name string) *section {
	if f == nil {
		return nil
	}
	return f.index[fold(name)]
}

// lookup returns the raw, undecoded value of a property or the empty string.
func (f *File) lookup(sectionName, key string) string {
	s := f.lookupSection(sectionName)
	if s == nil {
		return ""
	}
	return s.values[fold(key)]
}

// Dump writes every section and its raw values in INI form. Values are
// written as stored, without re-encoding percent escapes or TextVal tags, so
// the output is meant for people rather than for parsing back.
func (f *File) Dump(w io.Writer) error {
	if f == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	for _, s := range f.sections {
		fmt.Fprintf(bw, "[%s]\n", s.name)
		for _, k := range s.keys {
			fmt.Fprintf(bw, "%s = %s\n", k, s.values[k])
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dump ini file: %w", err)
	}
	return nil
}
