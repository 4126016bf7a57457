// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
)

// FileSet is a list of files to obtain configuration from in descending order
// of precedence. A typical set is the channel configuration Awasu passes to an
// extension followed by defaults shipped with the extension.
//
// A property is taken from the first file where it is present and non-empty.
// Defaults passed to the accessors only apply when no file has a value.
// Nil elements of the set are ignored.
type FileSet []*File

// ParseFiles parses the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *File.
func ParseFiles(paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		fp, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		parsed, err := Parse(fp)
		fp.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %s: %w", p, err)
		}
		parsed.filename = p
		fset = append(fset, parsed)
	}
	return fset, nil
}

func (fset FileSet) lookup(section, key string) string {
	for _, f := range fset {
		if v := f.lookup(section, key); v != "" {
			return v
		}
	}
	return ""
}

// Sections returns the names of sections present in any file, in order of
// first appearance with higher-precedence files first.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, f := range fset {
		for _, name := range f.Sections() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// GetString is like File.GetString, consulting each file in turn.
func (fset FileSet) GetString(section, key, def string) (string, error) {
	return getString(fset, section, key, def)
}

// GetTextVal is like File.GetTextVal, consulting each file in turn.
func (fset FileSet) GetTextVal(section, key string, def TextVal) TextVal {
	return getTextVal(fset, section, key, def)
}

// GetStringList is like File.GetStringList. Each numbered key is looked up
// across the set independently.
func (fset FileSet) GetStringList(section string, def []string) ([]string, error) {
	return getStringList(fset, section, def)
}

// GetStringIndirect is like File.GetStringIndirect, consulting each file in
// turn.
func (fset FileSet) GetStringIndirect(section, key, def string, required bool) (string, error) {
	return getStringIndirect(fset, section, key, def, required)
}

// GetInt is like File.GetInt, consulting each file in turn.
func (fset FileSet) GetInt(section, key string, def int) (int, error) {
	return getInt(fset, section, key, def)
}

// GetBool is like File.GetBool, consulting each file in turn.
func (fset FileSet) GetBool(section, key string, def bool) (bool, error) {
	return getBool(fset, section, key, def)
}
