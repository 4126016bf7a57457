// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package fsutil provides small file system helpers for extensions that
// keep working files next to their configuration.
package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"zombiezen.com/go/log"
)

// ChangeExt replaces the extension of the last element of name. ext may be
// given with or without its leading dot.
func ChangeExt(name, ext string) string {
	dir, base := filepath.Split(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return dir + base + ext
}

// MakeDir creates dir and any missing parents. Failure is logged as a warning
// and otherwise ignored so that the caller can keep going; MakeDir reports
// whether the directory exists afterwards.
func MakeDir(ctx context.Context, dir string) bool {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return true
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		log.Warnf(ctx, "Can't create directory: %s: %v", dir, err)
		return false
	}
	return true
}

// RemoveFile removes the named file. It is not an error for the file to be
// missing already. Directories are left alone.
func RemoveFile(name string) error {
	info, err := os.Lstat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}
	return os.Remove(name)
}

// RemoveDir removes the named directory and everything in it. It is not an
// error for the directory to be missing already.
func RemoveDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}
	return os.RemoveAll(dir)
}
