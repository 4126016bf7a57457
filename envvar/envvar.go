// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar provides functions to read environment variables for
// configuration.
package envvar

import (
	"os"

	"github.com/yourbase/awasutools/ini"
)

// LogVar is the environment variable that names the log destination of
// the command-line tools. See extlog.Open for its syntax.
const LogVar = "AWASUTOOLS_LOG"

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. It accepts the
// same words as boolean config properties (see ini.ParseBool). If the
// variable is unset or not one of those words, it returns false.
func Bool(key string) bool {
	b, err := ini.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return b
}

// LogDestination returns the log destination named by LogVar, or the empty
// string if logging is off.
func LogDestination() string {
	return Get(LogVar, "")
}
