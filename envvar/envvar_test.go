// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package envvar

import "testing"

func TestGet(t *testing.T) {
	const key = "AWASUTOOLS_TEST_GET"
	t.Setenv(key, "")
	if got := Get(key, "fallback"); got != "fallback" {
		t.Errorf("Get(%q, \"fallback\") with empty variable = %q; want \"fallback\"", key, got)
	}
	t.Setenv(key, "value")
	if got := Get(key, "fallback"); got != "value" {
		t.Errorf("Get(%q, \"fallback\") = %q; want \"value\"", key, got)
	}
}

func TestBool(t *testing.T) {
	const key = "AWASUTOOLS_TEST_BOOL"
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"yes", true},
		{"TRUE", true},
		{"On", true},
		{"0", false},
		{"no", false},
		{"off", false},
		{"maybe", false},
	}
	for _, test := range tests {
		t.Setenv(key, test.value)
		if got := Bool(key); got != test.want {
			t.Errorf("Bool with %s=%q = %t; want %t", key, test.value, got, test.want)
		}
	}
}

func TestLogDestination(t *testing.T) {
	t.Setenv(LogVar, "")
	if got := LogDestination(); got != "" {
		t.Errorf("LogDestination() with %s unset = %q; want \"\"", LogVar, got)
	}
	t.Setenv(LogVar, "+/tmp/ext.log")
	if got := LogDestination(); got != "+/tmp/ext.log" {
		t.Errorf("LogDestination() = %q; want \"+/tmp/ext.log\"", got)
	}
}
