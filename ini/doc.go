// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides read access to Awasu configuration files.

Awasu hands its extensions configuration in a Windows-INI style format with a
few extensions of its own. This package parses that dialect into a read-only
store and offers typed accessors that apply Awasu's decoding rules.

Syntax

A configuration file is Unicode text encoded in UTF-8. A leading byte order
mark is ignored.

Each line is trimmed of surrounding whitespace and then classified:

	; comment
	# comment
	' comment
	[section name]
	key = value

Blank lines and lines starting with ';', '#' or '\'' are comments. A line
starting with '[' and containing a later ']' opens a section; any text after
the closing bracket is ignored. Any other line containing '=' is a property:
the key is the text before the '=' and the value is everything after it.
Lines that are neither are skipped without error, as are properties that
appear before the first section. There is no quoting and no escaping of
'=', '[', ']' or '#' inside values.

Section names and keys are stored lower-cased, so names that differ only in
letter case are the same. Only the lower-cased form is kept and reported.
Values keep their case.

A section header that appears again continues the earlier section instead
of starting it over: its properties are added to the ones already read.
When a key is repeated within a section, the last value wins.

Values

A property that is present but empty is indistinguishable from one that is
missing: both yield the accessor's default.

Values may contain percent escapes ("%0A" is a newline). Every '%' followed by
two hexadecimal digits is replaced by the character with that code point;
anything else is left alone.

After decoding, a value ending in a newline, an asterisk and a single digit
carries a TextVal type tag:

	This is some HTML content.%0A*2

The tag is removed from the value and reported as a TextType. Awasu uses tags
to say whether feed content is plain text or HTML. Use File.GetTextVal for
tagged values; File.GetString reports ErrTextVal for them.

Lists are stored as numbered keys "1", "2", "3" and so on, and are read with
File.GetStringList.
*/
package ini
