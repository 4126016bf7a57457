// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TextType says how Awasu content is encoded. Values other than the named
// constants are passed through unchanged for the caller to interpret.
type TextType int

// TextVal types.
const (
	// Unknown means Awasu does not know whether the content is plain text
	// or HTML.
	Unknown   TextType = 0
	PlainText TextType = 1
	HTML      TextType = 2
)

func (t TextType) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case PlainText:
		return "text"
	case HTML:
		return "html"
	default:
		return "TextType(" + strconv.Itoa(int(t)) + ")"
	}
}

// A TextVal is a piece of content along with its text type, such as a feed
// title or an item description.
type TextVal struct {
	Text string
	Type TextType
}

// Errors reported by the typed accessors. They are wrapped with the section
// and key that produced them; use errors.Is to test for them.
var (
	// ErrTextVal is reported by GetString and friends when the value carries
	// a TextVal tag. Such values must be read with GetTextVal.
	ErrTextVal = errors.New("value has a TextVal type tag")

	ErrInvalidBool = errors.New("invalid boolean")
)

// source is anything that can produce raw property values.
type source interface {
	lookup(section, key string) string
}

// resolve returns the decoded value of a property. Missing and empty
// properties are replaced by def before decoding. If the decoded value ends
// in a TextVal tag, the tag is removed and tagged is true.
func resolve(src source, section, key, def string) (val string, typ TextType, tagged bool) {
	val = src.lookup(section, key)
	if val == "" {
		val = def
	}
	val = decodePercent(val)
	return splitTextVal(val)
}

// decodePercent replaces each "%XX" escape with the character whose code
// point is the hexadecimal value XX. Output is not rescanned.
func decodePercent(s string) string {
	i := strings.IndexByte(s, '%')
	if i < 0 {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	sb.WriteString(s[:i])
	for ; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			sb.WriteRune(rune(fromHex(s[i+1])<<4 | fromHex(s[i+2])))
			i += 2
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// splitTextVal removes a trailing "\n*<digit>" tag from s.
func splitTextVal(s string) (string, TextType, bool) {
	n := len(s)
	if n < 3 || s[n-3] != '\n' || s[n-2] != '*' || !isDigit(s[n-1]) {
		return s, Unknown, false
	}
	return s[:n-3], TextType(s[n-1] - '0'), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) ||
		'a' <= c && c <= 'f' ||
		'A' <= c && c <= 'F'
}

func fromHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 0xa
	case 'A' <= c && c <= 'F':
		return c - 'A' + 0xa
	default:
		panic("invalid hex digit")
	}
}

func getString(src source, section, key, def string) (string, error) {
	val, _, tagged := resolve(src, section, key, def)
	if tagged {
		return "", fmt.Errorf("get %s/%s: %w", section, key, ErrTextVal)
	}
	return val, nil
}

func getTextVal(src source, section, key string, def TextVal) TextVal {
	val, typ, tagged := resolve(src, section, key, def.Text)
	if !tagged {
		typ = def.Type
	}
	return TextVal{Text: val, Type: typ}
}

func getStringList(src source, section string, def []string) ([]string, error) {
	var vals []string
	for i := 1; i < math.MaxInt; i++ {
		val, err := getString(src, section, strconv.Itoa(i), "")
		if err != nil {
			return nil, err
		}
		if val == "" {
			break
		}
		vals = append(vals, val)
	}
	if len(vals) == 0 {
		return def, nil
	}
	return vals, nil
}

func getStringIndirect(src source, section, key, def string, required bool) (string, error) {
	val, err := getString(src, section, key, def)
	if err != nil {
		return "", err
	}
	if !isRegularFile(val) {
		if required {
			return "", fmt.Errorf("get %s/%s: can't find file %q: %w", section, key, val, fs.ErrNotExist)
		}
		return val, nil
	}
	data, err := os.ReadFile(val)
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", section, key, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("get %s/%s: %s: %w", section, key, val, errInvalidUTF8)
	}
	return string(data), nil
}

func getInt(src source, section, key string, def int) (int, error) {
	val, _, _ := resolve(src, section, key, strconv.Itoa(def))
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("get %s/%s: %w", section, key, err)
	}
	return n, nil
}

func getBool(src source, section, key string, def bool) (bool, error) {
	val, _, _ := resolve(src, section, key, strconv.FormatBool(def))
	b, err := ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", section, key, err)
	}
	return b, nil
}

// ParseBool interprets s the way Awasu configuration files spell booleans.
// Matching is case-insensitive: "1", "true", "yes", "on", "enable" and
// "enabled" are true; "0", "false", "no", "off", "disable" and "disabled" are
// false. Anything else is reported as ErrInvalidBool.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on", "enable", "enabled":
		return true, nil
	case "0", "false", "no", "off", "disable", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBool, s)
	}
}

// GetString returns the decoded value of a property, or def if the property
// is missing or empty. Values carrying a TextVal tag are reported as
// ErrTextVal.
func (f *File) GetString(section, key, def string) (string, error) {
	return getString(f, section, key, def)
}

// GetTextVal returns the decoded value of a property along with its TextVal
// type. If the property is missing or empty, def.Text is used in its place.
// If the value has no type tag, def.Type is reported. The zero TextVal is an
// empty string of Unknown type.
func (f *File) GetTextVal(section, key string, def TextVal) TextVal {
	return getTextVal(f, section, key, def)
}

// GetStringList returns the values of the properties named "1", "2", "3" and
// so on in the given section, stopping at the first one that is missing or
// empty. If there are none, def is returned.
func (f *File) GetStringList(section string, def []string) ([]string, error) {
	return getStringList(f, section, def)
}

// GetStringIndirect returns a string property like GetString. If the value
// names an existing regular file, the file's contents are returned instead.
// Otherwise, the value itself is returned, unless required is set, in which
// case an error wrapping fs.ErrNotExist is returned.
func (f *File) GetStringIndirect(section, key, def string, required bool) (string, error) {
	return getStringIndirect(f, section, key, def, required)
}

// GetInt returns an integer property, or def if the property is missing or
// empty.
func (f *File) GetInt(section, key string, def int) (int, error) {
	return getInt(f, section, key, def)
}

// GetBool returns a boolean property, or def if the property is missing or
// empty. See ParseBool for the accepted spellings.
func (f *File) GetBool(section, key string, def bool) (bool, error) {
	return getBool(f, section, key, def)
}
