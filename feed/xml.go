// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package feed

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/yourbase/awasutools/ini"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeXML makes s safe to insert into XML text or a double-quoted
// attribute value.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// invalidXMLBanner is put in front of PrettyXML input that does not parse.
const invalidXMLBanner = "*** WARNING: Invalid XML ***\n"

// PrettyXML re-indents an XML document for logging, two spaces per level.
// Whitespace between elements and the XML declaration are dropped. Input
// that is not well-formed is returned unchanged behind a warning line.
func PrettyXML(s string) string {
	sb := new(strings.Builder)
	if err := indentXML(sb, s); err != nil {
		return invalidXMLBanner + s
	}
	return sb.String()
}

func indentXML(w io.Writer, s string) error {
	dec := xml.NewDecoder(strings.NewReader(s))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	depth, roots := 0, 0
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(t)) == "" {
				continue
			}
			if depth == 0 {
				return errTextOutsideRoot
			}
			tok = t.Copy()
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			tok = t.Copy()
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
			t = t.Copy()
			t.Name = flattenName(t.Name)
			for i := range t.Attr {
				t.Attr[i].Name = flattenName(t.Attr[i].Name)
			}
			tok = t
		case xml.EndElement:
			depth--
			t.Name = flattenName(t.Name)
			tok = t
		default:
			tok = xml.CopyToken(tok)
		}
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}
	if roots != 1 {
		return errRootCount
	}
	return enc.Close()
}

var (
	errTextOutsideRoot = errors.New("text outside root element")
	errRootCount       = errors.New("document must have exactly one root element")
)

// flattenName folds a namespace prefix into the local name so that the
// encoder writes prefixed names verbatim instead of inventing namespaces.
func flattenName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	return xml.Name{Local: name.Space + ":" + name.Local}
}

// AtomTextType converts a MIME type to an Atom text construct type.
// Unsupported MIME types yield "???".
func AtomTextType(mimeType string) string {
	switch mimeType {
	case "text/plain":
		return "text"
	case "text/html":
		return "html"
	default:
		return "???"
	}
}

// TextValType returns the Atom text construct type for Awasu content of
// type t. Content of unknown type is treated as HTML, which renders plain
// text correctly as long as it has been escaped.
func TextValType(t ini.TextType) string {
	if t == ini.PlainText {
		return "text"
	}
	return "html"
}
