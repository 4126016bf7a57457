// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package feed

import (
	"fmt"

	"github.com/yourbase/awasutools/ini"
)

// Config is the subset of ini.File and ini.FileSet that feeds are
// configured from.
type Config interface {
	GetString(section, key, def string) (string, error)
	GetTextVal(section, key string, def ini.TextVal) ini.TextVal
	GetStringIndirect(section, key, def string, required bool) (string, error)
}

var (
	_ Config = (*ini.File)(nil)
	_ Config = ini.FileSet(nil)
)

// FromConfig builds a Feed from the properties of the named section:
//
//	Title         channel title (TextVal)
//	Description   channel description (TextVal)
//	Url           home page
//	ImageUrl      logo URL or file
//	FeedTemplate  feed template text, or a file containing it
//	ItemTemplate  item template text, or a file containing it
//
// The text types of the title and description are available to templates
// as {title_type} and {description_type}. ItemTemplate is returned separately
// so that callers can apply it to the items they create.
func FromConfig(cfg Config, section string) (f *Feed, itemTemplate string, err error) {
	title := cfg.GetTextVal(section, "Title", ini.TextVal{Type: ini.PlainText})
	desc := cfg.GetTextVal(section, "Description", ini.TextVal{})
	f = &Feed{
		Title:       title.Text,
		Description: desc.Text,
		ExtraArgs: map[string]string{
			"title_type":       TextValType(title.Type),
			"description_type": TextValType(desc.Type),
		},
	}
	if f.HomeURL, err = cfg.GetString(section, "Url", ""); err != nil {
		return nil, "", fmt.Errorf("feed from config: %w", err)
	}
	if f.ImageURL, err = cfg.GetString(section, "ImageUrl", ""); err != nil {
		return nil, "", fmt.Errorf("feed from config: %w", err)
	}
	if f.Template, err = cfg.GetStringIndirect(section, "FeedTemplate", "", false); err != nil {
		return nil, "", fmt.Errorf("feed from config: %w", err)
	}
	if itemTemplate, err = cfg.GetStringIndirect(section, "ItemTemplate", "", false); err != nil {
		return nil, "", fmt.Errorf("feed from config: %w", err)
	}
	return f, itemTemplate, nil
}
