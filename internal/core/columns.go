package core

import "slices"

// BaseColumn is one of the fixed, non-trait CSV columns.
type BaseColumn string

const (
	ColTokenID         BaseColumn = "token_id"
	ColName            BaseColumn = "name"
	ColDescription     BaseColumn = "description"
	ColImage           BaseColumn = "image"
	ColExternalURL     BaseColumn = "external_url"
	ColAnimationURL    BaseColumn = "animation_url"
	ColBackgroundColor BaseColumn = "background_color"
	ColYoutubeURL      BaseColumn = "youtube_url"
)

// DefaultBaseColumns is also the set of allowed base columns.
var DefaultBaseColumns = []BaseColumn{
	ColTokenID,
	ColName,
	ColDescription,
	ColImage,
	ColExternalURL,
	ColAnimationURL,
	ColBackgroundColor,
	ColYoutubeURL,
}

func (c BaseColumn) valid() bool {
	return slices.Contains(DefaultBaseColumns, c)
}

func (c BaseColumn) value(it Item) string {
	switch c {
	case ColTokenID:
		return it.TokenIDText()
	case ColName:
		return it.Name
	case ColDescription:
		return it.Description
	case ColImage:
		return it.Image
	case ColExternalURL:
		return it.ExternalURL
	case ColAnimationURL:
		return it.AnimationURL
	case ColBackgroundColor:
		return it.BackgroundColor
	case ColYoutubeURL:
		return it.YoutubeURL
	}
	return ""
}

// SelectBaseColumns picks the base columns to emit. Unknown field names are dropped; the given order is kept.
func SelectBaseColumns(onlyTraits bool, fields []string) []BaseColumn {
	if onlyTraits {
		return nil
	}
	if len(fields) == 0 {
		return slices.Clone(DefaultBaseColumns)
	}
	cols := []BaseColumn{}
	for _, f := range fields {
		if c := BaseColumn(f); c.valid() {
			cols = append(cols, c)
		}
	}
	return cols
}

// Layout is the unified header of one batch: base columns, optional filename column, then traits.
type Layout struct {
	Base           []BaseColumn
	FilenameColumn string
	Filename       *Template
	Traits         []string
}

func (l Layout) Header() []string {
	header := make([]string, 0, l.width())
	for _, c := range l.Base {
		header = append(header, string(c))
	}
	if l.FilenameColumn != "" {
		header = append(header, l.FilenameColumn)
	}
	return append(header, l.Traits...)
}

// Row projects an item onto the header; missing values are empty cells.
func (l Layout) Row(it Item) []string {
	row := make([]string, 0, l.width())
	for _, c := range l.Base {
		row = append(row, c.value(it))
	}
	if l.FilenameColumn != "" {
		row = append(row, l.Filename.Render(it))
	}
	for _, name := range l.Traits {
		v, _ := it.Traits.Get(name)
		row = append(row, v)
	}
	return row
}

func (l Layout) Rows(items []Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, l.Row(it))
	}
	return rows
}

func (l Layout) width() int {
	n := len(l.Base) + len(l.Traits)
	if l.FilenameColumn != "" {
		n++
	}
	return n
}
