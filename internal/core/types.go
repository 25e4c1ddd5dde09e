package core

import (
	"slices"
	"strconv"
)

// Item is one token's metadata flattened onto a fixed shape.
type Item struct {
	TokenID         *int64
	Name            string
	Description     string
	Image           string // after gateway prefix rewriting
	ImageRaw        string // as found in the document
	ExternalURL     string
	AnimationURL    string
	BackgroundColor string
	YoutubeURL      string
	Traits          Traits
	Stem            string
}

// TokenIDText is the decimal token id, or "" when none was resolved.
func (it Item) TokenIDText() string {
	if it.TokenID == nil {
		return ""
	}
	return strconv.FormatInt(*it.TokenID, 10)
}

// Traits keeps trait values in the order their names were first seen.
type Traits struct {
	names  []string
	values map[string]string
}

// add records a trait unless the name is already present.
func (t *Traits) add(name, value string) {
	if _, ok := t.values[name]; ok {
		return
	}
	if t.values == nil {
		t.values = make(map[string]string)
	}
	t.names = append(t.names, name)
	t.values[name] = value
}

func (t Traits) Names() []string {
	return slices.Clone(t.names)
}

func (t Traits) Get(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

func (t Traits) Len() int {
	return len(t.names)
}

// WriteResult summarises one CSV written to disk.
type WriteResult struct {
	Filename string
	Rows     int
}
