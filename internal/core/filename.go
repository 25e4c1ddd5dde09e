package core

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jakebark/nftcsv/internal/config"
)

var (
	ErrUnknownTemplateVar = errors.New("unknown filename template variable")
	ErrTemplateSyntax     = errors.New("invalid filename template")
)

// variables available to --filename-template
var templateVars = map[string]func(it Item) string{
	"token_id":   Item.TokenIDText,
	"stem":       func(it Item) string { return it.Stem },
	"image":      func(it Item) string { return it.ImageRaw },
	"image_name": func(it Item) string { return imageName(it.ImageRaw) },
	"image_ext":  func(it Item) string { return imageExt(imageName(it.ImageRaw)) },
}

// Template is a parsed brace template such as "{token_id}.png" or "{token_id:0>4}{image_ext}".
type Template struct {
	source string
	parts  []templatePart
}

type templatePart struct {
	literal string
	field   string
	fill    rune
	align   byte
	width   int
}

// ParseTemplate validates the template up front so a bad one fails before anything is written.
func ParseTemplate(source string) (*Template, error) {
	t := &Template{source: source}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(source); {
		switch c := source[i]; c {
		case '{':
			if i+1 < len(source) && source[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(source[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w %q: unmatched '{'", ErrTemplateSyntax, source)
			}
			part, err := parseField(source[i+1 : i+1+end])
			if err != nil {
				return nil, fmt.Errorf("%w (template %q)", err, source)
			}
			flush()
			t.parts = append(t.parts, part)
			i += end + 2
		case '}':
			if i+1 < len(source) && source[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w %q: single '}'", ErrTemplateSyntax, source)
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return t, nil
}

func parseField(field string) (templatePart, error) {
	name, spec, hasSpec := strings.Cut(field, ":")
	if strings.ContainsAny(name, "{!") {
		return templatePart{}, fmt.Errorf("%w: field %q", ErrTemplateSyntax, field)
	}
	if _, ok := templateVars[name]; !ok {
		return templatePart{}, fmt.Errorf("%w: %q", ErrUnknownTemplateVar, name)
	}
	part := templatePart{field: name, fill: ' ', align: '<'}
	if !hasSpec || spec == "" {
		return part, nil
	}

	rest := spec
	first, size := utf8.DecodeRuneInString(rest)
	if len(rest) > size && isAlign(rest[size]) {
		part.fill, part.align = first, rest[size]
		rest = rest[size+1:]
	} else if isAlign(rest[0]) {
		part.align = rest[0]
		rest = rest[1:]
	}
	if rest != "" {
		width, err := strconv.Atoi(rest)
		if err != nil || width < 0 {
			return templatePart{}, fmt.Errorf("%w: format spec %q", ErrTemplateSyntax, spec)
		}
		part.width = width
	}
	return part, nil
}

func isAlign(b byte) bool {
	return b == '<' || b == '>' || b == '^'
}

func (t *Template) String() string {
	return t.source
}

// Render substitutes the item's variables into the template.
func (t *Template) Render(it Item) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.field == "" {
			b.WriteString(p.literal)
			continue
		}
		b.WriteString(p.pad(templateVars[p.field](it)))
	}
	return b.String()
}

func (p templatePart) pad(value string) string {
	n := p.width - utf8.RuneCountInString(value)
	if n <= 0 {
		return value
	}
	fill := string(p.fill)
	switch p.align {
	case '>':
		return strings.Repeat(fill, n) + value
	case '^':
		left := n / 2
		return strings.Repeat(fill, left) + value + strings.Repeat(fill, n-left)
	}
	return value + strings.Repeat(fill, n)
}

// imageName is the final path segment of an image URL or path.
func imageName(raw string) string {
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Path != "" {
		return lastSegment(u.Path)
	}
	return lastSegment(raw)
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// imageExt is the extension of name including the dot, or the default image extension.
func imageExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return config.DefaultImageExt
	}
	return name[i:]
}
