package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/spf13/afero"
	"github.com/valyala/fastjson"
)

var (
	ErrNoDocuments          = errors.New("no .json files found")
	ErrMetadataNotFound     = errors.New("metadata file not found")
	ErrMetadataParse        = errors.New("invalid metadata JSON")
	ErrUnsupportedStructure = errors.New("unsupported metadata structure (must be a list or an object)")
)

// extractFolder normalizes every file on its own. Unreadable or malformed files are skipped with a warning.
func (p *Processor) extractFolder(files []string) []Item {
	items := make([]Item, 0, len(files))
	for _, file := range files {
		doc, err := readDocument(p.fs, file)
		if err != nil {
			p.log.Warnf("Could not read %s: %v", filepath.Base(file), err)
			continue
		}
		items = append(items, normalize(doc, normalizeOptions{
			idFrom:      p.userInput.IDFrom,
			imagePrefix: p.userInput.ImagePrefix,
			stem:        fileStem(file),
		}))
	}
	return items
}

func readDocument(fs afero.Fs, file string) (Document, error) {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return Document{}, err
	}
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return Document{}, err
	}
	doc, ok := newDocument(v)
	if !ok {
		return Document{}, fmt.Errorf("expected a JSON object, got %s", v.Type())
	}
	return doc, nil
}

// extractMetadata loads one aggregated document: a list of objects or an object keyed by token.
func (p *Processor) extractMetadata(file string) ([]Item, error) {
	if _, err := p.fs.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, file)
		}
		return nil, err
	}
	data, err := afero.ReadFile(p.fs, file)
	if err != nil {
		return nil, err
	}
	root, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", file, ErrMetadataParse, err)
	}

	opts := normalizeOptions{idFrom: inputs.IDJSON, imagePrefix: p.userInput.ImagePrefix}

	var items []Item
	switch root.Type() {
	case fastjson.TypeArray:
		for i, v := range root.GetArray() {
			doc, ok := newDocument(v)
			if !ok {
				p.log.Warnf("Skipping entry %d of %s: not an object", i+1, file)
				continue
			}
			opts.stem = strconv.Itoa(i + 1)
			items = append(items, normalize(doc, opts))
		}
	case fastjson.TypeObject:
		keys, values := orderedEntries(root.GetObject())
		for _, key := range keys {
			doc, ok := newDocument(values[key])
			if !ok {
				p.log.Warnf("Skipping key %q of %s: not an object", key, file)
				continue
			}
			opts.keyID = nil
			if id, ok := parseIntText(key); ok {
				opts.keyID = &id
			}
			opts.stem = key
			item := normalize(doc, opts)
			if item.Stem == "" {
				item.Stem = fallbackStem(item)
			}
			items = append(items, item)
		}
	default:
		return nil, fmt.Errorf("%w: %s is a JSON %s", ErrUnsupportedStructure, file, root.Type())
	}
	return items, nil
}

// orderedEntries returns the object's keys in document order; a repeated key keeps its first position and last value.
func orderedEntries(obj *fastjson.Object) ([]string, map[string]*fastjson.Value) {
	var keys []string
	values := make(map[string]*fastjson.Value, obj.Len())
	obj.Visit(func(k []byte, v *fastjson.Value) {
		key := string(k)
		if _, ok := values[key]; !ok {
			keys = append(keys, key)
		}
		values[key] = v
	})
	return keys, values
}

func fallbackStem(it Item) string {
	if it.TokenID != nil {
		return it.TokenIDText()
	}
	return "item"
}
