package core

import (
	"testing"

	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseFields(t *testing.T) {
	doc := mustDocument(t, `{
		"token_id": 12,
		"name": "Ape #12",
		"description": "An ape",
		"image": "ipfs://QmABC/12.png",
		"external_url": "https://example.com/12",
		"animation_url": "https://example.com/12.mp4",
		"background_color": "ffffff",
		"youtube_url": "https://youtu.be/x",
		"extra": {"ignored": true}
	}`)

	it := normalize(doc, normalizeOptions{idFrom: inputs.IDAuto, stem: "12"})

	require.NotNil(t, it.TokenID)
	assert.Equal(t, int64(12), *it.TokenID)
	assert.Equal(t, "Ape #12", it.Name)
	assert.Equal(t, "An ape", it.Description)
	assert.Equal(t, "ipfs://QmABC/12.png", it.Image)
	assert.Equal(t, "ipfs://QmABC/12.png", it.ImageRaw)
	assert.Equal(t, "https://example.com/12", it.ExternalURL)
	assert.Equal(t, "https://example.com/12.mp4", it.AnimationURL)
	assert.Equal(t, "ffffff", it.BackgroundColor)
	assert.Equal(t, "https://youtu.be/x", it.YoutubeURL)
	assert.Equal(t, "12", it.Stem)
	assert.Equal(t, 0, it.Traits.Len())
}

func TestNormalizeMissingFields(t *testing.T) {
	it := normalize(mustDocument(t, `{}`), normalizeOptions{idFrom: inputs.IDJSON, stem: "x"})

	assert.Nil(t, it.TokenID)
	assert.Empty(t, it.Name)
	assert.Empty(t, it.Image)
	assert.Empty(t, it.ImageRaw)
	assert.Equal(t, 0, it.Traits.Len())
}

func TestNormalizeAbsentImageWithPrefix(t *testing.T) {
	it := normalize(mustDocument(t, `{"token_id": 1}`), normalizeOptions{imagePrefix: "https://ipfs.io/ipfs"})

	assert.Equal(t, "https://ipfs.io/ipfs/", it.Image)
	assert.Empty(t, it.ImageRaw)
}

func TestNormalizeNonStringImage(t *testing.T) {
	it := normalize(mustDocument(t, `{"image": {"url": "x.png"}}`), normalizeOptions{imagePrefix: "https://ipfs.io/ipfs"})

	assert.Empty(t, it.Image)
	assert.Empty(t, it.ImageRaw)
}

func TestResolveTokenID(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		mode     inputs.IDMode
		stem     string
		keyID    *int64
		expected *int64
	}{
		{name: "token_id beats edition", doc: `{"token_id": "7", "edition": 3}`, mode: inputs.IDJSON, expected: id(7)},
		{name: "token_id beats edition in auto", doc: `{"token_id": "7", "edition": 3}`, mode: inputs.IDAuto, stem: "99", expected: id(7)},
		{name: "edition", doc: `{"edition": 3}`, mode: inputs.IDJSON, expected: id(3)},
		{name: "tokenId", doc: `{"tokenId": "42"}`, mode: inputs.IDJSON, expected: id(42)},
		{name: "id", doc: `{"id": 5}`, mode: inputs.IDJSON, expected: id(5)},
		{name: "unparseable falls through", doc: `{"token_id": "abc", "id": 9}`, mode: inputs.IDJSON, expected: id(9)},
		{name: "float is not an id", doc: `{"token_id": 3.5}`, mode: inputs.IDJSON, expected: nil},
		{name: "bool is not an id", doc: `{"token_id": true}`, mode: inputs.IDJSON, expected: nil},
		{name: "padded string", doc: `{"token_id": " 8 "}`, mode: inputs.IDJSON, expected: id(8)},
		{name: "json mode ignores filename", doc: `{}`, mode: inputs.IDJSON, stem: "token_15", expected: nil},
		{name: "filename mode ignores json", doc: `{"token_id": 1}`, mode: inputs.IDFilename, stem: "token_15_v2", expected: id(15)},
		{name: "filename without digits", doc: `{}`, mode: inputs.IDFilename, stem: "alpha", expected: nil},
		{name: "auto falls back to filename", doc: `{"name": "x"}`, mode: inputs.IDAuto, stem: "0042", expected: id(42)},
		{name: "dict key used without token_id", doc: `{"edition": 3}`, mode: inputs.IDJSON, keyID: id(11), expected: id(11)},
		{name: "dict key ignored with token_id", doc: `{"token_id": "x", "edition": 3}`, mode: inputs.IDJSON, keyID: id(11), expected: id(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveTokenID(mustDocument(t, tt.doc), normalizeOptions{idFrom: tt.mode, stem: tt.stem, keyID: tt.keyID})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name     string
		image    string
		prefix   string
		expected string
	}{
		{name: "ipfs scheme", image: "ipfs://QmABC/1.png", prefix: "https://ipfs.io/ipfs", expected: "https://ipfs.io/ipfs/QmABC/1.png"},
		{name: "redundant ipfs segment", image: "ipfs://ipfs/QmABC/1.png", prefix: "https://ipfs.io/ipfs", expected: "https://ipfs.io/ipfs/QmABC/1.png"},
		{name: "prefix trailing slash", image: "ipfs://QmABC/1.png", prefix: "https://ipfs.io/ipfs/", expected: "https://ipfs.io/ipfs/QmABC/1.png"},
		{name: "relative path", image: "/images/1.png", prefix: "https://cdn.example", expected: "https://cdn.example/images/1.png"},
		{name: "http passes through", image: "https://example.com/1.png", prefix: "https://ipfs.io/ipfs", expected: "https://example.com/1.png"},
		{name: "no prefix", image: "ipfs://QmABC/1.png", prefix: "", expected: "ipfs://QmABC/1.png"},
		{name: "empty image gets the bare prefix", image: "", prefix: "https://ipfs.io/ipfs", expected: "https://ipfs.io/ipfs/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeImage(tt.image, tt.prefix))
		})
	}
}

func TestExtractTraits(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		names  []string
		values map[string]string
	}{
		{name: "no attributes", doc: `{}`, names: []string{}},
		{name: "empty attributes", doc: `{"attributes": []}`, names: []string{}},
		{name: "attributes not a list", doc: `{"attributes": {"trait_type": "A"}}`, names: []string{}},
		{
			name:   "trait_type trait and type",
			doc:    `{"attributes": [{"trait_type": "A", "value": "1"}, {"trait": "B", "value": 2}, {"type": "C", "value": true}]}`,
			names:  []string{"A", "B", "C"},
			values: map[string]string{"A": "1", "B": "2", "C": "true"},
		},
		{
			name:   "non-object entries skipped",
			doc:    `{"attributes": ["Blue", 3, null, {"trait_type": "Eyes", "value": "Red"}]}`,
			names:  []string{"Eyes"},
			values: map[string]string{"Eyes": "Red"},
		},
		{
			name:  "nameless entry dropped",
			doc:   `{"attributes": [{"value": "orphan"}, {"trait_type": "", "value": "x"}]}`,
			names: []string{},
		},
		{
			name:   "empty trait_type falls through to trait",
			doc:    `{"attributes": [{"trait_type": "", "trait": "Hat", "value": "Cap"}]}`,
			names:  []string{"Hat"},
			values: map[string]string{"Hat": "Cap"},
		},
		{
			name:   "missing value is empty",
			doc:    `{"attributes": [{"trait_type": "Rare"}]}`,
			names:  []string{"Rare"},
			values: map[string]string{"Rare": ""},
		},
		{
			name:   "first duplicate wins",
			doc:    `{"attributes": [{"trait_type": "A", "value": "first"}, {"trait_type": "A", "value": "second"}]}`,
			names:  []string{"A"},
			values: map[string]string{"A": "first"},
		},
		{
			name:   "case sensitive keys",
			doc:    `{"attributes": [{"Trait_Type": "A", "value": "1"}, {"trait_type": "a", "value": "2"}]}`,
			names:  []string{"a"},
			values: map[string]string{"a": "2"},
		},
		{
			name:   "numeric trait name",
			doc:    `{"attributes": [{"trait_type": 7, "value": 1.50}]}`,
			names:  []string{"7"},
			values: map[string]string{"7": "1.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traits := extractTraits(mustDocument(t, tt.doc))
			names := traits.Names()
			if names == nil {
				names = []string{}
			}
			assert.Equal(t, tt.names, names)
			for name, want := range tt.values {
				got, ok := traits.Get(name)
				assert.True(t, ok, name)
				assert.Equal(t, want, got, name)
			}
		})
	}
}
