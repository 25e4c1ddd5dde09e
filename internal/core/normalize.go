package core

import (
	"regexp"
	"strings"

	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/valyala/fastjson"
)

// checked in order when resolving a token id from the document
var tokenIDKeys = []string{"token_id", "edition", "tokenId", "id"}

// checked in order when resolving a trait name
var traitNameKeys = []string{"trait_type", "trait", "type"}

var digitRun = regexp.MustCompile(`[0-9]+`)

type normalizeOptions struct {
	idFrom      inputs.IDMode
	imagePrefix string
	stem        string
	// keyID is the integer dict key of an aggregated source, used when the object has no token_id
	keyID *int64
}

// normalize maps one raw document onto an Item. It never fails; absent fields fall back to defaults.
func normalize(doc Document, opts normalizeOptions) Item {
	imageRaw, image := "", ""
	switch v := doc.get("image"); {
	case v == nil:
		image = normalizeImage("", opts.imagePrefix)
	case v.Type() == fastjson.TypeString:
		imageRaw = string(v.GetStringBytes())
		image = normalizeImage(imageRaw, opts.imagePrefix)
	}

	return Item{
		TokenID:         resolveTokenID(doc, opts),
		Name:            doc.text("name"),
		Description:     doc.text("description"),
		Image:           image,
		ImageRaw:        imageRaw,
		ExternalURL:     doc.text("external_url"),
		AnimationURL:    doc.text("animation_url"),
		BackgroundColor: doc.text("background_color"),
		YoutubeURL:      doc.text("youtube_url"),
		Traits:          extractTraits(doc),
		Stem:            opts.stem,
	}
}

func resolveTokenID(doc Document, opts normalizeOptions) *int64 {
	switch opts.idFrom {
	case inputs.IDFilename:
		return tokenIDFromFilename(opts.stem)
	case inputs.IDJSON:
		return tokenIDFromJSON(doc, opts.keyID)
	}
	if id := tokenIDFromJSON(doc, opts.keyID); id != nil {
		return id
	}
	return tokenIDFromFilename(opts.stem)
}

func tokenIDFromJSON(doc Document, keyID *int64) *int64 {
	if keyID != nil && !doc.has("token_id") {
		id := *keyID
		return &id
	}
	for _, key := range tokenIDKeys {
		if id, ok := parseTokenID(doc.get(key)); ok {
			return &id
		}
	}
	return nil
}

// tokenIDFromFilename takes the first run of digits in the stem
func tokenIDFromFilename(stem string) *int64 {
	digits := digitRun.FindString(stem)
	if digits == "" {
		return nil
	}
	id, ok := parseIntText(digits)
	if !ok {
		return nil
	}
	return &id
}

// normalizeImage points ipfs:// and relative image references, including an absent one, at the gateway prefix.
func normalizeImage(img, prefix string) string {
	if prefix == "" {
		return img
	}
	if !strings.HasPrefix(img, "ipfs://") && (strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://")) {
		return img
	}
	p := strings.ReplaceAll(img, "ipfs://", "")
	p = strings.TrimPrefix(p, "ipfs/")
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(p, "/")
}

func extractTraits(doc Document) Traits {
	var traits Traits
	attrs := doc.get("attributes")
	if attrs == nil || attrs.Type() != fastjson.TypeArray {
		return traits
	}
	for _, a := range attrs.GetArray() {
		entry, ok := newDocument(a)
		if !ok {
			continue
		}
		name := traitName(entry)
		if name == "" {
			continue
		}
		traits.add(name, entry.text("value"))
	}
	return traits
}

func traitName(entry Document) string {
	for _, key := range traitNameKeys {
		if v := entry.get(key); truthy(v) {
			return cellText(v)
		}
	}
	return ""
}
