package core

import (
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// Document is one raw metadata object. Lookups never fail: an absent key is a nil value.
type Document struct {
	obj *fastjson.Object
}

func newDocument(v *fastjson.Value) (Document, bool) {
	obj, err := v.Object()
	if err != nil {
		return Document{}, false
	}
	return Document{obj: obj}, true
}

func (d Document) get(key string) *fastjson.Value {
	if d.obj == nil {
		return nil
	}
	return d.obj.Get(key)
}

func (d Document) has(key string) bool {
	return d.get(key) != nil
}

// text returns the cell text of key, "" when absent.
func (d Document) text(key string) string {
	return cellText(d.get(key))
}

// cellText renders a JSON value the way it lands in a CSV cell.
// Numbers keep their source text; arrays and objects become compact JSON.
func cellText(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeNull:
		return ""
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	}
	return v.String()
}

// truthy mirrors loose "is set" checks: null, false, 0, "" and empty containers are not.
func truthy(v *fastjson.Value) bool {
	if v == nil {
		return false
	}
	switch v.Type() {
	case fastjson.TypeNull, fastjson.TypeFalse:
		return false
	case fastjson.TypeString:
		return len(v.GetStringBytes()) > 0
	case fastjson.TypeNumber:
		return v.GetFloat64() != 0
	case fastjson.TypeArray:
		return len(v.GetArray()) > 0
	case fastjson.TypeObject:
		return v.GetObject().Len() > 0
	}
	return true
}

// parseTokenID accepts integers and strings holding integers; floats, booleans and null are rejected.
func parseTokenID(v *fastjson.Value) (int64, bool) {
	if v == nil {
		return 0, false
	}
	var s string
	switch v.Type() {
	case fastjson.TypeNumber:
		s = v.String()
	case fastjson.TypeString:
		s = string(v.GetStringBytes())
	default:
		return 0, false
	}
	return parseIntText(s)
}

func parseIntText(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
