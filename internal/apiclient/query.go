package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// Param is one query-string pair. Nil values, nil pointers and values that
// format to "" are dropped by BuildQuery.
type Param struct {
	Key   string
	Value any
}

func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// BuildQuery encodes params in order as "?k=v&k2=v2", or "" when nothing
// survives filtering.
func BuildQuery(params ...Param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		v, ok := queryValue(p.Value)
		if !ok {
			continue
		}
		pairs = append(pairs, encodeComponent(p.Key)+"="+encodeComponent(v))
	}
	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// Values is a loosely typed filter. Keys are encoded in sorted order.
type Values map[string]any

func (v Values) Params() []Param {
	if len(v) == 0 {
		return nil
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Param, 0, len(keys))
	for _, k := range keys {
		out = append(out, P(k, v[k]))
	}
	return out
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	s := fmt.Sprint(rv.Interface())
	if s == "" {
		return "", false
	}
	return s, true
}

// encodeComponent percent-encodes s for use as a query key or value.
// Spaces become %20 rather than "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
