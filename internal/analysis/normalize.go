// Package analysis mines free-text call evaluation notes for recurring failure keywords,
// categories, phrases and trends. Every function is pure and degrades to an empty result on
// malformed input.
package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// RawKind discriminates the variants of RawInput
type RawKind int

const (
	KindNull RawKind = iota
	KindString
	KindScalar // number or boolean leaf, kept as its literal text
	KindList
	KindObject
)

// RawInput is an untyped failure payload attached to an evaluation record
type RawInput struct {
	kind   RawKind
	text   string
	items  []RawInput
	fields []Field
}

// Field is one key/value pair of an object, in discovery order
type Field struct {
	Key   string
	Value RawInput
}

func Null() RawInput { return RawInput{kind: KindNull} }
func Text(s string) RawInput { return RawInput{kind: KindString, text: s} }
func Scalar(literal string) RawInput { return RawInput{kind: KindScalar, text: literal} }
func List(items ...RawInput) RawInput { return RawInput{kind: KindList, items: items} }
func Object(fields ...Field) RawInput { return RawInput{kind: KindObject, fields: fields} }
func Strings(values ...string) RawInput { return List(textItems(values)...) }
func (r RawInput) Kind() RawKind { return r.kind }
func (r RawInput) IsNull() bool { return r.kind == KindNull }

func textItems(values []string) []RawInput {
	items := make([]RawInput, len(values))
	for i, v := range values {
		items[i] = Text(v)
	}
	return items
}

// FromJSON decodes a JSON document (typically a JSONB column) preserving key order.
// Bytes that are not valid JSON are kept verbatim as a string variant.
func FromJSON(data []byte) RawInput {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Null()
	}
	if !gjson.ValidBytes(data) {
		return Text(string(data))
	}
	return fromResult(gjson.ParseBytes(data))
}

func fromResult(r gjson.Result) RawInput {
	switch {
	case r.IsArray():
		var items []RawInput
		r.ForEach(func(_, value gjson.Result) bool {
			items = append(items, fromResult(value))
			return true
		})
		return List(items...)
	case r.IsObject():
		var fields []Field
		r.ForEach(func(key, value gjson.Result) bool {
			fields = append(fields, Field{Key: key.String(), Value: fromResult(value)})
			return true
		})
		return Object(fields...)
	}

	switch r.Type {
	case gjson.String:
		return Text(r.Str)
	case gjson.Number, gjson.True, gjson.False:
		return Scalar(r.Raw)
	default:
		return Null()
	}
}

// FromAny converts a decoded Go value into a RawInput.
// Map keys are visited in sorted order since Go maps carry no order.
func FromAny(v any) RawInput {
	switch val := v.(type) {
	case nil:
		return Null()
	case RawInput:
		return val
	case string:
		return Text(val)
	case *string:
		if val == nil {
			return Null()
		}
		return Text(*val)
	case []string:
		return Strings(val...)
	case []any:
		items := make([]RawInput, len(val))
		for i, item := range val {
			items[i] = FromAny(item)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: FromAny(val[k])}
		}
		return Object(fields...)
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: Text(val[k])}
		}
		return Object(fields...)
	case json.RawMessage:
		return FromJSON(val)
	case []byte:
		return FromJSON(val)
	case bool:
		return Scalar(fmt.Sprint(val))
	case int, int32, int64, float32, float64, json.Number:
		return Scalar(fmt.Sprint(val))
	default:
		return Text(fmt.Sprint(val))
	}
}

// UnmarshalJSON lets RawInput be decoded directly from request bodies
func (r *RawInput) UnmarshalJSON(data []byte) error {
	*r = FromJSON(data)
	return nil
}

var (
	failureIndicatorPattern = regexp.MustCompile(`(?i)\b(?:critical failure|rule|error):`)
	numberedListPattern     = regexp.MustCompile(`(?:^|\s)\d{1,3}[.)](?:\s+|$)`)
	bulletPattern           = regexp.MustCompile(`\s*•\s*|(?:^|\s)[-*]\s+`)
)

// ParseJSONB extracts the ordered, trimmed, non-empty string fragments of a raw failure payload
func ParseJSONB(in RawInput) []string {
	out := []string{}
	switch in.kind {
	case KindString:
		return parseString(in.text)
	case KindList:
		return appendListItems(out, in.items)
	case KindObject:
		return appendObjectStrings(out, in.fields)
	case KindScalar:
		return appendTrimmed(out, in.text)
	default:
		return out
	}
}

func parseString(s string) []string {
	out := []string{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}

	if gjson.Valid(s) {
		parsed := fromResult(gjson.Parse(s))
		switch parsed.kind {
		case KindList:
			return appendListItems(out, parsed.items)
		case KindObject:
			return appendObjectStrings(out, parsed.fields)
		case KindString:
			return appendTrimmed(out, parsed.text)
		case KindNull:
			return out
		default:
			return append(out, s)
		}
	}

	// Malformed JSON or plain prose: try list-like splits before giving up
	splitters := []struct {
		pattern    *regexp.Regexp
		keepMarker bool
	}{
		{failureIndicatorPattern, true},
		{numberedListPattern, false},
		{bulletPattern, false},
	}
	for _, sp := range splitters {
		if segments := splitOn(s, sp.pattern, sp.keepMarker); len(segments) > 1 {
			return segments
		}
	}

	return append(out, s)
}

// splitOn cuts s at every match of re. When keepMarker is set the matched marker starts
// the following segment, and a segment holding only a marker is merged into the next one.
func splitOn(s string, re *regexp.Regexp, keepMarker bool) []string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}

	var raw []string
	prev := 0
	for _, loc := range locs {
		raw = append(raw, s[prev:loc[0]])
		if keepMarker {
			prev = loc[0]
		} else {
			prev = loc[1]
		}
	}
	raw = append(raw, s[prev:])

	segments := make([]string, 0, len(raw))
	pending := ""
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if keepMarker && isBareMarker(seg, re) {
			pending = strings.TrimSpace(pending + " " + seg)
			continue
		}
		if pending != "" {
			seg = pending + " " + seg
			pending = ""
		}
		segments = append(segments, seg)
	}
	if pending != "" {
		segments = append(segments, pending)
	}
	return segments
}

func isBareMarker(seg string, re *regexp.Regexp) bool {
	loc := re.FindStringIndex(seg)
	return loc != nil && loc[0] == 0 && loc[1] == len(seg)
}

func appendListItems(out []string, items []RawInput) []string {
	for _, item := range items {
		switch item.kind {
		case KindString, KindScalar:
			out = appendTrimmed(out, item.text)
		case KindList:
			out = appendListItems(out, item.items)
		case KindObject:
			out = appendObjectStrings(out, item.fields)
		}
	}
	return out
}

func appendObjectStrings(out []string, fields []Field) []string {
	for _, f := range fields {
		out = appendStringLeaves(out, f.Value)
	}
	return out
}

// appendStringLeaves collects string leaves only; numbers and booleans inside objects are skipped
func appendStringLeaves(out []string, v RawInput) []string {
	switch v.kind {
	case KindString:
		return appendTrimmed(out, v.text)
	case KindList:
		for _, item := range v.items {
			out = appendStringLeaves(out, item)
		}
	case KindObject:
		out = appendObjectStrings(out, v.fields)
	}
	return out
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}
