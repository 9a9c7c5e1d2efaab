package naval

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tidemark/naval/i18n"
)

// ErrorDetails is the structured payload carried by a ValidationError: either
// a leaf (a sequence of message segments rendered as one string) or a mapping
// from field name, or the reserved whole-document key "*", to a nested
// payload. The zero value is an empty leaf.
type ErrorDetails struct {
	segments []Message
	fields   map[string]ErrorDetails
	nested   bool
}

// LeafDetails builds a leaf payload from message segments.
func LeafDetails(segments ...Message) ErrorDetails {
	return ErrorDetails{segments: segments}
}

// NestedDetails builds a field-keyed payload.
func NestedDetails(fields map[string]ErrorDetails) ErrorDetails {
	return ErrorDetails{fields: fields, nested: true}
}

// IsLeaf reports whether the payload is a plain message rather than a
// field-keyed mapping.
func (d ErrorDetails) IsLeaf() bool { return !d.nested }

// Fields returns the field-keyed entries of a nested payload, nil for a leaf.
func (d ErrorDetails) Fields() map[string]ErrorDetails {
	if !d.nested {
		return nil
	}
	return d.fields
}

// Field returns the nested payload recorded under the given field name.
func (d ErrorDetails) Field(name string) (ErrorDetails, bool) {
	det, ok := d.fields[name]
	return det, ok
}

// prefix prepends a message segment, as Each does with its item number. A
// nested payload is first collapsed into its rendered leaf form.
func (d ErrorDetails) prefix(m Message) ErrorDetails {
	if d.nested {
		return ErrorDetails{segments: []Message{m, Msg(d.String())}}
	}
	segments := make([]Message, 0, len(d.segments)+1)
	segments = append(segments, m)
	segments = append(segments, d.segments...)
	return ErrorDetails{segments: segments}
}

// translate renders every message through tr, producing a payload of fixed
// strings. Translation happens exactly once, at the validate boundary.
func (d ErrorDetails) translate(tr i18n.Translator) ErrorDetails {
	if !d.nested {
		return ErrorDetails{segments: []Message{Msg(d.text(tr))}}
	}
	fields := make(map[string]ErrorDetails, len(d.fields))
	for name, det := range d.fields {
		fields[name] = det.translate(tr)
	}
	return NestedDetails(fields)
}

func (d ErrorDetails) text(tr i18n.Translator) string {
	var b strings.Builder
	for _, m := range d.segments {
		b.WriteString(m.Render(tr))
	}
	return b.String()
}

// Render materializes the payload: a string for a leaf, a map[string]any for
// a nested payload. A nil translator keeps the source-language text.
func (d ErrorDetails) Render(tr i18n.Translator) any {
	if !d.nested {
		return d.text(tr)
	}
	out := make(map[string]any, len(d.fields))
	for name, det := range d.fields {
		out[name] = det.Render(tr)
	}
	return out
}

// Equal compares two payloads by their rendered source-language content.
func (d ErrorDetails) Equal(other ErrorDetails) bool {
	if d.nested != other.nested {
		return false
	}
	if !d.nested {
		return d.text(nil) == other.text(nil)
	}
	if len(d.fields) != len(other.fields) {
		return false
	}
	for name, det := range d.fields {
		o, ok := other.fields[name]
		if !ok || !det.Equal(o) {
			return false
		}
	}
	return true
}

func (d ErrorDetails) String() string {
	if !d.nested {
		return d.text(nil)
	}
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", name, d.fields[name].String())
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes a leaf as a JSON string and a nested payload as a JSON
// object, matching the shape of Render.
func (d ErrorDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Render(nil))
}

// ValidationError is the failure signal of every Filter. Details is a leaf
// for a single filter failure and a field-keyed mapping for an aggregated
// Schema failure.
type ValidationError struct {
	Details ErrorDetails
}

func (e *ValidationError) Error() string { return e.Details.String() }

// AsValidationError unwraps a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// fail builds a leaf validation failure.
func fail(segments ...Message) error {
	return &ValidationError{Details: LeafDetails(segments...)}
}
