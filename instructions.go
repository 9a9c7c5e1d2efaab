package naval

import "reflect"

// Chain declarations mix filters with a small closed set of sentinel markers.
// Each marker kind below is its own type, so chain parsing classifies
// instructions by tag rather than by identity of shared singletons.

// OptionalMarker flags a field chain as optional: a missing field is skipped
// silently instead of reported. Use the package-level Optional value.
type OptionalMarker struct{}

// Optional is the marker placed right after a field name.
var Optional OptionalMarker

// DiscardSet lists sentinel values treated as "field absent" for a chain.
type DiscardSet struct{ values []any }

// Discard builds the marker: if the field holds one of the given values, the
// chain proceeds as if the field were missing.
func Discard(values ...any) DiscardSet { return DiscardSet{values: values} }

func (d DiscardSet) contains(v any) bool {
	for _, w := range d.values {
		if reflect.DeepEqual(v, w) {
			return true
		}
	}
	return false
}

// DefaultPolicy supplies a value for an absent field: either a constant or a
// function of the whole working document. Function defaults are skipped once
// any error has been recorded in the run, to avoid computing from known-bad
// data; constant defaults always apply.
type DefaultPolicy struct {
	value any
	fn    func(Document) any
}

// Default builds the marker. A func(Document) any argument becomes a computed
// default; anything else is used as a constant.
func Default(v any) DefaultPolicy {
	if fn, ok := v.(func(Document) any); ok {
		return DefaultPolicy{fn: fn}
	}
	return DefaultPolicy{value: v}
}

func (d DefaultPolicy) computed() bool { return d.fn != nil }

func (d DefaultPolicy) get(doc Document) any {
	if d.fn != nil {
		return d.fn(doc)
	}
	return d.value
}

// StorageInstruction is the optional terminal effect of a chain, applied to
// the output document only, and only when the chain's filters all passed.
type StorageInstruction interface {
	apply(doc Document, field string, value any)
}

type saveInstruction struct{}
type deleteInstruction struct{}

type saveAsInstruction struct{ target string }
type moveToInstruction struct{ target string }

// Save writes the chain's final value back under the chain's field. At the
// end of a whole-document chain it replaces the entire output document.
var Save StorageInstruction = saveInstruction{}

// Delete removes the chain's field from the output document.
var Delete StorageInstruction = deleteInstruction{}

// SaveAs writes the chain's final value under another key, keeping the
// original field.
func SaveAs(name string) StorageInstruction { return saveAsInstruction{target: name} }

// MoveTo writes the chain's final value under another key and removes the
// original field.
func MoveTo(name string) StorageInstruction { return moveToInstruction{target: name} }

func (saveInstruction) apply(doc Document, field string, value any) { doc[field] = value }

func (deleteInstruction) apply(doc Document, field string, _ any) { delete(doc, field) }

func (s saveAsInstruction) apply(doc Document, _ string, value any) { doc[s.target] = value }

func (m moveToInstruction) apply(doc Document, field string, value any) {
	doc[m.target] = value
	delete(doc, field)
}

// storageTarget reports the key a SaveAs/MoveTo instruction writes to; those
// are the instructions that owe downstream consumers a "couldn't compute"
// entry when their chain fails.
func storageTarget(instr StorageInstruction) (string, bool) {
	switch s := instr.(type) {
	case saveAsInstruction:
		return s.target, true
	case moveToInstruction:
		return s.target, true
	}
	return "", false
}

func instructionName(instr StorageInstruction) string {
	switch instr.(type) {
	case saveInstruction:
		return "Save"
	case deleteInstruction:
		return "Delete"
	case saveAsInstruction:
		return "SaveAs"
	case moveToInstruction:
		return "MoveTo"
	}
	return "storage instruction"
}
