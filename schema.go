package naval

import (
	"fmt"
	"reflect"
)

// Document is the mapping type a Schema validates and transforms.
type Document = map[string]any

// WholeDocumentKey is the reserved error key under which failures of
// fieldless (whole-document) chains are reported. Keeping field names clear
// of it is the caller's responsibility.
const WholeDocumentKey = "*"

// UnexpectedKeys selects what a Schema does with input keys no chain
// declares.
type UnexpectedKeys int

const (
	// FailUnknown records an "unexpected key" error per unknown key and
	// removes it from the output. The default.
	FailUnknown UnexpectedKeys = iota + 1
	// KeepUnknown passes unknown keys through to the output untouched.
	KeepUnknown
	// DeleteUnknown silently removes unknown keys from the output.
	DeleteUnknown
)

const (
	msgFieldMissing    = "Field is missing."
	msgUnexpectedKey   = "Unexpected key {key}."
	msgCouldNotCompute = "Couldn't compute field."
)

// Schema holds an ordered list of chains and runs them all against a
// document, aggregating every field's failure into one ValidationError
// instead of stopping at the first. A Schema is itself a Filter, so schemas
// nest as filters for recursive document validation.
//
// Schemas are immutable after construction and safe for concurrent use.
type Schema struct {
	chains   []*Chain
	policy   UnexpectedKeys
	expected map[string]struct{}
	cfg      *Config
}

// NewSchema parses each declaration into a chain. Any malformed declaration
// fails construction immediately.
func NewSchema(decls ...Decl) (*Schema, error) {
	s := &Schema{policy: FailUnknown, expected: make(map[string]struct{})}
	for i, decl := range decls {
		chain, err := NewChain(decl...)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		s.chains = append(s.chains, chain)
		if chain.hasField {
			s.expected[chain.field] = struct{}{}
		}
	}
	return s, nil
}

// MustSchema is NewSchema, panicking on a malformed declaration. Meant for
// schemas defined as package variables.
func MustSchema(decls ...Decl) *Schema {
	s, err := NewSchema(decls...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithUnexpectedKeys derives a schema with the given unknown-key policy.
func (s *Schema) WithUnexpectedKeys(policy UnexpectedKeys) *Schema {
	t := *s
	t.policy = policy
	return &t
}

// WithConfig derives a schema carrying its own localization Config instead of
// the process-wide fallback.
func (s *Schema) WithConfig(cfg Config) *Schema {
	t := *s
	t.cfg = &cfg
	return &t
}

// Run validates and transforms a document, leaving the input untouched. The
// error is a *ValidationError holding either a single wrong-type leaf (the
// input was not a Document) or the field-keyed aggregation of every chain
// failure. Errors of any other kind come from broken filters and propagate
// as-is.
func (s *Schema) Run(value any) (any, error) {
	doc, ok := value.(Document)
	if !ok {
		got := "nil"
		if t := reflect.TypeOf(value); t != nil {
			got = t.String()
		}
		return nil, fail(Msgf(msgWrongType, map[string]any{
			"type":       reflect.TypeOf((*Document)(nil)).Elem().String(),
			"wrong_type": got,
		}))
	}

	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	errs := make(map[string]ErrorDetails)

	if s.policy != KeepUnknown {
		for key := range doc {
			if _, known := s.expected[key]; known {
				continue
			}
			if s.policy == FailUnknown {
				errs[key] = LeafDetails(Msgf(msgUnexpectedKey, map[string]any{"key": fmt.Sprintf("%q", key)}))
			}
			delete(out, key)
		}
	}

	for _, chain := range s.chains {
		var value any
		if chain.hasField {
			field := chain.field
			if v, present := out[field]; present && chain.discard.contains(v) {
				delete(out, field)
			}
			v, present := out[field]
			if !present {
				if chain.optional {
					continue
				}
				if chain.def == nil {
					errs[field] = LeafDetails(Msg(msgFieldMissing))
					continue
				}
				if len(errs) > 0 && chain.def.computed() {
					// never compute a default from a known-partial document
					continue
				}
				v = chain.def.get(out)
				out[field] = v
			}
			value = v
		} else {
			if len(errs) > 0 {
				continue
			}
			value = out
		}

		failed := false
		for _, f := range chain.filters {
			next, err := f.Run(value)
			if err != nil {
				verr, ok := AsValidationError(err)
				if !ok {
					return nil, err
				}
				key := WholeDocumentKey
				if chain.hasField {
					key = chain.field
				}
				errs[key] = verr.Details
				failed = true
				break
			}
			value = next
		}
		if failed {
			if target, ok := storageTarget(chain.storage); ok {
				errs[target] = LeafDetails(Msg(msgCouldNotCompute))
			}
			continue
		}

		if chain.storage == nil {
			continue
		}
		if !chain.hasField {
			if _, isSave := chain.storage.(saveInstruction); isSave {
				replacement, ok := value.(Document)
				if !ok {
					return nil, fmt.Errorf("naval: whole-document Save result is %T, not a document", value)
				}
				out = replacement
				continue
			}
		}
		chain.storage.apply(out, chain.field, value)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Details: NestedDetails(errs)}
	}
	return out, nil
}

// Validate runs the schema and renders failures in the configured default
// language.
func (s *Schema) Validate(doc Document) (Document, error) {
	return s.ValidateIn(doc, "")
}

// ValidateIn runs the schema, rendering any failure payload for the given
// language tag, falling back to the source-language text when no catalog
// matches.
func (s *Schema) ValidateIn(doc Document, lang string) (Document, error) {
	cfg := fallbackConfig()
	if s.cfg != nil {
		cfg = *s.cfg
	}
	out, err := validateWith(s, doc, lang, cfg)
	if err != nil {
		return nil, err
	}
	return out.(Document), nil
}
