// Package naval validates and transforms documents (map[string]any) against
// declarative schemas.
//
// A schema is an ordered list of chains. Each chain binds a field (or the
// whole document), an optional Discard set, the Optional marker, a Default,
// a filter pipeline, and a terminal storage instruction:
//
//	address, err := naval.NewSchema(
//		naval.Decl{"house number", naval.TypeIs[int](), naval.Range(1, 10000)},
//		naval.Decl{"street", naval.TypeIs[string](), naval.Length(5, 255)},
//		naval.Decl{"zipcode", naval.TypeIs[string](), naval.Regex(`\d{4,5}`)},
//		naval.Decl{"country", []any{"France", "Belgium", "Switzerland"}},
//	)
//
//	out, err := address.Validate(doc)
//
// Validate never mutates the input: transformations (Save, SaveAs, MoveTo,
// Delete) are visible only in the returned document. On failure the error is
// one *ValidationError aggregating every field's problem; chains keep running
// for the other fields after one fails.
//
// Design policy:
//   - Filters, chains and schemas are immutable after construction and safe
//     for concurrent reuse; a Schema is itself a Filter, so schemas nest.
//   - Error payloads stay lazy message templates until a validate call
//     surfaces them, where they are translated once (see i18n).
//   - Construction problems (malformed declarations) fail NewSchema/NewChain;
//     they never surface as validation errors.
package naval
