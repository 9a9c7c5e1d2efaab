package naval_test

import (
	"testing"

	json "github.com/goccy/go-json"

	naval "github.com/tidemark/naval"
)

func TestMessageRendering(t *testing.T) {
	m := naval.Msgf("The maximum is {max}.", map[string]any{"max": 10})
	if got := m.String(); got != "The maximum is 10." {
		t.Fatalf("rendered %q", got)
	}
	// unknown placeholders stay put
	m = naval.Msgf("{who} and {what}", map[string]any{"who": "chicken"})
	if got := m.String(); got != "chicken and {what}" {
		t.Fatalf("rendered %q", got)
	}
	if got := naval.Msg("plain").String(); got != "plain" {
		t.Fatalf("rendered %q", got)
	}
}

func TestErrorDetailsEqual(t *testing.T) {
	a := naval.LeafDetails(naval.Msg("Incorrect value."))
	b := naval.LeafDetails(naval.Msgf("Incorrect {w}.", map[string]any{"w": "value"}))
	if !a.Equal(b) {
		t.Fatalf("leaves with equal rendered text should be equal")
	}
	n1 := naval.NestedDetails(map[string]naval.ErrorDetails{"x": a})
	n2 := naval.NestedDetails(map[string]naval.ErrorDetails{"x": b})
	if !n1.Equal(n2) {
		t.Fatalf("nested payloads should compare recursively")
	}
	if a.Equal(n1) {
		t.Fatalf("a leaf never equals a nested payload")
	}
	n3 := naval.NestedDetails(map[string]naval.ErrorDetails{"y": a})
	if n1.Equal(n3) {
		t.Fatalf("different field names should differ")
	}
}

func TestErrorDetailsJSON(t *testing.T) {
	leaf := naval.LeafDetails(naval.Msg("Field is missing."))
	data, err := json.Marshal(leaf)
	if err != nil {
		t.Fatalf("marshal leaf: %v", err)
	}
	if string(data) != `"Field is missing."` {
		t.Fatalf("leaf JSON: %s", data)
	}

	nested := naval.NestedDetails(map[string]naval.ErrorDetails{"zipcode": leaf})
	data, err = json.Marshal(nested)
	if err != nil {
		t.Fatalf("marshal nested: %v", err)
	}
	if string(data) != `{"zipcode":"Field is missing."}` {
		t.Fatalf("nested JSON: %s", data)
	}
}

func TestValidationErrorText(t *testing.T) {
	s := naval.MustSchema(naval.Decl{"name", naval.TypeIs[string]()})
	_, err := s.Validate(naval.Document{})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if got := err.Error(); got != "{name: Field is missing.}" {
		t.Fatalf("error text %q", got)
	}
}
