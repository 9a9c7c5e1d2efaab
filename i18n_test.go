package naval_test

import (
	"testing"

	naval "github.com/tidemark/naval"
	"github.com/tidemark/naval/i18n"
)

func TestValidateInTranslatesErrors(t *testing.T) {
	editor := naval.MustSchema(
		naval.Decl{"name", naval.TypeIs[string]()},
		naval.Decl{"website", naval.Optional, naval.Url},
	)

	_, err := editor.ValidateIn(naval.Document{"website": "http://#"}, "fr")
	got := rendered(t, err)
	if got["name"] != "Champ manquant." {
		t.Fatalf("name: %v", got["name"])
	}
	if got["website"] != "Ce n'est pas une url valide." {
		t.Fatalf("website: %v", got["website"])
	}
}

func TestValidateInFallsBackToDefaultLanguage(t *testing.T) {
	s := naval.MustSchema(naval.Decl{"name", naval.TypeIs[string]()})
	_, err := s.ValidateIn(naval.Document{}, "zz")
	if got := rendered(t, err); got["name"] != "Field is missing." {
		t.Fatalf("unsupported tag should keep source text: %v", got)
	}
}

func TestValidateInTranslatesPlaceholders(t *testing.T) {
	s := naval.MustSchema(naval.Decl{"n", naval.TypeIs[int](), naval.Max(10)})
	_, err := s.ValidateIn(naval.Document{"n": 11}, "fr")
	if got := rendered(t, err); got["n"] != "Le maximum est 10." {
		t.Fatalf("translated template with params: %v", got)
	}
}

func TestNestedSchemaTranslatesOnce(t *testing.T) {
	inner := naval.MustSchema(naval.Decl{"x", naval.TypeIs[int]()})
	outer := naval.MustSchema(naval.Decl{"child", inner})

	_, err := outer.ValidateIn(naval.Document{"child": naval.Document{}}, "fr")
	d := mustDetails(t, err)
	child, ok := d.Field("child")
	if !ok {
		t.Fatalf("no child entry: %v", d)
	}
	got, _ := child.Render(nil).(map[string]any)
	if got["x"] != "Champ manquant." {
		t.Fatalf("nested translation: %v", got)
	}
}

func TestWithConfigOverridesBundle(t *testing.T) {
	b := i18n.NewBundle("en")
	if err := b.AddCatalog("fr", map[string]string{"Field is missing.": "Il manque un champ."}); err != nil {
		t.Fatalf("AddCatalog: %v", err)
	}
	s := naval.MustSchema(naval.Decl{"name", naval.TypeIs[string]()}).
		WithConfig(naval.Config{DefaultLang: "en", Bundle: b})
	_, err := s.ValidateIn(naval.Document{}, "fr")
	if got := rendered(t, err); got["name"] != "Il manque un champ." {
		t.Fatalf("schema-level bundle should win: %v", got)
	}
}
