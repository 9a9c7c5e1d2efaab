package i18n_test

import (
	"testing"

	"github.com/tidemark/naval/i18n"
)

func TestBundleTranslator(t *testing.T) {
	b := i18n.NewBundle("en")
	if err := b.AddCatalog("fr", map[string]string{"Field is missing.": "Champ manquant."}); err != nil {
		t.Fatalf("AddCatalog: %v", err)
	}

	if got := b.Translator("fr").Translate("Field is missing."); got != "Champ manquant." {
		t.Fatalf("fr: %q", got)
	}
	// regional tags fall back to their base language
	if got := b.Translator("fr-CA").Translate("Field is missing."); got != "Champ manquant." {
		t.Fatalf("fr-CA: %q", got)
	}
	// the default language never translates
	if got := b.Translator("en").Translate("Field is missing."); got != "Field is missing." {
		t.Fatalf("en: %q", got)
	}
	// unknown or malformed tags fall back to the source text
	for _, lang := range []string{"de", "zz", "not a tag", ""} {
		if got := b.Translator(lang).Translate("Field is missing."); got != "Field is missing." {
			t.Fatalf("%s: %q", lang, got)
		}
	}
	// untranslated templates pass through unchanged
	if got := b.Translator("fr").Translate("Some new message."); got != "Some new message." {
		t.Fatalf("missing entry: %q", got)
	}
}

func TestBundleYAML(t *testing.T) {
	b := i18n.NewBundle("en")
	err := b.AddYAML("fr", []byte("\"Incorrect value.\": \"Valeur incorrecte.\"\n"))
	if err != nil {
		t.Fatalf("AddYAML: %v", err)
	}
	if got := b.Translator("fr").Translate("Incorrect value."); got != "Valeur incorrecte." {
		t.Fatalf("fr: %q", got)
	}

	if err := b.AddYAML("fr", []byte("not: [valid: mapping")); err == nil {
		t.Fatalf("malformed YAML should error")
	}
	if err := b.AddCatalog("!!", nil); err == nil {
		t.Fatalf("malformed tag should error")
	}
}

func TestDefaultBundleShipsCatalogs(t *testing.T) {
	b := i18n.Default()
	if b == nil {
		t.Fatalf("no default bundle")
	}
	if got := b.Translator("fr").Translate("Field is missing."); got != "Champ manquant." {
		t.Fatalf("embedded fr catalog: %q", got)
	}
	if got := b.Translator("es").Translate("Field is missing."); got != "Falta el campo." {
		t.Fatalf("embedded es catalog: %q", got)
	}
}
