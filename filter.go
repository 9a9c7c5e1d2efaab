package naval

import (
	"sync"

	"github.com/tidemark/naval/i18n"
)

// Filter is the atomic validation/transformation unit. Run returns the value
// unchanged (a pure check), a transformed value, or a *ValidationError
// carrying a structured payload. Any other error kind propagates to the
// caller untouched; it marks a broken filter or schema, not invalid input.
//
// Filters are built once and never mutated afterwards, so a filter may be
// shared by any number of concurrent Validate calls.
type Filter interface {
	Run(value any) (any, error)
}

// Config carries the localization setup used when a validation failure is
// surfaced: the language assumed when the caller supplies no tag, and the
// catalog bundle used to translate message templates.
type Config struct {
	DefaultLang string
	Bundle      *i18n.Bundle
}

var (
	configMu      sync.RWMutex
	processConfig = Config{DefaultLang: "en"}
)

// SetConfig replaces the process-wide fallback Config. Schemas built with
// WithConfig ignore it; it exists as an outermost-boundary convenience.
func SetConfig(cfg Config) {
	configMu.Lock()
	processConfig = cfg
	configMu.Unlock()
}

func fallbackConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	cfg := processConfig
	if cfg.Bundle == nil {
		cfg.Bundle = i18n.Default()
	}
	return cfg
}

// Validate runs the filter and, on failure, renders the error payload in the
// configured default language.
func Validate(f Filter, value any) (any, error) { return ValidateIn(f, value, "") }

// ValidateIn runs the filter and renders any failure payload for the given
// language tag. An unknown tag, or a tag with no catalog, falls back to the
// untranslated source-language text.
func ValidateIn(f Filter, value any, lang string) (any, error) {
	return validateWith(f, value, lang, fallbackConfig())
}

func validateWith(f Filter, value any, lang string, cfg Config) (any, error) {
	out, err := f.Run(value)
	if err == nil {
		return out, nil
	}
	verr, ok := AsValidationError(err)
	if !ok {
		return nil, err
	}
	if lang == "" {
		lang = cfg.DefaultLang
	}
	tr := i18n.Identity
	if cfg.Bundle != nil {
		tr = cfg.Bundle.Translator(lang)
	}
	return nil, &ValidationError{Details: verr.Details.translate(tr)}
}
