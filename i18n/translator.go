// Package i18n translates the engine's error message templates. Catalogs map
// the source-language template text (placeholders included) to its
// translation, gettext style; a Bundle groups catalogs by language tag and
// picks the best match for a requested tag.
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Translator rewrites a source-language message template into another
// language. The argument is the untranslated template text; unknown templates
// must come back unchanged.
type Translator interface {
	Translate(text string) string
}

type identity struct{}

func (identity) Translate(text string) string { return text }

// Identity returns every template unchanged. It is what a Bundle hands out
// for its default language and for tags it has no catalog for.
var Identity Translator = identity{}

type catalogTranslator struct{ messages map[string]string }

func (t catalogTranslator) Translate(text string) string {
	if out, ok := t.messages[text]; ok && out != "" {
		return out
	}
	return text
}

// Bundle holds message catalogs keyed by language tag. Build it up with
// AddCatalog/AddYAML at startup; afterwards it is read-only and safe for
// concurrent use.
type Bundle struct {
	defaultLang language.Tag
	tags        []language.Tag
	catalogs    map[language.Tag]map[string]string
	matcher     language.Matcher
}

// NewBundle creates an empty bundle whose default language needs no
// translation. An unparsable tag falls back to English.
func NewBundle(defaultLang string) *Bundle {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		tag = language.English
	}
	return &Bundle{
		defaultLang: tag,
		tags:        []language.Tag{tag},
		catalogs:    make(map[language.Tag]map[string]string),
	}
}

// AddCatalog registers a template→translation catalog for a language tag.
func (b *Bundle) AddCatalog(lang string, messages map[string]string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("i18n: invalid language tag %q: %w", lang, err)
	}
	if _, exists := b.catalogs[tag]; !exists {
		b.tags = append(b.tags, tag)
	}
	b.catalogs[tag] = messages
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// AddYAML registers a catalog from YAML data: a flat mapping from template
// text to translated text.
func (b *Bundle) AddYAML(lang string, data []byte) error {
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: parsing %q catalog: %w", lang, err)
	}
	return b.AddCatalog(lang, messages)
}

// Translator picks the best catalog for the requested tag. The default
// language, an unparsable tag, or a tag no catalog matches all yield the
// identity translator, so rendering never fails for lack of a translation.
func (b *Bundle) Translator(lang string) Translator {
	if b == nil || lang == "" || b.matcher == nil {
		return Identity
	}
	tag, err := language.Parse(lang)
	if err != nil || tag == b.defaultLang {
		return Identity
	}
	_, index, conf := b.matcher.Match(tag)
	if conf == language.No || index == 0 {
		return Identity
	}
	messages, ok := b.catalogs[b.tags[index]]
	if !ok {
		return Identity
	}
	return catalogTranslator{messages: messages}
}

var (
	defaultMu     sync.RWMutex
	defaultBundle = builtinBundle()
)

// Default returns the process-wide bundle, preloaded with the catalogs
// shipped under locales/.
func Default() *Bundle {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBundle
}

// SetDefault replaces the process-wide bundle.
func SetDefault(b *Bundle) {
	defaultMu.Lock()
	defaultBundle = b
	defaultMu.Unlock()
}
