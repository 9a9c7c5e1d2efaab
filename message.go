package naval

import (
	"fmt"
	"strings"

	"github.com/tidemark/naval/i18n"
)

// Message is a lazy message template: a source-language text with {name}
// placeholders plus the parameters to expand them with. The text stays
// untouched until the message is finally surfaced to a caller, so a
// translation catalog can key on the template itself rather than on an
// already-formatted string.
type Message struct {
	Text   string
	Params map[string]any
}

// Msg wraps a plain text into a Message with no parameters.
func Msg(text string) Message { return Message{Text: text} }

// Msgf wraps a template text and its placeholder parameters.
func Msgf(text string, params map[string]any) Message {
	return Message{Text: text, Params: params}
}

// Render translates the template text and expands its placeholders.
// A nil translator renders the source-language text.
func (m Message) Render(tr i18n.Translator) string {
	text := m.Text
	if tr != nil {
		text = tr.Translate(text)
	}
	return expand(text, m.Params)
}

func (m Message) String() string { return m.Render(nil) }

// expand substitutes {name} placeholders. Unknown placeholders and stray
// braces are left as-is.
func expand(text string, params map[string]any) string {
	if len(params) == 0 || !strings.ContainsRune(text, '{') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			b.WriteString(text)
			return b.String()
		}
		close := strings.IndexByte(text[open:], '}')
		if close < 0 {
			b.WriteString(text)
			return b.String()
		}
		close += open
		name := text[open+1 : close]
		if v, ok := params[name]; ok {
			b.WriteString(text[:open])
			fmt.Fprintf(&b, "%v", v)
		} else {
			b.WriteString(text[:close+1])
		}
		text = text[close+1:]
	}
}
