package editor

import (
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

type sourceKind uint8

const (
	sourcePlain sourceKind = iota
	sourceTag
	sourceAttr
	sourceString
	sourceComment
)

// classifySource tokenizes code view markup and returns one kind per rune.
// It returns nil when no HTML lexer is available.
func classifySource(text string) []sourceKind {
	lexer := lexers.Get("html")
	if lexer == nil {
		return nil
	}
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil
	}

	want := utf8.RuneCountInString(text)
	kinds := make([]sourceKind, 0, want)
	for _, tok := range it.Tokens() {
		k := sourcePlain
		switch {
		case tok.Type == chroma.NameTag:
			k = sourceTag
		case tok.Type == chroma.NameAttribute:
			k = sourceAttr
		case tok.Type.InCategory(chroma.Literal):
			k = sourceString
		case tok.Type.InCategory(chroma.Comment):
			k = sourceComment
		}
		for range utf8.RuneCountInString(tok.Value) {
			kinds = append(kinds, k)
		}
	}
	// Lexers may append a trailing newline.
	if len(kinds) > want {
		kinds = kinds[:want]
	}
	return kinds
}

func (st Style) source(k sourceKind, base lipgloss.Style) lipgloss.Style {
	switch k {
	case sourceTag:
		return st.SourceTag.Inherit(base)
	case sourceAttr:
		return st.SourceAttr.Inherit(base)
	case sourceString:
		return st.SourceString.Inherit(base)
	case sourceComment:
		return st.SourceComment.Inherit(base)
	}
	return base
}
