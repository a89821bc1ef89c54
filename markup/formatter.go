package markup

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Formatter renders markup to ANSI styled text, plain text, or leaves it
// untouched, optionally word-wrapping to a width. The zero value is ready
// to use.
type Formatter struct{}

// New returns a Formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format renders markup as ANSI styles, wrapping at width if width > 0.
func (f *Formatter) Format(text string, width int) string {
	return render(wrap(tokenize(text), width))
}

// Plain removes markup, wrapping at width if width > 0.
func (f *Formatter) Plain(text string, width int) string {
	return strip(wrap(tokenize(text), width))
}

// Raw keeps markup as literal text, wrapping at width if width > 0.
func (f *Formatter) Raw(text string, width int) string {
	return join(wrap([]token{{kind: tokenText, src: text}}, width))
}

// Split wraps text at width while keeping markup intact.
func (f *Formatter) Split(text string, width int) string {
	return join(wrap(tokenize(text), width))
}

// UnFormat returns the text a terminal would display for a Format, Plain
// or Split result, with styles and ANSI sequences removed.
func (f *Formatter) UnFormat(text string) string {
	return strip(tokenize(StripANSI(text)))
}

// Width returns the display width of the longest line of text, once
// markup has been removed.
func Width(text string) int {
	var longest int
	for _, line := range strings.Split(strip(tokenize(StripANSI(text))), "\n") {
		if w := runewidth.StringWidth(line); w > longest {
			longest = w
		}
	}
	return longest
}

// wrap breaks lines at spaces so that no line is wider than width, breaking
// overlong words between grapheme clusters. Tags occupy no width. Existing
// line breaks are kept.
func wrap(tokens []token, width int) []token {
	if width <= 0 {
		return tokens
	}

	var (
		out       []token
		word      []token
		wordWidth int
		spaces    int
		col       int
	)
	emit := func(src string) {
		out = append(out, token{kind: tokenText, src: src})
	}
	newline := func() {
		emit("\n")
		col = 0
	}
	flushWord := func() {
		if len(word) == 0 && spaces == 0 {
			return
		}
		if col > 0 && col+spaces+wordWidth > width && wordWidth > 0 {
			newline()
		} else if spaces > 0 {
			emit(strings.Repeat(" ", spaces))
			col += spaces
		}
		spaces = 0
		out = append(out, word...)
		col += wordWidth
		word = nil
		wordWidth = 0
	}
	appendCluster := func(src string, w int, kind tokenKind) {
		if wordWidth+w > width && wordWidth > 0 {
			flushWord()
			newline()
		}
		word = append(word, token{kind: kind, src: src})
		wordWidth += w
	}

	for _, t := range tokens {
		switch t.kind {
		case tokenOpen, tokenClose:
			word = append(word, t)
		case tokenEscape:
			appendCluster(t.src, 1, tokenEscape)
		default:
			g := uniseg.NewGraphemes(t.src)
			for g.Next() {
				cluster := g.Str()
				switch cluster {
				case "\n", "\r\n":
					flushWord()
					emit(cluster)
					col = 0
				case " ":
					if len(word) != 0 {
						flushWord()
					}
					spaces++
				default:
					appendCluster(cluster, runewidth.StringWidth(cluster), tokenText)
				}
			}
		}
	}
	flushWord()
	return out
}
