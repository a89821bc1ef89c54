// Package markup renders the `<cs>` styling tags used by console messages.
//
// A tag looks like
//
//	<cs color="red" background-color="dark_grey" style="bold;underline">text</cs>
//
// Tags nest. A literal "<" may be written as `\<` to stop it being read as
// the start of a tag.
package markup

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	ansiReset = "\x1b[0m"
	closeTag  = "</cs>"
)

var (
	openTagPattern = regexp.MustCompile(`^<cs((?:\s+[a-z_-]+\s*=\s*"[^"]*")*)\s*>`)
	attrPattern    = regexp.MustCompile(`([a-z_-]+)\s*=\s*"([^"]*)"`)
	ansiPattern    = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[ -/]*[@-~]|[78])`)
)

var colors = map[string]int{
	"default":       39,
	"black":         30,
	"red":           31,
	"green":         32,
	"yellow":        33,
	"blue":          34,
	"magenta":       35,
	"purple":        35,
	"cyan":          36,
	"light_grey":    37,
	"dark_grey":     90,
	"light_red":     91,
	"light_green":   92,
	"light_yellow":  93,
	"light_blue":    94,
	"light_magenta": 95,
	"light_cyan":    96,
	"white":         97,
}

var styles = map[string]int{
	"bold":      1,
	"dim":       2,
	"italic":    3,
	"underline": 4,
	"blink":     5,
	"reverse":   7,
	"hidden":    8,
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenEscape
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	// src is the token as written in the source text
	src   string
	style style
}

// visible returns the text the token contributes once tags are rendered.
func (t token) visible() string {
	switch t.kind {
	case tokenText:
		return t.src
	case tokenEscape:
		return "<"
	default:
		return ""
	}
}

type style struct {
	fg, bg int
	attrs  []int
}

func (s style) merge(inner style) style {
	out := s
	if inner.fg != 0 {
		out.fg = inner.fg
	}
	if inner.bg != 0 {
		out.bg = inner.bg
	}
	if len(inner.attrs) != 0 {
		out.attrs = append(append([]int(nil), s.attrs...), inner.attrs...)
	}
	return out
}

func (s style) sgr() string {
	var codes []string
	if s.fg != 0 {
		codes = append(codes, strconv.Itoa(s.fg))
	}
	if s.bg != 0 {
		codes = append(codes, strconv.Itoa(s.bg+10))
	}
	for _, a := range s.attrs {
		codes = append(codes, strconv.Itoa(a))
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func parseStyle(attrs string) style {
	var s style
	for _, m := range attrPattern.FindAllStringSubmatch(attrs, -1) {
		value := strings.ToLower(strings.TrimSpace(m[2]))
		switch m[1] {
		case "color":
			s.fg = colors[value]
		case "background-color", "background_color", "bg":
			s.bg = colors[value]
		case "style":
			for _, name := range strings.FieldsFunc(value, func(r rune) bool {
				return r == ';' || r == ',' || r == ' '
			}) {
				if code, ok := styles[name]; ok {
					s.attrs = append(s.attrs, code)
				}
			}
		}
	}
	return s
}

// tokenize splits text into tags, escapes and plain text.
func tokenize(text string) []token {
	var (
		tokens []token
		start  int
	)
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, token{kind: tokenText, src: text[start:end]})
		}
	}
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], `\<`):
			flush(i)
			tokens = append(tokens, token{kind: tokenEscape, src: `\<`})
			i += 2
			start = i
		case strings.HasPrefix(text[i:], closeTag):
			flush(i)
			tokens = append(tokens, token{kind: tokenClose, src: closeTag})
			i += len(closeTag)
			start = i
		case text[i] == '<':
			if m := openTagPattern.FindStringSubmatchIndex(text[i:]); m != nil {
				flush(i)
				tokens = append(tokens, token{
					kind:  tokenOpen,
					src:   text[i : i+m[1]],
					style: parseStyle(text[i+m[2] : i+m[3]]),
				})
				i += m[1]
				start = i
				continue
			}
			i++
		default:
			i++
		}
	}
	flush(len(text))
	return tokens
}

func join(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.src)
	}
	return b.String()
}

func render(tokens []token) string {
	var (
		b     strings.Builder
		stack []style
	)
	current := func() style {
		var s style
		for _, v := range stack {
			s = s.merge(v)
		}
		return s
	}
	for _, t := range tokens {
		switch t.kind {
		case tokenOpen:
			stack = append(stack, t.style)
			b.WriteString(current().sgr())
		case tokenClose:
			if len(stack) == 0 {
				continue
			}
			had := current().sgr() != ""
			stack = stack[:len(stack)-1]
			if had {
				b.WriteString(ansiReset)
				b.WriteString(current().sgr())
			}
		default:
			b.WriteString(t.visible())
		}
	}
	return b.String()
}

func strip(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.visible())
	}
	return b.String()
}

// Escape protects every "<" in text so that it is displayed literally.
func Escape(text string) string {
	return strings.ReplaceAll(text, "<", `\<`)
}

// StripANSI removes ANSI escape sequences from text.
func StripANSI(text string) string {
	if !strings.Contains(text, "\x1b") {
		return text
	}
	return ansiPattern.ReplaceAllString(text, "")
}
