package console

import (
	"sync"
)

// QuestionStyle holds the markup templates used to display a Question. Each
// template contains a placeholder that is replaced by the value shown.
type QuestionStyle struct {
	// PromptFormat is applied to the prompt, see "%prompt%".
	PromptFormat string
	// InputFormat is applied to the typed answer, see "%input%".
	InputFormat string
	// AutocompleteFormat is applied to the suggested completion, see
	// "%autocomplete%".
	AutocompleteFormat string
	// PlaceholderFormat is applied to the placeholder, see "%placeholder%".
	PlaceholderFormat string
}

// DefaultQuestionStyle returns the style registered as "default".
func DefaultQuestionStyle() QuestionStyle {
	return QuestionStyle{
		PromptFormat:       "%prompt% ",
		InputFormat:        `<cs background-color="dark_grey" color="white">%input%</cs>`,
		AutocompleteFormat: `<cs color="dark_grey">%autocomplete%</cs>`,
		PlaceholderFormat:  `<cs color="dark_grey">%placeholder%</cs>`,
	}
}

var questionStyles = struct {
	sync.RWMutex
	m map[string]QuestionStyle
}{m: map[string]QuestionStyle{"default": DefaultQuestionStyle()}}

// RegisterQuestionStyle makes style available to Question.SetStyleName.
func RegisterQuestionStyle(name string, style QuestionStyle) {
	questionStyles.Lock()
	defer questionStyles.Unlock()
	questionStyles.m[name] = style
}

// LookupQuestionStyle returns the style registered under name.
func LookupQuestionStyle(name string) (QuestionStyle, bool) {
	questionStyles.RLock()
	defer questionStyles.RUnlock()
	style, ok := questionStyles.m[name]
	return style, ok
}
