package termtest

import (
	"regexp"
	"strings"

	"github.com/joeycumines/go-console/markup"
)

// Condition reports whether the output captured since a Snapshot is as
// expected.
type Condition func(output string) bool

// All is satisfied when every condition is.
func All(conds ...Condition) Condition {
	return func(output string) bool {
		for _, cond := range conds {
			if !cond(output) {
				return false
			}
		}
		return true
	}
}

// Any is satisfied when at least one condition is.
func Any(conds ...Condition) Condition {
	return func(output string) bool {
		for _, cond := range conds {
			if cond(output) {
				return true
			}
		}
		return false
	}
}

// Not negates cond.
func Not(cond Condition) Condition {
	return func(output string) bool {
		return !cond(output)
	}
}

// Contains checks for substr in the output as displayed, ignoring escape
// sequences and carriage returns. As a last resort, runs of whitespace are
// compared as a single space.
func Contains(substr string) Condition {
	return func(output string) bool {
		if strings.Contains(output, substr) {
			return true
		}
		norm := normalizeTTYOutput(output)
		if strings.Contains(norm, substr) {
			return true
		}
		return strings.Contains(collapseWhitespace(norm), collapseWhitespace(substr))
	}
}

// ContainsRaw checks for substr in the output as received, including
// escape sequences.
func ContainsRaw(substr string) Condition {
	return func(output string) bool {
		return strings.Contains(output, substr)
	}
}

// Matches checks the output as displayed against re.
func Matches(re *regexp.Regexp) Condition {
	return func(output string) bool {
		return re.MatchString(normalizeTTYOutput(output))
	}
}

// normalizeTTYOutput strips ANSI sequences and carriage returns.
func normalizeTTYOutput(s string) string {
	if !strings.ContainsAny(s, "\x1b\r") {
		return s
	}
	return strings.ReplaceAll(markup.StripANSI(s), "\r", "")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
