package console

// Formatter turns message markup into what is written to a device. A width
// greater than zero requests word wrapping. See the markup package for the
// implementation used by NewStandardStreams.
type Formatter interface {
	// Plain strips markup.
	Plain(text string, width int) string
	// Format renders markup as ANSI styles.
	Format(text string, width int) string
	// Raw keeps markup as literal text.
	Raw(text string, width int) string
	// Split wraps text without touching markup.
	Split(text string, width int) string
	// UnFormat returns the text as displayed, used for cursor tracking.
	UnFormat(text string) string
}
