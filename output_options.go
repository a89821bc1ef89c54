package console

// OutputOption configures an Output.
type OutputOption func(o *Output)

// WithFormatter sets the Formatter used to prepare messages. Without one,
// messages are written as given.
func WithFormatter(f Formatter) OutputOption {
	return func(o *Output) {
		o.formatter = f
	}
}

// WithVerbosity sets the verbosity of the Output, VerbosityNormal by default.
func WithVerbosity(v Verbosity) OutputOption {
	return func(o *Output) {
		o.verbosity = v
	}
}

// WithSink overrides the detected SinkKind. SinkSeekableFile is ignored
// unless the writer can seek and truncate.
func WithSink(kind SinkKind) OutputOption {
	return func(o *Output) {
		o.sink = kind
	}
}

// WithBufferState makes the Output share an existing BufferState.
func WithBufferState(state *BufferState) OutputOption {
	return func(o *Output) {
		if state != nil {
			o.state = state
		}
	}
}

// WithFormatting forces styling on or off, instead of deciding by sink.
func WithFormatting(enabled bool) OutputOption {
	return func(o *Output) {
		o.formatting = &enabled
	}
}

// WriteOption configures a single write.
type WriteOption func(c *writeConfig)

type writeConfig struct {
	verbosity  Verbosity
	width      int
	escapeTags *bool
}

// AtVerbosity sets the verbosity required for the write to happen,
// VerbosityNormal by default.
func AtVerbosity(v Verbosity) WriteOption {
	return func(c *writeConfig) {
		c.verbosity = v
	}
}

// WithWidth wraps the message at width display cells.
func WithWidth(width int) WriteOption {
	return func(c *writeConfig) {
		c.width = width
	}
}

// WithEscapeTags writes markup literally (true) or always renders it
// (false), regardless of the Output's formatting mode.
func WithEscapeTags(escape bool) WriteOption {
	return func(c *writeConfig) {
		c.escapeTags = &escape
	}
}

func resolveWriteOptions(opts []WriteOption) writeConfig {
	c := writeConfig{verbosity: VerbosityNormal}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
