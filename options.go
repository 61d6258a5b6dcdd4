package rosetta

import "github.com/bartekchlebek/Rosetta/source"

// DefaultMaxDepth bounds object and array nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 512

// Option configures a single top-level call.
type Option func(*options)

type options struct {
	maxDepth         int
	maxBytes         int64
	rejectDuplicates bool
	level            LogLevel
	formatter        Formatter
	handler          Handler
	driver           source.Driver
}

func defaultOptions() *options {
	return &options{maxDepth: DefaultMaxDepth, level: LogErrors}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithLogLevel sets when the diagnostics handler is invoked.
func WithLogLevel(l LogLevel) Option { return func(o *options) { o.level = l } }

// WithFormatter replaces TextFormatter for this call.
func WithFormatter(f Formatter) Option { return func(o *options) { o.formatter = f } }

// WithHandler replaces the default zap-backed handler for this call.
func WithHandler(h Handler) Option { return func(o *options) { o.handler = h } }

// WithDriver parses and serializes with d instead of the global driver.
func WithDriver(d source.Driver) Option { return func(o *options) { o.driver = d } }

// WithMaxDepth limits nesting of the parsed document and of nested
// conversions. Zero or a negative value disables the limit.
func WithMaxDepth(n int) Option { return func(o *options) { o.maxDepth = n } }

// WithMaxBytes rejects inputs larger than n bytes. Zero disables the limit.
func WithMaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

// WithDuplicateKeys makes the parser reject objects that repeat a key.
// By default the last occurrence wins.
func WithDuplicateKeys(reject bool) Option { return func(o *options) { o.rejectDuplicates = reject } }

func (o *options) limits() source.Limits {
	return source.Limits{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes, RejectDuplicateKeys: o.rejectDuplicates}
}

func (o *options) resolveDriver() source.Driver {
	if o.driver != nil {
		return o.driver
	}
	return currentDriver()
}
