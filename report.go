package rosetta

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/bartekchlebek/Rosetta/source"
)

// LogLevel controls when the diagnostics handler runs.
type LogLevel int

const (
	LogNone    LogLevel = iota // Never.
	LogErrors                  // Only when the operation failed.
	LogVerbose                 // Whenever the log is not empty.
)

// Formatter renders a diagnostics report for the document an operation
// consumed (decode) or produced (encode). document may be nil.
type Formatter func(document any, log *Log) string

// Handler receives formatted reports.
type Handler func(report string)

// TextFormatter renders a "Rosetta" header, the document serialized by the
// global driver, then one line per record.
func TextFormatter(document any, log *Log) string {
	return textReport(currentDriver(), document, log)
}

// TextFormatterFor is TextFormatter serializing the document with d. It is
// the default formatter, bound to the driver of the call.
func TextFormatterFor(d source.Driver) Formatter {
	return func(document any, log *Log) string { return textReport(d, document, log) }
}

func textReport(d source.Driver, document any, log *Log) string {
	b := &strings.Builder{}
	b.WriteString("Rosetta\nJSON: ")
	b.WriteString(renderDocument(d, document))
	if log.Len() > 0 {
		b.WriteByte('\n')
		b.WriteString(log.String())
	}
	return b.String()
}

// DumpFormatter is like TextFormatter but dumps the document with its Go
// types, which helps when a hand-built tree carries unexpected kinds.
func DumpFormatter(document any, log *Log) string {
	b := &strings.Builder{}
	b.WriteString("Rosetta\n")
	b.WriteString(spew.Sdump(document))
	b.WriteString(log.String())
	return b.String()
}

// ZapHandler writes reports to l at warn level.
func ZapHandler(l *zap.Logger) Handler {
	return func(report string) {
		l.Warn("rosetta diagnostics", zap.String("report", report))
	}
}

func renderDocument(d source.Driver, document any) string {
	if document == nil {
		return "null"
	}
	out, err := d.Marshal(document)
	if err != nil {
		return spew.Sprint(document)
	}
	return string(out)
}

// report invokes the handler according to the configured level.
func (o *options) report(document any, log *Log, failed bool) {
	switch o.level {
	case LogNone:
		return
	case LogErrors:
		if !failed {
			return
		}
	case LogVerbose:
		if !failed && log.Len() == 0 {
			return
		}
	}
	format := o.formatter
	if format == nil {
		format = TextFormatterFor(o.resolveDriver())
	}
	handle := o.handler
	if handle == nil {
		handle = ZapHandler(Logger())
	}
	handle(format(document, log))
}
