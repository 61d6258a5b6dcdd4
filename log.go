package rosetta

import (
	"strings"

	"github.com/bartekchlebek/Rosetta/i18n"
)

// RecordKind distinguishes document-level records from field-level ones.
type RecordKind int

const (
	RecordField         RecordKind = iota // A field binding issue.
	RecordTextEncoding                    // Text input was not valid UTF-8.
	RecordDocumentParse                   // The driver could not parse the input.
)

// Record is a single diagnostics entry.
type Record struct {
	Kind     RecordKind
	Severity Severity
	Category Category // Field records only.
	Path     KeyPath  // Root-relative key path of the field.
	// Expected and Got describe a WrongType mismatch.
	Expected Shape
	Got      Shape
	// Input holds the raw input of a document-level record.
	Input []byte
	Cause error
}

// Code returns the machine-readable code of the record.
func (r Record) Code() string {
	switch r.Kind {
	case RecordTextEncoding:
		return CodeTextEncoding
	case RecordDocumentParse:
		return CodeParseError
	default:
		return r.Category.Code()
	}
}

// Message returns the localized message of the record.
func (r Record) Message() string {
	var data map[string]string
	if r.Kind == RecordField && r.Category == WrongType {
		data = map[string]string{"expected": r.Expected.String(), "got": r.Got.String()}
	}
	return i18n.T(r.Code(), data)
}

// String renders the record on one line, e.g.
// "Error: value missing for key-path: result.name".
func (r Record) String() string {
	b := &strings.Builder{}
	b.WriteString(r.Severity.String())
	b.WriteString(": ")
	b.WriteString(r.Message())
	switch r.Kind {
	case RecordField:
		b.WriteString(" for key-path: ")
		b.WriteString(r.Path.String())
		if r.Cause != nil {
			b.WriteString(" (")
			b.WriteString(r.Cause.Error())
			b.WriteString(")")
		}
	default:
		if r.Cause != nil {
			b.WriteString(": ")
			b.WriteString(r.Cause.Error())
		}
	}
	return b.String()
}

// Log is the ordered diagnostics log of one mapping session. Records appear
// in the order fields were visited.
type Log struct {
	records []Record
}

// Records returns a copy of the records.
func (l *Log) Records() []Record {
	if l == nil {
		return nil
	}
	return append([]Record(nil), l.records...)
}

// Len returns the number of records.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// HasError reports whether the log holds at least one Error record.
func (l *Log) HasError() bool { return l.errorCount() > 0 }

// Errors returns the Error records in order.
func (l *Log) Errors() []Record { return l.filter(Error) }

// Warnings returns the Warning records in order.
func (l *Log) Warnings() []Record { return l.filter(Warning) }

// String renders one record per line.
func (l *Log) String() string {
	if l == nil {
		return ""
	}
	lines := make([]string, len(l.records))
	for i, r := range l.records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

func (l *Log) filter(s Severity) []Record {
	if l == nil {
		return nil
	}
	var out []Record
	for _, r := range l.records {
		if r.Severity == s {
			out = append(out, r)
		}
	}
	return out
}

func (l *Log) errorCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, r := range l.records {
		if r.Severity == Error {
			n++
		}
	}
	return n
}

func (l *Log) add(r Record) { l.records = append(l.records, r) }

func (l *Log) field(sev Severity, cat Category, path KeyPath, cause error) {
	l.add(Record{Kind: RecordField, Severity: sev, Category: cat, Path: path.clone(), Cause: cause})
}

// unexpected records a decode failure; the shapes are kept for WrongType.
func (l *Log) unexpected(sev Severity, cat Category, path KeyPath, expected, got Shape, cause error) {
	r := Record{Kind: RecordField, Severity: sev, Category: cat, Path: path.clone(), Cause: cause}
	if cat == WrongType {
		r.Expected, r.Got = expected, got
	}
	l.add(r)
}

// merge appends the records of other, demoting errors to warnings when demote
// is set.
func (l *Log) merge(other *Log, demote bool) {
	if other == nil {
		return
	}
	for _, r := range other.records {
		if demote {
			r.Severity = Warning
		}
		l.add(r)
	}
}

func (l *Log) reset() { l.records = l.records[:0] }
