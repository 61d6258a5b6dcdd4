package rosetta

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// rootKey wraps array and dictionary documents so they can be mapped like
// objects. It shows up as the first key of element paths, e.g. "$.3.name".
const rootKey = "$"

// Decode parses data and decodes it into a fresh T.
func Decode[T any, PT interface {
	*T
	Mapper
}](data []byte, opts ...Option) (T, error) {
	var v T
	err := DecodeInto(data, &v, mapperFunc[T, PT](), opts...)
	return v, err
}

// DecodeString is Decode for UTF-8 text.
func DecodeString[T any, PT interface {
	*T
	Mapper
}](text string, opts ...Option) (T, error) {
	var v T
	err := DecodeIntoString(text, &v, mapperFunc[T, PT](), opts...)
	return v, err
}

// DecodeInto parses data and decodes it into *target with m. On failure
// *target is left exactly as it was.
func DecodeInto[T any](data []byte, target *T, m MapFunc[T], opts ...Option) error {
	o := buildOptions(opts)
	log := &Log{}
	tree, ok := parse(data, o, log)
	if !ok {
		return o.finish(DirectionDecode, nil, log, nil)
	}
	doc, ok := tree.(map[string]any)
	if !ok {
		log.add(Record{Kind: RecordDocumentParse, Severity: Error, Input: data, Cause: ErrRootShape})
		return o.finish(DirectionDecode, tree, log, nil)
	}
	return runDecode(doc, target, m, o, log)
}

// DecodeIntoString is DecodeInto for UTF-8 text.
func DecodeIntoString[T any](text string, target *T, m MapFunc[T], opts ...Option) error {
	if !utf8.ValidString(text) {
		o := buildOptions(opts)
		log := textEncodingLog(text)
		return o.finish(DirectionDecode, nil, log, nil)
	}
	return DecodeInto([]byte(text), target, m, opts...)
}

// DecodeTree decodes an already parsed tree into *target.
func DecodeTree[T any](tree map[string]any, target *T, m MapFunc[T], opts ...Option) error {
	o := buildOptions(opts)
	return runDecode(tree, target, m, o, &Log{})
}

// Encode encodes v into bytes with the configured driver.
func Encode[T any, PT interface {
	*T
	Mapper
}](v T, opts ...Option) ([]byte, error) {
	return EncodeWith(v, mapperFunc[T, PT](), opts...)
}

// EncodeString is Encode returning text.
func EncodeString[T any, PT interface {
	*T
	Mapper
}](v T, opts ...Option) (string, error) {
	out, err := Encode[T, PT](v, opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeWith encodes v with m into bytes. Either the whole document is
// returned or nothing.
func EncodeWith[T any](v T, m MapFunc[T], opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	log := &Log{}
	doc := runEncode(&v, m, o, log)
	if log.HasError() {
		return nil, o.finish(DirectionEncode, doc, log, nil)
	}
	return marshal(doc, o, log)
}

// EncodeTree encodes v with m into a tree without serializing it.
func EncodeTree[T any](v T, m MapFunc[T], opts ...Option) (map[string]any, error) {
	o := buildOptions(opts)
	log := &Log{}
	doc := runEncode(&v, m, o, log)
	if err := o.finish(DirectionEncode, doc, log, nil); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeArray decodes a document whose root is an array of T.
func DecodeArray[T any, PT interface {
	*T
	Mapper
}](data []byte, opts ...Option) ([]T, error) {
	return decodeWrapped(data, ArrayOf(Object[T, PT]()), opts)
}

// EncodeArray encodes vs as a root array.
func EncodeArray[T any, PT interface {
	*T
	Mapper
}](vs []T, opts ...Option) ([]byte, error) {
	return encodeWrapped(vs, ArrayOf(Object[T, PT]()), opts)
}

// DecodeMap decodes a document whose root is an object of T values.
func DecodeMap[T any, PT interface {
	*T
	Mapper
}](data []byte, opts ...Option) (map[string]T, error) {
	return decodeWrapped(data, MapOf(Object[T, PT]()), opts)
}

// EncodeMap encodes vs as a root object of T values.
func EncodeMap[T any, PT interface {
	*T
	Mapper
}](vs map[string]T, opts ...Option) ([]byte, error) {
	return encodeWrapped(vs, MapOf(Object[T, PT]()), opts)
}

// DecodeValue decodes a document of any root shape with c. Paths of the
// records start with "$".
func DecodeValue[V any](data []byte, c Converter[V], opts ...Option) (V, error) {
	return decodeWrapped(data, c, opts)
}

// EncodeValue encodes v with c as the document root.
func EncodeValue[V any](v V, c Converter[V], opts ...Option) ([]byte, error) {
	return encodeWrapped(v, c, opts)
}

// runDecode is the two-pass decode. The dry run probes a scratch copy with
// writes suppressed; only a clean log lets the live pass run, and only a
// clean live pass is assigned to *target.
func runDecode[T any](doc map[string]any, target *T, m MapFunc[T], o *options, log *Log) error {
	probe := scratch(target)
	s := newSession(DirectionDecode, doc, log, o)
	s.dryRun, s.readOnly = true, true
	m(&probe, s)

	if !log.HasError() {
		log.reset()
		live := scratch(target)
		m(&live, newSession(DirectionDecode, doc, log, o))
		if !log.HasError() {
			*target = live
		}
	}
	return o.finish(DirectionDecode, doc, log, nil)
}

func runEncode[T any](v *T, m MapFunc[T], o *options, log *Log) map[string]any {
	s := newSession(DirectionEncode, map[string]any{}, log, o)
	m(v, s)
	return s.doc
}

func decodeWrapped[V any](data []byte, c Converter[V], opts []Option) (V, error) {
	var out V
	o := buildOptions(opts)
	log := &Log{}
	tree, ok := parse(data, o, log)
	if !ok {
		return out, o.finish(DirectionDecode, nil, log, nil)
	}
	err := runDecode(map[string]any{rootKey: tree}, &out, func(v *V, s *Session) {
		Required(s.Key(rootKey), v, c)
	}, o, log)
	return out, err
}

func encodeWrapped[V any](vs V, c Converter[V], opts []Option) ([]byte, error) {
	o := buildOptions(opts)
	log := &Log{}
	doc := runEncode(&vs, func(v *V, s *Session) {
		Required(s.Key(rootKey), v, c)
	}, o, log)
	if log.HasError() {
		return nil, o.finish(DirectionEncode, doc, log, nil)
	}
	return marshal(doc[rootKey], o, log)
}

func parse(data []byte, o *options, log *Log) (any, bool) {
	d := o.resolveDriver()
	tree, err := d.Parse(data, o.limits())
	Logger().Debug("rosetta parse", zap.String("driver", d.Name()), zap.Int("bytes", len(data)), zap.Error(err))
	if err != nil {
		log.add(Record{Kind: RecordDocumentParse, Severity: Error, Input: data, Cause: err})
		return nil, false
	}
	return tree, true
}

func marshal(document any, o *options, log *Log) ([]byte, error) {
	out, err := o.resolveDriver().Marshal(document)
	if err != nil {
		return nil, o.finish(DirectionEncode, document, log, err)
	}
	return out, o.finish(DirectionEncode, document, log, nil)
}

func textEncodingLog(text string) *Log {
	log := &Log{}
	log.add(Record{Kind: RecordTextEncoding, Severity: Error, Input: []byte(text), Cause: ErrInvalidUTF8})
	return log
}

// finish logs the outcome, feeds the diagnostics handler and maps a failed
// log to a *MappingError.
func (o *options) finish(dir Direction, document any, log *Log, cause error) error {
	failed := cause != nil || log.HasError()
	Logger().Debug("rosetta mapping finished",
		zap.Stringer("direction", dir),
		zap.Int("records", log.Len()),
		zap.Int("errors", log.errorCount()),
		zap.Bool("ok", !failed),
	)
	o.report(document, log, failed)
	if failed {
		return &MappingError{Direction: dir, Log: log, Cause: cause}
	}
	return nil
}
