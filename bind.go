package rosetta

type requiredness int

const (
	required requiredness = iota
	forced
	optional
)

func (r requiredness) severity() Severity {
	if r == optional {
		return Warning
	}
	return Error
}

// Required binds *slot at the session cursor. Any failure is an Error and
// fails the operation. A zero Converter resolves through Infer.
func Required[T any](s *Session, slot *T, c Converter[T], validators ...func(T) bool) {
	defer s.reset()
	if s.Decoding() {
		if v, ok := decodeField(s, c, required, validators); ok && !s.readOnly {
			*slot = v
		}
		return
	}
	encodeField(s, *slot, c, required, validators)
}

// Forced binds a pointer slot that may be nil before decode but must hold a
// value afterwards. Failures are Errors, as for Required; encoding a nil slot
// records ValueMissing.
func Forced[T any](s *Session, slot **T, c Converter[T], validators ...func(T) bool) {
	defer s.reset()
	if s.Decoding() {
		if v, ok := decodeField(s, c, forced, validators); ok && !s.readOnly {
			*slot = &v
		}
		return
	}
	if *slot == nil {
		s.log.field(Error, ValueMissing, s.path(), nil)
		return
	}
	encodeField(s, **slot, c, forced, validators)
}

// Optional binds a pointer slot whose absence is tolerated. Failures are
// Warnings and leave the slot as it was. A missing or null value on decode is
// not recorded; a nil slot on encode records a Warning and omits the key.
func Optional[T any](s *Session, slot **T, c Converter[T], validators ...func(T) bool) {
	defer s.reset()
	if s.Decoding() {
		if v, ok := decodeField(s, c, optional, validators); ok && !s.readOnly {
			*slot = &v
		}
		return
	}
	if *slot == nil {
		s.log.field(Warning, ValueMissing, s.path(), nil)
		return
	}
	encodeField(s, **slot, c, optional, validators)
}

func decodeField[T any](s *Session, c Converter[T], req requiredness, validators []func(T) bool) (T, bool) {
	var zero T
	if c.view == nil {
		c = Infer[T]()
	}
	sev := req.severity()
	raw, found := Lookup(s.doc, s.cursor)
	if !found {
		if req != optional {
			s.log.field(Error, ValueMissing, s.path(), nil)
		}
		return zero, false
	}

	nested := &Log{}
	r := c.decode(s.frame(nested), raw)
	s.log.merge(nested, req == optional)
	switch r.Outcome {
	case Null:
		if req != optional {
			s.log.field(Error, ValueMissing, s.path(), nil)
		}
		return zero, false
	case Unexpected:
		s.log.unexpected(sev, r.Category, s.path(), c.shape, r.Got, r.Err)
		return zero, false
	}
	if !validate(r.Value, validators) {
		s.log.field(sev, ValidationFailed, s.path(), nil)
		return zero, false
	}
	return r.Value, true
}

func encodeField[T any](s *Session, v T, c Converter[T], req requiredness, validators []func(T) bool) {
	if c.view == nil {
		c = Infer[T]()
	}
	sev := req.severity()
	if !validate(v, validators) {
		s.log.field(sev, ValidationFailed, s.path(), nil)
		return
	}

	nested := &Log{}
	j, err := c.encode(s.frame(nested), v)
	s.log.merge(nested, req == optional)
	if err != nil {
		s.log.field(sev, ConversionFailed, s.path(), err)
		return
	}
	doc, err := Assign(s.doc, s.cursor, j)
	if err != nil {
		s.log.field(sev, ConversionFailed, s.path(), err)
		return
	}
	s.doc = doc
}

func validate[T any](v T, validators []func(T) bool) bool {
	for _, ok := range validators {
		if ok != nil && !ok(v) {
			return false
		}
	}
	return true
}
