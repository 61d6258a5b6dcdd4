package engine

// Framer tracks container nesting for decoders whose token stream does not
// distinguish object keys from string values (encoding/json, go-json).
type Framer struct {
	stack []framerFrame
}

type framerFrame struct {
	object       bool
	expectingKey bool
}

// Open records the start of an object or array.
func (f *Framer) Open(object bool) {
	f.stack = append(f.stack, framerFrame{object: object, expectingKey: object})
}

// Close records the end of the innermost container.
func (f *Framer) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.Value()
}

// Key reports whether the next string token is an object key and, if so,
// consumes the key position.
func (f *Framer) Key() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

// Value records that a complete value was read in the current container.
func (f *Framer) Value() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
