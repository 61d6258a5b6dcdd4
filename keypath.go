package rosetta

import "strings"

// KeyPath is an ordered sequence of object keys locating a value inside
// nested JSON objects.
type KeyPath []string

// String renders the path dotted, e.g. "result.user.name".
func (p KeyPath) String() string { return strings.Join(p, ".") }

// Pointer renders the path as an RFC 6901 JSON Pointer, e.g. "/result/user".
func (p KeyPath) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, k := range p {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Append returns a new path extended by keys; p is not modified.
func (p KeyPath) Append(keys ...string) KeyPath {
	out := make(KeyPath, 0, len(p)+len(keys))
	out = append(out, p...)
	return append(out, keys...)
}

func (p KeyPath) clone() KeyPath {
	if p == nil {
		return nil
	}
	return append(KeyPath(nil), p...)
}

// Lookup resolves path inside doc. An empty path yields doc itself. Every
// intermediate value must be an object; a missing key or a non-object
// intermediate reports false. A JSON null at the end is found (nil, true).
func Lookup(doc map[string]any, path KeyPath) (any, bool) {
	if len(path) == 0 {
		return doc, true
	}
	branch := doc
	for _, k := range path[:len(path)-1] {
		sub, ok := branch[k].(map[string]any)
		if !ok {
			return nil, false
		}
		branch = sub
	}
	v, ok := branch[path[len(path)-1]]
	return v, ok
}

// Assign returns a copy of doc with v stored at path. Intermediate objects
// are created, or replaced when they hold a non-object. Maps along the path
// are copied, so doc and sibling branches are never mutated.
func Assign(doc map[string]any, path KeyPath, v any) (map[string]any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyKeyPath
	}
	out := make(map[string]any, len(doc)+1)
	for k, vv := range doc {
		out[k] = vv
	}
	if len(path) == 1 {
		out[path[0]] = v
		return out, nil
	}
	sub, _ := doc[path[0]].(map[string]any)
	nsub, err := Assign(sub, path[1:], v)
	if err != nil {
		return nil, err
	}
	out[path[0]] = nsub
	return out, nil
}
