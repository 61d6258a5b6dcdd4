package rosetta

// Session is one mapping pass over a document. Mapping code receives it and
// declares bindings with Required, Forced and Optional:
//
//	func (u *User) MapJSON(s *rosetta.Session) {
//		rosetta.Required(s.Key("name"), &u.Name, rosetta.String)
//		rosetta.Optional(s.At("profile", "age"), &u.Age, rosetta.Int)
//	}
//
// A Session is single use and must not be shared between goroutines.
type Session struct {
	doc    map[string]any
	cursor KeyPath
	// prefix is the root-relative path of doc in a nested session.
	prefix KeyPath
	log    *Log
	dir    Direction
	dryRun bool
	// readOnly suppresses slot writes. Only the root session of a dry run
	// sets it; nested values are decoded into fresh copies either way.
	readOnly bool
	// depth counts containers from the root document, which is 1.
	depth int
	opts  *options
}

func newSession(dir Direction, doc map[string]any, log *Log, o *options) *Session {
	return &Session{doc: doc, log: log, dir: dir, depth: 1, opts: o}
}

func nestedSession(f *frame, dir Direction, doc map[string]any) (*Session, error) {
	if f.opts.maxDepth > 0 && f.depth+1 > f.opts.maxDepth {
		return nil, ErrMaxDepth
	}
	return &Session{doc: doc, prefix: f.path, log: f.log, dir: dir, dryRun: f.dryRun, depth: f.depth + 1, opts: f.opts}, nil
}

// Key extends the cursor by one key and returns s for chaining. The cursor
// is consumed by the next binding.
func (s *Session) Key(k string) *Session {
	s.cursor = append(s.cursor, k)
	return s
}

// At extends the cursor by keys and returns s.
func (s *Session) At(keys ...string) *Session {
	s.cursor = append(s.cursor, keys...)
	return s
}

// Direction returns the direction of the pass.
func (s *Session) Direction() Direction { return s.dir }

// Decoding reports whether the session reads JSON into values.
func (s *Session) Decoding() bool { return s.dir == DirectionDecode }

// Encoding reports whether the session writes values into JSON.
func (s *Session) Encoding() bool { return s.dir == DirectionEncode }

// DryRun reports whether this is the probing pass of a decode. Nested
// sessions inherit it. Bindings on the target itself record diagnostics but
// never write slots during the dry run.
func (s *Session) DryRun() bool { return s.dryRun }

// Path returns the root-relative path the next binding will use.
func (s *Session) Path() KeyPath { return s.path() }

// Log returns the log of the operation the session belongs to.
func (s *Session) Log() *Log { return s.log }

func (s *Session) path() KeyPath { return s.prefix.Append(s.cursor...) }

func (s *Session) reset() { s.cursor = nil }

// frame returns the converter frame for the value under the cursor,
// recording into log.
func (s *Session) frame(log *Log) *frame {
	return &frame{log: log, path: s.path(), depth: s.depth, dryRun: s.dryRun, opts: s.opts}
}
