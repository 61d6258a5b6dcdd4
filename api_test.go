package rosetta_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosetta "github.com/bartekchlebek/Rosetta"
	"github.com/bartekchlebek/Rosetta/source"
)

func mappingErr(t *testing.T, err error) *rosetta.MappingError {
	t.Helper()
	me, ok := rosetta.AsMappingError(err)
	require.True(t, ok, "expected *MappingError, got %v", err)
	return me
}

func TestDecode_Bob(t *testing.T) {
	p, err := rosetta.Decode[person]([]byte(`{"name": "Bob"}`))
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.Name)
	assert.Nil(t, p.Age)
}

func TestDecode_WrongTypeLeavesTargetUnchanged(t *testing.T) {
	p := person{Name: "Alice"}
	err := rosetta.DecodeInto([]byte(`{"name": 11}`), &p, (*person).MapJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, rosetta.ErrDecodeFailed)
	assert.Equal(t, "Alice", p.Name)

	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, rosetta.WrongType, errs[0].Category)
	assert.Equal(t, rosetta.KeyPath{"name"}, errs[0].Path)
	assert.Equal(t, rosetta.ShapeString, errs[0].Expected)
	assert.Equal(t, rosetta.ShapeNumber, errs[0].Got)
	assert.Equal(t, "Error: wrong type (string <- number) for key-path: name", errs[0].String())
}

func TestDecode_AtomicAcrossEarlierBindings(t *testing.T) {
	type pair struct{ A, B string }
	m := func(v *pair, s *rosetta.Session) {
		rosetta.Required(s.Key("a"), &v.A, rosetta.String)
		rosetta.Required(s.Key("b"), &v.B, rosetta.String)
	}
	target := pair{A: "old-a", B: "old-b"}
	err := rosetta.DecodeInto([]byte(`{"a": "new-a"}`), &target, m)
	require.Error(t, err)
	assert.Equal(t, pair{A: "old-a", B: "old-b"}, target)

	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, rosetta.ValueMissing, errs[0].Category)
	assert.Equal(t, rosetta.KeyPath{"b"}, errs[0].Path)

	require.NoError(t, rosetta.DecodeInto([]byte(`{"a": "new-a", "b": "new-b"}`), &target, m))
	assert.Equal(t, pair{A: "new-a", B: "new-b"}, target)
}

func TestDecode_ClonerKeepsReferencesUntouched(t *testing.T) {
	target := tracked{Name: "old", Seen: map[string]bool{}}
	err := rosetta.DecodeInto([]byte(`{"name": 1}`), &target, (*tracked).MapJSON)
	require.Error(t, err)
	assert.Empty(t, target.Seen)
	assert.Equal(t, "old", target.Name)

	require.NoError(t, rosetta.DecodeInto([]byte(`{"name": "new"}`), &target, (*tracked).MapJSON))
	assert.Equal(t, "new", target.Name)
	assert.True(t, target.Seen["visited"])
}

func TestDecode_DryRunThenLivePass(t *testing.T) {
	var passes []bool
	m := func(v *person, s *rosetta.Session) {
		passes = append(passes, s.DryRun())
		v.MapJSON(s)
	}
	var p person
	require.NoError(t, rosetta.DecodeInto([]byte(`{"name": "x"}`), &p, m))
	assert.Equal(t, []bool{true, false}, passes)

	passes = nil
	require.Error(t, rosetta.DecodeInto([]byte(`{}`), &p, m))
	assert.Equal(t, []bool{true}, passes)
}

func TestDecode_OptionalTolerance(t *testing.T) {
	var log *rosetta.Log
	p, err := rosetta.Decode[person]([]byte(`{"name": "Bob"}`), capture(&log)...)
	require.NoError(t, err)
	assert.Nil(t, p.Age)
	assert.Zero(t, log.Len())

	log = nil
	p = person{Age: ptr(5)}
	require.NoError(t, rosetta.DecodeInto([]byte(`{"name": "Bob", "age": 200}`), &p, (*person).MapJSON, capture(&log)...))
	assert.Equal(t, 5, *p.Age)
	recs := log.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, rosetta.Warning, recs[0].Severity)
	assert.Equal(t, rosetta.ValidationFailed, recs[0].Category)
	assert.Equal(t, rosetta.KeyPath{"age"}, recs[0].Path)

	log = nil
	require.NoError(t, rosetta.DecodeInto([]byte(`{"name": "Bob", "age": "old"}`), &p, (*person).MapJSON, capture(&log)...))
	require.Len(t, log.Warnings(), 1)
	assert.Equal(t, rosetta.WrongType, log.Warnings()[0].Category)

	log = nil
	require.NoError(t, rosetta.DecodeInto([]byte(`{"name": "Bob", "age": null}`), &p, (*person).MapJSON, capture(&log)...))
	assert.Zero(t, log.Len())
	assert.Equal(t, 5, *p.Age)
}

func TestDecode_RequiredStrictness(t *testing.T) {
	for _, in := range []string{`{}`, `{"name": null}`} {
		_, err := rosetta.Decode[person]([]byte(in))
		require.Error(t, err, in)
		recs := mappingErr(t, err).Log.Records()
		require.Len(t, recs, 1, in)
		assert.Equal(t, rosetta.Error, recs[0].Severity)
		assert.Equal(t, rosetta.ValueMissing, recs[0].Category)
		assert.Equal(t, rosetta.KeyPath{"name"}, recs[0].Path)
	}
}

func TestForced(t *testing.T) {
	type box struct{ ID *int }
	m := func(v *box, s *rosetta.Session) { rosetta.Forced(s.Key("id"), &v.ID, rosetta.Int) }

	var b box
	require.NoError(t, rosetta.DecodeInto([]byte(`{"id": 7}`), &b, m))
	require.NotNil(t, b.ID)
	assert.Equal(t, 7, *b.ID)

	err := rosetta.DecodeInto([]byte(`{}`), &b, m)
	require.Error(t, err)
	assert.Equal(t, 7, *b.ID)

	_, err = rosetta.EncodeWith(box{}, m)
	require.Error(t, err)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, rosetta.ValueMissing, errs[0].Category)
}

func TestNestedKeyPaths(t *testing.T) {
	in := `{"result": {"object": {"a1-key": "x", "a2-key": "y", "extra": true}, "count": 100}}`
	e, err := rosetta.Decode[envelope]([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, envelope{A1: "x", A2: "y", Count: 100}, e)

	tree, err := rosetta.EncodeTree(e, (*envelope).MapJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"result": map[string]any{
			"object": map[string]any{"a1-key": "x", "a2-key": "y"},
			"count":  json.Number("100"),
		},
	}, tree)

	_, err = rosetta.Decode[envelope]([]byte(`{"result": "flat"}`))
	require.Error(t, err)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, rosetta.KeyPath{"result", "object", "a1-key"}, errs[0].Path)
	assert.Equal(t, "/result/object/a1-key", errs[0].Path.Pointer())
}

func TestNumericRange(t *testing.T) {
	_, err := rosetta.Decode[envelope]([]byte(`{"result": {"object": {"a1-key": "x", "a2-key": "y"}, "count": 200}}`))
	require.Error(t, err)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, rosetta.ConversionFailed, errs[0].Category)
	assert.ErrorIs(t, errs[0].Cause, rosetta.ErrOutOfRange)
	assert.Equal(t, rosetta.KeyPath{"result", "count"}, errs[0].Path)
}

func TestEncode_RequiredValidatorFails(t *testing.T) {
	type flagged struct {
		A1   string
		Note *string
	}
	m := func(v *flagged, s *rosetta.Session) {
		rosetta.Required(s.Key("a1"), &v.A1, rosetta.String, func(s string) bool { return s == "x" })
		rosetta.Optional(s.Key("note"), &v.Note, rosetta.String, func(s string) bool { return s != "" })
	}

	out, err := rosetta.EncodeWith(flagged{A1: "y", Note: ptr("n")}, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, rosetta.ErrEncodeFailed)
	assert.Nil(t, out)

	var log *rosetta.Log
	out, err = rosetta.EncodeWith(flagged{A1: "x", Note: ptr("")}, m, capture(&log)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a1": "x"}`, string(out))
	require.Len(t, log.Warnings(), 1)
	assert.Equal(t, rosetta.ValidationFailed, log.Warnings()[0].Category)

	log = nil
	tree, err := rosetta.EncodeTree(flagged{A1: "x"}, m, capture(&log)...)
	require.NoError(t, err)
	assert.NotContains(t, tree, "note")
	require.Len(t, log.Warnings(), 1)
	assert.Equal(t, rosetta.ValueMissing, log.Warnings()[0].Category)
}

func TestRoundTrip(t *testing.T) {
	in := team{
		Title:   "core",
		Lead:    person{Name: "Ann", Age: ptr(40), Email: ptr("ann@example.com")},
		Deputy:  &person{Name: "Ben"},
		Members: []person{{Name: "Cid", Age: ptr(30)}, {Name: "Dee"}},
	}
	data, err := rosetta.Encode(in)
	require.NoError(t, err)

	out, err := rosetta.Decode[team](data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	s, err := rosetta.EncodeString(in)
	require.NoError(t, err)
	out2, err := rosetta.DecodeString[team](s)
	require.NoError(t, err)
	assert.Equal(t, in, out2)
}

func TestNestedDiagnosticsAreRootRelative(t *testing.T) {
	_, err := rosetta.Decode[team]([]byte(`{"title": "t", "lead": {"name": 1}, "members": []}`))
	require.Error(t, err)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, rosetta.KeyPath{"lead", "name"}, errs[0].Path)
	assert.Equal(t, rosetta.WrongType, errs[0].Category)
	assert.Equal(t, rosetta.KeyPath{"lead"}, errs[1].Path)
	assert.Equal(t, rosetta.ConversionFailed, errs[1].Category)
	assert.ErrorIs(t, errs[1].Cause, rosetta.ErrNestedFailed)
}

func TestOptionalNestedFailureIsDemoted(t *testing.T) {
	var log *rosetta.Log
	tm, err := rosetta.Decode[team]([]byte(`{"title": "t", "lead": {"name": "L"}, "deputy": {"name": 1}, "members": []}`), capture(&log)...)
	require.NoError(t, err)
	assert.Nil(t, tm.Deputy)
	assert.Empty(t, log.Errors())
	warns := log.Warnings()
	require.Len(t, warns, 2)
	assert.Equal(t, rosetta.KeyPath{"deputy", "name"}, warns[0].Path)
	assert.Equal(t, rosetta.KeyPath{"deputy"}, warns[1].Path)
}

func TestArrayElementStrictness(t *testing.T) {
	_, err := rosetta.Decode[team]([]byte(`{"title": "t", "lead": {"name": "L"}, "members": [{"name": "a"}, {"name": 2}]}`))
	require.Error(t, err)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, "members.1.name", errs[0].Path.String())
	assert.Equal(t, "members.1", errs[1].Path.String())
	assert.ErrorIs(t, errs[1].Cause, rosetta.ErrNestedFailed)
	assert.Equal(t, "members", errs[2].Path.String())
	assert.ErrorIs(t, errs[2].Cause, rosetta.ErrElementFailed)
}

func TestDecode_ParseFailure(t *testing.T) {
	p := person{Name: "keep"}
	err := rosetta.DecodeInto([]byte(`{"name":`), &p, (*person).MapJSON)
	require.Error(t, err)
	assert.Equal(t, "keep", p.Name)
	recs := mappingErr(t, err).Log.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, rosetta.RecordDocumentParse, recs[0].Kind)
	assert.Equal(t, rosetta.CodeParseError, recs[0].Code())
	assert.Equal(t, []byte(`{"name":`), recs[0].Input)

	err = rosetta.DecodeInto([]byte(`[1, 2]`), &p, (*person).MapJSON)
	require.Error(t, err)
	assert.ErrorIs(t, mappingErr(t, err).Log.Records()[0].Cause, rosetta.ErrRootShape)
}

func TestDecode_InvalidUTF8Text(t *testing.T) {
	p := person{Name: "keep"}
	err := rosetta.DecodeIntoString("{\"name\": \"\xff\"}", &p, (*person).MapJSON)
	require.Error(t, err)
	assert.Equal(t, "keep", p.Name)
	recs := mappingErr(t, err).Log.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, rosetta.RecordTextEncoding, recs[0].Kind)
	assert.ErrorIs(t, recs[0].Cause, rosetta.ErrInvalidUTF8)
}

func TestMaxDepth(t *testing.T) {
	deep := []byte(`{"child": {"child": {"child": {}}}}`)
	_, err := rosetta.Decode[node](deep, rosetta.WithMaxDepth(2))
	require.Error(t, err)
	recs := mappingErr(t, err).Log.Records()
	require.Len(t, recs, 1)
	var le *source.LimitError
	require.True(t, errors.As(recs[0].Cause, &le))
	assert.Equal(t, source.CodeMaxDepth, le.Code)

	tree := map[string]any{"child": map[string]any{"child": map[string]any{"child": map[string]any{}}}}
	var n node
	var log *rosetta.Log
	require.NoError(t, rosetta.DecodeTree(tree, &n, (*node).MapJSON, append(capture(&log), rosetta.WithMaxDepth(2))...))
	require.NotNil(t, n.Child)
	assert.Nil(t, n.Child.Child)
	require.NotEmpty(t, log.Warnings())
	assert.Equal(t, rosetta.KeyPath{"child", "child"}, log.Warnings()[0].Path)
	assert.ErrorIs(t, log.Warnings()[0].Cause, rosetta.ErrMaxDepth)
}

func TestDuplicateKeys(t *testing.T) {
	in := []byte(`{"name": "a", "name": "b"}`)
	p, err := rosetta.Decode[person](in)
	require.NoError(t, err)
	assert.Equal(t, "b", p.Name)

	_, err = rosetta.Decode[person](in, rosetta.WithDuplicateKeys(true))
	require.Error(t, err)
	var le *source.LimitError
	require.True(t, errors.As(mappingErr(t, err).Log.Records()[0].Cause, &le))
	assert.Equal(t, source.CodeDuplicateKey, le.Code)
}

func TestMaxBytes(t *testing.T) {
	_, err := rosetta.Decode[person]([]byte(`{"name": "Bob"}`), rosetta.WithMaxBytes(4))
	require.Error(t, err)
	assert.ErrorIs(t, mappingErr(t, err).Log.Records()[0].Cause, source.ErrTooLarge)
}

func TestArraysAndMaps(t *testing.T) {
	ps, err := rosetta.DecodeArray[person]([]byte(`[{"name": "a"}, {"name": "b", "age": 3}]`))
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, 3, *ps[1].Age)

	out, err := rosetta.EncodeArray(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "a"}, {"name": "b", "age": 3}]`, string(out))

	_, err = rosetta.DecodeArray[person]([]byte(`[{"name": "a"}, {}]`))
	require.Error(t, err)
	assert.Equal(t, "$.1.name", mappingErr(t, err).Log.Errors()[0].Path.String())

	byID, err := rosetta.DecodeMap[person]([]byte(`{"x": {"name": "a"}, "y": {"name": "b"}}`))
	require.NoError(t, err)
	assert.Equal(t, "b", byID["y"].Name)

	out, err = rosetta.EncodeMap(byID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": {"name": "a"}, "y": {"name": "b"}}`, string(out))

	_, err = rosetta.DecodeArray[person]([]byte(`{"name": "a"}`))
	require.Error(t, err)
	assert.Equal(t, rosetta.WrongType, mappingErr(t, err).Log.Errors()[0].Category)
}

func TestEncode_Failure_ReturnsNoDocument(t *testing.T) {
	type num struct{ F float64 }
	m := func(v *num, s *rosetta.Session) { rosetta.Required(s.Key("f"), &v.F, rosetta.Float64) }
	out, err := rosetta.EncodeWith(num{F: posInf()}, m)
	require.Error(t, err)
	assert.Nil(t, out)
	errs := mappingErr(t, err).Log.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0].Cause, rosetta.ErrNotFinite)
}

func TestMappingError_Message(t *testing.T) {
	_, err := rosetta.Decode[team]([]byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, "rosetta: decode failed: value_missing at /title; value_missing at /lead; value_missing at /members", err.Error())

	me := mappingErr(t, err)
	assert.Equal(t, rosetta.DirectionDecode, me.Direction)
	assert.False(t, errors.Is(err, rosetta.ErrEncodeFailed))
}

func TestDecodeValue_AnyRoot(t *testing.T) {
	n, err := rosetta.DecodeValue([]byte(`42`), rosetta.Int)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	tags, err := rosetta.DecodeValue([]byte(`["a", null]`), rosetta.ArrayOfOptional(rosetta.String))
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Nil(t, tags[1])

	_, err = rosetta.DecodeValue([]byte(`"x"`), rosetta.Int)
	require.Error(t, err)
	r := mappingErr(t, err).Log.Errors()[0]
	assert.Equal(t, rosetta.WrongType, r.Category)
	assert.Equal(t, "$", r.Path.String())

	out, err := rosetta.EncodeValue(map[string]int{"b": 2, "a": 1}, rosetta.MapOf(rosetta.Int))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": 2}`, string(out))
}

func TestDecode_FloatsAreNotRangeChecked(t *testing.T) {
	type floats struct {
		F float32
		D float64
	}
	m := func(v *floats, s *rosetta.Session) {
		rosetta.Required(s.Key("f"), &v.F, rosetta.Float32)
		rosetta.Required(s.Key("d"), &v.D, rosetta.Float64)
	}
	var v floats
	require.NoError(t, rosetta.DecodeIntoString(`{"f": 1e40, "d": 1e400}`, &v, m))
	assert.True(t, math.IsInf(float64(v.F), 1))
	assert.True(t, math.IsInf(v.D, 1))

	require.NoError(t, rosetta.DecodeIntoString(`{"f": 1e-50, "d": 2.5}`, &v, m))
	assert.Equal(t, float32(0), v.F)
	assert.Equal(t, 2.5, v.D)
}
