package codec

import (
	"testing"
	"time"

	rosetta "github.com/bartekchlebek/Rosetta"
)

func TestTimeRFC3339_Converter_Basic(t *testing.T) {
	c := TimeRFC3339()

	in := "2025-01-01T00:00:00Z"
	r := c.Decode(in)
	if !r.OK() {
		t.Fatalf("decode failed: %+v", r)
	}
	if !r.Value.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", r.Value)
	}

	out, err := c.Encode(r.Value)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %v != %s", out, in)
	}
}

func TestTimeRFC3339_AcceptsNanosAndNormalizesToUTC(t *testing.T) {
	c := TimeRFC3339()
	r := c.Decode("2025-01-01T09:00:00.5+09:00")
	if !r.OK() {
		t.Fatalf("decode failed: %+v", r)
	}
	out, err := c.Encode(r.Value)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2025-01-01T00:00:00.5Z" {
		t.Fatalf("unexpected canonical form: %v", out)
	}
}

func TestTimeRFC3339_Invalid(t *testing.T) {
	c := TimeRFC3339()
	r := c.Decode("not-a-time")
	if r.Outcome != rosetta.Unexpected || r.Category != rosetta.ConversionFailed {
		t.Fatalf("expected conversion failure, got %+v", r)
	}
	r = c.Decode(float64(12))
	if r.Outcome != rosetta.Unexpected || r.Category != rosetta.WrongType {
		t.Fatalf("expected wrong type, got %+v", r)
	}
}

func TestTimeLayout_And_UnixSeconds(t *testing.T) {
	d := TimeLayout("2006-01-02", nil)
	r := d.Decode("2024-02-29")
	if !r.OK() || r.Value.Day() != 29 {
		t.Fatalf("date decode: %+v", r)
	}
	if out, err := d.Encode(r.Value); err != nil || out != "2024-02-29" {
		t.Fatalf("date encode: %v %v", out, err)
	}

	u := UnixSeconds()
	ru := u.Decode(float64(86400))
	if !ru.OK() || !ru.Value.Equal(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unix decode: %+v", ru)
	}
}
