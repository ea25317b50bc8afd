package cronexp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/netresearch/go-cronexp/internal/codec"
)

var encodingSamples = []string{
	"* * * * *",
	"0 0 * * 0",
	"*/5 9-17 * * MON-FRI",
	"0 0 29 2 *",
	"* * * * * *",
	"0 30 9 * * MON-FRI",
	"0 0 0 1 1 * 2030",
	"0 30 9,12,15 1,15 May-Aug Mon,Wed,Fri 2018/2",
	"59 59 23 31 12 7 2099",
}

func TestCBORRoundTrip(t *testing.T) {
	for _, expr := range encodingSamples {
		t.Run(expr, func(t *testing.T) {
			s := MustParse(expr)
			data, err := s.MarshalCBOR()
			if err != nil {
				t.Fatal(err)
			}
			var out Schedule
			if err := out.UnmarshalCBOR(data); err != nil {
				t.Fatal(err)
			}
			if out != s {
				t.Errorf("decoded %q, want %q", out, s)
			}

			// Equal schedules encode to equal bytes.
			again, _ := MustParse(s.String()).MarshalCBOR()
			if string(again) != string(data) {
				t.Error("encoding is not deterministic")
			}
		})
	}
}

func TestCBORInStruct(t *testing.T) {
	type job struct {
		Name     string   `cbor:"1,keyasint"`
		Schedule Schedule `cbor:"2,keyasint"`
	}
	in := job{Name: "report", Schedule: MustParse("0 30 9 * * MON-FRI")}
	data, err := codec.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out job
	if err := codec.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestCBORRejects(t *testing.T) {
	valid := func() wireSchedule {
		var w wireSchedule
		data, _ := MustParse("0 30 9 * * MON-FRI").MarshalCBOR()
		if err := codec.Unmarshal(data, &w); err != nil {
			t.Fatal(err)
		}
		return w
	}

	tests := []struct {
		name   string
		mutate func(*wireSchedule)
	}{
		{"unsupported version", func(w *wireSchedule) { w.Version = 2 }},
		{"missing field", func(w *wireSchedule) { w.Fields = w.Fields[:6] }},
		{"ignored minute", func(w *wireSchedule) { w.Fields[Minute] = wireField{Kind: uint8(KindIgnored)} }},
		{"unbounded hour", func(w *wireSchedule) { w.Fields[Hour] = wireField{Kind: uint8(KindUnbounded)} }},
		{"unknown kind", func(w *wireSchedule) { w.Fields[Hour] = wireField{Kind: 9} }},
		{"members on any", func(w *wireSchedule) { w.Fields[Month] = wireField{Kind: uint8(KindAny), Bits: []uint64{1}} }},
		{"too many words", func(w *wireSchedule) { w.Fields[Year] = wireField{Kind: uint8(KindSet), Bits: []uint64{1, 0, 0, 0}} }},
		{"minute outside domain", func(w *wireSchedule) { w.Fields[Minute] = wireField{Kind: uint8(KindSet), Bits: []uint64{1 << 60}} }},
		{"year outside domain", func(w *wireSchedule) { w.Fields[Year] = wireField{Kind: uint8(KindSet), Bits: []uint64{0, 0, 1 << 2}} }},
		{"empty set", func(w *wireSchedule) { w.Fields[Hour] = wireField{Kind: uint8(KindSet)} }},
		{"whole domain as set", func(w *wireSchedule) { w.Fields[Hour] = wireField{Kind: uint8(KindSet), Bits: []uint64{1<<24 - 1}} }},
		{"ignored seconds with bounded years", func(w *wireSchedule) { w.Fields[Second] = wireField{Kind: uint8(KindIgnored)} }},
		{"unbounded years with seconds", func(w *wireSchedule) { w.Fields[Year] = wireField{Kind: uint8(KindUnbounded)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid()
			tt.mutate(&w)
			data, err := codec.Marshal(w)
			if err != nil {
				t.Fatal(err)
			}
			var s Schedule
			err = s.UnmarshalCBOR(data)
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("expected ErrInvalidEncoding, got %v", err)
			}
			if s != (Schedule{}) {
				t.Error("schedule modified on error")
			}
		})
	}

	t.Run("garbage", func(t *testing.T) {
		var s Schedule
		if err := s.UnmarshalCBOR([]byte{0xff, 0x00}); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("expected ErrInvalidEncoding, got %v", err)
		}
	})
}

func TestMarshalZeroSchedule(t *testing.T) {
	var s Schedule
	if _, err := s.MarshalCBOR(); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("MarshalCBOR: expected ErrInvalidEncoding, got %v", err)
	}
	if _, err := s.MarshalText(); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("MarshalText: expected ErrInvalidEncoding, got %v", err)
	}
}

func TestTextEncoding(t *testing.T) {
	type config struct {
		Backup Schedule `json:"backup" yaml:"backup"`
		Report Schedule `json:"report" yaml:"report"`
	}
	in := config{
		Backup: MustParse("0 3 * * *"),
		Report: MustParse("0 30 9 * * Mon-Fri"),
	}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		if want := `{"backup":"0 3 * * *","report":"0 30 9 * * MON-FRI"}`; string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
		var out config
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out != in {
			t.Errorf("got %+v, want %+v", out, in)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		var out config
		if err := yaml.Unmarshal(data, &out); err != nil {
			t.Fatalf("%v\n%s", err, data)
		}
		if out != in {
			t.Errorf("got %+v, want %+v", out, in)
		}
	})

	t.Run("invalid text", func(t *testing.T) {
		var out config
		err := json.Unmarshal([]byte(`{"backup":"61 * * * *"}`), &out)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
		err = yaml.Unmarshal([]byte("backup: \"* * *\"\n"), &out)
		if err == nil || !strings.Contains(err.Error(), "invalid number of fields") {
			t.Errorf("expected a field count error, got %v", err)
		}
	})
}

func TestFingerprint(t *testing.T) {
	a := MustParse("0 0 * * 0")
	b := MustParse("0 0 * * SUN")
	c := MustParse("0 0 * * 1")

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal schedules have different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different schedules share a fingerprint")
	}
	if got := a.Fingerprint(); len(got) != 64 || strings.Trim(got, "0123456789abcdef") != "" {
		t.Errorf("fingerprint %q is not 32 bytes of hex", got)
	}
	if (Schedule{}).Fingerprint() != "" {
		t.Error("zero schedule should have an empty fingerprint")
	}

	// Every sample is distinct.
	seen := map[string]string{}
	for _, expr := range encodingSamples {
		fp := MustParse(expr).Fingerprint()
		if prev, ok := seen[fp]; ok {
			t.Errorf("%q and %q share fingerprint %s", prev, expr, fp)
		}
		seen[fp] = expr
	}
}
