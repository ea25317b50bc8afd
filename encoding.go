package cronexp

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/netresearch/go-cronexp/internal/codec"
)

// MarshalText returns the canonical expression, so schedules can be used
// directly in JSON, YAML and other text formats.
func (s Schedule) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: zero Schedule", ErrInvalidEncoding)
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses an expression into s.
func (s *Schedule) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// wireVersion is bumped whenever wireSchedule changes shape.
const wireVersion = 1

// wireField is one field in binary form. Bits holds the member words of a
// KindSet field and is empty otherwise.
type wireField struct {
	Kind uint8    `cbor:"1,keyasint"`
	Bits []uint64 `cbor:"2,keyasint,omitempty"`
}

type wireSchedule struct {
	Version int         `cbor:"1,keyasint"`
	Fields  []wireField `cbor:"2,keyasint"`
}

// MarshalCBOR encodes s field by field using deterministic CBOR.
func (s Schedule) MarshalCBOR() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: zero Schedule", ErrInvalidEncoding)
	}
	w := wireSchedule{Version: wireVersion, Fields: make([]wireField, numUnits)}
	for u := Unit(0); u < numUnits; u++ {
		f := s.Field(u)
		w.Fields[u].Kind = uint8(f.kind)
		if f.kind == KindSet {
			n := len(f.bits)
			for n > 0 && f.bits[n-1] == 0 {
				n--
			}
			w.Fields[u].Bits = append([]uint64(nil), f.bits[:n]...)
		}
	}
	return codec.Marshal(w)
}

// UnmarshalCBOR decodes data written by MarshalCBOR. Anything the parser
// could not have produced fails with ErrInvalidEncoding.
func (s *Schedule) UnmarshalCBOR(data []byte) error {
	var w wireSchedule
	if err := codec.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	if w.Version != wireVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, w.Version)
	}
	if len(w.Fields) != int(numUnits) {
		return fmt.Errorf("%w: want %d fields, got %d", ErrInvalidEncoding, numUnits, len(w.Fields))
	}

	var fields [numUnits]Field
	for u := Unit(0); u < numUnits; u++ {
		f, err := decodeField(u, w.Fields[u])
		if err != nil {
			return err
		}
		fields[u] = f
	}
	if (fields[Second].kind == KindIgnored) != (fields[Year].kind == KindUnbounded) {
		return fmt.Errorf("%w: ignored seconds require unbounded years", ErrInvalidEncoding)
	}

	*s = Schedule{
		second: fields[Second],
		minute: fields[Minute],
		hour:   fields[Hour],
		dom:    fields[DayOfMonth],
		month:  fields[Month],
		dow:    fields[DayOfWeek],
		year:   fields[Year],
	}
	return nil
}

func decodeField(u Unit, w wireField) (Field, error) {
	kind := Kind(w.Kind)
	switch {
	case kind == KindAny, kind == KindSet:
	case kind == KindIgnored && u == Second:
	case kind == KindUnbounded && u == Year:
	default:
		return Field{}, fmt.Errorf("%w: kind %s not allowed for %s", ErrInvalidEncoding, kind, u)
	}

	if kind != KindSet {
		if len(w.Bits) != 0 {
			return Field{}, fmt.Errorf("%w: %s field of kind %s carries members", ErrInvalidEncoding, u, kind)
		}
		return Field{unit: u, kind: kind}, nil
	}

	var b bitset
	if len(w.Bits) > len(b) {
		return Field{}, fmt.Errorf("%w: %s has %d member words", ErrInvalidEncoding, u, len(w.Bits))
	}
	copy(b[:], w.Bits)
	domain := mask(fieldBounds[u].size())
	for i := range b {
		if b[i]&^domain[i] != 0 {
			return Field{}, fmt.Errorf("%w: %s member outside its domain", ErrInvalidEncoding, u)
		}
	}
	switch b {
	case bitset{}:
		return Field{}, fmt.Errorf("%w: %s has no members", ErrInvalidEncoding, u)
	case domain:
		// The parser stores a full domain as KindAny.
		return Field{}, fmt.Errorf("%w: %s lists its whole domain", ErrInvalidEncoding, u)
	}
	return Field{unit: u, kind: KindSet, bits: b}, nil
}

// fingerprintKey separates schedule fingerprints from any other BLAKE3
// use of the same text.
var fingerprintKey = blake3.Sum256([]byte("cronexp schedule fingerprint v1"))

// Fingerprint returns a hex BLAKE3 digest of the canonical expression.
// Equal schedules have equal fingerprints in every process, so it can key
// caches shared across machines. The zero Schedule has an empty fingerprint.
func (s Schedule) Fingerprint() string {
	if !s.valid() {
		return ""
	}
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("cronexp: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(s.String()))
	return hex.EncodeToString(hasher.Sum(nil))
}
