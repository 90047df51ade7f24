package slot

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a hash of the held value: its own Hash method, a hash of
// the value itself for scalar and string types, and otherwise a hash of
// FullString. An empty slot hashes to 0.
func (s *Slot[P, T]) Hash() uint64 {
	if !s.Valid() {
		return 0
	}
	if h, ok := any(s.ptr).(Hasher); ok {
		return h.Hash()
	}
	if h, ok := scalarHash(reflect.ValueOf(s.ptr).Elem()); ok {
		return h
	}
	return xxhash.Sum64String(s.FullString())
}

// scalarHash hashes booleans, numbers and strings by type name and value.
func scalarHash(v reflect.Value) (uint64, bool) {
	var buf [16]byte
	var data []byte
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			buf[0] = 1
		}
		data = buf[:1]
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		data = binary.LittleEndian.AppendUint64(buf[:0], uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		data = binary.LittleEndian.AppendUint64(buf[:0], v.Uint())
	case reflect.Float32, reflect.Float64:
		data = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		data = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(real(c)))
		data = binary.LittleEndian.AppendUint64(data, math.Float64bits(imag(c)))
	case reflect.String:
		d := xxhash.New()
		d.WriteString(v.Type().String())
		d.WriteString(v.String())
		return d.Sum64(), true
	default:
		return 0, false
	}
	d := xxhash.New()
	d.WriteString(v.Type().String())
	d.Write(data)
	return d.Sum64(), true
}
