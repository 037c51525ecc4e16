package gc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrWireType is returned when a known field arrives with an unexpected
// protobuf wire type.
var ErrWireType = errors.New("gc: unexpected wire type")

// Message is a GC message payload that can be converted to and from its
// protobuf wire form. Zero valued fields are treated as unset: Marshal omits
// them and Unmarshal leaves them at their zero value. Unknown fields are
// skipped.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}

// enc builds a protobuf wire buffer field by field. Zero values are omitted.
type enc struct {
	buf []byte
}

func (e *enc) uint32(num protowire.Number, v uint32) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(v))
}

func (e *enc) uint64(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
}

func (e *enc) int32(num protowire.Number, v int32) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(int64(v)))
}

func (e *enc) boolean(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, 1)
}

func (e *enc) fixed32(num protowire.Number, v uint32) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.Fixed32Type)
	e.buf = protowire.AppendFixed32(e.buf, v)
}

func (e *enc) fixed64(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.Fixed64Type)
	e.buf = protowire.AppendFixed64(e.buf, v)
}

func (e *enc) float(num protowire.Number, v float32) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.Fixed32Type)
	e.buf = protowire.AppendFixed32(e.buf, math.Float32bits(v))
}

func (e *enc) bytes(num protowire.Number, v []byte) {
	if len(v) == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
}

func (e *enc) str(num protowire.Number, v string) {
	if v == "" {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, v)
}

// uint32Elem appends one element of a repeated varint field. Elements keep
// their presence on the wire even when zero.
func (e *enc) uint32Elem(num protowire.Number, v uint32) {
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(v))
}

// int32Elem appends one element of a repeated varint field. Elements keep
// their presence on the wire even when zero.
func (e *enc) int32Elem(num protowire.Number, v int32) {
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(int64(v)))
}

// bytesElem appends one element of a repeated bytes field. Elements keep
// their presence on the wire even when empty.
func (e *enc) bytesElem(num protowire.Number, v []byte) {
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
}

// msg appends a sub message. Unlike scalar fields it is written even when
// empty, so list elements keep their presence on the wire.
func (e *enc) msg(num protowire.Number, m Message) error {
	body, err := m.Marshal()
	if err != nil {
		return err
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, body)
	return nil
}

// dec walks a protobuf wire buffer field by field. Methods record the first
// error and turn all subsequent calls into no-ops.
type dec struct {
	buf []byte
	num protowire.Number
	typ protowire.Type
	e   error
}

func (d *dec) more() bool { return d.e == nil && len(d.buf) > 0 }

func (d *dec) err() error { return d.e }

func (d *dec) fail(n int) {
	if d.e == nil {
		d.e = protowire.ParseError(n)
	}
}

func (d *dec) badType() {
	if d.e == nil {
		d.e = fmt.Errorf("field %d: %w", d.num, ErrWireType)
	}
}

func (d *dec) tag() protowire.Number {
	if d.e != nil {
		return 0
	}
	num, typ, n := protowire.ConsumeTag(d.buf)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.buf = d.buf[n:]
	d.num, d.typ = num, typ
	return num
}

func (d *dec) skip() {
	if d.e != nil {
		return
	}
	n := protowire.ConsumeFieldValue(d.num, d.typ, d.buf)
	if n < 0 {
		d.fail(n)
		return
	}
	d.buf = d.buf[n:]
}

func (d *dec) varint() uint64 {
	if d.e != nil {
		return 0
	}
	if d.typ != protowire.VarintType {
		d.badType()
		return 0
	}
	v, n := protowire.ConsumeVarint(d.buf)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *dec) uint32() uint32 { return uint32(d.varint()) }

func (d *dec) uint64() uint64 { return d.varint() }

func (d *dec) int32() int32 { return int32(d.varint()) }

func (d *dec) boolean() bool { return d.varint() != 0 }

func (d *dec) fixed32() uint32 {
	if d.e != nil {
		return 0
	}
	if d.typ != protowire.Fixed32Type {
		d.badType()
		return 0
	}
	v, n := protowire.ConsumeFixed32(d.buf)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *dec) fixed64() uint64 {
	if d.e != nil {
		return 0
	}
	if d.typ != protowire.Fixed64Type {
		d.badType()
		return 0
	}
	v, n := protowire.ConsumeFixed64(d.buf)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *dec) float() float32 { return math.Float32frombits(d.fixed32()) }

// raw returns the contents of a length delimited field without copying. The
// slice aliases the input buffer.
func (d *dec) raw() []byte {
	if d.e != nil {
		return nil
	}
	if d.typ != protowire.BytesType {
		d.badType()
		return nil
	}
	v, n := protowire.ConsumeBytes(d.buf)
	if n < 0 {
		d.fail(n)
		return nil
	}
	d.buf = d.buf[n:]
	return v
}

// bytes returns a copy of a length delimited field that is safe to retain.
func (d *dec) bytes() []byte {
	v := d.raw()
	if len(v) == 0 {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (d *dec) str() string { return string(d.raw()) }

func (d *dec) msg(m Message) {
	body := d.raw()
	if d.e != nil {
		return
	}
	if err := m.Unmarshal(body); err != nil {
		d.e = err
	}
}

// uint32s appends a repeated varint field to dst, accepting both packed and
// unpacked encodings.
func (d *dec) uint32s(dst []uint32) []uint32 {
	if d.e != nil {
		return dst
	}
	if d.typ == protowire.BytesType {
		body := d.raw()
		for len(body) > 0 {
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				d.fail(n)
				return dst
			}
			body = body[n:]
			dst = append(dst, uint32(v))
		}
		return dst
	}
	return append(dst, d.uint32())
}

// int32s appends a repeated varint field to dst, accepting both packed and
// unpacked encodings.
func (d *dec) int32s(dst []int32) []int32 {
	if d.e != nil {
		return dst
	}
	if d.typ == protowire.BytesType {
		body := d.raw()
		for len(body) > 0 {
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				d.fail(n)
				return dst
			}
			body = body[n:]
			dst = append(dst, int32(v))
		}
		return dst
	}
	return append(dst, d.int32())
}
