// seehuhn.de/go/iccprofile - read and write ICC profiles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package icc

import (
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/encoding/unicode"
)

// All multi-byte values in an ICC profile are big-endian, independent
// of the host byte order.
var byteOrder = binary.BigEndian

// Representable ranges of the fixed-point encodings.
const (
	minFix16   = -32768.0
	maxFix16   = 32767 + 65535.0/65536
	maxUFix16  = 65535 + 65535.0/65536
	maxU1Fix15 = 65535.0 / 32768
	maxUFix8   = 65535.0 / 256
)

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// reader decodes primitive values from a byte slice.
//
// The first failed read records an error; all later reads return zero
// values, so that callers only need to check r.err once at the end.
type reader struct {
	data []byte
	pos  int
	base int // absolute offset of data[0], used in error messages
	err  error

	// budget, if set, is the number of bytes which may still be decoded.
	// All readers derived from one another share the same budget, so that
	// offset tables which point at the same data over and over cannot
	// multiply the work.
	budget *int
}

// decodeBudgetFactor limits the number of bytes decoded from a profile
// to this multiple of the profile size.
const decodeBudgetFactor = 8

func newReader(data []byte, base int) *reader {
	return &reader{data: data, base: base}
}

// newLimitedReader returns a reader with a fresh decoding budget.
func newLimitedReader(data []byte, base int) *reader {
	budget := decodeBudgetFactor * len(data)
	return &reader{data: data, base: base, budget: &budget}
}

// at returns a reader for r.data[start:end] which shares the budget of r.
// The caller must check the bounds.
func (r *reader) at(start, end int) *reader {
	s := newReader(r.data[start:end], r.base+start)
	s.budget = r.budget
	return s
}

// charge deducts n bytes from the decoding budget.
func (r *reader) charge(n int) bool {
	if r.budget == nil {
		return true
	}
	if n > *r.budget {
		r.fail(corrupt(r.offset(), "profile data is referenced too often"))
		return false
	}
	*r.budget -= n
	return true
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// offset returns the absolute position of the cursor.
func (r *reader) offset() int {
	return r.base + r.pos
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

// need checks that n more bytes can be read.
func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || n > r.remaining() {
		r.fail(corrupt(r.offset(), "need %d bytes, only %d left", n, r.remaining()))
		return false
	}
	return r.charge(n)
}

// count validates an element count read from the data against the number
// of bytes left, before anything is allocated.
func (r *reader) count(n uint64, elemSize int) (int, bool) {
	if r.err != nil {
		return 0, false
	}
	if elemSize > 0 && n > uint64(r.remaining())/uint64(elemSize) {
		r.fail(corrupt(r.offset(), "count %d exceeds remaining data", n))
		return 0, false
	}
	if r.budget != nil && int(n)*elemSize > *r.budget {
		r.fail(corrupt(r.offset(), "profile data is referenced too often"))
		return 0, false
	}
	return int(n), true
}

// seek moves the cursor to pos, relative to the start of r.data.
func (r *reader) seek(pos int) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > len(r.data) {
		r.fail(corrupt(r.base+pos, "offset outside of data"))
		return
	}
	r.pos = pos
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.pos += n
	}
}

// bytes returns a copy of the next n bytes.
func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := make([]byte, n)
	copy(b, r.data[r.pos:])
	r.pos += n
	return b
}

func (r *reader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *reader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := byteOrder.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := byteOrder.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := byteOrder.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

func (r *reader) i16() int16 { return int16(r.u16()) }
func (r *reader) i32() int32 { return int32(r.u32()) }
func (r *reader) i64() int64 { return int64(r.u64()) }

func (r *reader) f32() float32 { return math.Float32frombits(r.u32()) }
func (r *reader) f64() float64 { return math.Float64frombits(r.u64()) }

// fix16 reads an s15Fixed16Number.
func (r *reader) fix16() float64 { return float64(r.i32()) / 65536 }

// ufix16 reads a u16Fixed16Number.
func (r *reader) ufix16() float64 { return float64(r.u32()) / 65536 }

// u1fix15 reads a u1Fixed15Number.
func (r *reader) u1fix15() float64 { return float64(r.u16()) / 32768 }

// ufix8 reads a u8Fixed8Number.
func (r *reader) ufix8() float64 { return float64(r.u16()) / 256 }

// ascii reads a fixed-length ASCII field. The string ends at the first
// NUL byte.
func (r *reader) ascii(n int) string {
	if !r.need(n) {
		return ""
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// unicode reads n bytes of UTF-16BE text.
func (r *reader) unicode(n int) string {
	if !r.need(n) {
		return ""
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return decodeUTF16BE(b)
}

func decodeUTF16BE(b []byte) string {
	s, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

// writer encodes primitive values into a growing byte slice.
type writer struct {
	buf []byte
	err error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) len() int {
	return len(w.buf)
}

func (w *writer) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) zeros(n int) {
	for range n {
		w.buf = append(w.buf, 0)
	}
}

// align4 pads the buffer with zero bytes to a multiple of four.
func (w *writer) align4() {
	w.zeros(pad4(len(w.buf)) - len(w.buf))
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	w.buf = byteOrder.AppendUint16(w.buf, v)
}

func (w *writer) u32(v uint32) {
	w.buf = byteOrder.AppendUint32(w.buf, v)
}

func (w *writer) u64(v uint64) {
	w.buf = byteOrder.AppendUint64(w.buf, v)
}

func (w *writer) i16(v int16) { w.u16(uint16(v)) }
func (w *writer) i32(v int32) { w.u32(uint32(v)) }
func (w *writer) i64(v int64) { w.u64(uint64(v)) }

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }
func (w *writer) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *writer) fix16(v float64)   { w.i32(encodeFix16(v)) }
func (w *writer) ufix16(v float64)  { w.u32(encodeUFix16(v)) }
func (w *writer) u1fix15(v float64) { w.u16(encodeU1Fix15(v)) }
func (w *writer) ufix8(v float64)   { w.u16(encodeUFix8(v)) }

// putU32 overwrites four bytes at position pos.
func (w *writer) putU32(pos int, v uint32) {
	byteOrder.PutUint32(w.buf[pos:], v)
}

// ascii writes s as a fixed-length field of n bytes. Short strings are
// padded with spaces, long strings are truncated.
func (w *writer) ascii(s string, n int) {
	w.padded(s, n, ' ')
}

// asciiZ writes s as a fixed-length, NUL-padded field of n bytes.
// At most n-1 bytes of s are used, so the field is always terminated.
func (w *writer) asciiZ(s string, n int) {
	if len(s) > n-1 {
		s = s[:n-1]
	}
	w.padded(s, n, 0)
}

func (w *writer) padded(s string, n int, pad byte) {
	if len(s) > n {
		s = s[:n]
	}
	w.buf = append(w.buf, s...)
	for range n - len(s) {
		w.buf = append(w.buf, pad)
	}
}

// unicode writes s as UTF-16BE and returns the number of bytes written.
func (w *writer) unicode(s string) int {
	b, err := encodeUTF16BE(s)
	if err != nil {
		w.fail(err)
		return 0
	}
	w.buf = append(w.buf, b...)
	return len(b)
}

func encodeUTF16BE(s string) ([]byte, error) {
	return utf16BE.NewEncoder().Bytes([]byte(s))
}

func encodeFix16(v float64) int32 {
	return int32(math.Round(clamp(finite(v), minFix16, maxFix16) * 65536))
}

func encodeUFix16(v float64) uint32 {
	return uint32(math.Round(clamp(finite(v), 0, maxUFix16) * 65536))
}

func encodeU1Fix15(v float64) uint16 {
	return uint16(math.Round(clamp(finite(v), 0, maxU1Fix15) * 32768))
}

func encodeUFix8(v float64) uint16 {
	return uint16(math.Round(clamp(finite(v), 0, maxUFix8) * 256))
}

// finite maps NaN to zero. Infinities are left to the clamp.
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pad4(n int) int {
	return (n + 3) &^ 3
}
