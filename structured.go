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
	"fmt"
	"time"
)

// dateTime reads a dateTimeNumber. An all-zero field is treated as unset
// and decodes to the zero time.
func (r *reader) dateTime() time.Time {
	start := r.offset()
	var f [6]int
	for i := range f {
		f[i] = int(r.u16())
	}
	if r.err != nil || f == [6]int{} {
		return time.Time{}
	}
	year, month, day := f[0], f[1], f[2]
	hour, minute, second := f[3], f[4], f[5]
	if year < 1 || month < 1 || month > 12 ||
		day < 1 || day > daysIn(year, month) ||
		hour > 23 || minute > 59 || second > 59 {
		r.fail(invalidProfile(start, "invalid date %04d-%02d-%02d %02d:%02d:%02d",
			year, month, day, hour, minute, second))
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (w *writer) dateTime(t time.Time) {
	if t.IsZero() {
		w.zeros(12)
		return
	}
	t = t.UTC()
	w.u16(uint16(t.Year()))
	w.u16(uint16(t.Month()))
	w.u16(uint16(t.Day()))
	w.u16(uint16(t.Hour()))
	w.u16(uint16(t.Minute()))
	w.u16(uint16(t.Second()))
}

// NewVersion returns the version number major.minor.bugfix.
// Minor and bugfix are limited to the range 0-15.
func NewVersion(major, minor, bugfix int) Version {
	return Version(uint32(major&0xFF)<<24 | uint32(minor&0xF)<<20 | uint32(bugfix&0xF)<<16)
}

// Major returns the major version number.
func (v Version) Major() int { return int(v >> 24) }

// Minor returns the minor version number.
func (v Version) Minor() int { return int(v >> 20 & 0xF) }

// Bugfix returns the bugfix version number.
func (v Version) Bugfix() int { return int(v >> 16 & 0xF) }

// Flags16 holds 16 independent flags. Flag 0 is stored in the most
// significant bit.
type Flags16 [16]bool

func (r *reader) flags16() Flags16 {
	v := r.u16()
	var f Flags16
	for i := range f {
		f[i] = v&(0x8000>>i) != 0
	}
	return f
}

func (w *writer) flags16(f Flags16) {
	var v uint16
	for i, set := range f {
		if set {
			v |= 0x8000 >> i
		}
	}
	w.u16(v)
}

// DeviceAttributes describes the medium a device profile applies to.
type DeviceAttributes struct {
	Transparency bool // transparent instead of reflective
	Matte        bool // matte instead of glossy
	Negative     bool // negative instead of positive polarity
	BlackWhite   bool // black and white instead of colour media

	Vendor [3]byte
}

func (r *reader) deviceAttributes() DeviceAttributes {
	b := r.u8()
	a := DeviceAttributes{
		Transparency: b&0x80 != 0,
		Matte:        b&0x40 != 0,
		Negative:     b&0x20 != 0,
		BlackWhite:   b&0x10 != 0,
	}
	copy(a.Vendor[:], r.bytes(3))
	return a
}

func (w *writer) deviceAttributes(a DeviceAttributes) {
	var b byte
	if a.Transparency {
		b |= 0x80
	}
	if a.Matte {
		b |= 0x40
	}
	if a.Negative {
		b |= 0x20
	}
	if a.BlackWhite {
		b |= 0x10
	}
	w.u8(b)
	w.bytes(a.Vendor[:])
}

// XYZNumber is a CIE XYZ tristimulus value.
type XYZNumber struct {
	X, Y, Z float64
}

func (r *reader) xyz() XYZNumber {
	return XYZNumber{X: r.fix16(), Y: r.fix16(), Z: r.fix16()}
}

func (w *writer) xyz(v XYZNumber) {
	w.fix16(v.X)
	w.fix16(v.Y)
	w.fix16(v.Z)
}

// ProfileID is the 128-bit MD5 digest identifying a profile.
type ProfileID [4]uint32

// IsZero reports whether the ID is unset.
func (id ProfileID) IsZero() bool {
	return id == ProfileID{}
}

func (id ProfileID) String() string {
	return fmt.Sprintf("%08x%08x%08x%08x", id[0], id[1], id[2], id[3])
}

func profileIDFromBytes(b []byte) ProfileID {
	var id ProfileID
	for i := range id {
		id[i] = byteOrder.Uint32(b[4*i:])
	}
	return id
}

func (r *reader) profileID() ProfileID {
	var id ProfileID
	for i := range id {
		id[i] = r.u32()
	}
	return id
}

func (w *writer) profileID(id ProfileID) {
	for _, v := range id {
		w.u32(v)
	}
}

// PositionNumber locates a block of data relative to the start of the
// enclosing tag data entry.
type PositionNumber struct {
	Offset uint32
	Size   uint32
}

func (r *reader) position() PositionNumber {
	return PositionNumber{Offset: r.u32(), Size: r.u32()}
}

// ResponseNumber is one measurement of a device response curve.
type ResponseNumber struct {
	DeviceCode       uint16
	MeasurementValue float64
}

func (r *reader) response() ResponseNumber {
	code := r.u16()
	r.skip(2)
	return ResponseNumber{DeviceCode: code, MeasurementValue: r.fix16()}
}

func (w *writer) response(v ResponseNumber) {
	w.u16(v.DeviceCode)
	w.zeros(2)
	w.fix16(v.MeasurementValue)
}

// NamedColor is one entry of a named colour list.
type NamedColor struct {
	Name   string    // root name, at most 31 ASCII characters
	PCS    [3]uint16 // PCS coordinates
	Device []uint16  // device coordinates, may be empty
}

func (r *reader) namedColor(deviceCoords int) NamedColor {
	c := NamedColor{Name: r.ascii(32)}
	for i := range c.PCS {
		c.PCS[i] = r.u16()
	}
	if deviceCoords > 0 {
		c.Device = make([]uint16, deviceCoords)
		for i := range c.Device {
			c.Device[i] = r.u16()
		}
	}
	return c
}

func (w *writer) namedColor(c NamedColor, deviceCoords int) {
	w.asciiZ(c.Name, 32)
	for _, v := range c.PCS {
		w.u16(v)
	}
	for i := range deviceCoords {
		var v uint16
		if i < len(c.Device) {
			v = c.Device[i]
		}
		w.u16(v)
	}
}

// ProfileDescription describes one profile of a profile sequence.
type ProfileDescription struct {
	DeviceManufacturer uint32
	DeviceModel        uint32
	DeviceAttributes   DeviceAttributes
	VendorAttributes   uint32 // second half of the 8-byte attribute field
	Technology         TagSignature

	Manufacturer []LocalizedUnicode
	Model        []LocalizedUnicode
}

func (r *reader) profileDescription() ProfileDescription {
	d := ProfileDescription{
		DeviceManufacturer: r.u32(),
		DeviceModel:        r.u32(),
		DeviceAttributes:   r.deviceAttributes(),
		VendorAttributes:   r.u32(),
		Technology:         TagSignature(r.u32()),
	}
	d.Manufacturer = r.embeddedText()
	d.Model = r.embeddedText()
	return d
}

func (w *writer) profileDescription(d ProfileDescription) {
	w.u32(d.DeviceManufacturer)
	w.u32(d.DeviceModel)
	w.deviceAttributes(d.DeviceAttributes)
	w.u32(d.VendorAttributes)
	w.u32(uint32(d.Technology))
	w.embeddedText(d.Manufacturer)
	w.embeddedText(d.Model)
}

// embeddedText reads a description embedded in a larger structure.
// Both textDescriptionType and multiLocalizedUnicodeType are accepted.
func (r *reader) embeddedText() []LocalizedUnicode {
	if r.err != nil {
		return nil
	}
	s := r.at(r.pos, len(r.data))
	if sig := TypeSignature(s.peekU32()); sig != TypeMultiLocalizedUnicode && sig != TypeTextDescription {
		r.fail(corrupt(r.offset(), "embedded text has type %s", sig))
		return nil
	}
	var res []LocalizedUnicode
	switch e := s.entry().(type) {
	case *MultiLocalizedUnicodeEntry:
		res = e.Strings
	case *TextDescriptionEntry:
		res = e.localized()
	}
	if s.err != nil {
		r.fail(s.err)
		return nil
	}
	r.pos += s.pos
	return res
}

func (w *writer) embeddedText(text []LocalizedUnicode) {
	w.entry(&MultiLocalizedUnicodeEntry{Strings: text})
}

func (r *reader) peekU32() uint32 {
	if r.remaining() < 4 {
		return 0
	}
	return byteOrder.Uint32(r.data[r.pos:])
}
