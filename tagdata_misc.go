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

import "time"

// ChromaticityEntry represents a chromaticityType (chrm) tag data entry,
// giving the CIE xy coordinates of the phosphors or colorants of a device.
type ChromaticityEntry struct {
	// ColorantType identifies a standard set of colorants (1 = ITU-R BT.709,
	// 2 = SMPTE RP145, 3 = EBU Tech. 3213-E, 4 = P22), or 0 if the
	// coordinates are device specific.
	ColorantType uint16
	Channels     [][2]float64 // xy coordinates for each channel
}

func (*ChromaticityEntry) Signature() TypeSignature { return TypeChromaticity }
func (*ChromaticityEntry) isTagDataEntry()          {}

func readChromaticity(r *reader) *ChromaticityEntry {
	n, ok := r.count(uint64(r.u16()), 8)
	e := &ChromaticityEntry{ColorantType: r.u16()}
	if !ok {
		return nil
	}
	e.Channels = make([][2]float64, n)
	for i := range e.Channels {
		e.Channels[i] = [2]float64{r.ufix16(), r.ufix16()}
	}
	return e
}

func writeChromaticity(w *writer, e *ChromaticityEntry) {
	w.u16(uint16(len(e.Channels)))
	w.u16(e.ColorantType)
	for _, xy := range e.Channels {
		w.ufix16(xy[0])
		w.ufix16(xy[1])
	}
}

// ColorantOrderEntry represents a colorantOrderType (clro) tag data entry.
// Order[i] is the index of the colorant printed in the i-th position.
type ColorantOrderEntry struct {
	Order []byte
}

func (*ColorantOrderEntry) Signature() TypeSignature { return TypeColorantOrder }
func (*ColorantOrderEntry) isTagDataEntry()          {}

func readColorantOrder(r *reader) *ColorantOrderEntry {
	n, ok := r.count(uint64(r.u32()), 1)
	if !ok {
		return nil
	}
	return &ColorantOrderEntry{Order: r.bytes(n)}
}

// Colorant is one entry of a colorant table.
type Colorant struct {
	Name string    // at most 31 ASCII characters
	PCS  [3]uint16 // PCS coordinates of the colorant
}

// ColorantTableEntry represents a colorantTableType (clrt) tag data entry.
type ColorantTableEntry struct {
	Colorants []Colorant
}

func (*ColorantTableEntry) Signature() TypeSignature { return TypeColorantTable }
func (*ColorantTableEntry) isTagDataEntry()          {}

func readColorantTable(r *reader) *ColorantTableEntry {
	n, ok := r.count(uint64(r.u32()), 38)
	if !ok {
		return nil
	}
	e := &ColorantTableEntry{Colorants: make([]Colorant, n)}
	for i := range e.Colorants {
		c := &e.Colorants[i]
		c.Name = r.ascii(32)
		for j := range c.PCS {
			c.PCS[j] = r.u16()
		}
	}
	return e
}

func writeColorantTable(w *writer, e *ColorantTableEntry) {
	w.u32(uint32(len(e.Colorants)))
	for _, c := range e.Colorants {
		w.asciiZ(c.Name, 32)
		for _, v := range c.PCS {
			w.u16(v)
		}
	}
}

// DateTimeEntry represents a dateTimeType (dtim) tag data entry.
// The zero time is stored as an all-zero field.
type DateTimeEntry struct {
	Value time.Time
}

func (*DateTimeEntry) Signature() TypeSignature { return TypeDateTime }
func (*DateTimeEntry) isTagDataEntry()          {}

// MeasurementEntry represents a measurementType (meas) tag data entry.
type MeasurementEntry struct {
	Observer   uint32 // 1 = CIE 1931, 2 = CIE 1964
	Backing    XYZNumber
	Geometry   uint32 // 1 = 0/45 or 45/0, 2 = 0/d or d/0
	Flare      float64
	Illuminant uint32 // 1 = D50, 2 = D65, ...
}

func (*MeasurementEntry) Signature() TypeSignature { return TypeMeasurement }
func (*MeasurementEntry) isTagDataEntry()          {}

func readMeasurement(r *reader) *MeasurementEntry {
	return &MeasurementEntry{
		Observer:   r.u32(),
		Backing:    r.xyz(),
		Geometry:   r.u32(),
		Flare:      r.ufix16(),
		Illuminant: r.u32(),
	}
}

func writeMeasurement(w *writer, e *MeasurementEntry) {
	w.u32(e.Observer)
	w.xyz(e.Backing)
	w.u32(e.Geometry)
	w.ufix16(e.Flare)
	w.u32(e.Illuminant)
}

// NamedColor2Entry represents a namedColor2Type (ncl2) tag data entry.
type NamedColor2Entry struct {
	VendorFlags  uint32
	Prefix       string // at most 31 ASCII characters
	Suffix       string // at most 31 ASCII characters
	DeviceCoords int    // number of device coordinates per colour
	Colors       []NamedColor
}

func (*NamedColor2Entry) Signature() TypeSignature { return TypeNamedColor2 }
func (*NamedColor2Entry) isTagDataEntry()          {}

func readNamedColor2(r *reader) *NamedColor2Entry {
	e := &NamedColor2Entry{VendorFlags: r.u32()}
	count := r.u32()
	coords := r.u32()
	e.Prefix = r.ascii(32)
	e.Suffix = r.ascii(32)
	if r.err != nil {
		return nil
	}
	if coords > 15 {
		r.fail(corrupt(r.offset()-72, "%d device coordinates per named colour", coords))
		return nil
	}
	e.DeviceCoords = int(coords)
	n, ok := r.count(uint64(count), 38+2*e.DeviceCoords)
	if !ok {
		return nil
	}
	e.Colors = make([]NamedColor, n)
	for i := range e.Colors {
		e.Colors[i] = r.namedColor(e.DeviceCoords)
	}
	return e
}

func writeNamedColor2(w *writer, e *NamedColor2Entry) {
	w.u32(e.VendorFlags)
	w.u32(uint32(len(e.Colors)))
	w.u32(uint32(e.DeviceCoords))
	w.asciiZ(e.Prefix, 32)
	w.asciiZ(e.Suffix, 32)
	for _, c := range e.Colors {
		w.namedColor(c, e.DeviceCoords)
	}
}

// S15Fixed16ArrayEntry represents an s15Fixed16ArrayType (sf32) tag data
// entry, for example the chromatic adaptation matrix.
type S15Fixed16ArrayEntry struct {
	Values []float64
}

func (*S15Fixed16ArrayEntry) Signature() TypeSignature { return TypeS15Fixed16Array }
func (*S15Fixed16ArrayEntry) isTagDataEntry()          {}

// U16Fixed16ArrayEntry represents a u16Fixed16ArrayType (uf32) tag data
// entry.
type U16Fixed16ArrayEntry struct {
	Values []float64
}

func (*U16Fixed16ArrayEntry) Signature() TypeSignature { return TypeU16Fixed16Array }
func (*U16Fixed16ArrayEntry) isTagDataEntry()          {}

// SignatureEntry represents a signatureType (sig) tag data entry, for
// example the technology tag.
type SignatureEntry struct {
	Value uint32
}

func (*SignatureEntry) Signature() TypeSignature { return TypeSignatureType }
func (*SignatureEntry) isTagDataEntry()          {}

// UInt8ArrayEntry represents a uInt8ArrayType (ui08) tag data entry.
type UInt8ArrayEntry struct {
	Values []uint8
}

func (*UInt8ArrayEntry) Signature() TypeSignature { return TypeUInt8Array }
func (*UInt8ArrayEntry) isTagDataEntry()          {}

// UInt16ArrayEntry represents a uInt16ArrayType (ui16) tag data entry.
type UInt16ArrayEntry struct {
	Values []uint16
}

func (*UInt16ArrayEntry) Signature() TypeSignature { return TypeUInt16Array }
func (*UInt16ArrayEntry) isTagDataEntry()          {}

// UInt32ArrayEntry represents a uInt32ArrayType (ui32) tag data entry.
type UInt32ArrayEntry struct {
	Values []uint32
}

func (*UInt32ArrayEntry) Signature() TypeSignature { return TypeUInt32Array }
func (*UInt32ArrayEntry) isTagDataEntry()          {}

// UInt64ArrayEntry represents a uInt64ArrayType (ui64) tag data entry.
type UInt64ArrayEntry struct {
	Values []uint64
}

func (*UInt64ArrayEntry) Signature() TypeSignature { return TypeUInt64Array }
func (*UInt64ArrayEntry) isTagDataEntry()          {}

// ViewingConditionsEntry represents a viewingConditionsType (view) tag
// data entry.
type ViewingConditionsEntry struct {
	Illuminant     XYZNumber // absolute, in cd/m²
	Surround       XYZNumber // absolute, in cd/m²
	IlluminantType uint32
}

func (*ViewingConditionsEntry) Signature() TypeSignature { return TypeViewingConditions }
func (*ViewingConditionsEntry) isTagDataEntry()          {}

func readViewingConditions(r *reader) *ViewingConditionsEntry {
	return &ViewingConditionsEntry{
		Illuminant:     r.xyz(),
		Surround:       r.xyz(),
		IlluminantType: r.u32(),
	}
}

func writeViewingConditions(w *writer, e *ViewingConditionsEntry) {
	w.xyz(e.Illuminant)
	w.xyz(e.Surround)
	w.u32(e.IlluminantType)
}

// XYZEntry represents an XYZType tag data entry.
// Colorant and white point tags hold exactly one value.
type XYZEntry struct {
	Values []XYZNumber
}

func (*XYZEntry) Signature() TypeSignature { return TypeXYZ }
func (*XYZEntry) isTagDataEntry()          {}

// ScreeningChannel holds the halftone screen settings for one channel.
type ScreeningChannel struct {
	Frequency float64 // lines per inch
	Angle     float64 // degrees
	SpotShape uint32
}

// ScreeningEntry represents a screeningType (scrn) tag data entry.
// This type was removed in version 4 of the ICC specification.
type ScreeningEntry struct {
	Flags    uint32
	Channels []ScreeningChannel
}

func (*ScreeningEntry) Signature() TypeSignature { return TypeScreening }
func (*ScreeningEntry) isTagDataEntry()          {}

func readScreening(r *reader) *ScreeningEntry {
	e := &ScreeningEntry{Flags: r.u32()}
	n, ok := r.count(uint64(r.u32()), 12)
	if !ok {
		return nil
	}
	e.Channels = make([]ScreeningChannel, n)
	for i := range e.Channels {
		e.Channels[i] = ScreeningChannel{
			Frequency: r.fix16(),
			Angle:     r.fix16(),
			SpotShape: r.u32(),
		}
	}
	return e
}

func writeScreening(w *writer, e *ScreeningEntry) {
	w.u32(e.Flags)
	w.u32(uint32(len(e.Channels)))
	for _, c := range e.Channels {
		w.fix16(c.Frequency)
		w.fix16(c.Angle)
		w.u32(c.SpotShape)
	}
}

// UcrBgEntry represents a ucrbgType (bfd) tag data entry, holding the
// under colour removal and black generation curves of a v2 profile.
//
// A curve with a single value gives a percentage; otherwise the values
// are evenly spaced samples.
type UcrBgEntry struct {
	UCR         []uint16
	BG          []uint16
	Description string
}

func (*UcrBgEntry) Signature() TypeSignature { return TypeUcrBg }
func (*UcrBgEntry) isTagDataEntry()          {}

func readUcrBg(r *reader) *UcrBgEntry {
	e := &UcrBgEntry{}
	e.UCR = r.u16Array()
	e.BG = r.u16Array()
	if r.err != nil {
		return nil
	}
	e.Description = r.ascii(r.remaining())
	return e
}

func (r *reader) u16Array() []uint16 {
	n, ok := r.count(uint64(r.u32()), 2)
	if !ok {
		return nil
	}
	res := make([]uint16, n)
	for i := range res {
		res[i] = r.u16()
	}
	return res
}

func writeUcrBg(w *writer, e *UcrBgEntry) {
	w.u32(uint32(len(e.UCR)))
	writeArray(w, e.UCR, (*writer).u16)
	w.u32(uint32(len(e.BG)))
	writeArray(w, e.BG, (*writer).u16)
	w.bytes([]byte(e.Description))
	w.u8(0)
}
