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

// Lut8Entry represents a lut8Type (mft1) tag data entry.
// Processing order: Matrix → InputValues → CLUT → OutputValues
//
// The matrix is only used if the input space is XYZ.  The input and output
// tables have 256 entries each, and the CLUT has the same number of grid
// points in every dimension.
type Lut8Entry struct {
	Matrix       [9]float64
	InputValues  []LUT // one per input channel
	CLUT         *CLUT
	OutputValues []LUT // one per output channel
}

func (*Lut8Entry) Signature() TypeSignature { return TypeLut8 }
func (*Lut8Entry) isTagDataEntry()          {}

// Lut16Entry represents a lut16Type (mft2) tag data entry.
// Processing order: Matrix → InputValues → CLUT → OutputValues
//
// All input tables have the same length, and so have all output tables.
type Lut16Entry struct {
	Matrix       [9]float64
	InputValues  []LUT // one per input channel
	CLUT         *CLUT
	OutputValues []LUT // one per output channel
}

func (*Lut16Entry) Signature() TypeSignature { return TypeLut16 }
func (*Lut16Entry) isTagDataEntry()          {}

// maxLutChannels is the largest channel count allowed in lut8Type,
// lut16Type, lutAtoBType and lutBtoAType entries.
const maxLutChannels = 15

// lutHeader reads the channel counts and grid size common to mft1 and mft2,
// together with the matrix.
func (r *reader) lutHeader() (in, out int, grid uint8, matrix [9]float64) {
	start := r.offset()
	in = int(r.u8())
	out = int(r.u8())
	grid = r.u8()
	r.skip(1)
	for i := range matrix {
		matrix[i] = r.fix16()
	}
	if r.err == nil && (in < 1 || in > maxLutChannels || out < 1 || out > maxLutChannels) {
		r.fail(corrupt(start, "invalid channel counts %d/%d", in, out))
	}
	return in, out, grid, matrix
}

// uniformCLUT reads a CLUT with the same number of grid points in every
// dimension and a fixed precision.
func (r *reader) uniformCLUT(in, out int, grid uint8, precision CLUTPrecision) *CLUT {
	c := &CLUT{InputChannels: in, OutputChannels: out, Precision: precision}
	for i := range in {
		c.GridPoints[i] = grid
	}
	r.clutValues(c)
	return c
}

func readLut8(r *reader) *Lut8Entry {
	in, out, grid, matrix := r.lutHeader()
	if r.err != nil {
		return nil
	}
	e := &Lut8Entry{
		Matrix:       matrix,
		InputValues:  make([]LUT, in),
		OutputValues: make([]LUT, out),
	}
	for i := range e.InputValues {
		e.InputValues[i] = r.lut8()
	}
	e.CLUT = r.uniformCLUT(in, out, grid, CLUT8Bit)
	for i := range e.OutputValues {
		e.OutputValues[i] = r.lut8()
	}
	return e
}

func readLut16(r *reader) *Lut16Entry {
	in, out, grid, matrix := r.lutHeader()
	inEntries := int(r.u16())
	outEntries := int(r.u16())
	if r.err != nil {
		return nil
	}
	e := &Lut16Entry{
		Matrix:       matrix,
		InputValues:  make([]LUT, in),
		OutputValues: make([]LUT, out),
	}
	for i := range e.InputValues {
		e.InputValues[i] = r.lut16(inEntries)
	}
	e.CLUT = r.uniformCLUT(in, out, grid, CLUT16Bit)
	for i := range e.OutputValues {
		e.OutputValues[i] = r.lut16(outEntries)
	}
	return e
}

// checkLut verifies the shape of an mft1 or mft2 entry and returns its
// grid size.
func (w *writer) checkLut(c *CLUT, inputs, outputs []LUT) (uint8, bool) {
	if c == nil {
		w.fail(corrupt(w.len(), "lookup table without CLUT"))
		return 0, false
	}
	in, out := c.InputChannels, c.OutputChannels
	if in < 1 || in > maxLutChannels || out < 1 || out > maxLutChannels {
		w.fail(corrupt(w.len(), "invalid channel counts %d/%d", in, out))
		return 0, false
	}
	if len(inputs) != in || len(outputs) != out {
		w.fail(corrupt(w.len(), "%d/%d tables for %d/%d channels", len(inputs), len(outputs), in, out))
		return 0, false
	}
	grid := c.GridPoints[0]
	for _, g := range c.GridPoints[1:in] {
		if g != grid {
			w.fail(corrupt(w.len(), "lookup table needs a uniform grid"))
			return 0, false
		}
	}
	return grid, true
}

func (w *writer) lutHeader(c *CLUT, grid uint8, matrix [9]float64) {
	w.u8(uint8(c.InputChannels))
	w.u8(uint8(c.OutputChannels))
	w.u8(grid)
	w.zeros(1)
	for _, v := range matrix {
		w.fix16(v)
	}
}

func writeLut8(w *writer, e *Lut8Entry) {
	grid, ok := w.checkLut(e.CLUT, e.InputValues, e.OutputValues)
	if !ok {
		return
	}
	w.lutHeader(e.CLUT, grid, e.Matrix)
	for _, t := range e.InputValues {
		w.lut(LUT{Values: t.Values})
	}
	c := *e.CLUT
	c.Precision = CLUT8Bit
	w.clutValues(&c)
	for _, t := range e.OutputValues {
		w.lut(LUT{Values: t.Values})
	}
}

func writeLut16(w *writer, e *Lut16Entry) {
	grid, ok := w.checkLut(e.CLUT, e.InputValues, e.OutputValues)
	if !ok {
		return
	}
	inEntries, ok1 := tableLength(e.InputValues)
	outEntries, ok2 := tableLength(e.OutputValues)
	if !ok1 || !ok2 {
		w.fail(corrupt(w.len(), "lookup tables of different lengths"))
		return
	}
	w.lutHeader(e.CLUT, grid, e.Matrix)
	w.u16(uint16(inEntries))
	w.u16(uint16(outEntries))
	for _, t := range e.InputValues {
		w.lut(LUT{Values: t.Values, Is16Bit: true})
	}
	c := *e.CLUT
	c.Precision = CLUT16Bit
	w.clutValues(&c)
	for _, t := range e.OutputValues {
		w.lut(LUT{Values: t.Values, Is16Bit: true})
	}
}

// tableLength returns the common length of the given tables.
func tableLength(tables []LUT) (int, bool) {
	n := len(tables[0].Values)
	for _, t := range tables[1:] {
		if len(t.Values) != n {
			return 0, false
		}
	}
	return n, n <= 0xFFFF
}

// LutAToBEntry represents a lutAtoBType (mAB) tag data entry.
// Processing order: ACurves → CLUT → MCurves → Matrix → BCurves
//
// All elements are optional, but the curves in each set must be either all
// present or all absent.  There is one A curve per input channel, and one
// M curve and one B curve per output channel.
type LutAToBEntry struct {
	InputChannels  int
	OutputChannels int

	BCurves []Curve
	Matrix  []float64 // 3×3 matrix followed by a 3×1 offset; nil if absent
	MCurves []Curve
	CLUT    *CLUT
	ACurves []Curve
}

func (*LutAToBEntry) Signature() TypeSignature { return TypeLutAToB }
func (*LutAToBEntry) isTagDataEntry()          {}

// LutBToAEntry represents a lutBtoAType (mBA) tag data entry.
// Processing order: BCurves → Matrix → MCurves → CLUT → ACurves
//
// There is one B curve and one M curve per input channel, and one A curve
// per output channel.
type LutBToAEntry LutAToBEntry

func (*LutBToAEntry) Signature() TypeSignature { return TypeLutBToA }
func (*LutBToAEntry) isTagDataEntry()          {}

// curveCounts returns the number of B, M and A curves.
func (e *LutAToBEntry) curveCounts(bToA bool) (b, m, a int) {
	if bToA {
		return e.InputChannels, e.InputChannels, e.OutputChannels
	}
	return e.OutputChannels, e.OutputChannels, e.InputChannels
}

func readLutAB(r *reader, bToA bool) *LutAToBEntry {
	start := r.offset()
	e := &LutAToBEntry{
		InputChannels:  int(r.u8()),
		OutputChannels: int(r.u8()),
	}
	r.skip(2)
	var offsets [5]uint32
	for i := range offsets {
		offsets[i] = r.u32()
	}
	if r.err != nil {
		return nil
	}
	in, out := e.InputChannels, e.OutputChannels
	if in < 1 || in > maxLutChannels || out < 1 || out > maxLutChannels {
		r.fail(corrupt(start, "invalid channel counts %d/%d", in, out))
		return nil
	}

	at := func(i int) *reader {
		off := offsets[i]
		if uint64(off) >= uint64(len(r.data)) {
			r.fail(corrupt(start+4+4*i, "offset %d outside of entry", off))
			return nil
		}
		return r.at(int(off), len(r.data))
	}
	curves := func(i, n int) []Curve {
		s := at(i)
		if s == nil {
			return nil
		}
		res := make([]Curve, n)
		for j := range res {
			res[j] = s.embeddedCurve()
		}
		r.fail(s.err)
		return res
	}

	nb, nm, na := e.curveCounts(bToA)
	if offsets[0] != 0 {
		e.BCurves = curves(0, nb)
	}
	if offsets[1] != 0 {
		if s := at(1); s != nil {
			e.Matrix = make([]float64, 12)
			for i := range e.Matrix {
				e.Matrix[i] = s.fix16()
			}
			r.fail(s.err)
		}
	}
	if offsets[2] != 0 {
		e.MCurves = curves(2, nm)
	}
	if offsets[3] != 0 {
		if s := at(3); s != nil {
			e.CLUT = s.clut(in, out)
			r.fail(s.err)
		}
	}
	if offsets[4] != 0 {
		e.ACurves = curves(4, na)
	}
	if r.err != nil {
		return nil
	}
	r.pos = len(r.data)
	return e
}

// writeLutAB writes an mAB or mBA entry.  The sub-blocks are encoded
// first, so that their offsets are known when the header is written.
func writeLutAB(w *writer, e *LutAToBEntry, bToA bool) {
	in, out := e.InputChannels, e.OutputChannels
	if in < 1 || in > maxLutChannels || out < 1 || out > maxLutChannels {
		w.fail(corrupt(w.len(), "invalid channel counts %d/%d", in, out))
		return
	}
	nb, nm, na := e.curveCounts(bToA)
	for _, set := range []struct {
		curves []Curve
		n      int
	}{{e.BCurves, nb}, {e.MCurves, nm}, {e.ACurves, na}} {
		if len(set.curves) != 0 && len(set.curves) != set.n {
			w.fail(corrupt(w.len(), "%d curves in a set of %d", len(set.curves), set.n))
			return
		}
	}
	if len(e.Matrix) != 0 && len(e.Matrix) != 12 {
		w.fail(corrupt(w.len(), "matrix has %d elements, need 12", len(e.Matrix)))
		return
	}
	if e.CLUT != nil && (e.CLUT.InputChannels != in || e.CLUT.OutputChannels != out) {
		w.fail(corrupt(w.len(), "CLUT channels %d/%d do not match %d/%d",
			e.CLUT.InputChannels, e.CLUT.OutputChannels, in, out))
		return
	}

	curves := func(cc []Curve) func(*writer) {
		return func(s *writer) {
			for _, c := range cc {
				s.entry(c)
				s.align4()
			}
		}
	}
	var blocks [5][]byte
	if len(e.BCurves) > 0 {
		blocks[0] = w.encodeBlock(curves(e.BCurves))
	}
	if len(e.Matrix) > 0 {
		blocks[1] = w.encodeBlock(func(s *writer) {
			writeArray(s, e.Matrix, (*writer).fix16)
		})
	}
	if len(e.MCurves) > 0 {
		blocks[2] = w.encodeBlock(curves(e.MCurves))
	}
	if e.CLUT != nil {
		blocks[3] = w.encodeBlock(func(s *writer) { s.clut(e.CLUT) })
	}
	if len(e.ACurves) > 0 {
		blocks[4] = w.encodeBlock(curves(e.ACurves))
	}

	w.u8(uint8(in))
	w.u8(uint8(out))
	w.zeros(2)
	offset := 32
	for _, b := range blocks {
		if b == nil {
			w.u32(0)
			continue
		}
		w.u32(uint32(offset))
		offset += len(b)
	}
	for _, b := range blocks {
		w.bytes(b)
	}
}
