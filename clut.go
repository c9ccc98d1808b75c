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

import "math"

// LUT is a one-dimensional lookup table. The values are normalised to the
// range [0, 1].
type LUT struct {
	Values []float64

	// Is16Bit selects 16-bit storage. Otherwise values are stored as
	// bytes, and the table must have 256 entries.
	Is16Bit bool
}

func (r *reader) lut8() LUT {
	if !r.need(256) {
		return LUT{}
	}
	v := make([]float64, 256)
	for i := range v {
		v[i] = float64(r.u8()) / 255
	}
	return LUT{Values: v}
}

func (r *reader) lut16(n int) LUT {
	n, ok := r.count(uint64(n), 2)
	if !ok {
		return LUT{}
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(r.u16()) / 65535
	}
	return LUT{Values: v, Is16Bit: true}
}

func (w *writer) lut(l LUT) {
	if !l.Is16Bit {
		if len(l.Values) != 256 {
			w.fail(corrupt(w.len(), "8-bit lookup table has %d entries, need 256", len(l.Values)))
			return
		}
		for _, v := range l.Values {
			w.u8(encodeUnit8(v))
		}
		return
	}
	for _, v := range l.Values {
		w.u16(encodeUnit16(v))
	}
}

// CLUTPrecision gives the storage format of the grid values of a [CLUT].
type CLUTPrecision uint8

// Possible values for CLUTPrecision.
const (
	CLUTFloat CLUTPrecision = 0 // float32, used in multiProcessElementsType
	CLUT8Bit  CLUTPrecision = 1
	CLUT16Bit CLUTPrecision = 2
)

func (p CLUTPrecision) size() int {
	switch p {
	case CLUT8Bit:
		return 1
	case CLUT16Bit:
		return 2
	default:
		return 4
	}
}

// CLUT is a multi-dimensional colour lookup table.
//
// The grid has GridPoints[i] sample points along input channel i; only the
// first InputChannels entries of GridPoints are used.  Values holds one
// vector of OutputChannels samples for each grid node, in row-major order
// with the first input channel varying slowest.  For the integer precisions
// the samples are normalised to [0, 1].
type CLUT struct {
	InputChannels  int
	OutputChannels int
	GridPoints     [16]uint8
	Precision      CLUTPrecision
	Values         [][]float64
}

// maxCLUTNodes bounds the number of grid nodes, before the node count is
// checked against the available data.
const maxCLUTNodes = 1 << 28

// NodeCount returns the number of grid nodes, which is the product of the
// grid point counts of all input channels.
func (c *CLUT) NodeCount() int {
	n, _ := clutNodes(c.GridPoints, c.InputChannels)
	return int(n)
}

func clutNodes(gridPoints [16]uint8, inputChannels int) (uint64, bool) {
	if inputChannels < 1 || inputChannels > len(gridPoints) {
		return 0, false
	}
	n := uint64(1)
	for _, g := range gridPoints[:inputChannels] {
		if g == 0 {
			return 0, false
		}
		n *= uint64(g)
		if n > maxCLUTNodes {
			return 0, false
		}
	}
	return n, true
}

// clut reads a CLUT with an explicit precision byte, as used in
// lutAtoBType and lutBtoAType.
func (r *reader) clut(inputChannels, outputChannels int) *CLUT {
	c := &CLUT{InputChannels: inputChannels, OutputChannels: outputChannels}
	r.gridPoints(c)
	precOffset := r.offset()
	c.Precision = CLUTPrecision(r.u8())
	r.skip(3)
	if r.err != nil {
		return nil
	}
	if c.Precision != CLUT8Bit && c.Precision != CLUT16Bit {
		r.fail(corrupt(precOffset, "unsupported CLUT precision %d", c.Precision))
		return nil
	}
	r.clutValues(c)
	if r.err != nil {
		return nil
	}
	return c
}

// floatCLUT reads the grid of a multi-process CLUT element. These have no
// precision byte.
func (r *reader) floatCLUT(inputChannels, outputChannels int) *CLUT {
	c := &CLUT{
		InputChannels:  inputChannels,
		OutputChannels: outputChannels,
		Precision:      CLUTFloat,
	}
	r.gridPoints(c)
	r.clutValues(c)
	if r.err != nil {
		return nil
	}
	return c
}

func (r *reader) gridPoints(c *CLUT) {
	start := r.offset()
	copy(c.GridPoints[:], r.bytes(16))
	if r.err != nil {
		return
	}
	for i := range c.InputChannels {
		if i < len(c.GridPoints) && c.GridPoints[i] == 0 {
			r.fail(corrupt(start+i, "zero grid points for input channel %d", i))
			return
		}
	}
}

// clutValues reads the grid nodes of c, using the fields already set.
func (r *reader) clutValues(c *CLUT) {
	if r.err != nil {
		return
	}
	if c.OutputChannels < 1 {
		r.fail(corrupt(r.offset(), "CLUT has no output channels"))
		return
	}
	nodes, ok := clutNodes(c.GridPoints, c.InputChannels)
	if !ok {
		r.fail(corrupt(r.offset(), "invalid CLUT grid for %d input channels", c.InputChannels))
		return
	}
	nodeSize := c.OutputChannels * c.Precision.size()
	n, ok := r.count(nodes, nodeSize)
	if !ok {
		return
	}

	c.Values = make([][]float64, n)
	samples := make([]float64, n*c.OutputChannels)
	for i := range c.Values {
		v := samples[i*c.OutputChannels : (i+1)*c.OutputChannels : (i+1)*c.OutputChannels]
		for j := range v {
			switch c.Precision {
			case CLUT8Bit:
				v[j] = float64(r.u8()) / 255
			case CLUT16Bit:
				v[j] = float64(r.u16()) / 65535
			default:
				v[j] = float64(r.f32())
			}
		}
		c.Values[i] = v
	}
}

// clut writes the grid point counts, the precision header and the values.
func (w *writer) clut(c *CLUT) {
	if c.Precision != CLUT8Bit && c.Precision != CLUT16Bit {
		w.fail(corrupt(w.len(), "unsupported CLUT precision %d", c.Precision))
		return
	}
	w.bytes(c.GridPoints[:])
	w.u8(uint8(c.Precision))
	w.zeros(3)
	w.clutValues(c)
}

func (w *writer) floatCLUT(c *CLUT) {
	f := *c
	f.Precision = CLUTFloat
	w.bytes(f.GridPoints[:])
	w.clutValues(&f)
}

func (w *writer) clutValues(c *CLUT) {
	nodes, ok := clutNodes(c.GridPoints, c.InputChannels)
	if !ok || uint64(len(c.Values)) != nodes {
		w.fail(corrupt(w.len(), "CLUT has %d nodes, grid needs %d", len(c.Values), nodes))
		return
	}
	for _, v := range c.Values {
		if len(v) != c.OutputChannels {
			w.fail(corrupt(w.len(), "CLUT node has %d values, need %d", len(v), c.OutputChannels))
			return
		}
		for _, x := range v {
			switch c.Precision {
			case CLUT8Bit:
				w.u8(encodeUnit8(x))
			case CLUT16Bit:
				w.u16(encodeUnit16(x))
			default:
				w.f32(float32(x))
			}
		}
	}
}

// encodeUnit8 maps [0, 1] to a byte.
func encodeUnit8(v float64) uint8 {
	return uint8(math.Round(clamp(finite(v), 0, 1) * 255))
}

// encodeUnit16 maps [0, 1] to a 16-bit integer.
func encodeUnit16(v float64) uint16 {
	return uint16(math.Round(clamp(finite(v), 0, 1) * 65535))
}
