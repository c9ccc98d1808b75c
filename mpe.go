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

// MultiProcessElementsEntry represents a multiProcessElementsType (mpet)
// tag data entry.  The elements are applied in order; the output channels
// of each element are the input channels of the next.
type MultiProcessElementsEntry struct {
	InputChannels  int
	OutputChannels int
	Elements       []MultiProcessElement
}

func (*MultiProcessElementsEntry) Signature() TypeSignature { return TypeMultiProcessElements }
func (*MultiProcessElementsEntry) isTagDataEntry()          {}

// MultiProcessElement is one processing stage of a
// [MultiProcessElementsEntry].  The implementations are
// [*CurveSetElement], [*MatrixElement], [*CLUTElement], [*BACSElement] and
// [*EACSElement].
type MultiProcessElement interface {
	Signature() TypeSignature

	// Channels returns the number of input and output channels.
	Channels() (in, out int)

	isMultiProcessElement()
}

// CurveSetElement applies one segmented curve to each channel.
type CurveSetElement struct {
	Curves []*OneDimensionalCurve
}

func (*CurveSetElement) Signature() TypeSignature { return TypeCurveSetElement }
func (e *CurveSetElement) Channels() (int, int)  { return len(e.Curves), len(e.Curves) }
func (*CurveSetElement) isMultiProcessElement()  {}

// MatrixElement computes out[j] = Offsets[j] + Σ_i in[i]*Matrix[i*out+j].
type MatrixElement struct {
	InputChannels  int
	OutputChannels int
	Matrix         []float64 // InputChannels×OutputChannels, row-major
	Offsets        []float64 // one per output channel
}

func (*MatrixElement) Signature() TypeSignature { return TypeMatrixElement }
func (e *MatrixElement) Channels() (int, int)  { return e.InputChannels, e.OutputChannels }
func (*MatrixElement) isMultiProcessElement()  {}

// CLUTElement is a colour lookup table with float32 values.
type CLUTElement struct {
	CLUT *CLUT
}

func (*CLUTElement) Signature() TypeSignature { return TypeCLUTElement }
func (e *CLUTElement) Channels() (int, int) {
	if e.CLUT == nil {
		return 0, 0
	}
	return e.CLUT.InputChannels, e.CLUT.OutputChannels
}
func (*CLUTElement) isMultiProcessElement() {}

// BACSElement and EACSElement mark the beginning and end of an element
// sequence for a future extension.  They have no processing effect.
type BACSElement struct {
	InputChannels, OutputChannels int
	ACS                           uint32
}

func (*BACSElement) Signature() TypeSignature { return TypeBACSElement }
func (e *BACSElement) Channels() (int, int)  { return e.InputChannels, e.OutputChannels }
func (*BACSElement) isMultiProcessElement()  {}

// EACSElement, see [BACSElement].
type EACSElement struct {
	InputChannels, OutputChannels int
	ACS                           uint32
}

func (*EACSElement) Signature() TypeSignature { return TypeEACSElement }
func (e *EACSElement) Channels() (int, int)  { return e.InputChannels, e.OutputChannels }
func (*EACSElement) isMultiProcessElement()  {}

func readMultiProcessElements(r *reader) *MultiProcessElementsEntry {
	start := r.offset()
	e := &MultiProcessElementsEntry{
		InputChannels:  int(r.u16()),
		OutputChannels: int(r.u16()),
	}
	n, ok := r.count(uint64(r.u32()), 8)
	if !ok {
		return nil
	}
	if e.InputChannels == 0 || e.OutputChannels == 0 {
		r.fail(corrupt(start, "invalid channel counts %d/%d", e.InputChannels, e.OutputChannels))
		return nil
	}
	table := r.positionTable(n)
	if r.err != nil {
		return nil
	}

	e.Elements = make([]MultiProcessElement, n)
	channels := e.InputChannels
	for i, pos := range table {
		s := r.block(pos, 12)
		el := s.processElement()
		if s.err != nil {
			r.fail(s.err)
			return nil
		}
		in, out := el.Channels()
		if in != channels {
			r.fail(corrupt(s.base, "element %d has %d inputs, expected %d", i, in, channels))
			return nil
		}
		channels = out
		e.Elements[i] = el
	}
	if n > 0 && channels != e.OutputChannels {
		r.fail(corrupt(start, "last element has %d outputs, expected %d", channels, e.OutputChannels))
		return nil
	}
	r.pos = len(r.data)
	return e
}

// processElement reads the element which starts at the beginning of r.data.
func (r *reader) processElement() MultiProcessElement {
	sig := TypeSignature(r.u32())
	r.skip(4)
	in := int(r.u16())
	out := int(r.u16())
	if r.err != nil {
		return nil
	}

	switch sig {
	case TypeCurveSetElement:
		if in != out {
			r.fail(corrupt(r.base, "curve set with %d inputs and %d outputs", in, out))
			return nil
		}
		n, ok := r.count(uint64(in), 8)
		if !ok {
			return nil
		}
		table := r.positionTable(n)
		if r.err != nil {
			return nil
		}
		el := &CurveSetElement{Curves: make([]*OneDimensionalCurve, n)}
		for i, pos := range table {
			s := r.block(pos, 12)
			el.Curves[i] = s.oneDimensionalCurve()
			if s.err != nil {
				r.fail(s.err)
				return nil
			}
		}
		return el

	case TypeMatrixElement:
		el := &MatrixElement{InputChannels: in, OutputChannels: out}
		n, ok := r.count(uint64(in)*uint64(out)+uint64(out), 4)
		if !ok {
			return nil
		}
		values := make([]float64, n)
		for i := range values {
			values[i] = r.f32d()
		}
		el.Matrix = values[:in*out : in*out]
		el.Offsets = values[in*out:]
		return el

	case TypeCLUTElement:
		if in < 1 || in > 15 || out < 1 {
			r.fail(corrupt(r.base, "invalid CLUT channel counts %d/%d", in, out))
			return nil
		}
		return &CLUTElement{CLUT: r.floatCLUT(in, out)}

	case TypeBACSElement:
		return &BACSElement{InputChannels: in, OutputChannels: out, ACS: r.acs()}

	case TypeEACSElement:
		return &EACSElement{InputChannels: in, OutputChannels: out, ACS: r.acs()}

	default:
		r.fail(corrupt(r.base, "unknown process element %s", sig))
		return nil
	}
}

// acs reads the optional ACS signature of a bACS or eACS element.
func (r *reader) acs() uint32 {
	if r.remaining() < 4 {
		return 0
	}
	return r.u32()
}

func writeMultiProcessElements(w *writer, e *MultiProcessElementsEntry) {
	channels := e.InputChannels
	blocks := make([][]byte, len(e.Elements))
	for i, el := range e.Elements {
		if el == nil {
			w.fail(corrupt(w.len(), "missing process element %d", i))
			return
		}
		in, out := el.Channels()
		if in != channels {
			w.fail(corrupt(w.len(), "element %d has %d inputs, expected %d", i, in, channels))
			return
		}
		channels = out
		blocks[i] = w.encodeBlock(func(s *writer) { s.processElement(el) })
	}
	if len(e.Elements) > 0 && channels != e.OutputChannels {
		w.fail(corrupt(w.len(), "last element has %d outputs, expected %d", channels, e.OutputChannels))
		return
	}

	w.u16(uint16(e.InputChannels))
	w.u16(uint16(e.OutputChannels))
	w.u32(uint32(len(blocks)))
	w.positionTable(16, blocks)
}

func (w *writer) processElement(el MultiProcessElement) {
	in, out := el.Channels()
	w.u32(uint32(el.Signature()))
	w.zeros(4)
	w.u16(uint16(in))
	w.u16(uint16(out))

	switch el := el.(type) {
	case *CurveSetElement:
		blocks := make([][]byte, len(el.Curves))
		for i, c := range el.Curves {
			blocks[i] = w.encodeBlock(func(s *writer) { s.oneDimensionalCurve(c) })
		}
		w.positionTable(12, blocks)
	case *MatrixElement:
		if len(el.Matrix) != in*out || len(el.Offsets) != out {
			w.fail(corrupt(w.len(), "matrix element has %d+%d values for %d/%d channels",
				len(el.Matrix), len(el.Offsets), in, out))
			return
		}
		for _, v := range el.Matrix {
			w.f32(float32(v))
		}
		for _, v := range el.Offsets {
			w.f32(float32(v))
		}
	case *CLUTElement:
		if el.CLUT == nil {
			w.fail(corrupt(w.len(), "CLUT element without table"))
			return
		}
		w.floatCLUT(el.CLUT)
	case *BACSElement:
		w.u32(el.ACS)
	case *EACSElement:
		w.u32(el.ACS)
	default:
		w.fail(corrupt(w.len(), "unsupported process element %T", el))
	}
}
