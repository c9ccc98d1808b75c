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

// Curve is a one-dimensional transfer function stored in a lutAtoBType or
// lutBtoAType entry, or in one of the TRC tags.
// The two implementations are [*CurveEntry] and [*ParametricCurveEntry].
type Curve interface {
	TagDataEntry
	isCurve()
}

// CurveEntry represents a curveType (curv) tag data entry.
//
// The meaning of Values depends on its length:
//   - no values: the identity curve
//   - one value: the curve y = x^Values[0]; the exponent is stored as a
//     u8Fixed8Number
//   - two or more values: a sampled curve, normalised to [0, 1], with the
//     samples evenly spaced over the input range
type CurveEntry struct {
	Values []float64
}

func (*CurveEntry) Signature() TypeSignature { return TypeCurve }
func (*CurveEntry) isTagDataEntry()          {}
func (*CurveEntry) isCurve()                 {}

// IsIdentity returns true if the curve represents the identity function.
func (c *CurveEntry) IsIdentity() bool {
	return len(c.Values) == 0
}

// Gamma returns the exponent of a gamma curve.
// The second return value is false for sampled curves.
func (c *CurveEntry) Gamma() (float64, bool) {
	switch len(c.Values) {
	case 0:
		return 1, true
	case 1:
		return c.Values[0], true
	default:
		return 0, false
	}
}

func readCurve(r *reader) *CurveEntry {
	n, ok := r.count(uint64(r.u32()), 2)
	if !ok {
		return nil
	}
	switch n {
	case 0:
		return &CurveEntry{}
	case 1:
		return &CurveEntry{Values: []float64{r.ufix8()}}
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(r.u16()) / 65535
	}
	return &CurveEntry{Values: values}
}

func writeCurve(w *writer, c *CurveEntry) {
	w.u32(uint32(len(c.Values)))
	if len(c.Values) == 1 {
		w.ufix8(c.Values[0])
		return
	}
	for _, v := range c.Values {
		w.u16(encodeUnit16(v))
	}
}

// ParametricCurveEntry represents a parametricCurveType (para) tag data
// entry.
//
// FuncType selects the ICC function type (0-4) and Params provides the
// coefficients [g, a, b, c, d, e, f]:
//   - type 0: y = x^g
//   - type 1: y = (ax+b)^g for x >= -b/a, else y = 0
//   - type 2: y = (ax+b)^g + c for x >= -b/a, else y = c
//   - type 3: y = (ax+b)^g for x >= d, else y = cx
//   - type 4: y = (ax+b)^g + e for x >= d, else y = cx + f
//
// Each function type stores a prefix of the coefficient list.
type ParametricCurveEntry struct {
	FuncType int
	Params   []float64 // [g], [g,a,b], [g,a,b,c], [g,a,b,c,d], or [g,a,b,c,d,e,f]
}

func (*ParametricCurveEntry) Signature() TypeSignature { return TypeParametricCurve }
func (*ParametricCurveEntry) isTagDataEntry()          {}
func (*ParametricCurveEntry) isCurve()                 {}

// parametricParams gives the number of coefficients for each function type.
var parametricParams = [...]int{1, 3, 4, 5, 7}

func readParametricCurve(r *reader) *ParametricCurveEntry {
	start := r.offset()
	funcType := int(r.u16())
	r.skip(2)
	if r.err != nil {
		return nil
	}
	if funcType >= len(parametricParams) {
		r.fail(corrupt(start, "unknown parametric curve type %d", funcType))
		return nil
	}
	params := make([]float64, parametricParams[funcType])
	for i := range params {
		params[i] = r.fix16()
	}
	return &ParametricCurveEntry{FuncType: funcType, Params: params}
}

func writeParametricCurve(w *writer, c *ParametricCurveEntry) {
	if c.FuncType < 0 || c.FuncType >= len(parametricParams) {
		w.fail(corrupt(w.len(), "unknown parametric curve type %d", c.FuncType))
		return
	}
	w.u16(uint16(c.FuncType))
	w.zeros(2)
	for i := range parametricParams[c.FuncType] {
		var v float64
		if i < len(c.Params) {
			v = c.Params[i]
		}
		w.fix16(v)
	}
}

// embeddedCurve reads a curv or para entry which is part of a larger
// structure, and advances r past the entry and its padding.
func (r *reader) embeddedCurve() Curve {
	if r.err != nil {
		return nil
	}
	start := r.pos
	sig := TypeSignature(r.u32())
	r.skip(4)
	var c Curve
	switch sig {
	case TypeCurve:
		c = readCurve(r)
	case TypeParametricCurve:
		c = readParametricCurve(r)
	default:
		r.fail(corrupt(r.base+start, "expected curve, found %s", sig))
		return nil
	}
	if r.err != nil {
		return nil
	}
	if pad := pad4(r.pos-start) - (r.pos - start); pad <= r.remaining() {
		r.pos += pad
	}
	return c
}

// OneDimensionalCurve is a segmented curve (curf), used in the curve set
// elements of multiProcessElementsType.
//
// The break points partition the real line into len(Segments) intervals,
// so there is one break point less than there are segments.
type OneDimensionalCurve struct {
	BreakPoints []float64
	Segments    []CurveSegment
}

// CurveSegment is one segment of a [OneDimensionalCurve].
// The implementations are [*FormulaCurveElement] and [*SampledCurveElement].
type CurveSegment interface {
	Signature() TypeSignature
	isCurveSegment()
}

// FormulaCurveElement is a segment given by a formula (parf).
// Which coefficients are used depends on the type:
//   - type 0: y = (a*x+b)^Gamma + c
//   - type 1: y = a*log10(b*x^Gamma + c) + d
//   - type 2: y = a*b^(c*x+d) + e
type FormulaCurveElement struct {
	Type  int
	Gamma float64
	A, B  float64
	C, D  float64
	E     float64
}

func (*FormulaCurveElement) Signature() TypeSignature { return TypeFormulaSegment }
func (*FormulaCurveElement) isCurveSegment()          {}

// SampledCurveElement is a segment given by sample values (samf).
// The first point of the segment is implied by the previous segment.
type SampledCurveElement struct {
	Values []float64
}

func (*SampledCurveElement) Signature() TypeSignature { return TypeSampledSegment }
func (*SampledCurveElement) isCurveSegment()          {}

func (r *reader) oneDimensionalCurve() *OneDimensionalCurve {
	start := r.offset()
	if sig := TypeSignature(r.u32()); r.err == nil && sig != TypeSegmentedCurve {
		r.fail(corrupt(start, "expected segmented curve, found %s", sig))
		return nil
	}
	r.skip(4)
	n := int(r.u16())
	r.skip(2)
	if r.err != nil {
		return nil
	}
	if n == 0 {
		r.fail(corrupt(start, "segmented curve without segments"))
		return nil
	}
	// each segment needs at least 12 bytes, each break point 4
	if _, ok := r.count(uint64(n), 16); !ok {
		return nil
	}

	c := &OneDimensionalCurve{
		BreakPoints: make([]float64, n-1),
		Segments:    make([]CurveSegment, n),
	}
	for i := range c.BreakPoints {
		c.BreakPoints[i] = float64(r.f32())
	}
	for i := range c.Segments {
		c.Segments[i] = r.curveSegment()
	}
	if r.err != nil {
		return nil
	}
	return c
}

func (r *reader) curveSegment() CurveSegment {
	start := r.offset()
	sig := TypeSignature(r.u32())
	r.skip(4)
	if r.err != nil {
		return nil
	}
	switch sig {
	case TypeFormulaSegment:
		f := &FormulaCurveElement{Type: int(r.u16())}
		r.skip(2)
		switch f.Type {
		case 0:
			f.Gamma, f.A, f.B, f.C = r.f32d(), r.f32d(), r.f32d(), r.f32d()
		case 1:
			f.Gamma, f.A, f.B, f.C, f.D = r.f32d(), r.f32d(), r.f32d(), r.f32d(), r.f32d()
		case 2:
			f.A, f.B, f.C, f.D, f.E = r.f32d(), r.f32d(), r.f32d(), r.f32d(), r.f32d()
		default:
			r.fail(corrupt(start+8, "unknown formula segment type %d", f.Type))
			return nil
		}
		return f
	case TypeSampledSegment:
		n, ok := r.count(uint64(r.u32()), 4)
		if !ok {
			return nil
		}
		s := &SampledCurveElement{Values: make([]float64, n)}
		for i := range s.Values {
			s.Values[i] = r.f32d()
		}
		return s
	default:
		r.fail(corrupt(start, "unknown curve segment type %s", sig))
		return nil
	}
}

// f32d reads a float32 and widens it.
func (r *reader) f32d() float64 {
	return float64(r.f32())
}

func (w *writer) oneDimensionalCurve(c *OneDimensionalCurve) {
	if c == nil || len(c.Segments) == 0 || len(c.Segments) > 0xFFFF {
		w.fail(corrupt(w.len(), "segmented curve needs 1 to 65535 segments"))
		return
	}
	if len(c.BreakPoints) != len(c.Segments)-1 {
		w.fail(corrupt(w.len(), "segmented curve has %d break points for %d segments",
			len(c.BreakPoints), len(c.Segments)))
		return
	}
	w.u32(uint32(TypeSegmentedCurve))
	w.zeros(4)
	w.u16(uint16(len(c.Segments)))
	w.zeros(2)
	for _, b := range c.BreakPoints {
		w.f32(float32(b))
	}
	for _, s := range c.Segments {
		w.curveSegment(s)
	}
}

func (w *writer) curveSegment(s CurveSegment) {
	switch s := s.(type) {
	case *FormulaCurveElement:
		var values []float64
		switch s.Type {
		case 0:
			values = []float64{s.Gamma, s.A, s.B, s.C}
		case 1:
			values = []float64{s.Gamma, s.A, s.B, s.C, s.D}
		case 2:
			values = []float64{s.A, s.B, s.C, s.D, s.E}
		default:
			w.fail(corrupt(w.len(), "unknown formula segment type %d", s.Type))
			return
		}
		w.u32(uint32(TypeFormulaSegment))
		w.zeros(4)
		w.u16(uint16(s.Type))
		w.zeros(2)
		for _, v := range values {
			w.f32(float32(v))
		}
	case *SampledCurveElement:
		w.u32(uint32(TypeSampledSegment))
		w.zeros(4)
		w.u32(uint32(len(s.Values)))
		for _, v := range s.Values {
			w.f32(float32(v))
		}
	default:
		w.fail(corrupt(w.len(), "unsupported curve segment %T", s))
	}
}
