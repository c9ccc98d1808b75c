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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearSegment() *OneDimensionalCurve {
	return &OneDimensionalCurve{
		Segments: []CurveSegment{
			&FormulaCurveElement{Type: 0, Gamma: 1, A: 1},
		},
	}
}

func testMPE() *MultiProcessElementsEntry {
	return &MultiProcessElementsEntry{
		InputChannels:  3,
		OutputChannels: 3,
		Elements: []MultiProcessElement{
			&BACSElement{InputChannels: 3, OutputChannels: 3, ACS: 0x61637331},
			&CurveSetElement{Curves: []*OneDimensionalCurve{
				linearSegment(),
				{
					BreakPoints: []float64{0.5},
					Segments: []CurveSegment{
						&FormulaCurveElement{Type: 1, Gamma: 2, A: 0.5, B: 1, C: 0, D: 0.25},
						&SampledCurveElement{Values: []float64{0.75, 1}},
					},
				},
				linearSegment(),
			}},
			&MatrixElement{
				InputChannels:  3,
				OutputChannels: 2,
				Matrix:         []float64{1, 0, 0, 1, 0.5, 0.5},
				Offsets:        []float64{0, -0.25},
			},
			&CLUTElement{CLUT: &CLUT{
				InputChannels:  2,
				OutputChannels: 3,
				GridPoints:     [16]uint8{2, 2},
				Values: [][]float64{
					{0, 0, 0}, {0, 1, 0},
					{1, 0, 0}, {1, 1, 1.5},
				},
			}},
			&EACSElement{InputChannels: 3, OutputChannels: 3},
		},
	}
}

func TestMPERoundTrip(t *testing.T) {
	in := testMPE()
	data, err := EncodeTagData(in)
	require.NoError(t, err)

	out, err := DecodeTagDataAs(data, TypeMultiProcessElements)
	require.NoError(t, err)
	if d := cmp.Diff(in, out, cmpopts.EquateEmpty()); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}

	// the position table starts after the 16 byte header
	n := int(byteOrder.Uint32(data[12:]))
	require.Equal(t, len(in.Elements), n)
	prevEnd := 16 + 8*n
	for i := range n {
		off := int(byteOrder.Uint32(data[16+8*i:]))
		size := int(byteOrder.Uint32(data[20+8*i:]))
		assert.Equal(t, prevEnd, off, "element %d", i)
		assert.Zero(t, off%4)
		sig := TypeSignature(byteOrder.Uint32(data[off:]))
		assert.Equal(t, in.Elements[i].Signature(), sig)
		prevEnd = off + size
	}
	assert.Equal(t, len(data), prevEnd)
}

func TestMPEEmpty(t *testing.T) {
	in := &MultiProcessElementsEntry{InputChannels: 1, OutputChannels: 3}
	data, err := EncodeTagData(in)
	require.NoError(t, err)
	assert.Len(t, data, 16)

	out, err := DecodeTagData(data)
	require.NoError(t, err)
	if d := cmp.Diff(in, out, cmpopts.EquateEmpty()); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestMPEChannelMismatch(t *testing.T) {
	e := testMPE()
	e.OutputChannels = 4
	_, err := EncodeTagData(e)
	assert.ErrorIs(t, err, ErrCorruptProfile)

	e = testMPE()
	e.Elements[2], e.Elements[3] = e.Elements[3], e.Elements[2]
	_, err = EncodeTagData(e)
	assert.ErrorIs(t, err, ErrCorruptProfile)

	// patch the decoded entry count of channels to produce an
	// inconsistent entry
	data, err := EncodeTagData(testMPE())
	require.NoError(t, err)
	data[11] = 2
	_, err = DecodeTagData(data)
	assert.ErrorIs(t, err, ErrCorruptProfile)
}

func TestMPEElementErrors(t *testing.T) {
	cases := []struct {
		name string
		el   MultiProcessElement
	}{
		{"nil CLUT", &CLUTElement{}},
		{"matrix size", &MatrixElement{InputChannels: 3, OutputChannels: 3, Matrix: make([]float64, 9)}},
		{"curve without segments", &CurveSetElement{Curves: []*OneDimensionalCurve{{}, {}, {}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, out := c.el.Channels()
			e := &MultiProcessElementsEntry{
				InputChannels:  in,
				OutputChannels: out,
				Elements:       []MultiProcessElement{c.el},
			}
			_, err := EncodeTagData(e)
			assert.ErrorIs(t, err, ErrCorruptProfile)
		})
	}
}

func TestMPEDecodeErrors(t *testing.T) {
	valid, err := EncodeTagData(testMPE())
	require.NoError(t, err)
	firstOffset := int(byteOrder.Uint32(valid[16:]))

	cases := map[string]func(data []byte){
		"unknown element": func(data []byte) {
			copy(data[firstOffset:], "xxxx")
		},
		"element outside entry": func(data []byte) {
			byteOrder.PutUint32(data[20:], uint32(len(data)))
		},
		"zero channels": func(data []byte) {
			data[8], data[9] = 0, 0
		},
		"element too short": func(data []byte) {
			byteOrder.PutUint32(data[20:], 4)
		},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			data := append([]byte{}, valid...)
			patch(data)
			_, err := DecodeTagData(data)
			assert.ErrorIs(t, err, ErrCorruptProfile)
		})
	}
}

func TestACSWithoutSignature(t *testing.T) {
	// bACS element with the optional signature omitted
	data := []byte{
		'm', 'p', 'e', 't', 0, 0, 0, 0,
		0, 2, 0, 2, // channels
		0, 0, 0, 1, // one element
		0, 0, 0, 24, 0, 0, 0, 12,
		'b', 'A', 'C', 'S', 0, 0, 0, 0, 0, 2, 0, 2,
	}
	e, err := DecodeTagData(data)
	require.NoError(t, err)
	want := &MultiProcessElementsEntry{
		InputChannels:  2,
		OutputChannels: 2,
		Elements:       []MultiProcessElement{&BACSElement{InputChannels: 2, OutputChannels: 2}},
	}
	if d := cmp.Diff(want, e); d != "" {
		t.Errorf("decoded (-want +got):\n%s", d)
	}
}
