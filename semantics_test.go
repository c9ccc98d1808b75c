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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformTagsPriority(t *testing.T) {
	lut := lutTestCases[5].Lut

	p := testProfile()
	sel, err := p.TransformTags(DeviceToPCS, Perceptual)
	require.NoError(t, err)
	assert.Equal(t, TransformMatrixTRC, sel.Kind)
	assert.Equal(t, matrixTRCTags, sel.Tags)

	p.Set(AToB0Tag, lut)
	sel, err = p.TransformTags(DeviceToPCS, Saturation)
	require.NoError(t, err)
	assert.Equal(t, TransformSelection{Kind: TransformLut, Intent: Perceptual, Tags: []TagSignature{AToB0Tag}}, sel)

	p.Set(AToB2Tag, lut)
	sel, err = p.TransformTags(DeviceToPCS, Saturation)
	require.NoError(t, err)
	assert.Equal(t, TransformSelection{Kind: TransformLut, Intent: Saturation, Tags: []TagSignature{AToB2Tag}}, sel)

	p.Set(DToB2Tag, testMPE())
	sel, err = p.TransformTags(DeviceToPCS, Saturation)
	require.NoError(t, err)
	assert.Equal(t, TransformSelection{Kind: TransformFloat, Intent: Saturation, Tags: []TagSignature{DToB2Tag}}, sel)

	// the other direction is independent
	sel, err = p.TransformTags(PCSToDevice, Saturation)
	require.NoError(t, err)
	assert.Equal(t, TransformMatrixTRC, sel.Kind)
}

func TestTransformTagsAbsolute(t *testing.T) {
	p := &Profile{}
	p.Set(BToA0Tag, lutTestCases[8].Lut)
	p.Set(BToA1Tag, lutTestCases[8].Lut)

	sel, err := p.TransformTags(PCSToDevice, AbsoluteColorimetric)
	require.NoError(t, err)
	assert.Equal(t, RelativeColorimetric, sel.Intent)
	assert.Equal(t, []TagSignature{BToA1Tag}, sel.Tags)

	// the float tag for absolute colorimetric exists
	p.Set(BToD3Tag, testMPE())
	sel, err = p.TransformTags(PCSToDevice, AbsoluteColorimetric)
	require.NoError(t, err)
	assert.Equal(t, TransformFloat, sel.Kind)
	assert.Equal(t, AbsoluteColorimetric, sel.Intent)
}

func TestTransformTagsGray(t *testing.T) {
	p := &Profile{ColorSpace: GraySpace}
	p.Set(GrayTRCTag, &CurveEntry{Values: []float64{1.8}})
	for _, dir := range []Direction{DeviceToPCS, PCSToDevice} {
		sel, err := p.TransformTags(dir, RelativeColorimetric)
		require.NoError(t, err)
		assert.Equal(t, TransformGrayTRC, sel.Kind)
		assert.Equal(t, []TagSignature{GrayTRCTag}, sel.Tags)
	}
}

func TestTransformTagsErrors(t *testing.T) {
	p := &Profile{}
	_, err := p.TransformTags(DeviceToPCS, Perceptual)
	assert.ErrorIs(t, err, ErrNoTransform)

	_, err = p.TransformTags(Direction(2), Perceptual)
	assert.Error(t, err)
	_, err = p.TransformTags(DeviceToPCS, RenderingIntent(4))
	assert.Error(t, err)

	p.Set(AToB0Tag, &TextEntry{Text: "not a LUT"})
	_, err = p.TransformTags(DeviceToPCS, Perceptual)
	assert.ErrorIs(t, err, ErrUnexpectedType)

	p = &Profile{}
	p.Set(DToB0Tag, lutTestCases[0].Lut)
	_, err = p.TransformTags(DeviceToPCS, Perceptual)
	assert.ErrorIs(t, err, ErrUnexpectedType)

	p = testProfile()
	p.Set(RedMatrixColumnTag, &CurveEntry{})
	_, err = p.TransformTags(DeviceToPCS, Perceptual)
	assert.ErrorIs(t, err, ErrUnexpectedType)

	// an incomplete matrix/TRC set is not used
	p = testProfile()
	p.Remove(BlueTRCTag)
	_, err = p.TransformTags(DeviceToPCS, Perceptual)
	assert.ErrorIs(t, err, ErrNoTransform)
}

func TestMediaWhitePoint(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, D50, p.MediaWhitePoint())

	white := XYZNumber{X: 0.95, Y: 1, Z: 1.09}
	p.Set(MediaWhitePointTag, &XYZEntry{Values: []XYZNumber{white}})
	assert.Equal(t, white, p.MediaWhitePoint())

	p.Set(MediaWhitePointTag, &XYZEntry{})
	assert.Equal(t, D50, p.MediaWhitePoint())
}

func TestSemanticsStrings(t *testing.T) {
	assert.Equal(t, "device to PCS", DeviceToPCS.String())
	assert.Equal(t, "PCS to device", PCSToDevice.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
	assert.Equal(t, "matrix/TRC", TransformMatrixTRC.String())
	assert.Equal(t, "TransformKind(0)", TransformKind(0).String())
}
