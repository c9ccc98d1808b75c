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
	"errors"
	"fmt"
)

// Direction specifies the direction of a colour transformation.
type Direction int

const (
	// DeviceToPCS converts from device colour space to Profile Connection Space.
	DeviceToPCS Direction = iota
	// PCSToDevice converts from Profile Connection Space to device colour space.
	PCSToDevice
)

func (d Direction) String() string {
	switch d {
	case DeviceToPCS:
		return "device to PCS"
	case PCSToDevice:
		return "PCS to device"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// TransformKind describes how a profile represents a colour transformation.
type TransformKind int

// These are the transformation kinds, in order of preference.
const (
	TransformFloat     TransformKind = iota + 1 // DToBx / BToDx tag
	TransformLut                                // AToBx / BToAx tag
	TransformMatrixTRC                          // colorant columns and TRCs
	TransformGrayTRC                            // gray TRC
)

func (k TransformKind) String() string {
	switch k {
	case TransformFloat:
		return "float LUT"
	case TransformLut:
		return "LUT"
	case TransformMatrixTRC:
		return "matrix/TRC"
	case TransformGrayTRC:
		return "gray TRC"
	default:
		return fmt.Sprintf("TransformKind(%d)", int(k))
	}
}

// TransformSelection lists the tags which a colour management module
// needs to build a transformation from a profile.
type TransformSelection struct {
	Kind TransformKind

	// Intent is the rendering intent of the selected tags.  This differs
	// from the requested intent when the profile falls back to the
	// perceptual LUT.
	Intent RenderingIntent

	// Tags lists the selected tags.  For matrix/TRC profiles the order is
	// red, green and blue colorant, followed by the red, green and blue TRC.
	Tags []TagSignature
}

// ErrNoTransform is returned by [Profile.TransformTags] if a profile has
// no usable tags for the requested direction.
var ErrNoTransform = errors.New("no transform tags")

var (
	floatTags = [2][4]TagSignature{
		{DToB0Tag, DToB1Tag, DToB2Tag, DToB3Tag},
		{BToD0Tag, BToD1Tag, BToD2Tag, BToD3Tag},
	}
	lutTags = [2][3]TagSignature{
		{AToB0Tag, AToB1Tag, AToB2Tag},
		{BToA0Tag, BToA1Tag, BToA2Tag},
	}
	matrixTRCTags = []TagSignature{
		RedMatrixColumnTag, GreenMatrixColumnTag, BlueMatrixColumnTag,
		RedTRCTag, GreenTRCTag, BlueTRCTag,
	}
)

// TransformTags selects the tags which describe the colour transformation
// for the given direction and rendering intent.
//
// The tags are tried in the following order: the float tag for the intent
// (DToBx or BToDx), the LUT tag for the intent (AToBx or BToAx), the
// perceptual LUT tag, the matrix/TRC tags, and finally the gray TRC.
// Absolute colorimetric rendering uses the relative colorimetric LUT.
func (p *Profile) TransformTags(dir Direction, intent RenderingIntent) (TransformSelection, error) {
	if dir != DeviceToPCS && dir != PCSToDevice {
		return TransformSelection{}, fmt.Errorf("icc: invalid direction %d", int(dir))
	}
	if intent > AbsoluteColorimetric {
		return TransformSelection{}, fmt.Errorf("icc: invalid rendering intent %d", int(intent))
	}

	sig := floatTags[dir][intent]
	if e, ok := p.Tag(sig); ok {
		if _, ok := e.(*MultiProcessElementsEntry); !ok {
			return TransformSelection{}, fmt.Errorf("%s has type %s: %w", sig, e.Signature(), ErrUnexpectedType)
		}
		return TransformSelection{Kind: TransformFloat, Intent: intent, Tags: []TagSignature{sig}}, nil
	}

	lutIntent := intent
	if lutIntent == AbsoluteColorimetric {
		lutIntent = RelativeColorimetric
	}
	for _, candidate := range []RenderingIntent{lutIntent, Perceptual} {
		sig := lutTags[dir][candidate]
		e, ok := p.Tag(sig)
		if !ok {
			continue
		}
		switch e.(type) {
		case *Lut8Entry, *Lut16Entry, *LutAToBEntry, *LutBToAEntry:
		default:
			return TransformSelection{}, fmt.Errorf("%s has type %s: %w", sig, e.Signature(), ErrUnexpectedType)
		}
		if candidate != lutIntent {
			logger().WithField("intent", intent).Debug("falling back to perceptual LUT")
		}
		return TransformSelection{Kind: TransformLut, Intent: candidate, Tags: []TagSignature{sig}}, nil
	}

	if p.hasAll(matrixTRCTags) {
		for _, sig := range matrixTRCTags[:3] {
			if _, err := TagAs[*XYZEntry](p, sig); err != nil {
				return TransformSelection{}, err
			}
		}
		for _, sig := range matrixTRCTags[3:] {
			if _, err := TagAs[Curve](p, sig); err != nil {
				return TransformSelection{}, err
			}
		}
		return TransformSelection{Kind: TransformMatrixTRC, Intent: intent, Tags: append([]TagSignature(nil), matrixTRCTags...)}, nil
	}

	if _, ok := p.Tag(GrayTRCTag); ok {
		if _, err := TagAs[Curve](p, GrayTRCTag); err != nil {
			return TransformSelection{}, err
		}
		return TransformSelection{Kind: TransformGrayTRC, Intent: intent, Tags: []TagSignature{GrayTRCTag}}, nil
	}

	return TransformSelection{}, fmt.Errorf("icc: %s, %s: %w", dir, intent, ErrNoTransform)
}

func (p *Profile) hasAll(sigs []TagSignature) bool {
	for _, sig := range sigs {
		if !p.HasTag(sig) {
			return false
		}
	}
	return true
}

// MediaWhitePoint returns the media white point of the profile.
// If the profile has no usable wtpt tag, the D50 white point is returned.
func (p *Profile) MediaWhitePoint() XYZNumber {
	e, err := TagAs[*XYZEntry](p, MediaWhitePointTag)
	if err != nil || len(e.Values) == 0 {
		return D50
	}
	return e.Values[0]
}
