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

// Package icc reads and writes ICC colour profiles.
//
// ICC profiles describe how to convert colours between device colour spaces
// (such as RGB or CMYK) and a device-independent Profile Connection Space (PCS).
// The PCS is either CIEXYZ or CIELAB, both based on the D50 illuminant.
//
// This package reads and writes the binary profile format.  It does not
// perform colour conversions; instead it gives access to the decoded
// curves, matrices and lookup tables.
//
// # Reading and Writing Profiles
//
// Use [Decode] to read an ICC profile from binary data, and [Profile.Encode]
// to convert a profile back to binary form:
//
//	p, err := icc.Decode(data)
//	if err != nil {
//	    // handle error
//	}
//	// inspect p.Class, p.ColorSpace, p.Version, p.Tags, etc.
//
//	encoded, err := p.Encode()
//
// Malformed input results in a [*CorruptProfileError] or an
// [*InvalidProfileError].
//
// # Tags
//
// The content of a profile is stored in tags.  Each tag has a signature
// which gives its role (for example [RedTRCTag]) and a [TagDataEntry]
// which holds the decoded data:
//
//	trc, err := icc.TagAs[icc.Curve](p, icc.RedTRCTag)
//
// [Profile.TransformTags] selects the tags needed to build a colour
// transformation for a given rendering intent.
package icc

import (
	"fmt"
	"time"
)

// Profile represents an ICC colour profile.
//
// The header fields (Version, Class, ColorSpace, etc.) describe the profile's
// characteristics.  The Tags slice holds the decoded tag data, in the order
// in which the tags are written.
type Profile struct {
	PreferredCMMType   uint32
	Version            Version
	Class              ProfileClass
	ColorSpace         ColorSpace // device colour space (e.g. RGBSpace, CMYKSpace)
	PCS                ColorSpace // Profile Connection Space (PCSXYZSpace or PCSLabSpace)
	CreationDate       time.Time
	PrimaryPlatform    uint32
	Flags              Flags16 // see FlagEmbedded and FlagNotIndependent
	VendorFlags        uint16
	DeviceManufacturer uint32
	DeviceModel        uint32
	DeviceAttributes   DeviceAttributes
	VendorAttributes   uint32
	RenderingIntent    RenderingIntent
	Illuminant         XYZNumber // PCS illuminant; the zero value means D50
	Creator            uint32

	// ID is the MD5 digest of the encoded profile.  Decode always sets this
	// field; Encode ignores it and computes the ID for version 4 profiles.
	ID ProfileID

	Tags []Tag
}

// Tag is one entry of the tag table of a profile.
type Tag struct {
	Signature TagSignature
	Data      TagDataEntry
}

// Indices into [Profile.Flags].
const (
	FlagEmbedded       = 0 // profile is embedded in a file
	FlagNotIndependent = 1 // profile cannot be used independently of the embedded colour data
)

// Version is a version of the ICC profile format.
type Version uint32

// Some well-known versions of the ICC profile format.
const (
	Version2_1_0 Version = 0x0210_0000 // Version 3.3 (November 1996)
	Version2_2_0 Version = 0x0220_0000 // ICC.1:1998-09
	Version2_3_0 Version = 0x0230_0000 // ICC.1:1998-09 + ICC.1A:1999-04
	Version4_0_0 Version = 0x0400_0000 // ICC.1:2001-12
	Version4_1_0 Version = 0x0410_0000 // ICC.1:2003-09
	Version4_2_0 Version = 0x0420_0000 // ICC.1:2004-10
	Version4_3_0 Version = 0x0430_0000 // ICC.1:2010-12
	Version4_4_0 Version = 0x0440_0000 // ICC.1:2022-05

	currentVersion = Version4_4_0
)

func (v Version) String() string {
	major := int(v >> 24)
	minor := int(v >> 20 & 0xF)
	bugfix := int(v >> 16 & 0xF)
	other := int(v & 0xFFFF)

	suffix := ""
	if other != 0 {
		suffix = fmt.Sprintf(".%04X", other)
	}
	return fmt.Sprintf("%d.%d.%d%s", major, minor, bugfix, suffix)
}

// ProfileClass is the ICC profile or device class.
type ProfileClass uint32

func (c ProfileClass) String() string {
	switch c {
	case InputDeviceProfile:
		return "Input Device Profile"
	case DisplayDeviceProfile:
		return "Display Device Profile"
	case OutputDeviceProfile:
		return "Output Device Profile"
	case DeviceLinkProfile:
		return "DeviceLink Profile"
	case ColorSpaceProfile:
		return "ColorSpace Profile"
	case AbstractProfile:
		return "Abstract Profile"
	case NamedColorProfile:
		return "Named Color Profile"
	default:
		return fmt.Sprintf("ProfileClass(0x%08X)", uint32(c))
	}
}

// Profile classes defined in the ICC specification.
const (
	InputDeviceProfile   ProfileClass = 0x73636E72 // "scnr"
	DisplayDeviceProfile ProfileClass = 0x6D6E7472 // "mntr"
	OutputDeviceProfile  ProfileClass = 0x70727472 // "prtr"

	ColorSpaceProfile ProfileClass = 0x73706163 // "spac"
	DeviceLinkProfile ProfileClass = 0x6C696E6B // "link"
	AbstractProfile   ProfileClass = 0x61627374 // "abst"
	NamedColorProfile ProfileClass = 0x6E6D636C // "nmcl"
)

// RenderingIntent specifies how colours outside the destination gamut are handled.
type RenderingIntent uint32

func (ri RenderingIntent) String() string {
	switch ri {
	case Perceptual:
		return "Perceptual"
	case RelativeColorimetric:
		return "Relative Colorimetric"
	case Saturation:
		return "Saturation"
	case AbsoluteColorimetric:
		return "Absolute Colorimetric"
	default:
		return fmt.Sprintf("RenderingIntent(%d)", ri)
	}
}

// Standard ICC rendering intents.
const (
	Perceptual           RenderingIntent = 0 // preserves visual relationships between colours
	RelativeColorimetric RenderingIntent = 1 // maps white point, preserves in-gamut colours
	Saturation           RenderingIntent = 2 // preserves saturation, may shift hue
	AbsoluteColorimetric RenderingIntent = 3 // preserves exact colorimetric values
)

// ColorSpace identifies a colour space in an ICC profile.
type ColorSpace uint32

type colorSpaceInfo struct {
	name       string
	components int
}

var colorSpaces = map[ColorSpace]colorSpaceInfo{
	CIEXYZSpace:  {"CIEXYZ", 3},
	CIELabSpace:  {"CIELAB", 3},
	CIELuvSpace:  {"CIELUV", 3},
	YCbCrSpace:   {"YCbCr", 3},
	CIEYxySpace:  {"CIEYxy", 3},
	RGBSpace:     {"RGB", 3},
	GraySpace:    {"Gray", 1},
	HSVSpace:     {"HSV", 3},
	HLSSpace:     {"HLS", 3},
	CMYKSpace:    {"CMYK", 4},
	CMYSpace:     {"CMY", 3},
	Color2Space:  {"2CLR", 2},
	Color3Space:  {"3CLR", 3},
	Color4Space:  {"4CLR", 4},
	Color5Space:  {"5CLR", 5},
	Color6Space:  {"6CLR", 6},
	Color7Space:  {"7CLR", 7},
	Color8Space:  {"8CLR", 8},
	Color9Space:  {"9CLR", 9},
	Color10Space: {"10CLR", 10},
	Color11Space: {"11CLR", 11},
	Color12Space: {"12CLR", 12},
	Color13Space: {"13CLR", 13},
	Color14Space: {"14CLR", 14},
	Color15Space: {"15CLR", 15},
}

func (s ColorSpace) String() string {
	if info, ok := colorSpaces[s]; ok {
		return info.name
	}
	return fmt.Sprintf("ColorSpace(0x%08X)", uint32(s))
}

// NumComponents returns the number of color components in the color space,
// or 0 if the colour space is not known.
func (s ColorSpace) NumComponents() int {
	return colorSpaces[s].components
}

// Color spaces defined in the ICC specification.
const (
	CIEXYZSpace  ColorSpace = 0x58595A20 // "XYZ "
	CIELabSpace  ColorSpace = 0x4C616220 // "Lab "
	CIELuvSpace  ColorSpace = 0x4C757620 // "Luv "
	YCbCrSpace   ColorSpace = 0x59436272 // "YCbr"
	CIEYxySpace  ColorSpace = 0x59787920 // "Yxy "
	RGBSpace     ColorSpace = 0x52474220 // "RGB "
	GraySpace    ColorSpace = 0x47524159 // "GRAY"
	HSVSpace     ColorSpace = 0x48535620 // "HSV "
	HLSSpace     ColorSpace = 0x484C5320 // "HLS "
	CMYKSpace    ColorSpace = 0x434D594B // "CMYK"
	CMYSpace     ColorSpace = 0x434D5920 // "CMY "
	Color2Space  ColorSpace = 0x32434C52 // "2CLR"
	Color3Space  ColorSpace = 0x33434C52 // "3CLR"
	Color4Space  ColorSpace = 0x34434C52 // "4CLR"
	Color5Space  ColorSpace = 0x35434C52 // "5CLR"
	Color6Space  ColorSpace = 0x36434C52 // "6CLR"
	Color7Space  ColorSpace = 0x37434C52 // "7CLR"
	Color8Space  ColorSpace = 0x38434C52 // "8CLR"
	Color9Space  ColorSpace = 0x39434C52 // "9CLR"
	Color10Space ColorSpace = 0x41434C52 // "ACLR"
	Color11Space ColorSpace = 0x42434C52 // "BCLR"
	Color12Space ColorSpace = 0x43434C52 // "CCLR"
	Color13Space ColorSpace = 0x44434C52 // "DCLR"
	Color14Space ColorSpace = 0x45434C52 // "ECLR"
	Color15Space ColorSpace = 0x46434C52 // "FCLR"

	PCSXYZSpace = CIEXYZSpace
	PCSLabSpace = CIELabSpace
)

// PCSName returns the name of the PCS color space.
func (p *Profile) PCSName() string {
	switch p.PCS {
	case PCSXYZSpace:
		return "PCSXYZ"
	case PCSLabSpace:
		return "PCSLab"
	default:
		return p.PCS.String()
	}
}

// D50 is the PCS illuminant, CIE standard illuminant D50 as stored in
// s15Fixed16Number format.
var D50 = XYZNumber{X: 0.9642, Y: 1.0, Z: 0.8249}
