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

import "fmt"

// TagSignature identifies the role of a tag in an ICC profile, for example
// "red colorant column" or "media white point".
type TagSignature uint32

func (s TagSignature) String() string {
	return signatureString(uint32(s))
}

// TypeSignature identifies the binary layout of a tag data entry.
// The same type can be used for tags with different signatures.
type TypeSignature uint32

func (s TypeSignature) String() string {
	return signatureString(uint32(s))
}

func signatureString(s uint32) string {
	bb := []byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
	for _, c := range bb {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", s)
		}
	}
	return fmt.Sprintf("%q", string(bb))
}

// Tag signatures defined in the ICC specification (versions 2 and 4).
const (
	AToB0Tag                          TagSignature = 0x41324230 // "A2B0"
	AToB1Tag                          TagSignature = 0x41324231 // "A2B1"
	AToB2Tag                          TagSignature = 0x41324232 // "A2B2"
	BToA0Tag                          TagSignature = 0x42324130 // "B2A0"
	BToA1Tag                          TagSignature = 0x42324131 // "B2A1"
	BToA2Tag                          TagSignature = 0x42324132 // "B2A2"
	BToD0Tag                          TagSignature = 0x42324430 // "B2D0"
	BToD1Tag                          TagSignature = 0x42324431 // "B2D1"
	BToD2Tag                          TagSignature = 0x42324432 // "B2D2"
	BToD3Tag                          TagSignature = 0x42324433 // "B2D3"
	DToB0Tag                          TagSignature = 0x44324230 // "D2B0"
	DToB1Tag                          TagSignature = 0x44324231 // "D2B1"
	DToB2Tag                          TagSignature = 0x44324232 // "D2B2"
	DToB3Tag                          TagSignature = 0x44324233 // "D2B3"
	BlueMatrixColumnTag               TagSignature = 0x6258595A // "bXYZ"
	BlueTRCTag                        TagSignature = 0x62545243 // "bTRC"
	CalibrationDateTimeTag            TagSignature = 0x63616C74 // "calt"
	CharTargetTag                     TagSignature = 0x74617267 // "targ"
	ChromaticAdaptationTag            TagSignature = 0x63686164 // "chad"
	ChromaticityTag                   TagSignature = 0x6368726D // "chrm"
	ColorantOrderTag                  TagSignature = 0x636C726F // "clro"
	ColorantTableTag                  TagSignature = 0x636C7274 // "clrt"
	ColorantTableOutTag               TagSignature = 0x636C6F74 // "clot"
	ColorimetricIntentImageStateTag   TagSignature = 0x63696973 // "ciis"
	CopyrightTag                      TagSignature = 0x63707274 // "cprt"
	CrdInfoTag                        TagSignature = 0x63726469 // "crdi"
	DeviceMfgDescTag                  TagSignature = 0x646D6E64 // "dmnd"
	DeviceModelDescTag                TagSignature = 0x646D6464 // "dmdd"
	DeviceSettingsTag                 TagSignature = 0x64657673 // "devs"
	GamutTag                          TagSignature = 0x67616D74 // "gamt"
	GrayTRCTag                        TagSignature = 0x6B545243 // "kTRC"
	GreenMatrixColumnTag              TagSignature = 0x6758595A // "gXYZ"
	GreenTRCTag                       TagSignature = 0x67545243 // "gTRC"
	LuminanceTag                      TagSignature = 0x6C756D69 // "lumi"
	MeasurementTag                    TagSignature = 0x6D656173 // "meas"
	MediaBlackPointTag                TagSignature = 0x626B7074 // "bkpt"
	MediaWhitePointTag                TagSignature = 0x77747074 // "wtpt"
	NamedColorTag                     TagSignature = 0x6E636F6C // "ncol"
	NamedColor2Tag                    TagSignature = 0x6E636C32 // "ncl2"
	OutputResponseTag                 TagSignature = 0x72657370 // "resp"
	PerceptualRenderingIntentGamutTag TagSignature = 0x72696730 // "rig0"
	Preview0Tag                       TagSignature = 0x70726530 // "pre0"
	Preview1Tag                       TagSignature = 0x70726531 // "pre1"
	Preview2Tag                       TagSignature = 0x70726532 // "pre2"
	ProfileDescriptionTag             TagSignature = 0x64657363 // "desc"
	ProfileSequenceDescTag            TagSignature = 0x70736571 // "pseq"
	ProfileSequenceIdentifierTag      TagSignature = 0x70736964 // "psid"
	Ps2CRD0Tag                        TagSignature = 0x70736430 // "psd0"
	Ps2CRD1Tag                        TagSignature = 0x70736431 // "psd1"
	Ps2CRD2Tag                        TagSignature = 0x70736432 // "psd2"
	Ps2CRD3Tag                        TagSignature = 0x70736433 // "psd3"
	Ps2CSATag                         TagSignature = 0x70733273 // "ps2s"
	Ps2RenderingIntentTag             TagSignature = 0x70733269 // "ps2i"
	RedMatrixColumnTag                TagSignature = 0x7258595A // "rXYZ"
	RedTRCTag                         TagSignature = 0x72545243 // "rTRC"
	SaturationRenderingIntentGamutTag TagSignature = 0x72696732 // "rig2"
	ScreeningDescTag                  TagSignature = 0x73637264 // "scrd"
	ScreeningTag                      TagSignature = 0x7363726E // "scrn"
	TechnologyTag                     TagSignature = 0x74656368 // "tech"
	UcrBgTag                          TagSignature = 0x62666420 // "bfd "
	ViewingCondDescTag                TagSignature = 0x76756564 // "vued"
	ViewingConditionsTag              TagSignature = 0x76696577 // "view"
)

// Type signatures of the tag data entries supported by this package.
// The last group are the signatures of the building blocks used inside
// multiProcessElementsType.
const (
	TypeChromaticity              TypeSignature = 0x6368726D // "chrm"
	TypeColorantOrder             TypeSignature = 0x636C726F // "clro"
	TypeColorantTable             TypeSignature = 0x636C7274 // "clrt"
	TypeCurve                     TypeSignature = 0x63757276 // "curv"
	TypeData                      TypeSignature = 0x64617461 // "data"
	TypeDateTime                  TypeSignature = 0x6474696D // "dtim"
	TypeLut16                     TypeSignature = 0x6D667432 // "mft2"
	TypeLut8                      TypeSignature = 0x6D667431 // "mft1"
	TypeLutAToB                   TypeSignature = 0x6D414220 // "mAB "
	TypeLutBToA                   TypeSignature = 0x6D424120 // "mBA "
	TypeMeasurement               TypeSignature = 0x6D656173 // "meas"
	TypeMultiLocalizedUnicode     TypeSignature = 0x6D6C7563 // "mluc"
	TypeMultiProcessElements      TypeSignature = 0x6D706574 // "mpet"
	TypeNamedColor2               TypeSignature = 0x6E636C32 // "ncl2"
	TypeParametricCurve           TypeSignature = 0x70617261 // "para"
	TypeProfileSequenceDesc       TypeSignature = 0x70736571 // "pseq"
	TypeProfileSequenceIdentifier TypeSignature = 0x70736964 // "psid"
	TypeResponseCurveSet16        TypeSignature = 0x72637332 // "rcs2"
	TypeS15Fixed16Array           TypeSignature = 0x73663332 // "sf32"
	TypeSignatureType             TypeSignature = 0x73696720 // "sig "
	TypeText                      TypeSignature = 0x74657874 // "text"
	TypeU16Fixed16Array           TypeSignature = 0x75663332 // "uf32"
	TypeUInt16Array               TypeSignature = 0x75693136 // "ui16"
	TypeUInt32Array               TypeSignature = 0x75693332 // "ui32"
	TypeUInt64Array               TypeSignature = 0x75693634 // "ui64"
	TypeUInt8Array                TypeSignature = 0x75693038 // "ui08"
	TypeViewingConditions         TypeSignature = 0x76696577 // "view"
	TypeXYZ                       TypeSignature = 0x58595A20 // "XYZ "
	TypeTextDescription           TypeSignature = 0x64657363 // "desc"
	TypeCrdInfo                   TypeSignature = 0x63726469 // "crdi"
	TypeScreening                 TypeSignature = 0x7363726E // "scrn"
	TypeUcrBg                     TypeSignature = 0x62666420 // "bfd "

	TypeSegmentedCurve TypeSignature = 0x63757266 // "curf"
	TypeFormulaSegment TypeSignature = 0x70617266 // "parf"
	TypeSampledSegment TypeSignature = 0x73616D66 // "samf"

	TypeCurveSetElement TypeSignature = 0x63767374 // "cvst"
	TypeMatrixElement   TypeSignature = 0x6D617466 // "matf"
	TypeCLUTElement     TypeSignature = 0x636C7574 // "clut"
	TypeBACSElement     TypeSignature = 0x62414353 // "bACS"
	TypeEACSElement     TypeSignature = 0x65414353 // "eACS"
)
