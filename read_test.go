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
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProfile returns a small RGB display profile.
func testProfile() *Profile {
	trc := &ParametricCurveEntry{FuncType: 0, Params: []float64{2.25}}
	p := &Profile{
		PreferredCMMType:   0x6C636D73,
		Version:            Version4_3_0,
		Class:              DisplayDeviceProfile,
		ColorSpace:         RGBSpace,
		PCS:                PCSXYZSpace,
		CreationDate:       time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		PrimaryPlatform:    0x4150504C,
		DeviceManufacturer: 0x1234,
		DeviceModel:        0x5678,
		DeviceAttributes:   DeviceAttributes{Matte: true, Vendor: [3]byte{1, 2, 3}},
		VendorAttributes:   0x9ABC,
		RenderingIntent:    RelativeColorimetric,
		Illuminant:         XYZNumber{X: 0.5, Y: 1, Z: 0.75},
		Creator:            0x73656568,
		Tags: []Tag{
			{ProfileDescriptionTag, &MultiLocalizedUnicodeEntry{Strings: []LocalizedUnicode{
				{Language: "en", Country: "US", Value: "Test RGB"},
			}}},
			{CopyrightTag, &MultiLocalizedUnicodeEntry{Strings: []LocalizedUnicode{
				{Language: "en", Country: "US", Value: "No copyright"},
			}}},
			{MediaWhitePointTag, &XYZEntry{Values: []XYZNumber{{X: 0.96417236328125, Y: 1, Z: 0.8249053955078125}}}},
			{RedMatrixColumnTag, &XYZEntry{Values: []XYZNumber{{X: 0.4375, Y: 0.21875, Z: 0.015625}}}},
			{GreenMatrixColumnTag, &XYZEntry{Values: []XYZNumber{{X: 0.375, Y: 0.71875, Z: 0.09375}}}},
			{BlueMatrixColumnTag, &XYZEntry{Values: []XYZNumber{{X: 0.140625, Y: 0.0625, Z: 0.71875}}}},
			{RedTRCTag, trc},
			{GreenTRCTag, trc},
			{BlueTRCTag, trc},
		},
	}
	p.Flags[FlagEmbedded] = true
	return p
}

var profileCmpOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreFields(Profile{}, "ID"),
}

func TestProfileRoundTrip(t *testing.T) {
	p := testProfile()
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, uint32(len(data)), byteOrder.Uint32(data))
	assert.Zero(t, len(data)%4)
	assert.Equal(t, "acsp", string(data[36:40]))

	q, err := Decode(data)
	require.NoError(t, err)
	if d := cmp.Diff(p, q, profileCmpOpts...); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}

	again, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestHeaderLayout(t *testing.T) {
	p := testProfile()
	p.VendorFlags = 0x0102
	data, err := p.Encode()
	require.NoError(t, err)

	assert.Equal(t, []byte{0x80, 0x00, 0x01, 0x02}, data[44:48], "flags")
	assert.Equal(t, []byte{0x40, 1, 2, 3, 0, 0, 0x9A, 0xBC}, data[56:64], "attributes")
	assert.Equal(t, []byte{0, 0, 0, 1}, data[64:68], "rendering intent")
	assert.Equal(t, []byte{0x04, 0x30, 0, 0}, data[8:12], "version")
	assert.Equal(t, make([]byte, 28), data[100:128], "reserved")
}

func TestProfileIDCheck(t *testing.T) {
	data, err := testProfile().Encode()
	require.NoError(t, err)

	id, err := ComputeID(data)
	require.NoError(t, err)
	assert.False(t, id.IsZero())
	assert.Equal(t, id, profileIDFromBytes(data[84:100]))

	p, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	// flags and rendering intent are excluded from the hash
	for _, pos := range []int{44, 45, 67} {
		patched := bytes.Clone(patchByte(data, pos))
		_, err := Decode(patched)
		assert.NoError(t, err, "byte %d", pos)
	}

	// everything else is covered
	for _, pos := range []int{4, 25, 80, 101, len(data) - 1} {
		_, err := Decode(patchByte(data, pos))
		assert.ErrorIs(t, err, ErrCorruptProfile, "byte %d", pos)
	}
}

func patchByte(data []byte, pos int) []byte {
	res := bytes.Clone(data)
	res[pos] ^= 0x01
	return res
}

func TestProfileIDVersion2(t *testing.T) {
	p := testProfile()
	p.Version = Version2_1_0
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), data[84:100])

	// a missing ID is computed on decode
	q, err := Decode(data)
	require.NoError(t, err)
	id, err := ComputeID(data)
	require.NoError(t, err)
	assert.Equal(t, id, q.ID)
}

func TestComputeIDDoesNotModify(t *testing.T) {
	data, err := testProfile().Encode()
	require.NoError(t, err)
	orig := bytes.Clone(data)
	_, err = ComputeID(data)
	require.NoError(t, err)
	assert.Equal(t, orig, data)

	_, err = ComputeID(data[:100])
	assert.ErrorIs(t, err, ErrCorruptProfile)
}

func TestSharedTagData(t *testing.T) {
	p := testProfile()
	data, err := p.Encode()
	require.NoError(t, err)

	// rTRC, gTRC and bTRC are tags 6, 7 and 8
	entry := func(i int) []byte {
		pos := headerSize + 4 + 12*i
		return data[pos+4 : pos+12]
	}
	assert.Equal(t, entry(6), entry(7))
	assert.Equal(t, entry(6), entry(8))
	assert.NotEqual(t, entry(5), entry(6))

	q, err := Decode(data)
	require.NoError(t, err)
	assert.Same(t, q.Tags[6].Data, q.Tags[7].Data)
	assert.Same(t, q.Tags[6].Data, q.Tags[8].Data)
}

func TestDuplicateTags(t *testing.T) {
	p := testProfile()
	p.Tags = append(p.Tags, Tag{RedTRCTag, &CurveEntry{}})
	_, err := p.Encode()
	assert.ErrorIs(t, err, ErrCorruptProfile)

	// When decoding, the first of several tags with the same signature
	// is used.  Version 2 profiles have no ID, so the data can be patched.
	p = testProfile()
	p.Version = Version2_1_0
	data, err := p.Encode()
	require.NoError(t, err)
	pos := headerSize + 4 + 12*1
	byteOrder.PutUint32(data[pos:], uint32(ProfileDescriptionTag))

	q, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, q.Tags, len(p.Tags)-1)
	desc, err := q.Description()
	require.NoError(t, err)
	assert.Equal(t, "Test RGB", desc)
}

func TestDecodeDefaults(t *testing.T) {
	p := &Profile{Class: AbstractProfile, ColorSpace: CIELabSpace, PCS: PCSLabSpace}
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, headerSize+4, len(data))
	assert.Equal(t, make([]byte, 12), data[24:36], "creation date")

	// version 0 is written as the current version
	assert.Equal(t, uint32(currentVersion), byteOrder.Uint32(data[8:]))

	q, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, currentVersion, q.Version)
	assert.True(t, q.CreationDate.IsZero())
	assert.InDelta(t, D50.X, q.Illuminant.X, 1.0/65536)
	assert.InDelta(t, D50.Y, q.Illuminant.Y, 1.0/65536)
	assert.InDelta(t, D50.Z, q.Illuminant.Z, 1.0/65536)
	assert.Empty(t, q.Tags)
}

func TestDecodeCorrupt(t *testing.T) {
	valid, err := testProfile().Encode()
	require.NoError(t, err)

	withSize := func(data []byte, size uint32) []byte {
		data = bytes.Clone(data)
		byteOrder.PutUint32(data, size)
		return data
	}
	tagField := func(i, field int, v uint32) []byte {
		data := bytes.Clone(valid)
		pos := headerSize + 4 + 12*i + 4*field
		byteOrder.PutUint32(data[pos:], v)
		return data
	}

	cases := map[string][]byte{
		"empty":              nil,
		"short":              valid[:100],
		"size too large":     withSize(valid, uint32(len(valid)+4)),
		"size too small":     withSize(valid, 64),
		"no acsp":            patchByte(valid, 36),
		"tag count":          withTagCount(valid, 1<<30),
		"tag offset":         tagField(0, 1, uint32(len(valid))),
		"tag size":           tagField(0, 2, uint32(len(valid))),
		"tag in header":      tagField(0, 1, 16),
		"tag too small":      tagField(0, 2, 4),
		"tag data truncated": tagField(3, 2, 12),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			assert.ErrorIs(t, err, ErrCorruptProfile)
		})
	}
}

func withTagCount(data []byte, n uint32) []byte {
	data = bytes.Clone(data)
	byteOrder.PutUint32(data[headerSize:], n)
	return data
}

func TestDecodeInvalidDate(t *testing.T) {
	p := testProfile()
	p.Version = Version2_1_0
	data, err := p.Encode()
	require.NoError(t, err)
	data[27] = 13 // month

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	var ipe *InvalidProfileError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 24, ipe.Offset)
}

func TestDecodeTagError(t *testing.T) {
	// The error for a broken tag names the tag.
	p := testProfile()
	p.Version = Version2_1_0
	data, err := p.Encode()
	require.NoError(t, err)
	off := byteOrder.Uint32(data[headerSize+4+12*6+4:])
	data[off+9] = 9 // parametric function type

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrCorruptProfile)
	assert.Contains(t, err.Error(), `"rTRC"`)
}

func TestReadFrom(t *testing.T) {
	data, err := testProfile().Encode()
	require.NoError(t, err)

	buf := bytes.NewBuffer(bytes.Clone(data))
	buf.WriteString("trailing data")
	p, err := ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "trailing data", buf.String())
	assert.Equal(t, DisplayDeviceProfile, p.Class)

	_, err = ReadFrom(bytes.NewReader(data[:200]))
	assert.ErrorIs(t, err, ErrCorruptProfile)

	huge := []byte{0x7F, 0xFF, 0xFF, 0xFF}
	_, err = ReadFrom(bytes.NewReader(huge))
	assert.ErrorIs(t, err, ErrCorruptProfile)

	_, err = ReadFrom(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

// wrappedEOFReader reports the end of its data with a wrapped io.EOF.
type wrappedEOFReader struct {
	r io.Reader
}

func (w wrappedEOFReader) Read(p []byte) (int, error) {
	n, err := w.r.Read(p)
	if errors.Is(err, io.EOF) {
		err = fmt.Errorf("source closed: %w", err)
	}
	return n, err
}

func TestReadFromWrappedEOF(t *testing.T) {
	data, err := testProfile().Encode()
	require.NoError(t, err)

	_, err = ReadFrom(wrappedEOFReader{bytes.NewReader(data[:200])})
	assert.ErrorIs(t, err, ErrCorruptProfile)

	p, err := ReadFrom(wrappedEOFReader{bytes.NewReader(data)})
	require.NoError(t, err)
	assert.Equal(t, RGBSpace, p.ColorSpace)
}

func TestWriteTo(t *testing.T) {
	p := testProfile()
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	q, err := ReadFrom(&buf)
	require.NoError(t, err)
	if d := cmp.Diff(p, q, profileCmpOpts...); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestEncodeTagError(t *testing.T) {
	p := testProfile()
	p.Set(AToB0Tag, &LutAToBEntry{})
	_, err := p.Encode()
	assert.ErrorIs(t, err, ErrCorruptProfile)

	p = testProfile()
	p.Set(AToB0Tag, nil)
	_, err = p.Encode()
	assert.ErrorIs(t, err, ErrCorruptProfile)
}

func FuzzDecode(f *testing.F) {
	p := testProfile()
	data, err := p.Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)

	p.Version = Version2_1_0
	p.Tags = append(p.Tags,
		Tag{0x100, &UnknownEntry{Type: 0x7A7A7A7A}},
		Tag{ProfileSequenceDescTag, &ProfileSequenceDescEntry{}})
	for _, tc := range lutTestCases {
		p.Tags = append(p.Tags, Tag{TagSignature(0x41000000 + len(p.Tags)), tc.Lut})
	}
	p.Tags = append(p.Tags, Tag{DToB0Tag, testMPE()})
	data, err = p.Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)

	data, err = (&Profile{}).Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)

	f.Fuzz(func(t *testing.T, a []byte) {
		p, err := Decode(a)
		if err != nil {
			return
		}
		b, err := p.Encode()
		if err != nil {
			t.Fatalf("encoding failed: %v", err)
		}
		q, err := Decode(b)
		if err != nil {
			t.Fatalf("re-decoding failed: %v", err)
		}
		c, err := q.Encode()
		if err != nil {
			t.Fatalf("re-encoding failed: %v", err)
		}
		if !bytes.Equal(b, c) {
			d := cmp.Diff(p, q, profileCmpOpts...)
			t.Fatalf("encoding is not stable:\n%s", d)
		}
	})
}

func TestDecodeOverlappingTags(t *testing.T) {
	big := make([]byte, 8000)
	for i := range big {
		big[i] = byte(i)
	}
	p := &Profile{Version: Version2_1_0}
	p.Tags = append(p.Tags, Tag{0x100, &UnknownEntry{Type: 0x7A7A7A7A, Data: big}})
	for i := 1; i <= 200; i++ {
		p.Tags = append(p.Tags, Tag{TagSignature(0x100 + i), &UnknownEntry{Type: 0x7A7A7A7A, Data: []byte{byte(i), 0, 0, 0}}})
	}
	data, err := p.Encode()
	require.NoError(t, err)

	_, err = Decode(data)
	require.NoError(t, err)

	// Let all small tags point into the large one, with different sizes,
	// so that no two locations are the same.
	bigOffset := byteOrder.Uint32(data[headerSize+4+4:])
	bigSize := byteOrder.Uint32(data[headerSize+4+8:])
	for i := 1; i <= 200; i++ {
		pos := headerSize + 4 + 12*i
		byteOrder.PutUint32(data[pos+4:], bigOffset)
		byteOrder.PutUint32(data[pos+8:], bigSize-uint32(4*i))
	}
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrCorruptProfile)
	assert.ErrorContains(t, err, "referenced too often")
}
