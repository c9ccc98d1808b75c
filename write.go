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
	"fmt"
	"io"
)

// Encode converts the profile to binary form.
//
// The tags are written in the order of p.Tags.  Tags with byte-identical
// data share a single copy in the output.  For profiles of version 4.0 and
// newer the profile ID is computed and stored in the header; for older
// versions the ID field is left zero.
func (p *Profile) Encode() ([]byte, error) {
	version := p.Version
	if version == 0 {
		version = currentVersion
	}

	type placement struct {
		offset, size int
	}
	places := make([]placement, len(p.Tags))
	byContent := make(map[string]placement)
	seen := make(map[TagSignature]bool, len(p.Tags))
	var pool [][]byte
	pos := headerSize + 4 + 12*len(p.Tags)
	for i, tag := range p.Tags {
		if seen[tag.Signature] {
			return nil, corrupt(headerSize+4+12*i, "duplicate tag %s", tag.Signature)
		}
		seen[tag.Signature] = true

		data, err := EncodeTagData(tag.Data)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", tag.Signature, err)
		}
		if prev, ok := byContent[string(data)]; ok {
			places[i] = prev
			continue
		}
		places[i] = placement{offset: pos, size: len(data)}
		byContent[string(data)] = places[i]
		pool = append(pool, data)
		pos += pad4(len(data))
	}

	w := &writer{buf: make([]byte, 0, pos)}
	w.u32(uint32(pos))
	w.u32(p.PreferredCMMType)
	w.u32(uint32(version))
	w.u32(uint32(p.Class))
	w.u32(uint32(p.ColorSpace))
	w.u32(uint32(p.PCS))
	w.dateTime(p.CreationDate)
	w.bytes([]byte("acsp"))
	w.u32(p.PrimaryPlatform)
	w.flags16(p.Flags)
	w.u16(p.VendorFlags)
	w.u32(p.DeviceManufacturer)
	w.u32(p.DeviceModel)
	w.deviceAttributes(p.DeviceAttributes)
	w.u32(p.VendorAttributes)
	w.u32(uint32(p.RenderingIntent))
	illuminant := p.Illuminant
	if illuminant == (XYZNumber{}) {
		illuminant = D50
	}
	w.xyz(illuminant)
	w.u32(p.Creator)
	w.zeros(headerSize - w.len()) // profile ID and reserved bytes

	w.u32(uint32(len(p.Tags)))
	for i, tag := range p.Tags {
		w.u32(uint32(tag.Signature))
		w.u32(uint32(places[i].offset))
		w.u32(uint32(places[i].size))
	}
	for _, data := range pool {
		w.bytes(data)
		w.align4()
	}
	if w.err != nil {
		return nil, w.err
	}

	if version >= Version4_0_0 {
		id := computeID(w.buf)
		for i, v := range id {
			w.putU32(84+4*i, v)
		}
	}

	return w.buf, nil
}

// WriteTo writes the encoded profile to w.
func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
