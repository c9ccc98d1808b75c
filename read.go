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
	"io"

	"github.com/sirupsen/logrus"
)

const headerSize = 128

// MaxProfileSize is the largest profile size, in bytes, accepted by
// [ReadFrom].
const MaxProfileSize = 64 << 20

// Decode decodes an ICC profile from the given data.
//
// If the header contains a profile ID, the ID is verified and a mismatch
// is reported as a [*CorruptProfileError].  If the ID field is zero, the
// computed ID is stored in the ID field of the result.
// The data is not modified and is not retained by the returned profile.
func Decode(data []byte) (*Profile, error) {
	if len(data) < headerSize+4 {
		return nil, corrupt(len(data), "profile is too short")
	}
	size := byteOrder.Uint32(data)
	if size < headerSize+4 || uint64(size) > uint64(len(data)) {
		return nil, corrupt(0, "invalid profile size %d (%d bytes available)", size, len(data))
	}
	data = data[:size]
	if string(data[36:40]) != "acsp" {
		return nil, corrupt(36, "missing 'acsp' signature")
	}

	r := newLimitedReader(data, 0)
	r.skip(4)
	p := &Profile{
		PreferredCMMType: r.u32(),
		Version:          Version(r.u32()),
		Class:            ProfileClass(r.u32()),
		ColorSpace:       ColorSpace(r.u32()),
		PCS:              ColorSpace(r.u32()),
		CreationDate:     r.dateTime(),
	}
	r.skip(4) // "acsp"
	p.PrimaryPlatform = r.u32()
	p.Flags = r.flags16()
	p.VendorFlags = r.u16()
	p.DeviceManufacturer = r.u32()
	p.DeviceModel = r.u32()
	p.DeviceAttributes = r.deviceAttributes()
	p.VendorAttributes = r.u32()
	p.RenderingIntent = RenderingIntent(r.u32())
	p.Illuminant = r.xyz()
	p.Creator = r.u32()
	storedID := r.profileID()
	r.seek(headerSize)

	if err := p.readTags(r); err != nil {
		return nil, err
	}

	computedID := computeID(data)
	switch {
	case storedID.IsZero():
		logger().WithField("id", computedID).Debug("profile has no ID, using computed value")
		p.ID = computedID
	case storedID != computedID:
		return nil, corrupt(84, "profile ID %s does not match content (%s)", storedID, computedID)
	default:
		p.ID = storedID
	}

	if p.Version == 0 {
		p.Version = currentVersion
	}

	return p, nil
}

// readTags reads the tag table and decodes all tags.
// Tags which point to the same data share the decoded entry.
func (p *Profile) readTags(r *reader) error {
	numTags, ok := r.count(uint64(r.u32()), 12)
	if !ok {
		return r.err
	}
	// since the tag table fits into the data, all positions below fit into an int

	type location struct {
		offset, size uint32
	}
	decoded := make(map[location]TagDataEntry)
	seen := make(map[TagSignature]bool, numTags)
	minTagOffset := uint64(headerSize + 4 + 12*numTags)
	p.Tags = make([]Tag, 0, numTags)
	for range numTags {
		entryOffset := r.offset()
		sig := TagSignature(r.u32())
		loc := location{offset: r.u32(), size: r.u32()}
		if r.err != nil {
			return r.err
		}

		start := uint64(loc.offset)
		end := start + uint64(loc.size)
		if loc.size < 8 {
			return corrupt(entryOffset+8, "tag %s is too small", sig)
		} else if start < minTagOffset || end > uint64(len(r.data)) {
			return corrupt(entryOffset, "tag %s is out of bounds", sig)
		}

		if seen[sig] {
			logger().WithField("tag", sig).Debug("ignoring duplicate tag")
			continue
		}
		seen[sig] = true

		e, ok := decoded[loc]
		if ok {
			logger().WithFields(logrus.Fields{
				"tag":    sig,
				"offset": loc.offset,
			}).Debug("tag data shared with another tag")
		} else {
			var err error
			e, err = decodeEntry(r.at(int(start), int(end)))
			if err != nil {
				return fmt.Errorf("tag %s: %w", sig, err)
			}
			decoded[loc] = e
		}
		p.Tags = append(p.Tags, Tag{Signature: sig, Data: e})
	}
	return nil
}

// ReadFrom reads one profile from r.  The size of the profile is taken
// from the first four bytes of the header, and exactly this many bytes
// are consumed from r.  Profiles larger than [MaxProfileSize] are
// rejected.
func ReadFrom(r io.Reader) (*Profile, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("icc: reading profile size: %w", err)
	}
	size := byteOrder.Uint32(head[:])
	if size < headerSize+4 {
		return nil, corrupt(0, "invalid profile size %d", size)
	}
	if size > MaxProfileSize {
		return nil, corrupt(0, "profile size %d exceeds the limit of %d bytes", size, MaxProfileSize)
	}

	data := make([]byte, size)
	copy(data, head[:])
	if _, err := io.ReadFull(r, data[4:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, corrupt(4, "profile is truncated")
		}
		return nil, fmt.Errorf("icc: reading profile: %w", err)
	}
	return Decode(data)
}
