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

import "crypto/md5"

// Header fields which are excluded from the profile ID.
var idExcluded = [...]struct{ start, end int }{
	{44, 48},  // profile flags
	{64, 68},  // rendering intent
	{84, 100}, // profile ID
}

// ComputeID computes the profile ID of an encoded profile.
//
// The ID is the MD5 digest of the profile, with the profile flags, the
// rendering intent and the profile ID fields of the header set to zero.
// The data is not modified.
func ComputeID(data []byte) (ProfileID, error) {
	if len(data) < headerSize {
		return ProfileID{}, corrupt(len(data), "profile is too short")
	}
	return computeID(data), nil
}

func computeID(data []byte) ProfileID {
	var zeros [16]byte
	h := md5.New()
	pos := 0
	for _, r := range idExcluded {
		h.Write(data[pos:r.start])
		h.Write(zeros[:r.end-r.start])
		pos = r.end
	}
	h.Write(data[pos:])
	return profileIDFromBytes(h.Sum(nil))
}
