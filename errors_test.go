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
	"testing"
)

func isCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptProfile)
}

func TestErrorKinds(t *testing.T) {
	c := corrupt(12, "bad %s", "thing")
	i := invalidProfile(24, "bad date")

	if !errors.Is(c, ErrCorruptProfile) || errors.Is(c, ErrInvalidProfile) {
		t.Errorf("wrong kind for %v", c)
	}
	if !errors.Is(i, ErrInvalidProfile) || errors.Is(i, ErrCorruptProfile) {
		t.Errorf("wrong kind for %v", i)
	}

	wrapped := fmt.Errorf("tag %s: %w", RedTRCTag, c)
	var cpe *CorruptProfileError
	if !errors.As(wrapped, &cpe) {
		t.Fatal("wrapped error lost its type")
	}
	if cpe.Offset != 12 || cpe.Reason != "bad thing" {
		t.Errorf("got offset %d, reason %q", cpe.Offset, cpe.Reason)
	}
	if got, want := c.Error(), "icc: corrupt profile (byte 12): bad thing"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
