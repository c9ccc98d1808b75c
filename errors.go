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

// These sentinel errors classify decoding and encoding failures.
// Use [errors.Is] to test for them; the concrete error types below
// carry the byte offset of the problem.
var (
	// ErrCorruptProfile indicates a structural problem, for example a
	// wrong signature or an offset which points outside the data.
	ErrCorruptProfile = errors.New("corrupt profile")

	// ErrInvalidProfile indicates a field value which is out of range,
	// for example an impossible date.
	ErrInvalidProfile = errors.New("invalid profile")
)

// CorruptProfileError indicates that an ICC profile contains structurally
// broken binary data and cannot be decoded or encoded.
type CorruptProfileError struct {
	Offset int
	Reason string
}

func corrupt(offset int, format string, args ...any) error {
	return &CorruptProfileError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *CorruptProfileError) Error() string {
	return fmt.Sprintf("icc: corrupt profile (byte %d): %s", e.Offset, e.Reason)
}

// Is reports whether target is [ErrCorruptProfile].
func (e *CorruptProfileError) Is(target error) bool {
	return target == ErrCorruptProfile
}

// InvalidProfileError indicates that an ICC profile contains a field value
// which is well-formed but not allowed.
type InvalidProfileError struct {
	Offset int
	Reason string
}

func invalidProfile(offset int, format string, args ...any) error {
	return &InvalidProfileError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("icc: invalid profile (byte %d): %s", e.Offset, e.Reason)
}

// Is reports whether target is [ErrInvalidProfile].
func (e *InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}
