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

	"golang.org/x/text/language"
)

var (
	// ErrMissingTag is returned when a profile lacks a requested tag.
	ErrMissingTag = errors.New("missing tag")

	// ErrUnexpectedType is returned when a tag holds data of a type which
	// cannot be used for the requested purpose.
	ErrUnexpectedType = errors.New("unexpected tag data type")
)

// Tag returns the data stored under the given tag signature.
func (p *Profile) Tag(sig TagSignature) (TagDataEntry, bool) {
	for _, t := range p.Tags {
		if t.Signature == sig {
			return t.Data, true
		}
	}
	return nil, false
}

// TagAs returns the data stored under the given tag signature, as a value
// of type T.  T can be a concrete entry type like [*XYZEntry], or an
// interface like [Curve].
func TagAs[T TagDataEntry](p *Profile, sig TagSignature) (T, error) {
	var zero T
	e, ok := p.Tag(sig)
	if !ok {
		return zero, fmt.Errorf("%s: %w", sig, ErrMissingTag)
	}
	v, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%s has type %s: %w", sig, e.Signature(), ErrUnexpectedType)
	}
	return v, nil
}

// HasTag reports whether the profile contains the given tag.
func (p *Profile) HasTag(sig TagSignature) bool {
	_, ok := p.Tag(sig)
	return ok
}

// Set stores e under the given tag signature.  An existing tag with the
// same signature is replaced in place, otherwise the tag is appended.
func (p *Profile) Set(sig TagSignature, e TagDataEntry) {
	for i := range p.Tags {
		if p.Tags[i].Signature == sig {
			p.Tags[i].Data = e
			return
		}
	}
	p.Tags = append(p.Tags, Tag{Signature: sig, Data: e})
}

// Remove deletes the tag with the given signature.  The return value
// indicates whether the tag was present.
func (p *Profile) Remove(sig TagSignature) bool {
	for i := range p.Tags {
		if p.Tags[i].Signature == sig {
			p.Tags = append(p.Tags[:i], p.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// Text returns the text stored in the given tag.  The tag can have type
// textType, textDescriptionType or multiLocalizedUnicodeType; the first
// two are returned as a single en-US string.
func (p *Profile) Text(sig TagSignature) (*MultiLocalizedUnicodeEntry, error) {
	e, ok := p.Tag(sig)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sig, ErrMissingTag)
	}
	switch e := e.(type) {
	case *MultiLocalizedUnicodeEntry:
		return e, nil
	case *TextDescriptionEntry:
		return &MultiLocalizedUnicodeEntry{Strings: e.localized()}, nil
	case *TextEntry:
		return &MultiLocalizedUnicodeEntry{
			Strings: []LocalizedUnicode{{Language: "en", Country: "US", Value: e.Text}},
		}, nil
	default:
		return nil, fmt.Errorf("%s has type %s: %w", sig, e.Signature(), ErrUnexpectedType)
	}
}

// Description returns the profile description, preferring American English.
func (p *Profile) Description() (string, error) {
	return p.textIn(ProfileDescriptionTag, language.AmericanEnglish)
}

// Copyright returns the copyright notice, preferring American English.
func (p *Profile) Copyright() (string, error) {
	return p.textIn(CopyrightTag, language.AmericanEnglish)
}

func (p *Profile) textIn(sig TagSignature, lang language.Tag) (string, error) {
	text, err := p.Text(sig)
	if err != nil {
		return "", err
	}
	return text.Best(lang), nil
}
