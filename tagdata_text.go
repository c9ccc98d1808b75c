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
	"strings"

	"golang.org/x/text/language"
)

// TextEntry represents a textType tag data entry, holding 7-bit ASCII text.
type TextEntry struct {
	Text string
}

func (*TextEntry) Signature() TypeSignature { return TypeText }
func (*TextEntry) isTagDataEntry()          {}

func readText(r *reader) *TextEntry {
	return &TextEntry{Text: r.ascii(r.remaining())}
}

func writeText(w *writer, e *TextEntry) {
	w.bytes([]byte(e.Text))
	w.u8(0)
}

// DataEntry represents a dataType tag data entry.
type DataEntry struct {
	Binary bool // the data is binary rather than ASCII text
	Data   []byte
}

func (*DataEntry) Signature() TypeSignature { return TypeData }
func (*DataEntry) isTagDataEntry()          {}

func readData(r *reader) *DataEntry {
	start := r.offset()
	flag := r.u32()
	if r.err != nil {
		return nil
	}
	if flag > 1 {
		r.fail(corrupt(start, "unknown data flag %d", flag))
		return nil
	}
	return &DataEntry{Binary: flag == 1, Data: r.bytes(r.remaining())}
}

func writeData(w *writer, e *DataEntry) {
	var flag uint32
	if e.Binary {
		flag = 1
	}
	w.u32(flag)
	w.bytes(e.Data)
}

// LocalizedUnicode represents a string together with its language and
// country.
type LocalizedUnicode struct {
	Language string // ISO 639-1 code, e.g. "en"
	Country  string // ISO 3166-1 code, e.g. "US"
	Value    string
}

// MultiLocalizedUnicodeEntry represents a multiLocalizedUnicodeType (mluc)
// tag data entry.
type MultiLocalizedUnicodeEntry struct {
	Strings []LocalizedUnicode
}

func (*MultiLocalizedUnicodeEntry) Signature() TypeSignature { return TypeMultiLocalizedUnicode }
func (*MultiLocalizedUnicodeEntry) isTagDataEntry()          {}

// Best returns the string whose locale best matches the given language.
// If there is no good match, the first string is returned.
func (e *MultiLocalizedUnicodeEntry) Best(lang language.Tag) string {
	if len(e.Strings) == 0 {
		return ""
	}
	supported := make([]language.Tag, len(e.Strings))
	for i, s := range e.Strings {
		supported[i] = s.tag()
	}
	_, idx, conf := language.NewMatcher(supported).Match(lang)
	if conf == language.No {
		idx = 0
	}
	return e.Strings[idx].Value
}

func (s LocalizedUnicode) tag() language.Tag {
	tag := language.Make(strings.ToLower(s.Language))
	if region, err := language.ParseRegion(s.Country); err == nil {
		if t, err := language.Compose(tag, region); err == nil {
			return t
		}
	}
	return tag
}

// mlucRecordSize is the size of one record in the mluc position table.
const mlucRecordSize = 12

// readMultiLocalizedUnicode reads an mluc entry. Afterwards r is
// positioned after the last string, which matters when the entry is
// embedded in a larger structure.
func readMultiLocalizedUnicode(r *reader) *MultiLocalizedUnicodeEntry {
	count := r.u32()
	recSizeOffset := r.offset()
	recSize := r.u32()
	if r.err != nil {
		return nil
	}
	if recSize != mlucRecordSize {
		r.fail(corrupt(recSizeOffset, "unexpected mluc record size %d", recSize))
		return nil
	}
	n, ok := r.count(uint64(count), mlucRecordSize)
	if !ok {
		return nil
	}

	type span struct {
		offset, length uint32
	}
	decoded := make(map[span]string)

	e := &MultiLocalizedUnicodeEntry{Strings: make([]LocalizedUnicode, n)}
	end := r.pos + n*mlucRecordSize
	for i := range e.Strings {
		recOffset := r.offset()
		lang := r.ascii(2)
		country := r.ascii(2)
		length := r.u32()
		offset := r.u32()
		if r.err != nil {
			return nil
		}
		start := uint64(offset)
		stop := start + uint64(length)
		if stop > uint64(len(r.data)) || length%2 != 0 {
			r.fail(corrupt(recOffset, "invalid string position %d+%d", offset, length))
			return nil
		}
		value, ok := decoded[span{offset, length}]
		if !ok {
			if !r.charge(int(length)) {
				return nil
			}
			value = decodeUTF16BE(r.data[start:stop])
			decoded[span{offset, length}] = value
		}
		e.Strings[i] = LocalizedUnicode{Language: lang, Country: country, Value: value}
		end = max(end, int(stop))
	}
	r.pos = end
	return e
}

// writeMultiLocalizedUnicode writes the body of an mluc entry.
// Identical strings are stored only once.
func writeMultiLocalizedUnicode(w *writer, e *MultiLocalizedUnicodeEntry) {
	n := len(e.Strings)
	w.u32(uint32(n))
	w.u32(mlucRecordSize)

	type blob struct {
		offset, length int
	}
	seen := make(map[string]blob)
	var pool []byte
	recs := make([]blob, n)
	base := 16 + n*mlucRecordSize
	for i, s := range e.Strings {
		if b, ok := seen[s.Value]; ok {
			recs[i] = b
			continue
		}
		data, err := encodeUTF16BE(s.Value)
		if err != nil {
			w.fail(err)
			return
		}
		b := blob{offset: base + len(pool), length: len(data)}
		pool = append(pool, data...)
		seen[s.Value] = b
		recs[i] = b
	}

	for i, s := range e.Strings {
		w.padded(s.Language, 2, 0)
		w.padded(s.Country, 2, 0)
		w.u32(uint32(recs[i].length))
		w.u32(uint32(recs[i].offset))
	}
	w.bytes(pool)
}

// TextDescriptionEntry represents a textDescriptionType (desc) tag data
// entry, as used in version 2 profiles.  The text is given in ASCII,
// and optionally as Unicode and in a Macintosh script code.
type TextDescriptionEntry struct {
	ASCII string

	UnicodeLanguage uint32
	Unicode         string

	ScriptCode     uint16
	ScriptCodeText string // at most 66 bytes
}

func (*TextDescriptionEntry) Signature() TypeSignature { return TypeTextDescription }
func (*TextDescriptionEntry) isTagDataEntry()          {}

func readTextDescription(r *reader) *TextDescriptionEntry {
	e := &TextDescriptionEntry{}
	n, ok := r.count(uint64(r.u32()), 1)
	if !ok {
		return nil
	}
	e.ASCII = r.ascii(n)
	if r.err != nil {
		return nil
	}
	// Some writers omit the Unicode and script code parts.
	if r.remaining() < 4+4+3+67 {
		r.pos = len(r.data)
		return e
	}

	e.UnicodeLanguage = r.u32()
	n, ok = r.count(uint64(r.u32()), 2)
	if !ok {
		return nil
	}
	e.Unicode = strings.TrimRight(r.unicode(2*n), "\x00")

	e.ScriptCode = r.u16()
	scriptLen := int(r.u8())
	script := r.bytes(67)
	if r.err != nil {
		return nil
	}
	script = script[:min(scriptLen, len(script))]
	if i := strings.IndexByte(string(script), 0); i >= 0 {
		script = script[:i]
	}
	e.ScriptCodeText = string(script)
	return e
}

func writeTextDescription(w *writer, e *TextDescriptionEntry) {
	w.u32(uint32(len(e.ASCII) + 1))
	w.bytes([]byte(e.ASCII))
	w.u8(0)

	w.u32(e.UnicodeLanguage)
	if e.Unicode == "" {
		w.u32(0)
	} else {
		data, err := encodeUTF16BE(e.Unicode)
		if err != nil {
			w.fail(err)
			return
		}
		w.u32(uint32(len(data)/2 + 1))
		w.bytes(data)
		w.u16(0)
	}

	w.u16(e.ScriptCode)
	script := e.ScriptCodeText
	if len(script) > 66 {
		script = script[:66]
	}
	if script == "" {
		w.u8(0)
	} else {
		w.u8(uint8(len(script) + 1))
	}
	w.padded(script, 67, 0)
}

// localized converts the description into the form used by mluc entries.
func (e *TextDescriptionEntry) localized() []LocalizedUnicode {
	text := e.ASCII
	if text == "" {
		text = e.Unicode
	}
	return []LocalizedUnicode{{Language: "en", Country: "US", Value: text}}
}

// CrdInfoEntry represents a crdInfoType (crdi) tag data entry, holding the
// PostScript product name and the names of the colour rendering
// dictionaries for the four rendering intents.
type CrdInfoEntry struct {
	ProductName string
	CRDNames    [4]string
}

func (*CrdInfoEntry) Signature() TypeSignature { return TypeCrdInfo }
func (*CrdInfoEntry) isTagDataEntry()          {}

func readCrdInfo(r *reader) *CrdInfoEntry {
	e := &CrdInfoEntry{ProductName: r.countedASCII()}
	for i := range e.CRDNames {
		e.CRDNames[i] = r.countedASCII()
	}
	return e
}

// countedASCII reads a uint32 byte count followed by NUL-terminated text.
func (r *reader) countedASCII() string {
	n, ok := r.count(uint64(r.u32()), 1)
	if !ok {
		return ""
	}
	return r.ascii(n)
}

func writeCrdInfo(w *writer, e *CrdInfoEntry) {
	w.countedASCII(e.ProductName)
	for _, name := range e.CRDNames {
		w.countedASCII(name)
	}
}

func (w *writer) countedASCII(s string) {
	w.u32(uint32(len(s) + 1))
	w.bytes([]byte(s))
	w.u8(0)
}
