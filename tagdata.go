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

// TagDataEntry is the decoded content of a tag.
//
// The concrete type of an entry is determined by its type signature,
// which is stored together with the data.  The role of the data within
// the profile is determined by the tag signature under which the entry
// is stored, see [Tag].  Entries are treated as immutable once they are
// part of a profile; the same entry may be stored under several tags.
//
// Entries of unknown type are represented by [*UnknownEntry].
type TagDataEntry interface {
	// Signature returns the type signature of the entry.
	Signature() TypeSignature

	isTagDataEntry()
}

// UnknownEntry holds a tag data entry of a type not known to this package.
type UnknownEntry struct {
	Type TypeSignature
	Data []byte // everything after the 8-byte entry header
}

func (e *UnknownEntry) Signature() TypeSignature { return e.Type }
func (*UnknownEntry) isTagDataEntry()            {}

// DecodeTagData decodes a single tag data entry. The data must contain
// exactly one entry, starting with the 8-byte entry header.
func DecodeTagData(data []byte) (TagDataEntry, error) {
	return decodeEntry(newLimitedReader(data, 0))
}

// decodeEntry decodes the entry occupying all of r.data.
func decodeEntry(r *reader) (TagDataEntry, error) {
	e := r.entry()
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}

// DecodeTagDataAs decodes a single tag data entry and checks that it has
// the given type.
func DecodeTagDataAs(data []byte, sig TypeSignature) (TagDataEntry, error) {
	if len(data) >= 4 {
		if found := TypeSignature(byteOrder.Uint32(data)); found != sig {
			return nil, corrupt(0, "expected %s entry, found %s", sig, found)
		}
	}
	return DecodeTagData(data)
}

// entry reads the tag data entry which starts at the beginning of r.data.
// Offsets within the entry are relative to this position.
func (r *reader) entry() TagDataEntry {
	sig := TypeSignature(r.u32())
	r.skip(4)
	if r.err != nil {
		return nil
	}

	var e TagDataEntry
	switch sig {
	case TypeChromaticity:
		e = readChromaticity(r)
	case TypeColorantOrder:
		e = readColorantOrder(r)
	case TypeColorantTable:
		e = readColorantTable(r)
	case TypeCurve:
		e = readCurve(r)
	case TypeData:
		e = readData(r)
	case TypeDateTime:
		e = &DateTimeEntry{Value: r.dateTime()}
	case TypeLut16:
		e = readLut16(r)
	case TypeLut8:
		e = readLut8(r)
	case TypeLutAToB:
		e = (*LutAToBEntry)(readLutAB(r, false))
	case TypeLutBToA:
		e = (*LutBToAEntry)(readLutAB(r, true))
	case TypeMeasurement:
		e = readMeasurement(r)
	case TypeMultiLocalizedUnicode:
		e = readMultiLocalizedUnicode(r)
	case TypeMultiProcessElements:
		e = readMultiProcessElements(r)
	case TypeNamedColor2:
		e = readNamedColor2(r)
	case TypeParametricCurve:
		e = readParametricCurve(r)
	case TypeProfileSequenceDesc:
		e = readProfileSequenceDesc(r)
	case TypeProfileSequenceIdentifier:
		e = readProfileSequenceIdentifier(r)
	case TypeResponseCurveSet16:
		e = readResponseCurveSet16(r)
	case TypeS15Fixed16Array:
		e = &S15Fixed16ArrayEntry{Values: readArray(r, 4, (*reader).fix16)}
	case TypeSignatureType:
		e = &SignatureEntry{Value: r.u32()}
	case TypeText:
		e = readText(r)
	case TypeU16Fixed16Array:
		e = &U16Fixed16ArrayEntry{Values: readArray(r, 4, (*reader).ufix16)}
	case TypeUInt16Array:
		e = &UInt16ArrayEntry{Values: readArray(r, 2, (*reader).u16)}
	case TypeUInt32Array:
		e = &UInt32ArrayEntry{Values: readArray(r, 4, (*reader).u32)}
	case TypeUInt64Array:
		e = &UInt64ArrayEntry{Values: readArray(r, 8, (*reader).u64)}
	case TypeUInt8Array:
		e = &UInt8ArrayEntry{Values: readArray(r, 1, (*reader).u8)}
	case TypeViewingConditions:
		e = readViewingConditions(r)
	case TypeXYZ:
		e = &XYZEntry{Values: readArray(r, 12, (*reader).xyz)}
	case TypeTextDescription:
		e = readTextDescription(r)
	case TypeCrdInfo:
		e = readCrdInfo(r)
	case TypeScreening:
		e = readScreening(r)
	case TypeUcrBg:
		e = readUcrBg(r)
	default:
		logger().WithField("type", sig).Debug("keeping tag data of unknown type")
		e = &UnknownEntry{Type: sig, Data: r.bytes(r.remaining())}
	}
	if r.err != nil {
		return nil
	}
	return e
}

// readArray reads as many fixed-size values as fit into the rest of the
// entry.
func readArray[T any](r *reader, size int, read func(*reader) T) []T {
	n := r.remaining() / size
	res := make([]T, n)
	for i := range res {
		res[i] = read(r)
	}
	return res
}

// EncodeTagData converts a tag data entry to binary form, including the
// 8-byte entry header. The result is not padded.
func EncodeTagData(e TagDataEntry) ([]byte, error) {
	w := &writer{}
	w.entry(e)
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// entry writes e, starting with the entry header.
// Offsets inside the entry are computed relative to the entry start, so
// the writer does not need to be empty.
func (w *writer) entry(e TagDataEntry) {
	if e == nil {
		w.fail(corrupt(w.len(), "missing tag data"))
		return
	}
	w.u32(uint32(e.Signature()))
	w.zeros(4)

	switch e := e.(type) {
	case *ChromaticityEntry:
		writeChromaticity(w, e)
	case *ColorantOrderEntry:
		w.u32(uint32(len(e.Order)))
		w.bytes(e.Order)
	case *ColorantTableEntry:
		writeColorantTable(w, e)
	case *CurveEntry:
		writeCurve(w, e)
	case *DataEntry:
		writeData(w, e)
	case *DateTimeEntry:
		w.dateTime(e.Value)
	case *Lut16Entry:
		writeLut16(w, e)
	case *Lut8Entry:
		writeLut8(w, e)
	case *LutAToBEntry:
		writeLutAB(w, e, false)
	case *LutBToAEntry:
		writeLutAB(w, (*LutAToBEntry)(e), true)
	case *MeasurementEntry:
		writeMeasurement(w, e)
	case *MultiLocalizedUnicodeEntry:
		writeMultiLocalizedUnicode(w, e)
	case *MultiProcessElementsEntry:
		writeMultiProcessElements(w, e)
	case *NamedColor2Entry:
		writeNamedColor2(w, e)
	case *ParametricCurveEntry:
		writeParametricCurve(w, e)
	case *ProfileSequenceDescEntry:
		writeProfileSequenceDesc(w, e)
	case *ProfileSequenceIdentifierEntry:
		writeProfileSequenceIdentifier(w, e)
	case *ResponseCurveSet16Entry:
		writeResponseCurveSet16(w, e)
	case *S15Fixed16ArrayEntry:
		writeArray(w, e.Values, (*writer).fix16)
	case *SignatureEntry:
		w.u32(e.Value)
	case *TextEntry:
		writeText(w, e)
	case *U16Fixed16ArrayEntry:
		writeArray(w, e.Values, (*writer).ufix16)
	case *UInt16ArrayEntry:
		writeArray(w, e.Values, (*writer).u16)
	case *UInt32ArrayEntry:
		writeArray(w, e.Values, (*writer).u32)
	case *UInt64ArrayEntry:
		writeArray(w, e.Values, (*writer).u64)
	case *UInt8ArrayEntry:
		w.bytes(e.Values)
	case *ViewingConditionsEntry:
		writeViewingConditions(w, e)
	case *XYZEntry:
		writeArray(w, e.Values, (*writer).xyz)
	case *TextDescriptionEntry:
		writeTextDescription(w, e)
	case *CrdInfoEntry:
		writeCrdInfo(w, e)
	case *ScreeningEntry:
		writeScreening(w, e)
	case *UcrBgEntry:
		writeUcrBg(w, e)
	case *UnknownEntry:
		w.bytes(e.Data)
	default:
		w.fail(corrupt(w.len(), "cannot encode tag data of type %T", e))
	}
}

func writeArray[T any](w *writer, values []T, write func(*writer, T)) {
	for _, v := range values {
		write(w, v)
	}
}

// encodeBlock encodes a sub-block into a fresh buffer and pads it to a
// multiple of four bytes. Errors are transferred to w.
func (w *writer) encodeBlock(encode func(*writer)) []byte {
	sub := &writer{}
	encode(sub)
	sub.align4()
	if sub.err != nil {
		w.fail(sub.err)
	}
	return sub.buf
}
