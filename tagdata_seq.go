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

// ProfileSequenceDescEntry represents a profileSequenceDescType (pseq) tag
// data entry, describing the profiles which were combined into a device
// link or abstract profile.
type ProfileSequenceDescEntry struct {
	Descriptions []ProfileDescription
}

func (*ProfileSequenceDescEntry) Signature() TypeSignature { return TypeProfileSequenceDesc }
func (*ProfileSequenceDescEntry) isTagDataEntry()          {}

// minDescriptionSize is the size of a profile description with two empty
// mluc entries.
const minDescriptionSize = 20 + 2*16

func readProfileSequenceDesc(r *reader) *ProfileSequenceDescEntry {
	n, ok := r.count(uint64(r.u32()), minDescriptionSize)
	if !ok {
		return nil
	}
	e := &ProfileSequenceDescEntry{Descriptions: make([]ProfileDescription, n)}
	for i := range e.Descriptions {
		e.Descriptions[i] = r.profileDescription()
	}
	return e
}

func writeProfileSequenceDesc(w *writer, e *ProfileSequenceDescEntry) {
	w.u32(uint32(len(e.Descriptions)))
	for _, d := range e.Descriptions {
		w.profileDescription(d)
	}
}

// ProfileIdentifier identifies one profile of a profile sequence.
type ProfileIdentifier struct {
	ID          ProfileID
	Description []LocalizedUnicode
}

// ProfileSequenceIdentifierEntry represents a
// profileSequenceIdentifierType (psid) tag data entry.
type ProfileSequenceIdentifierEntry struct {
	Identifiers []ProfileIdentifier
}

func (*ProfileSequenceIdentifierEntry) Signature() TypeSignature {
	return TypeProfileSequenceIdentifier
}
func (*ProfileSequenceIdentifierEntry) isTagDataEntry() {}

func readProfileSequenceIdentifier(r *reader) *ProfileSequenceIdentifierEntry {
	n, ok := r.count(uint64(r.u32()), 8)
	if !ok {
		return nil
	}
	table := r.positionTable(n)
	if r.err != nil {
		return nil
	}

	e := &ProfileSequenceIdentifierEntry{Identifiers: make([]ProfileIdentifier, n)}
	for i, pos := range table {
		s := r.block(pos, 16)
		e.Identifiers[i].ID = s.profileID()
		e.Identifiers[i].Description = s.embeddedText()
		if s.err != nil {
			r.fail(s.err)
			return nil
		}
	}
	r.pos = len(r.data)
	return e
}

func writeProfileSequenceIdentifier(w *writer, e *ProfileSequenceIdentifierEntry) {
	blocks := make([][]byte, len(e.Identifiers))
	for i, id := range e.Identifiers {
		blocks[i] = w.encodeBlock(func(s *writer) {
			s.profileID(id.ID)
			s.embeddedText(id.Description)
		})
	}
	w.u32(uint32(len(blocks)))
	w.positionTable(8+4, blocks)
}

// positionTable reads n (offset, size) pairs and checks that they lie
// within the entry.
func (r *reader) positionTable(n int) []PositionNumber {
	table := make([]PositionNumber, n)
	for i := range table {
		start := r.offset()
		table[i] = r.position()
		if r.err != nil {
			return nil
		}
		end := uint64(table[i].Offset) + uint64(table[i].Size)
		if end > uint64(len(r.data)) {
			r.fail(corrupt(start, "element %d (%d+%d) exceeds entry size %d",
				i, table[i].Offset, table[i].Size, len(r.data)))
			return nil
		}
	}
	return table
}

// block returns a reader for a block listed in a position table.
func (r *reader) block(pos PositionNumber, minSize int) *reader {
	start := int(pos.Offset)
	end := start + int(pos.Size)
	if int(pos.Size) < minSize {
		return &reader{base: r.base + start, err: corrupt(r.base+start, "element of %d bytes is too short", pos.Size)}
	}
	return r.at(start, end)
}

// positionTable writes the position table for the given blocks, followed
// by the blocks themselves. The argument headerSize is the number of
// bytes of the entry which precede the table.
func (w *writer) positionTable(headerSize int, blocks [][]byte) {
	offset := headerSize + 8*len(blocks)
	for _, b := range blocks {
		w.u32(uint32(offset))
		w.u32(uint32(len(b)))
		offset += len(b)
	}
	for _, b := range blocks {
		w.bytes(b)
	}
}

// ResponseCurve holds the measured device response for one measurement
// unit.
type ResponseCurve struct {
	Unit      uint32             // measurement unit, e.g. 'StaA' for Status A
	PCS       []XYZNumber        // PCS value of the maximum colorant, per channel
	Responses [][]ResponseNumber // response measurements, per channel
}

// ResponseCurveSet16Entry represents a responseCurveSet16Type (rcs2) tag
// data entry.
type ResponseCurveSet16Entry struct {
	Channels int
	Curves   []ResponseCurve
}

func (*ResponseCurveSet16Entry) Signature() TypeSignature { return TypeResponseCurveSet16 }
func (*ResponseCurveSet16Entry) isTagDataEntry()          {}

func readResponseCurveSet16(r *reader) *ResponseCurveSet16Entry {
	channels := int(r.u16())
	count, ok := r.count(uint64(r.u16()), 4)
	if !ok {
		return nil
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = r.u32()
	}
	if r.err != nil {
		return nil
	}

	e := &ResponseCurveSet16Entry{Channels: channels, Curves: make([]ResponseCurve, count)}
	for i, off := range offsets {
		if uint64(off) > uint64(len(r.data)) {
			r.fail(corrupt(r.base+12+4*i, "response curve offset %d exceeds entry size %d", off, len(r.data)))
			return nil
		}
		s := r.at(int(off), len(r.data))
		e.Curves[i] = s.responseCurve(channels)
		if s.err != nil {
			r.fail(s.err)
			return nil
		}
	}
	r.pos = len(r.data)
	return e
}

func (r *reader) responseCurve(channels int) ResponseCurve {
	c := ResponseCurve{Unit: r.u32()}
	if _, ok := r.count(uint64(channels), 16); !ok {
		return c
	}
	counts := make([]uint32, channels)
	for i := range counts {
		counts[i] = r.u32()
	}
	c.PCS = make([]XYZNumber, channels)
	for i := range c.PCS {
		c.PCS[i] = r.xyz()
	}
	c.Responses = make([][]ResponseNumber, channels)
	for i := range c.Responses {
		n, ok := r.count(uint64(counts[i]), 8)
		if !ok {
			return c
		}
		resp := make([]ResponseNumber, n)
		for j := range resp {
			resp[j] = r.response()
		}
		c.Responses[i] = resp
	}
	return c
}

func writeResponseCurveSet16(w *writer, e *ResponseCurveSet16Entry) {
	blocks := make([][]byte, len(e.Curves))
	for i, c := range e.Curves {
		if len(c.PCS) != e.Channels || len(c.Responses) != e.Channels {
			w.fail(corrupt(w.len(), "response curve %d does not have %d channels", i, e.Channels))
			return
		}
		blocks[i] = w.encodeBlock(func(s *writer) {
			s.u32(c.Unit)
			for _, resp := range c.Responses {
				s.u32(uint32(len(resp)))
			}
			writeArray(s, c.PCS, (*writer).xyz)
			for _, resp := range c.Responses {
				writeArray(s, resp, (*writer).response)
			}
		})
	}

	w.u16(uint16(e.Channels))
	w.u16(uint16(len(blocks)))
	offset := 12 + 4*len(blocks)
	for _, b := range blocks {
		w.u32(uint32(offset))
		offset += len(b)
	}
	for _, b := range blocks {
		w.bytes(b)
	}
}
