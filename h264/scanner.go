package h264

import (
	"bytes"
	"iter"
)

// StartCode is the Annex-B delimiter. Any zero bytes right before it are
// counted as part of the start code.
var StartCode = []byte{0x00, 0x00, 0x01}

// IndexOfStartCode returns the index of the first start code in buf and its
// length. The zero run before 00 00 01 is absorbed all the way back, so
// 00 00 00 01 is reported with length 4. It returns -1, 0 when buf has no
// start code.
func IndexOfStartCode(buf []byte) (index, length int) {
	index = bytes.Index(buf, StartCode)
	if index == -1 {
		return -1, 0
	}

	length = len(StartCode)
	for index > 0 && buf[index-1] == 0x00 {
		index--
		length++
	}
	return index, length
}

// ReadNextUnit returns the next unit in buf and the bytes left to scan.
// Feeding the remainder back in until it is empty walks the whole buffer.
func ReadNextUnit(buf []byte) (Unit, []byte) {
	u, next := ReadUnitAt(buf, 0)
	return u, buf[next:]
}

// ReadUnitAt scans buf[off:] and returns the unit found there together with
// the offset the following scan starts at. The returned offset is len(buf)
// once buf is drained. Offsets in the unit are relative to buf.
func ReadUnitAt(buf []byte, off int) (Unit, int) {
	if off >= len(buf) {
		return Unit{Offset: len(buf)}, len(buf)
	}
	in := buf[off:]

	start, startLen := IndexOfStartCode(in)
	if start == -1 {
		return Unit{
			Packet: view(in, 0, len(in)),
			Type:   Unknown,
			Offset: off,
		}, len(buf)
	}

	end, _ := IndexOfStartCode(in[start+startLen:])
	complete := end != -1
	if complete {
		end += start + startLen
	} else {
		end = len(in)
	}

	packet := view(in, start, end)
	u := Unit{
		Prefix:       view(in, 0, start),
		Packet:       packet,
		StartCodeLen: startLen,
		Type:         Unknown,
		Complete:     complete,
		Offset:       off + start,
	}
	if len(packet) > startLen {
		u.Type = TypeOf(packet[startLen])
	}
	return u, off + end
}

// Units yields every unit in buf in order. The sequence holds no state of
// its own, so ranging over it again rescans buf from the start.
func Units(buf []byte) iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for off := 0; off < len(buf); {
			u, next := ReadUnitAt(buf, off)
			if !yield(u) {
				return
			}
			off = next
		}
	}
}

// Split collects Units(buf).
func Split(buf []byte) []Unit {
	var units []Unit
	for u := range Units(buf) {
		units = append(units, u)
	}
	return units
}

func view(b []byte, i, j int) []byte {
	if i == j {
		return nil
	}
	return b[i:j:j]
}
