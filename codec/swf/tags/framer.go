/*
DESCRIPTION
  framer.go slices the byte range following the SWF document header into
  length-prefixed tag records, using the short/long tag header encoding.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tags provides framing of the SWF tag stream into (code, body)
// records. It does not interpret tag bodies; that is left to per-tag
// decoders further up the stack.
package tags

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// longLengthEscape is the short-length value that signals a following u32
// length field.
const longLengthEscape = 0x3f

// EndCode is the tag code that terminates a tag stream.
const EndCode = 0

// Record is one framed tag: its code, and the exact byte slice making up
// its body (length as declared in the stream, never interpreted here).
type Record struct {
	Code   uint16
	Offset int // byte offset of the tag header within the framed buffer.
	Body   []byte
}

// TruncatedTagError reports a tag header whose declared length runs past
// the end of the buffer being framed.
type TruncatedTagError struct {
	Code      uint16
	Offset    int
	Requested int
	Available int
}

func (e *TruncatedTagError) Error() string {
	return fmt.Sprintf("tags: tag %d at offset %d requests %d bytes but only %d are available",
		e.Code, e.Offset, e.Requested, e.Available)
}

// Frame slices buf into a sequence of tag Records, stopping at the End tag
// (code 0) or at exhaustion of buf. A record whose declared length exceeds
// the remaining bytes is fatal to framing (the length field itself cannot
// be trusted past that point) and is returned as the error; any records
// successfully framed before it are still returned.
//
// Frame never looks inside a tag body; interpreting bodies is the job of
// decoders further up the stack, so that a decoder bug can never
// desynchronise framing of the tags that follow it.
func Frame(buf []byte) ([]Record, error) {
	var records []Record
	off := 0
	for off < len(buf) {
		if off+2 > len(buf) {
			return records, &TruncatedTagError{Offset: off, Requested: 2, Available: len(buf) - off}
		}
		h := binary.LittleEndian.Uint16(buf[off : off+2])
		code := h >> 6
		shortLen := int(h & 0x3f)
		hdrLen := 2
		length := shortLen
		if shortLen == longLengthEscape {
			if off+6 > len(buf) {
				return records, &TruncatedTagError{Code: code, Offset: off, Requested: 4, Available: len(buf) - (off + 2)}
			}
			length = int(binary.LittleEndian.Uint32(buf[off+2 : off+6]))
			hdrLen = 6
		}

		bodyStart := off + hdrLen
		if bodyStart+length > len(buf) {
			return records, &TruncatedTagError{Code: code, Offset: off, Requested: length, Available: len(buf) - bodyStart}
		}

		rec := Record{Code: code, Offset: off, Body: buf[bodyStart : bodyStart+length]}
		records = append(records, rec)
		off = bodyStart + length

		if code == EndCode {
			break
		}
	}
	return records, nil
}

// MustFrame is a convenience for callers (tests, tools) that want framing
// errors converted into a panic; production decode paths should call Frame
// directly and handle the error.
func MustFrame(buf []byte) []Record {
	recs, err := Frame(buf)
	if err != nil {
		panic(errors.Wrap(err, "tags: MustFrame"))
	}
	return recs
}
