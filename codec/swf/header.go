/*
DESCRIPTION
  header.go parses the 8 byte SWF document header and, for the compressed
  signatures, hands the remainder of the file to a caller-supplied
  Inflater before reading the frame size/rate/count fields that follow.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package swf decodes an SWF document: the header, the tag stream, and
// the resulting CharacterLibrary and Timeline. It does not render, play
// audio, execute ActionScript, or perform file I/O; those stay external
// collaborators.
package swf

import (
	"github.com/ausocean/swf/codec/swf/bits"
)

// Inflater decompresses the bytes following an SWF header's first 8
// bytes. The core never distinguishes a CWS (zlib) payload from a ZWS
// (LZMA) one; both are handed to the same Inflater, since decompression
// is entirely the caller's concern.
type Inflater func(compressed []byte) ([]byte, error)

// Header is the parsed SWF document header.
type Header struct {
	Version    uint8
	FileLength uint32
	FrameSize  bits.Rect
	FrameRate  float64 // frames per second, fixed 8.8.
	FrameCount uint16
}

const (
	sigUncompressed = "FWS"
	sigZlib         = "CWS"
	sigLZMA         = "ZWS"
)

// ParseHeader reads buf's 8 byte signature/version/length header, then,
// for CWS/ZWS, decompresses the remainder with inflate before reading
// the frameSize/frameRate/frameCount fields. It returns the parsed
// Header and the byte slice immediately following those fields, ready to
// be handed to tags.Frame.
func ParseHeader(buf []byte, inflate Inflater) (Header, []byte, error) {
	if len(buf) < 8 {
		return Header{}, nil, &UnexpectedEndOfData{Offset: len(buf)}
	}

	var sig [3]byte
	copy(sig[:], buf[:3])
	version := buf[3]
	fileLength := uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16 | uint32(buf[7])<<24

	var body []byte
	switch string(sig[:]) {
	case sigUncompressed:
		body = buf[8:]
	case sigZlib, sigLZMA:
		inflated, err := inflate(buf[8:])
		if err != nil {
			return Header{}, nil, &DecompressionFailedError{Cause: err}
		}
		body = inflated
	default:
		return Header{}, nil, &BadSignatureError{Bytes: sig}
	}

	c := bits.NewCursor(body)
	frameSize, err := c.ReadRect()
	if err != nil {
		return Header{}, nil, err
	}
	c.Align()
	rate, err := c.ReadFixed8_8()
	if err != nil {
		return Header{}, nil, err
	}
	frameCount, err := c.ReadU16LE()
	if err != nil {
		return Header{}, nil, err
	}

	h := Header{
		Version:    version,
		FileLength: fileLength,
		FrameSize:  frameSize,
		FrameRate:  rate,
		FrameCount: frameCount,
	}
	return h, body[c.ByteOffset():], nil
}
