/*
DESCRIPTION
  testhelpers_test.go provides small byte-level builders shared by this
  package's test files for assembling synthetic SWF files and tag
  streams inline, the way mpegts_test.go builds raw packets by hand.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package swf

import (
	"encoding/binary"

	"github.com/ausocean/swf/codec/swf/bits"
)

// u16le returns v as two little-endian bytes.
func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// u32le returns v as four little-endian bytes.
func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// shortTag frames body under code using the short tag header; body must
// be under 0x3f bytes.
func shortTag(code uint16, body []byte) []byte {
	if len(body) >= 0x3f {
		panic("shortTag: body too long, use longTag")
	}
	h := u16le(code<<6 | uint16(len(body)))
	return append(h, body...)
}

// longTag frames body under code using the long-length escape.
func longTag(code uint16, body []byte) []byte {
	h := u16le(code<<6 | 0x3f)
	h = append(h, u32le(uint32(len(body)))...)
	return append(h, body...)
}

// zeroRectByte is a RECT with nBits=0, encoded as the single padded byte
// a real encoder would produce.
var zeroRectByte = []byte{0x00}

// fwsHeaderBody builds the portion of an FWS file that follows the 8
// byte signature/version/length header: a zero RECT, an arbitrary frame
// rate, frameCount, then the tag stream bytes in tagStream.
func fwsHeaderBody(frameCount uint16, tagStream []byte) []byte {
	var body []byte
	body = append(body, zeroRectByte...)
	body = append(body, u16le(0x0100)...) // frameRate, value unchecked by tests
	body = append(body, u16le(frameCount)...)
	body = append(body, tagStream...)
	return body
}

// fwsFile assembles a complete uncompressed SWF file.
func fwsFile(version uint8, frameCount uint16, tagStream []byte) []byte {
	buf := []byte{'F', 'W', 'S', version}
	buf = append(buf, u32le(0)...) // fileLength, unchecked by tests
	buf = append(buf, fwsHeaderBody(frameCount, tagStream)...)
	return buf
}

// defineShape1SingleSolidFill builds a minimal DefineShape1 body: one
// solid fill style, no line styles, and a record stream consisting only
// of the end marker.
func defineShape1SingleSolidFill(id uint16) []byte {
	var body []byte
	body = append(body, u16le(id)...)
	body = append(body, zeroRectByte...)
	body = append(body, 0x01)             // 1 fill style
	body = append(body, 0x00)             // solid fill type
	body = append(body, 0xff, 0x00, 0x00) // RGB red
	body = append(body, 0x00)             // 0 line styles
	body = append(body, 0x00, 0x00)       // numFillBits=0, numLineBits=0, end marker, padded
	return body
}

// bitWriter is a small MSB-first bit packer used only by this package's
// tests to build synthetic Matrix/ColorTransform tails.
type bitWriter struct {
	buf   []byte
	cur   byte
	nbits uint
}

func (w *bitWriter) writeUBits(v uint32, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		bit := byte((v >> uint(i)) & 1)
		w.cur = w.cur<<1 | bit
		w.nbits++
		if w.nbits == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.nbits = 0
		}
	}
}

func (w *bitWriter) writeSBits(v int32, n uint) { w.writeUBits(uint32(v), n) }

func (w *bitWriter) bytes() []byte {
	if w.nbits > 0 {
		w.cur <<= 8 - w.nbits
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbits = 0
	}
	return w.buf
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// encodeMatrix encodes m exactly as bits.Cursor.ReadMatrix expects to
// read it, using a fixed 20 bit width for any present scale/rotate
// terms and 16 bits for the always-present translate terms.
func encodeMatrix(m bits.Matrix) []byte {
	w := &bitWriter{}
	hasScale := m.ScaleX != 1 || m.ScaleY != 1
	w.writeUBits(b2u(hasScale), 1)
	if hasScale {
		w.writeUBits(20, 5)
		w.writeSBits(int32(m.ScaleX*65536), 20)
		w.writeSBits(int32(m.ScaleY*65536), 20)
	}
	hasRotate := m.RotateSkew0 != 0 || m.RotateSkew1 != 0
	w.writeUBits(b2u(hasRotate), 1)
	if hasRotate {
		w.writeUBits(20, 5)
		w.writeSBits(int32(m.RotateSkew0*65536), 20)
		w.writeSBits(int32(m.RotateSkew1*65536), 20)
	}
	w.writeUBits(16, 5)
	w.writeSBits(m.TranslateX, 16)
	w.writeSBits(m.TranslateY, 16)
	return w.bytes()
}

// encodeColorTransform encodes ct exactly as bits.Cursor.ReadColorTransform
// expects to read it, using a fixed 15 bit field width.
func encodeColorTransform(ct bits.ColorTransform, hasAlpha bool) []byte {
	w := &bitWriter{}
	hasAdd := ct.RAdd != 0 || ct.GAdd != 0 || ct.BAdd != 0 || (hasAlpha && ct.AAdd != 0)
	hasMul := ct.RMul != 1 || ct.GMul != 1 || ct.BMul != 1 || (hasAlpha && ct.AMul != 1)
	w.writeUBits(b2u(hasAdd), 1)
	w.writeUBits(b2u(hasMul), 1)
	w.writeUBits(15, 4)
	if hasMul {
		w.writeSBits(int32(ct.RMul*256), 15)
		w.writeSBits(int32(ct.GMul*256), 15)
		w.writeSBits(int32(ct.BMul*256), 15)
		if hasAlpha {
			w.writeSBits(int32(ct.AMul*256), 15)
		}
	}
	if hasAdd {
		w.writeSBits(ct.RAdd, 15)
		w.writeSBits(ct.GAdd, 15)
		w.writeSBits(ct.BAdd, 15)
		if hasAlpha {
			w.writeSBits(ct.AAdd, 15)
		}
	}
	return w.bytes()
}

// placeObject2NewCharacter builds a PlaceObject2 body that places
// characterID at depth with no explicit matrix (DisplayList.Place
// defaults an unset matrix to identity).
func placeObject2NewCharacter(depth, characterID uint16) []byte {
	var body []byte
	body = append(body, placeFlagHasCharacter)
	body = append(body, u16le(depth)...)
	body = append(body, u16le(characterID)...)
	return body
}
