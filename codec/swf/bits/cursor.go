/*
DESCRIPTION
  cursor.go provides a random-access bit/byte cursor over an immutable
  buffer, and the SWF structural primitives (RECT, MATRIX, CXFORM, colors)
  that are built directly on top of it.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a random-access, bit-granular reader over an
// immutable byte buffer, with MSB-first bit order as used throughout the
// SWF file format.
package bits

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnexpectedEOF is the sentinel wrapped by EOFError; callers that only
// care whether they ran off the end of the buffer can test against it with
// errors.Is.
var ErrUnexpectedEOF = errors.New("bits: unexpected end of data")

// EOFError reports that a read ran past the end of the buffer, and records
// the byte offset at which the cursor was sitting when that happened.
type EOFError struct {
	Offset int
}

func (e *EOFError) Error() string {
	return fmt.Sprintf("bits: unexpected end of data at offset %d", e.Offset)
}

func (e *EOFError) Unwrap() error { return ErrUnexpectedEOF }

// defaultMaxStringLen bounds ReadString against runaway/corrupt streams
// when a Cursor's caller does not override it.
const defaultMaxStringLen = 65536

// Cursor is a seekable reader over an immutable byte buffer, tracking a
// byte offset and a sub-byte bit offset in [0,7]. Bits are consumed
// MSB-first within each byte, per the SWF specification.
type Cursor struct {
	buf       []byte
	byteOff   int
	bitOff    uint
	maxStrLen int
}

// NewCursor returns a Cursor over buf, positioned at the start.
// The buffer is not copied; the caller must not mutate it while the
// Cursor or any value derived from it is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf, maxStrLen: defaultMaxStringLen}
}

// SetMaxStringLen overrides the byte limit ReadString enforces, e.g. from
// swf.Options.MaxStringLen. n <= 0 restores the package default.
func (c *Cursor) SetMaxStringLen(n int) {
	if n <= 0 {
		n = defaultMaxStringLen
	}
	c.maxStrLen = n
}

// ByteOffset returns the cursor's current byte offset.
func (c *Cursor) ByteOffset() int { return c.byteOff }

// BitOffset returns the cursor's bit offset within the current byte, in [0,7].
func (c *Cursor) BitOffset() uint { return c.bitOff }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of bytes from the current byte offset to
// the end of the buffer; a partially consumed current byte, if the cursor
// is mid-bitfield, is counted.
func (c *Cursor) Remaining() int { return len(c.buf) - c.byteOff }

// Align advances to the next byte boundary if the cursor is mid-byte.
func (c *Cursor) Align() {
	if c.bitOff > 0 {
		c.byteOff++
		c.bitOff = 0
	}
}

func (c *Cursor) eof() error {
	return &EOFError{Offset: c.byteOff}
}

// ReadU8 reads one unsigned byte, aligning first if necessary.
func (c *Cursor) ReadU8() (uint8, error) {
	c.Align()
	if c.byteOff >= len(c.buf) {
		return 0, c.eof()
	}
	b := c.buf[c.byteOff]
	c.byteOff++
	return b, nil
}

// ReadU16LE reads a little-endian unsigned 16 bit value.
func (c *Cursor) ReadU16LE() (uint16, error) {
	c.Align()
	if c.byteOff+2 > len(c.buf) {
		return 0, c.eof()
	}
	v := uint16(c.buf[c.byteOff]) | uint16(c.buf[c.byteOff+1])<<8
	c.byteOff += 2
	return v, nil
}

// ReadU32LE reads a little-endian unsigned 32 bit value.
func (c *Cursor) ReadU32LE() (uint32, error) {
	c.Align()
	if c.byteOff+4 > len(c.buf) {
		return 0, c.eof()
	}
	v := uint32(c.buf[c.byteOff]) | uint32(c.buf[c.byteOff+1])<<8 |
		uint32(c.buf[c.byteOff+2])<<16 | uint32(c.buf[c.byteOff+3])<<24
	c.byteOff += 4
	return v, nil
}

// ReadI16LE reads a little-endian signed 16 bit value.
func (c *Cursor) ReadI16LE() (int16, error) {
	v, err := c.ReadU16LE()
	return int16(v), err
}

// ReadI32LE reads a little-endian signed 32 bit value.
func (c *Cursor) ReadI32LE() (int32, error) {
	v, err := c.ReadU32LE()
	return int32(v), err
}

// ReadFixed16_16 reads a 32 bit signed 16.16 fixed-point value as a float64.
func (c *Cursor) ReadFixed16_16() (float64, error) {
	v, err := c.ReadI32LE()
	if err != nil {
		return 0, err
	}
	return float64(v) / 65536, nil
}

// ReadFixed8_8 reads a 16 bit signed 8.8 fixed-point value as a float64.
func (c *Cursor) ReadFixed8_8() (float64, error) {
	v, err := c.ReadI16LE()
	if err != nil {
		return 0, err
	}
	return float64(v) / 256, nil
}

// ReadEncodedU32 reads a SWF EncodedU32: a little-endian base-128 varint of
// up to 5 bytes, continuation bit in the MSB of each byte. Fails if the
// fifth byte still carries a continuation bit.
func (c *Cursor) ReadEncodedU32() (uint32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := c.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return result, nil
		}
		if i == 4 {
			return 0, errors.Errorf("bits: encoded u32 at offset %d exceeds 5 bytes", c.byteOff-5)
		}
	}
	return result, nil
}

// ReadString reads a null-terminated string, stopping at the terminator;
// reaching EOF before a terminator fails with an EOFError. Bytes are
// interpreted as UTF-8/Latin-1-compatible ASCII, which is
// all SWF names use in practice. Fails if no terminator is found within
// the configured maximum string length, guarding against corrupt streams.
func (c *Cursor) ReadString() (string, error) {
	c.Align()
	start := c.byteOff
	for {
		if c.byteOff >= len(c.buf) {
			return "", c.eof()
		}
		if c.buf[c.byteOff] == 0 {
			s := string(c.buf[start:c.byteOff])
			c.byteOff++
			return s, nil
		}
		c.byteOff++
		if c.byteOff-start > c.maxStrLen {
			return "", errors.Errorf("bits: string starting at offset %d exceeds %d bytes", start, c.maxStrLen)
		}
	}
}

// ReadBit reads a single bit, MSB-first within the current byte.
func (c *Cursor) ReadBit() (uint8, error) {
	if c.byteOff >= len(c.buf) {
		return 0, c.eof()
	}
	b := c.buf[c.byteOff]
	bit := (b >> (7 - c.bitOff)) & 1
	c.bitOff++
	if c.bitOff == 8 {
		c.bitOff = 0
		c.byteOff++
	}
	return bit, nil
}

// ReadUBits reads an n-bit unsigned field, n in [0,32]. n == 0 yields 0
// without consuming any bits.
func (c *Cursor) ReadUBits(n uint) (uint32, error) {
	var v uint32
	for i := uint(0); i < n; i++ {
		b, err := c.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint32(b)
	}
	return v, nil
}

// ReadSBits reads an n-bit signed field, n in [0,32], sign-extended from
// the field's high bit.
func (c *Cursor) ReadSBits(n uint) (int32, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := c.ReadUBits(n)
	if err != nil {
		return 0, err
	}
	if n < 32 && v&(1<<(n-1)) != 0 {
		v |= ^uint32(0) << n
	}
	return int32(v), nil
}

// Rect is a SWF RECT: four signed twip coordinates.
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// ReadRect reads a RECT: aligns, reads the shared field width, then the
// four signed fields in xMin, xMax, yMin, yMax order. The cursor is left
// unaligned; callers align when they next need a byte boundary.
func (c *Cursor) ReadRect() (Rect, error) {
	c.Align()
	nBits, err := c.ReadUBits(5)
	if err != nil {
		return Rect{}, err
	}
	var r Rect
	for _, f := range []*int32{&r.XMin, &r.XMax, &r.YMin, &r.YMax} {
		v, err := c.ReadSBits(uint(nBits))
		if err != nil {
			return Rect{}, err
		}
		*f = v
	}
	return r, nil
}

// Matrix is a SWF MATRIX: a 2x3 affine transform. ScaleX/ScaleY default to
// 1 and RotateSkew0/1 default to 0 when their presence bits are unset.
type Matrix struct {
	ScaleX, ScaleY           float64
	RotateSkew0, RotateSkew1 float64
	TranslateX, TranslateY   int32
}

// Identity is the SWF identity matrix.
func Identity() Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1}
}

// ReadMatrix reads a MATRIX structure.
func (c *Cursor) ReadMatrix() (Matrix, error) {
	c.Align()
	m := Matrix{ScaleX: 1, ScaleY: 1}

	hasScale, err := c.ReadBit()
	if err != nil {
		return Matrix{}, err
	}
	if hasScale != 0 {
		n, err := c.ReadUBits(5)
		if err != nil {
			return Matrix{}, err
		}
		sx, err := c.ReadSBits(uint(n))
		if err != nil {
			return Matrix{}, err
		}
		sy, err := c.ReadSBits(uint(n))
		if err != nil {
			return Matrix{}, err
		}
		m.ScaleX = float64(sx) / 65536
		m.ScaleY = float64(sy) / 65536
	}

	hasRotate, err := c.ReadBit()
	if err != nil {
		return Matrix{}, err
	}
	if hasRotate != 0 {
		n, err := c.ReadUBits(5)
		if err != nil {
			return Matrix{}, err
		}
		r0, err := c.ReadSBits(uint(n))
		if err != nil {
			return Matrix{}, err
		}
		r1, err := c.ReadSBits(uint(n))
		if err != nil {
			return Matrix{}, err
		}
		m.RotateSkew0 = float64(r0) / 65536
		m.RotateSkew1 = float64(r1) / 65536
	}

	nT, err := c.ReadUBits(5)
	if err != nil {
		return Matrix{}, err
	}
	tx, err := c.ReadSBits(uint(nT))
	if err != nil {
		return Matrix{}, err
	}
	ty, err := c.ReadSBits(uint(nT))
	if err != nil {
		return Matrix{}, err
	}
	m.TranslateX, m.TranslateY = tx, ty

	c.Align()
	return m, nil
}

// ColorTransform is a SWF CXFORM: per-channel multiply and add terms.
// Multipliers default to 1 and add terms to 0 for channels whose group is
// absent. Alpha fields are meaningful only when the CXFORM was read with
// hasAlpha true.
type ColorTransform struct {
	RMul, GMul, BMul, AMul float64
	RAdd, GAdd, BAdd, AAdd int32
}

// IdentityColorTransform is the SWF identity color transform.
func IdentityColorTransform() ColorTransform {
	return ColorTransform{RMul: 1, GMul: 1, BMul: 1, AMul: 1}
}

// ReadColorTransform reads a CXFORM. hasAlpha selects the RGBA variant
// (PlaceObject2/3) versus the RGB variant (PlaceObject).
func (c *Cursor) ReadColorTransform(hasAlpha bool) (ColorTransform, error) {
	c.Align()
	ct := IdentityColorTransform()

	hasAdd, err := c.ReadBit()
	if err != nil {
		return ColorTransform{}, err
	}
	hasMul, err := c.ReadBit()
	if err != nil {
		return ColorTransform{}, err
	}
	n, err := c.ReadUBits(4)
	if err != nil {
		return ColorTransform{}, err
	}

	readMul := func() (float64, error) {
		v, err := c.ReadSBits(uint(n))
		if err != nil {
			return 0, err
		}
		return float64(v) / 256, nil
	}
	readAdd := func() (int32, error) {
		return c.ReadSBits(uint(n))
	}

	if hasMul != 0 {
		if ct.RMul, err = readMul(); err != nil {
			return ColorTransform{}, err
		}
		if ct.GMul, err = readMul(); err != nil {
			return ColorTransform{}, err
		}
		if ct.BMul, err = readMul(); err != nil {
			return ColorTransform{}, err
		}
		if hasAlpha {
			if ct.AMul, err = readMul(); err != nil {
				return ColorTransform{}, err
			}
		}
	}
	if hasAdd != 0 {
		if ct.RAdd, err = readAdd(); err != nil {
			return ColorTransform{}, err
		}
		if ct.GAdd, err = readAdd(); err != nil {
			return ColorTransform{}, err
		}
		if ct.BAdd, err = readAdd(); err != nil {
			return ColorTransform{}, err
		}
		if hasAlpha {
			if ct.AAdd, err = readAdd(); err != nil {
				return ColorTransform{}, err
			}
		}
	}

	c.Align()
	return ct, nil
}

// Color is a normalised RGBA color, channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// ReadRGB reads a 3 byte RGB triple with alpha forced to 1.
func (c *Cursor) ReadRGB() (Color, error) {
	r, err := c.ReadU8()
	if err != nil {
		return Color{}, err
	}
	g, err := c.ReadU8()
	if err != nil {
		return Color{}, err
	}
	b, err := c.ReadU8()
	if err != nil {
		return Color{}, err
	}
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}, nil
}

// ReadRGBA reads a 4 byte RGBA quadruple.
func (c *Cursor) ReadRGBA() (Color, error) {
	col, err := c.ReadRGB()
	if err != nil {
		return Color{}, err
	}
	a, err := c.ReadU8()
	if err != nil {
		return Color{}, err
	}
	col.A = float64(a) / 255
	return col, nil
}
