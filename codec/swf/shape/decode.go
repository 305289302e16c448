/*
DESCRIPTION
  decode.go implements the DefineShape{1..4} body decoder, including the
  fill/line style array decoders and the bit-packed shape record state
  machine that is the heart of the format.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package shape

import (
	"github.com/pkg/errors"

	"github.com/ausocean/swf/codec/swf/bits"
)

// Fill style type bytes.
const (
	fillSolid            = 0x00
	fillLinearGradient   = 0x10
	fillRadialGradient   = 0x12
	fillFocalGradient    = 0x13
	fillBitmapRepSmooth  = 0x40
	fillBitmapClipSmooth = 0x41
	fillBitmapRepHard    = 0x42
	fillBitmapClipHard   = 0x43
)

// styleCountEscape is the fill/line style count byte value that signals an
// extended count follows. Shape1 bodies treat the byte as a literal 255
// when it has this value; Shape2 and later read a following u16.
const styleCountEscape = 0xff

// DecodeDefineShape decodes a DefineShape{1..4} tag body. version selects
// the tag variant (1, 2, 3, or 4), which gates color depth (RGB vs RGBA),
// the style-count escape width, LINESTYLE2 availability, and the presence
// of an edge-bounds rect and winding/scaling-stroke flags.
func DecodeDefineShape(body []byte, version int) (id uint16, sh Shape, err error) {
	c := bits.NewCursor(body)

	id, err = c.ReadU16LE()
	if err != nil {
		return 0, Shape{}, err
	}
	sh.Bounds, err = c.ReadRect()
	if err != nil {
		return 0, Shape{}, err
	}

	if version == 4 {
		eb, err := c.ReadRect()
		if err != nil {
			return 0, Shape{}, err
		}
		sh.EdgeBounds = &eb
		if _, err := c.ReadUBits(5); err != nil { // reserved
			return 0, Shape{}, err
		}
		if _, err := c.ReadBit(); err != nil { // usesFillWindingRule, forwarded to renderer
			return 0, Shape{}, err
		}
		if _, err := c.ReadBit(); err != nil { // usesNonScalingStrokes
			return 0, Shape{}, err
		}
		if _, err := c.ReadBit(); err != nil { // usesScalingStrokes
			return 0, Shape{}, err
		}
		c.Align()
	}

	sh.FillStyles, err = decodeFillStyleArray(c, version)
	if err != nil {
		return 0, Shape{}, err
	}
	sh.LineStyles, err = decodeLineStyleArray(c, version)
	if err != nil {
		return 0, Shape{}, err
	}
	sh.Records, err = decodeShapeRecords(c, version)
	if err != nil {
		return id, sh, err
	}
	return id, sh, nil
}

// readStyleCount reads a fill or line style array's element count, honoring
// the version-gated 0xff escape.
func readStyleCount(c *bits.Cursor, version int) (int, error) {
	n, err := c.ReadU8()
	if err != nil {
		return 0, err
	}
	if n != styleCountEscape {
		return int(n), nil
	}
	if version == 1 {
		return 255, nil
	}
	ext, err := c.ReadU16LE()
	if err != nil {
		return 0, err
	}
	return int(ext), nil
}

// readColor reads a fill/stroke color at the depth appropriate to version:
// RGB for Shape1/2, RGBA for Shape3/4.
func readColor(c *bits.Cursor, version int) (bits.Color, error) {
	if version >= 3 {
		return c.ReadRGBA()
	}
	return c.ReadRGB()
}

func decodeGradient(c *bits.Cursor, version int) (Gradient, error) {
	spread, err := c.ReadUBits(2)
	if err != nil {
		return Gradient{}, err
	}
	interp, err := c.ReadUBits(2)
	if err != nil {
		return Gradient{}, err
	}
	n, err := c.ReadUBits(4)
	if err != nil {
		return Gradient{}, err
	}
	g := Gradient{SpreadMode: uint8(spread), InterpolationMode: uint8(interp)}
	for i := uint32(0); i < n; i++ {
		ratio, err := c.ReadU8()
		if err != nil {
			return Gradient{}, err
		}
		col, err := readColor(c, version)
		if err != nil {
			return Gradient{}, err
		}
		g.Records = append(g.Records, GradientRecord{Ratio: ratio, Color: col})
	}
	return g, nil
}

// readFillStyle decodes one FILLSTYLE record (a type byte plus its
// payload), used both for top-level fill style arrays and the single
// embedded fill of a Shape4 LINESTYLE2.
func readFillStyle(c *bits.Cursor, version int) (FillStyle, error) {
	typ, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	switch typ {
	case fillSolid:
		col, err := readColor(c, version)
		if err != nil {
			return nil, err
		}
		return SolidFill{Color: col}, nil

	case fillLinearGradient:
		m, err := c.ReadMatrix()
		if err != nil {
			return nil, err
		}
		g, err := decodeGradient(c, version)
		if err != nil {
			return nil, err
		}
		return LinearGradientFill{Matrix: m, Gradient: g}, nil

	case fillRadialGradient:
		m, err := c.ReadMatrix()
		if err != nil {
			return nil, err
		}
		g, err := decodeGradient(c, version)
		if err != nil {
			return nil, err
		}
		return RadialGradientFill{Matrix: m, Gradient: g}, nil

	case fillFocalGradient:
		if version != 4 {
			return nil, &UnknownFillTypeError{Value: typ}
		}
		m, err := c.ReadMatrix()
		if err != nil {
			return nil, err
		}
		g, err := decodeGradient(c, version)
		if err != nil {
			return nil, err
		}
		focal, err := c.ReadFixed8_8()
		if err != nil {
			return nil, err
		}
		return FocalGradientFill{Matrix: m, Gradient: g, FocalPoint: focal}, nil

	case fillBitmapRepSmooth, fillBitmapClipSmooth, fillBitmapRepHard, fillBitmapClipHard:
		bitmapID, err := c.ReadU16LE()
		if err != nil {
			return nil, err
		}
		m, err := c.ReadMatrix()
		if err != nil {
			return nil, err
		}
		repeating := typ == fillBitmapRepSmooth || typ == fillBitmapRepHard
		smoothed := typ == fillBitmapRepSmooth || typ == fillBitmapClipSmooth
		return BitmapFill{BitmapID: bitmapID, Matrix: m, Repeating: repeating, Smoothed: smoothed}, nil

	default:
		return nil, &UnknownFillTypeError{Value: typ}
	}
}

func decodeFillStyleArray(c *bits.Cursor, version int) ([]FillStyle, error) {
	n, err := readStyleCount(c, version)
	if err != nil {
		return nil, err
	}
	styles := make([]FillStyle, 0, n)
	for i := 0; i < n; i++ {
		fs, err := readFillStyle(c, version)
		if err != nil {
			return nil, errors.Wrapf(err, "fill style %d", i)
		}
		styles = append(styles, fs)
	}
	return styles, nil
}

func decodeLineStyleArray(c *bits.Cursor, version int) ([]LineStyle, error) {
	n, err := readStyleCount(c, version)
	if err != nil {
		return nil, err
	}
	styles := make([]LineStyle, 0, n)
	for i := 0; i < n; i++ {
		width, err := c.ReadU16LE()
		if err != nil {
			return nil, err
		}
		if version < 4 {
			col, err := readColor(c, version)
			if err != nil {
				return nil, errors.Wrapf(err, "line style %d", i)
			}
			styles = append(styles, SimpleLineStyle{Width: width, Color: col})
			continue
		}

		ls, err := readLineStyle2(c, width)
		if err != nil {
			return nil, errors.Wrapf(err, "line style %d", i)
		}
		styles = append(styles, ls)
	}
	return styles, nil
}

func readLineStyle2(c *bits.Cursor, width uint16) (*ExtendedLineStyle, error) {
	startCap, err := c.ReadUBits(2)
	if err != nil {
		return nil, err
	}
	join, err := c.ReadUBits(2)
	if err != nil {
		return nil, err
	}
	hasFillBit, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	noH, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	noV, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	pixelHinting, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUBits(5); err != nil { // reserved
		return nil, err
	}
	noClose, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	endCap, err := c.ReadUBits(2)
	if err != nil {
		return nil, err
	}

	ls := &ExtendedLineStyle{
		Width:         width,
		StartCapStyle: uint8(startCap),
		EndCapStyle:   uint8(endCap),
		JoinStyle:     uint8(join),
		HasFill:       hasFillBit != 0,
		NoHScale:      noH != 0,
		NoVScale:      noV != 0,
		PixelHinting:  pixelHinting != 0,
		NoClose:       noClose != 0,
	}

	if ls.JoinStyle == 2 {
		ls.MiterLimit, err = c.ReadFixed8_8()
		if err != nil {
			return nil, err
		}
	}

	if ls.HasFill {
		ls.Fill, err = readFillStyle(c, 4)
		if err != nil {
			return nil, err
		}
	} else {
		ls.Color, err = c.ReadRGBA()
		if err != nil {
			return nil, err
		}
	}
	return ls, nil
}

// decodeShapeRecords runs the shape-record state machine.
// A truncated record stream is reported as TruncatedShapeError with the
// records decoded so far still attached to the returned slice via the
// caller's Shape value.
func decodeShapeRecords(c *bits.Cursor, version int) ([]ShapeRecord, error) {
	numFillBits32, err := c.ReadUBits(4)
	if err != nil {
		return nil, err
	}
	numLineBits32, err := c.ReadUBits(4)
	if err != nil {
		return nil, err
	}
	numFillBits := uint(numFillBits32)
	numLineBits := uint(numLineBits32)

	var records []ShapeRecord
	for {
		typeFlag, err := c.ReadBit()
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}

		if typeFlag == 0 {
			newStylesFlag, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}
			lineStyleFlag, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}
			fillStyle1Flag, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}
			fillStyle0Flag, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}
			moveToFlag, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}

			if newStylesFlag|lineStyleFlag|fillStyle1Flag|fillStyle0Flag|moveToFlag == 0 {
				return records, nil
			}

			rec := StyleChangeRecord{}
			if moveToFlag != 0 {
				n, err := c.ReadUBits(5)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				x, err := c.ReadSBits(uint(n))
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				y, err := c.ReadSBits(uint(n))
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				rec.MoveTo = &Point{X: x, Y: y}
			}
			if fillStyle0Flag != 0 {
				v, err := c.ReadUBits(numFillBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				rec.FillStyle0 = &v
			}
			if fillStyle1Flag != 0 {
				v, err := c.ReadUBits(numFillBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				rec.FillStyle1 = &v
			}
			if lineStyleFlag != 0 {
				v, err := c.ReadUBits(numLineBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				rec.LineStyleIdx = &v
			}
			if newStylesFlag != 0 {
				c.Align()
				fs, err := decodeFillStyleArray(c, version)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				ls, err := decodeLineStyleArray(c, version)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				nfb, err := c.ReadUBits(4)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				nlb, err := c.ReadUBits(4)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				numFillBits, numLineBits = uint(nfb), uint(nlb)
				rec.NewStyles = &NewStyles{FillStyles: fs, LineStyles: ls, NumFillBits: numFillBits, NumLineBits: numLineBits}
			}
			records = append(records, rec)
			continue
		}

		// Edge record.
		straightFlag, err := c.ReadBit()
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		nBits32, err := c.ReadUBits(4)
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		nBits := uint(nBits32) + 2

		if straightFlag != 0 {
			general, err := c.ReadBit()
			if err != nil {
				return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
			}
			var dx, dy int32
			if general != 0 {
				dx, err = c.ReadSBits(nBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				dy, err = c.ReadSBits(nBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
			} else {
				vert, err := c.ReadBit()
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				d, err := c.ReadSBits(nBits)
				if err != nil {
					return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
				}
				if vert != 0 {
					dy = d
				} else {
					dx = d
				}
			}
			records = append(records, StraightEdgeRecord{DX: dx, DY: dy})
			continue
		}

		cdx, err := c.ReadSBits(nBits)
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		cdy, err := c.ReadSBits(nBits)
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		adx, err := c.ReadSBits(nBits)
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		ady, err := c.ReadSBits(nBits)
		if err != nil {
			return records, &TruncatedShapeError{RecordsDecoded: len(records), Cause: err}
		}
		records = append(records, CurvedEdgeRecord{ControlDX: cdx, ControlDY: cdy, AnchorDX: adx, AnchorDY: ady})
	}
}
