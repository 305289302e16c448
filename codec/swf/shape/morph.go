/*
DESCRIPTION
  morph.go implements the DefineMorphShape{1,2} body decoder: paired
  start/end style arrays, the forward offsetToEndEdges jump to the end
  shape's record stream, and the topology check that keeps start/end
  records walkable in lockstep for ratio interpolation.

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

// morphStyleVersion is the effective "shape version" morph style arrays
// are decoded at: colors are always RGBA and the style count escape always
// reads a following u16, matching Shape3/4 conventions.
const morphStyleVersion = 4

// DecodeDefineMorphShape decodes a DefineMorphShape{1,2} tag body. version
// selects 1 or 2; version 2 additionally carries edge bounds and the
// non-scaling/scaling stroke flags, and its line styles use the
// LINESTYLE2 layout.
func DecodeDefineMorphShape(body []byte, version int) (id uint16, ms MorphShape, err error) {
	c := bits.NewCursor(body)

	id, err = c.ReadU16LE()
	if err != nil {
		return 0, MorphShape{}, err
	}
	ms.StartBounds, err = c.ReadRect()
	if err != nil {
		return 0, MorphShape{}, err
	}
	ms.EndBounds, err = c.ReadRect()
	if err != nil {
		return 0, MorphShape{}, err
	}

	if version == 2 {
		c.Align()
		sb, err := c.ReadRect()
		if err != nil {
			return 0, MorphShape{}, err
		}
		eb, err := c.ReadRect()
		if err != nil {
			return 0, MorphShape{}, err
		}
		ms.StartEdgeBounds, ms.EndEdgeBounds = &sb, &eb
		if _, err := c.ReadUBits(6); err != nil { // reserved
			return 0, MorphShape{}, err
		}
		if _, err := c.ReadBit(); err != nil { // usesNonScalingStrokes
			return 0, MorphShape{}, err
		}
		if _, err := c.ReadBit(); err != nil { // usesScalingStrokes
			return 0, MorphShape{}, err
		}
	}

	offset, err := c.ReadU32LE()
	if err != nil {
		return 0, MorphShape{}, err
	}
	endEdgesBase := c.ByteOffset()

	startFills, endFills, err := decodeMorphFillStyleArray(c)
	if err != nil {
		return 0, MorphShape{}, errors.Wrap(err, "morph fill styles")
	}
	startLines, endLines, err := decodeMorphLineStyleArray(c, version)
	if err != nil {
		return 0, MorphShape{}, errors.Wrap(err, "morph line styles")
	}

	startRecords, err := decodeShapeRecords(c, morphStyleVersion)
	if err != nil {
		return 0, MorphShape{}, errors.Wrap(err, "start shape records")
	}

	endOffset := endEdgesBase + int(offset)
	if endOffset < 0 || endOffset > len(body) {
		return 0, MorphShape{}, &InvalidOffsetError{Offset: endOffset, Limit: len(body)}
	}
	endCursor := bits.NewCursor(body[endOffset:])
	endRecords, err := decodeShapeRecords(endCursor, morphStyleVersion)
	if err != nil {
		return 0, MorphShape{}, errors.Wrap(err, "end shape records")
	}

	if err := checkTopology(startRecords, endRecords); err != nil {
		return 0, MorphShape{}, err
	}

	ms.StartShape = Shape{Bounds: ms.StartBounds, EdgeBounds: ms.StartEdgeBounds, FillStyles: startFills, LineStyles: startLines, Records: startRecords}
	ms.EndShape = Shape{Bounds: ms.EndBounds, EdgeBounds: ms.EndEdgeBounds, FillStyles: endFills, LineStyles: endLines, Records: endRecords}
	return id, ms, nil
}

// checkTopology verifies that a and b agree, record for record, on kind
// (StyleChange/StraightEdge/CurvedEdge) and length.
func checkTopology(a, b []ShapeRecord) error {
	if len(a) != len(b) {
		return &MorphTopologyMismatchError{StartCount: len(a), EndCount: len(b)}
	}
	for i := range a {
		if recordKind(a[i]) != recordKind(b[i]) {
			return &MorphTopologyMismatchError{StartCount: len(a), EndCount: len(b)}
		}
	}
	return nil
}

func recordKind(r ShapeRecord) int {
	switch r.(type) {
	case StyleChangeRecord:
		return 0
	case StraightEdgeRecord:
		return 1
	case CurvedEdgeRecord:
		return 2
	default:
		return -1
	}
}

func decodeMorphGradient(c *bits.Cursor) (Gradient, Gradient, error) {
	n, err := c.ReadU8()
	if err != nil {
		return Gradient{}, Gradient{}, err
	}
	var start, end Gradient
	for i := uint8(0); i < n; i++ {
		sr, err := c.ReadU8()
		if err != nil {
			return Gradient{}, Gradient{}, err
		}
		sc, err := c.ReadRGBA()
		if err != nil {
			return Gradient{}, Gradient{}, err
		}
		er, err := c.ReadU8()
		if err != nil {
			return Gradient{}, Gradient{}, err
		}
		ec, err := c.ReadRGBA()
		if err != nil {
			return Gradient{}, Gradient{}, err
		}
		start.Records = append(start.Records, GradientRecord{Ratio: sr, Color: sc})
		end.Records = append(end.Records, GradientRecord{Ratio: er, Color: ec})
	}
	return start, end, nil
}

// readMorphFillStyle decodes one MORPHFILLSTYLE, returning the start and
// end FillStyle it represents.
func readMorphFillStyle(c *bits.Cursor) (start, end FillStyle, err error) {
	typ, err := c.ReadU8()
	if err != nil {
		return nil, nil, err
	}
	switch typ {
	case fillSolid:
		sc, err := c.ReadRGBA()
		if err != nil {
			return nil, nil, err
		}
		ec, err := c.ReadRGBA()
		if err != nil {
			return nil, nil, err
		}
		return SolidFill{Color: sc}, SolidFill{Color: ec}, nil

	case fillLinearGradient, fillRadialGradient:
		sm, err := c.ReadMatrix()
		if err != nil {
			return nil, nil, err
		}
		em, err := c.ReadMatrix()
		if err != nil {
			return nil, nil, err
		}
		sg, eg, err := decodeMorphGradient(c)
		if err != nil {
			return nil, nil, err
		}
		if typ == fillLinearGradient {
			return LinearGradientFill{Matrix: sm, Gradient: sg}, LinearGradientFill{Matrix: em, Gradient: eg}, nil
		}
		return RadialGradientFill{Matrix: sm, Gradient: sg}, RadialGradientFill{Matrix: em, Gradient: eg}, nil

	case fillBitmapRepSmooth, fillBitmapClipSmooth, fillBitmapRepHard, fillBitmapClipHard:
		bitmapID, err := c.ReadU16LE()
		if err != nil {
			return nil, nil, err
		}
		sm, err := c.ReadMatrix()
		if err != nil {
			return nil, nil, err
		}
		em, err := c.ReadMatrix()
		if err != nil {
			return nil, nil, err
		}
		repeating := typ == fillBitmapRepSmooth || typ == fillBitmapRepHard
		smoothed := typ == fillBitmapRepSmooth || typ == fillBitmapClipSmooth
		return BitmapFill{BitmapID: bitmapID, Matrix: sm, Repeating: repeating, Smoothed: smoothed},
			BitmapFill{BitmapID: bitmapID, Matrix: em, Repeating: repeating, Smoothed: smoothed}, nil

	default:
		return nil, nil, &UnknownFillTypeError{Value: typ}
	}
}

func decodeMorphFillStyleArray(c *bits.Cursor) (start, end []FillStyle, err error) {
	n, err := readStyleCount(c, morphStyleVersion)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		s, e, err := readMorphFillStyle(c)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "fill style %d", i)
		}
		start = append(start, s)
		end = append(end, e)
	}
	return start, end, nil
}

func decodeMorphLineStyleArray(c *bits.Cursor, version int) (start, end []LineStyle, err error) {
	n, err := readStyleCount(c, morphStyleVersion)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		sw, err := c.ReadU16LE()
		if err != nil {
			return nil, nil, err
		}
		ew, err := c.ReadU16LE()
		if err != nil {
			return nil, nil, err
		}

		if version == 1 {
			sc, err := c.ReadRGBA()
			if err != nil {
				return nil, nil, err
			}
			ec, err := c.ReadRGBA()
			if err != nil {
				return nil, nil, err
			}
			start = append(start, SimpleLineStyle{Width: sw, Color: sc})
			end = append(end, SimpleLineStyle{Width: ew, Color: ec})
			continue
		}

		sLS, eLS, err := readMorphLineStyle2(c, sw, ew)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "line style %d", i)
		}
		start = append(start, sLS)
		end = append(end, eLS)
	}
	return start, end, nil
}

func readMorphLineStyle2(c *bits.Cursor, startWidth, endWidth uint16) (start, end *ExtendedLineStyle, err error) {
	startCap, err := c.ReadUBits(2)
	if err != nil {
		return nil, nil, err
	}
	join, err := c.ReadUBits(2)
	if err != nil {
		return nil, nil, err
	}
	hasFillBit, err := c.ReadBit()
	if err != nil {
		return nil, nil, err
	}
	noH, err := c.ReadBit()
	if err != nil {
		return nil, nil, err
	}
	noV, err := c.ReadBit()
	if err != nil {
		return nil, nil, err
	}
	pixelHinting, err := c.ReadBit()
	if err != nil {
		return nil, nil, err
	}
	if _, err := c.ReadUBits(5); err != nil { // reserved
		return nil, nil, err
	}
	noClose, err := c.ReadBit()
	if err != nil {
		return nil, nil, err
	}
	endCap, err := c.ReadUBits(2)
	if err != nil {
		return nil, nil, err
	}

	start = &ExtendedLineStyle{Width: startWidth}
	end = &ExtendedLineStyle{Width: endWidth}
	for _, ls := range []*ExtendedLineStyle{start, end} {
		ls.StartCapStyle, ls.EndCapStyle = uint8(startCap), uint8(endCap)
		ls.JoinStyle = uint8(join)
		ls.HasFill = hasFillBit != 0
		ls.NoHScale, ls.NoVScale = noH != 0, noV != 0
		ls.PixelHinting = pixelHinting != 0
		ls.NoClose = noClose != 0
	}

	if join == 2 {
		miter, err := c.ReadFixed8_8()
		if err != nil {
			return nil, nil, err
		}
		start.MiterLimit, end.MiterLimit = miter, miter
	}

	if hasFillBit != 0 {
		sf, ef, err := readMorphFillStyle(c)
		if err != nil {
			return nil, nil, err
		}
		start.Fill, end.Fill = sf, ef
	} else {
		sc, err := c.ReadRGBA()
		if err != nil {
			return nil, nil, err
		}
		ec, err := c.ReadRGBA()
		if err != nil {
			return nil, nil, err
		}
		start.Color, end.Color = sc, ec
	}
	return start, end, nil
}
