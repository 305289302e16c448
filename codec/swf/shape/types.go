/*
DESCRIPTION
  types.go defines the vector-graphics data model decoded from DefineShape
  and DefineMorphShape tag bodies: fill styles, line styles, gradients, and
  the shape-record state-machine output itself.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package shape decodes SWF shape and morph shape definitions: the
// fill/line style arrays, and the bit-packed edge/style-change record
// stream that drives an implicit turtle-graphics pen.
package shape

import "github.com/ausocean/swf/codec/swf/bits"

// FillStyle is the sum of the five SWF fill style kinds. Concrete types
// are SolidFill, LinearGradientFill, RadialGradientFill, FocalGradientFill
// (Shape4 only), and BitmapFill.
type FillStyle interface {
	isFillStyle()
}

// SolidFill is a flat color fill.
type SolidFill struct {
	Color bits.Color
}

func (SolidFill) isFillStyle() {}

// LinearGradientFill paints along a linear gradient ramp.
type LinearGradientFill struct {
	Matrix   bits.Matrix
	Gradient Gradient
}

func (LinearGradientFill) isFillStyle() {}

// RadialGradientFill paints along a radial gradient ramp.
type RadialGradientFill struct {
	Matrix   bits.Matrix
	Gradient Gradient
}

func (RadialGradientFill) isFillStyle() {}

// FocalGradientFill is a Shape4-only radial gradient variant with an
// off-center focal point.
type FocalGradientFill struct {
	Matrix     bits.Matrix
	Gradient   Gradient
	FocalPoint float64
}

func (FocalGradientFill) isFillStyle() {}

// BitmapFill references an external bitmap character by id. Repeating and
// Smoothed encode the four bitmap fill subtypes.
type BitmapFill struct {
	BitmapID  uint16
	Matrix    bits.Matrix
	Repeating bool
	Smoothed  bool
}

func (BitmapFill) isFillStyle() {}

// GradientRecord is one color stop in a Gradient.
type GradientRecord struct {
	Ratio uint8
	Color bits.Color
}

// Gradient is a ramp of color stops with a spread and interpolation mode.
type Gradient struct {
	SpreadMode        uint8 // 0 pad, 1 reflect, 2 repeat.
	InterpolationMode uint8 // 0 RGB, 1 linear RGB.
	Records           []GradientRecord
}

// LineStyle is the sum of the two SWF line style kinds: SimpleLineStyle
// (Shape1-3) and ExtendedLineStyle (Shape4's LINESTYLE2).
type LineStyle interface {
	isLineStyle()
}

// SimpleLineStyle is a constant-width solid-color stroke.
type SimpleLineStyle struct {
	Width uint16
	Color bits.Color
}

func (SimpleLineStyle) isLineStyle() {}

// ExtendedLineStyle is the Shape4 LINESTYLE2: adds cap/join styles, a miter
// limit, and an optionally embedded fill in place of a flat color.
type ExtendedLineStyle struct {
	Width                      uint16
	StartCapStyle, EndCapStyle uint8 // 0 round, 1 none, 2 square.
	JoinStyle                  uint8 // 0 round, 1 bevel, 2 miter.
	HasFill                    bool
	NoHScale, NoVScale         bool
	PixelHinting               bool
	NoClose                    bool
	MiterLimit                 float64
	Color                      bits.Color // meaningful only if !HasFill.
	Fill                       FillStyle  // meaningful only if HasFill.
}

func (*ExtendedLineStyle) isLineStyle() {}

// Point is an absolute pen position in twips, used only by moveTo.
type Point struct {
	X, Y int32
}

// ShapeRecord is the sum of the three shape record kinds.
type ShapeRecord interface {
	isShapeRecord()
}

// StyleChangeRecord carries any combination of a new pen position and new
// active style indices/arrays. A nil field means "unchanged from the
// current state"; a non-nil *uint32 style index of 0 means "no style".
type StyleChangeRecord struct {
	MoveTo                 *Point
	FillStyle0, FillStyle1 *uint32
	LineStyleIdx           *uint32
	NewStyles              *NewStyles
}

func (StyleChangeRecord) isShapeRecord() {}

// NewStyles carries a replacement fill/line style array introduced mid
// shape-record stream, along with the field widths that follow it.
type NewStyles struct {
	FillStyles               []FillStyle
	LineStyles               []LineStyle
	NumFillBits, NumLineBits uint
}

// StraightEdgeRecord is a line segment expressed as a delta from the
// current pen position; exactly one of DX, DY may be zero for an
// axis-aligned segment, or both may be non-zero for a general line.
type StraightEdgeRecord struct {
	DX, DY int32
}

func (StraightEdgeRecord) isShapeRecord() {}

// CurvedEdgeRecord is a quadratic Bezier expressed as control and anchor
// deltas from the current pen position.
type CurvedEdgeRecord struct {
	ControlDX, ControlDY int32
	AnchorDX, AnchorDY   int32
}

func (CurvedEdgeRecord) isShapeRecord() {}

// Shape is a fully decoded DefineShape{1..4} body.
type Shape struct {
	Bounds     bits.Rect
	EdgeBounds *bits.Rect // Shape4 only.
	FillStyles []FillStyle
	LineStyles []LineStyle
	Records    []ShapeRecord
}

// MorphShape is a fully decoded DefineMorphShape{1,2} body. StartShape and
// EndShape are guaranteed (or the decode fails with
// MorphTopologyMismatchError) to have the same number of records, in the
// same order and of the same kind pairwise, so that ratio-interpolation
// can walk both record lists in lockstep.
type MorphShape struct {
	StartBounds, EndBounds         bits.Rect
	StartEdgeBounds, EndEdgeBounds *bits.Rect // v2 only.
	StartShape, EndShape           Shape
}
