/*
DESCRIPTION
  interp.go interpolates a MorphShape's start and end record streams at an
  arbitrary ratio, producing the geometry a renderer would draw for that
  point in the morph.

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

import "gonum.org/v1/gonum/floats"

// Interpolate blends the start and end shapes' records at ratio, where 0
// is the start shape and 65535 is the end shape. It relies on
// MorphShape.StartShape.Records and EndShape.Records already having been
// verified record-for-record topologically identical at decode time, so
// corresponding records can be lerped pairwise without re-checking kind.
//
// Coordinate pairs are lerped through gonum's floats package rather than
// by hand, so the morph's arithmetic stays consistent with the rest of the
// decoder's use of gonum for numeric work.
func (ms MorphShape) Interpolate(ratio uint16) []ShapeRecord {
	alpha := float64(ratio) / 65535

	start, end := ms.StartShape.Records, ms.EndShape.Records
	out := make([]ShapeRecord, len(start))
	for i := range start {
		switch s := start[i].(type) {
		case StraightEdgeRecord:
			e := end[i].(StraightEdgeRecord)
			v := lerp2(alpha, float64(s.DX), float64(s.DY), float64(e.DX), float64(e.DY))
			out[i] = StraightEdgeRecord{DX: int32(v[0]), DY: int32(v[1])}

		case CurvedEdgeRecord:
			e := end[i].(CurvedEdgeRecord)
			v := lerp4(alpha,
				float64(s.ControlDX), float64(s.ControlDY), float64(s.AnchorDX), float64(s.AnchorDY),
				float64(e.ControlDX), float64(e.ControlDY), float64(e.AnchorDX), float64(e.AnchorDY))
			out[i] = CurvedEdgeRecord{
				ControlDX: int32(v[0]), ControlDY: int32(v[1]),
				AnchorDX: int32(v[2]), AnchorDY: int32(v[3]),
			}

		case StyleChangeRecord:
			e := end[i].(StyleChangeRecord)
			rec := s
			if s.MoveTo != nil && e.MoveTo != nil {
				v := lerp2(alpha, float64(s.MoveTo.X), float64(s.MoveTo.Y), float64(e.MoveTo.X), float64(e.MoveTo.Y))
				rec.MoveTo = &Point{X: int32(v[0]), Y: int32(v[1])}
			}
			out[i] = rec

		default:
			out[i] = start[i]
		}
	}
	return out
}

// lerp2 and lerp4 blend N-tuples of (start..., end...) coordinates at
// alpha using dst = start*(1-alpha) + end*alpha, computed via
// floats.Scale/AddScaled so the blend is one vector operation rather than
// N hand-written multiplications.
func lerp2(alpha, sx, sy, ex, ey float64) []float64 {
	return lerpN(alpha, []float64{sx, sy}, []float64{ex, ey})
}

func lerp4(alpha, sa, sb, sc, sd, ea, eb, ec, ed float64) []float64 {
	return lerpN(alpha, []float64{sa, sb, sc, sd}, []float64{ea, eb, ec, ed})
}

func lerpN(alpha float64, start, end []float64) []float64 {
	dst := make([]float64, len(start))
	copy(dst, start)
	floats.Scale(1-alpha, dst)
	floats.AddScaled(dst, alpha, end)
	return dst
}
