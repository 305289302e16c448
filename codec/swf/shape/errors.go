/*
DESCRIPTION
  errors.go defines the structured error kinds the shape decoder can
  produce.

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

import "fmt"

// UnknownFillTypeError reports a fill style type byte outside the known
// range (solid, linear/radial/focal gradient, four bitmap variants). This
// is a source-side bug; per design notes, no heuristic color-recovery is
// attempted.
type UnknownFillTypeError struct {
	Value byte
}

func (e *UnknownFillTypeError) Error() string {
	return fmt.Sprintf("shape: unknown fill type %#x", e.Value)
}

// TruncatedShapeError reports a shape record stream that ran out of data
// before the end marker was reached. RecordsDecoded is the number of
// records successfully decoded before truncation; the partial shape these
// records form is still usable by callers doing best-effort rendering.
type TruncatedShapeError struct {
	RecordsDecoded int
	Cause          error
}

func (e *TruncatedShapeError) Error() string {
	return fmt.Sprintf("shape: record stream truncated after %d records: %v", e.RecordsDecoded, e.Cause)
}

func (e *TruncatedShapeError) Unwrap() error { return e.Cause }

// InvalidOffsetError reports a DefineMorphShape offsetToEndEdges field that
// does not point within the tag body.
type InvalidOffsetError struct {
	Offset, Limit int
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("shape: end-edges offset %d exceeds body length %d", e.Offset, e.Limit)
}

// MorphTopologyMismatchError reports that a morph shape's start and end
// record sequences disagree in count or record kind.
type MorphTopologyMismatchError struct {
	StartCount, EndCount int
}

func (e *MorphTopologyMismatchError) Error() string {
	return fmt.Sprintf("shape: morph topology mismatch: start has %d records, end has %d", e.StartCount, e.EndCount)
}
