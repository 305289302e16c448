/*
DESCRIPTION
  errors.go defines the structured error kinds this package produces
  while decoding.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package swf

import (
	"fmt"

	"github.com/ausocean/swf/codec/swf/bits"
)

// UnexpectedEndOfData is produced whenever a cursor read runs past the end
// of its buffer. It is an alias of bits.EOFError so that callers can work
// with one type regardless of which layer surfaced the error.
type UnexpectedEndOfData = bits.EOFError

// BadSignatureError reports a document header whose first three bytes are
// not FWS, CWS, or ZWS.
type BadSignatureError struct {
	Bytes [3]byte
}

func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("swf: bad signature %q", e.Bytes[:])
}

// DecompressionFailedError wraps a failure reported by the caller-supplied
// Inflater.
type DecompressionFailedError struct {
	Cause error
}

func (e *DecompressionFailedError) Error() string {
	return fmt.Sprintf("swf: decompression failed: %v", e.Cause)
}

func (e *DecompressionFailedError) Unwrap() error { return e.Cause }

// TagDecodeFailure is the recoverable error the tag framing loop produces
// when an individual tag's body decoder fails. It never aborts decoding of
// the rest of the document.
type TagDecodeFailure struct {
	Code   uint16
	Offset int
	Cause  error
}

func (e *TagDecodeFailure) Error() string {
	return fmt.Sprintf("swf: tag %d at offset %d failed to decode: %v", e.Code, e.Offset, e.Cause)
}

func (e *TagDecodeFailure) Unwrap() error { return e.Cause }
