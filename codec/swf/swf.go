/*
DESCRIPTION
  swf.go ties the header parser, tag framer, and tag decoders together
  into the single Decode entry point: a pure function from a byte buffer
  and a set of Options to a Document.

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
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/swf/codec/swf/display"
	"github.com/ausocean/swf/codec/swf/tags"
)

// Options configures Decode. The zero value is a usable default: warnings
// logged to stderr, no decompression support (decoding a CWS/ZWS file with a nil
// Inflate fails with DecompressionFailedError), and the standard string
// length cap.
type Options struct {
	// Logger receives a Warning for every recovered TagDecodeFailure.
	// Defaulted to a logging.New(logging.Warning, os.Stderr, false)-
	// style sink when nil, matching revid/config.Config's Logger default.
	Logger logging.Logger

	// Inflate decompresses CWS/ZWS payloads. Required only for
	// compressed documents; FWS documents never call it.
	Inflate Inflater

	// MaxStringLen bounds ReadString; 0 selects bits.Cursor's own default.
	MaxStringLen int
}

func (o Options) logger() logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.New(logging.Warning, os.Stderr, false)
}

func (o Options) inflate() Inflater {
	if o.Inflate != nil {
		return o.Inflate
	}
	return func([]byte) ([]byte, error) {
		return nil, errUninflatable
	}
}

var errUninflatable = &DecompressionFailedError{Cause: errNoInflater}

var errNoInflater = noInflaterError{}

type noInflaterError struct{}

func (noInflaterError) Error() string {
	return "swf: compressed document but no Inflater configured"
}

// Document is a fully decoded SWF file: its header and the Timeline
// built by replaying its top-level tag stream. Errors is the list of
// TagDecodeFailure values recovered while decoding; a non-empty Errors
// does not mean decoding failed, only that some tags were skipped.
type Document struct {
	Header   Header
	Timeline *display.Timeline
	Errors   []error
}

// Decode parses buf as an SWF document. Header and framing failures
// (bad signature, a failed Inflate call, a truncated tag length) are
// fatal and returned as the error; individual malformed tags within an
// otherwise well-formed stream are instead recovered into Document.Errors
// (see errors.go).
func Decode(buf []byte, opts Options) (*Document, error) {
	header, body, err := ParseHeader(buf, opts.inflate())
	if err != nil {
		return nil, err
	}

	recs, err := tags.Frame(body)
	if err != nil {
		return nil, err
	}

	// A single Library is shared by the top-level Timeline and every
	// DefineSprite sub-timeline decoded from this document, since
	// character ids are unique per document rather than scoped per
	// sprite.
	library := display.NewLibrary()
	tl, recovered := decodeTagStream(recs, library, opts.logger(), opts.MaxStringLen)
	return &Document{Header: header, Timeline: tl, Errors: recovered}, nil
}
