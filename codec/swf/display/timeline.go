/*
DESCRIPTION
  timeline.go implements the Timeline: an ordered list of Frames replayed
  into a DisplayList and a CharacterLibrary, with seek/advance semantics
  whose determinism is checked in timeline_test.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package display

import (
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/swf/codec/swf/bits"
)

// Action is the sum of the frame-level effects a decoded tag can have on
// a Timeline's CharacterLibrary, DisplayList, or background color.
// Dispatch on an Action is a type switch, the same match-on-tag-code
// shape the tag decoders themselves use rather than runtime reflection.
type Action interface{}

// DefineCharacterAction populates the CharacterLibrary. A second
// definition for an already-defined id is silently ignored.
type DefineCharacterAction struct {
	ID        uint16
	Character Character
}

// PlaceAction mutates the DisplayList via DisplayList.Place.
type PlaceAction struct {
	Data PlaceData
}

// RemoveAction mutates the DisplayList via DisplayList.Remove.
type RemoveAction struct {
	Depth int16
}

// SetBackgroundColorAction updates the ambient background color field.
type SetBackgroundColorAction struct {
	Color bits.Color
}

// Frame is an ordered list of actions executed together when the
// Timeline advances past it.
type Frame struct {
	Actions []Action
}

// Timeline holds a document's (or a sprite's) frame sequence, the
// CharacterLibrary those frames populate, and the DisplayList resulting
// from executing frames [0..currentFrame]. currentFrame of -1 means no
// frame has been executed yet.
type Timeline struct {
	frames       []Frame
	currentFrame int

	library    *Library
	display    *DisplayList
	bgColor    bits.Color
	bgColorSet bool

	// Logger receives a Warning for every frame-execution anomaly
	// (currently just ModifyMissingDepthError from a malformed
	// PlaceObject modify) recovered during Advance/Seek, rather than
	// panicking or silently dropping the action, the same way
	// revid/config.Config.Logger is carried and defaulted.
	Logger logging.Logger
}

// NewTimeline returns an empty Timeline backed by library. A nil library
// allocates a fresh one.
func NewTimeline(library *Library) *Timeline {
	if library == nil {
		library = NewLibrary()
	}
	return &Timeline{
		frames:       nil,
		currentFrame: -1,
		library:      library,
		display:      NewDisplayList(),
	}
}

// AddFrame appends frame to the timeline. It is a builder-only operation
// used while decoding; callers must not call it once playback (Seek,
// Advance) has begun.
func (t *Timeline) AddFrame(frame Frame) {
	t.frames = append(t.frames, frame)
}

// FrameCount returns the number of frames in the timeline.
func (t *Timeline) FrameCount() int { return len(t.frames) }

// CurrentFrame returns the index of the last executed frame, or -1.
func (t *Timeline) CurrentFrame() int { return t.currentFrame }

// Library returns the CharacterLibrary frames populate.
func (t *Timeline) Library() *Library { return t.library }

// DisplayList returns the read-only current display list.
func (t *Timeline) DisplayList() *DisplayList { return t.display }

// Background returns the current ambient background color, and whether a
// SetBackgroundColor action has ever run.
func (t *Timeline) Background() (bits.Color, bool) { return t.bgColor, t.bgColorSet }

// Seek executes (or skips) frames until currentFrame == target if target
// is in range. A forward seek executes each intervening frame on top of
// the existing DisplayList; a backward seek (target < currentFrame)
// rebuilds the DisplayList from scratch, replaying every frame from 0, so
// that seek(a) followed by seek(b) always produces the same DisplayList
// as a fresh timeline's seek(b). target outside [0,
// len(frames)) is a no-op.
func (t *Timeline) Seek(target int) {
	if target < 0 || target >= len(t.frames) {
		return
	}
	if target < t.currentFrame {
		t.display = NewDisplayList()
		t.bgColor = bits.Color{}
		t.bgColorSet = false
		t.currentFrame = -1
	}
	for i := t.currentFrame + 1; i <= target; i++ {
		t.execute(t.frames[i])
		t.currentFrame = i
	}
}

// Advance moves to the next frame, looping back to frame 0 from a fresh
// DisplayList once the last frame has played. Advancing
// an empty timeline is a no-op.
func (t *Timeline) Advance() {
	if len(t.frames) == 0 {
		return
	}
	if t.currentFrame >= len(t.frames)-1 {
		t.display = NewDisplayList()
		t.bgColor = bits.Color{}
		t.bgColorSet = false
		t.currentFrame = -1
		t.Seek(0)
		return
	}
	t.Seek(t.currentFrame + 1)
}

func (t *Timeline) execute(frame Frame) {
	for _, action := range frame.Actions {
		switch a := action.(type) {
		case DefineCharacterAction:
			// A repeat definition for the same id is ignored after
			// the first, not an error; Library.Define's strict
			// redefinition check is for a decode-time bug, not replay.
			if _, ok := t.library.Get(a.ID); !ok {
				_ = t.library.Define(a.ID, a.Character)
			}
		case PlaceAction:
			if err := t.display.Place(a.Data); err != nil {
				t.warn("place failed", "depth", a.Data.Depth, "cause", err)
			}
		case RemoveAction:
			t.display.Remove(a.Depth)
		case SetBackgroundColorAction:
			t.bgColor = a.Color
			t.bgColorSet = true
		}
	}
}

func (t *Timeline) warn(msg string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Warning(msg, args...)
	}
}
