/*
DESCRIPTION
  library.go implements the CharacterLibrary: a define-once, id-keyed
  dictionary of decoded characters (shapes, morph shapes, and sprites)
  that outlives the frame-by-frame Timeline replay.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package display implements the stateful engine layer on top of the
// decoded tag stream: the CharacterLibrary dictionary, the depth-indexed
// DisplayList, and the Timeline that replays a document's (or a sprite's)
// frame actions against both.
package display

// Character is the sum of the three definable character kinds:
// shape.Shape, shape.MorphShape, and *Sprite. Unlike the tagged-variant
// types in the shape package, Character has no marker method, since its
// members span two packages; callers discriminate with a type switch.
type Character interface{}

// Sprite is a DefineSprite character: a nested Timeline whose frame
// actions reference characters in the *parent* document's
// CharacterLibrary by id, never by pointer, so a sprite carries no
// library of its own.
type Sprite struct {
	FrameCount uint16
	Timeline   *Timeline
}

// Library is a dictionary id -> Character. Insertion is strictly
// define-once; a redefinition is rejected with DuplicateCharacterIDError
// rather than silently overwriting the original, since the Timeline
// frame-execution rule that ignores a second definition is the
// caller's concern, not the library's.
type Library struct {
	chars map[uint16]Character
}

// NewLibrary returns an empty CharacterLibrary.
func NewLibrary() *Library {
	return &Library{chars: make(map[uint16]Character)}
}

// Define inserts ch under id. It fails with *DuplicateCharacterIDError if
// id is already defined.
func (l *Library) Define(id uint16, ch Character) error {
	if _, ok := l.chars[id]; ok {
		return &DuplicateCharacterIDError{ID: id}
	}
	l.chars[id] = ch
	return nil
}

// Get returns the character defined for id, and whether it was found.
// The returned value is a weak, read-only handle; the library retains
// ownership for the lifetime of the decoded document.
func (l *Library) Get(id uint16) (Character, bool) {
	ch, ok := l.chars[id]
	return ch, ok
}
