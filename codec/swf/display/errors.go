/*
DESCRIPTION
  errors.go defines the structured error kinds the CharacterLibrary and
  DisplayList can produce.

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

import "fmt"

// DuplicateCharacterIDError reports a second Define for an id already
// present in a CharacterLibrary.
type DuplicateCharacterIDError struct {
	ID uint16
}

func (e *DuplicateCharacterIDError) Error() string {
	return fmt.Sprintf("display: character id %d already defined", e.ID)
}

// ModifyMissingDepthError reports a PlaceObject modify (no character
// attached) against a depth with no existing PlacedObject.
type ModifyMissingDepthError struct {
	Depth int16
}

func (e *ModifyMissingDepthError) Error() string {
	return fmt.Sprintf("display: modify at depth %d has no existing object", e.Depth)
}
