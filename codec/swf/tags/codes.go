/*
DESCRIPTION
  codes.go lists the SWF tag codes recognised by this decoder.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tags

// Tag codes recognised (decoded, or framed-and-skipped) by this decoder.
// Any other code is framed but otherwise ignored.
const (
	End                = 0
	ShowFrame          = 1
	DefineShape        = 2
	PlaceObject        = 4
	RemoveObject       = 5
	SetBackgroundColor = 9
	DefineShape2       = 22
	PlaceObject2       = 26
	RemoveObject2      = 28
	DefineShape3       = 32
	DefineSprite       = 39
	DefineMorphShape   = 46
	PlaceObject3       = 70
	DefineShape4       = 83
	DefineMorphShape2  = 84
)
