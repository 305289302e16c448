/*
DESCRIPTION
  displaylist.go implements the DisplayList: a depth-indexed mapping of
  PlacedObject, with a render-order view cached and invalidated on
  mutation.

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
	"sort"

	"github.com/ausocean/swf/codec/swf/bits"
)

// PlaceData describes the fields a PlaceObject{,2,3} tag carried. HasX
// flags record field presence so DisplayList.Place can tell a modify
// (only some fields set, character unchanged) from a fresh placement.
type PlaceData struct {
	Depth         int16
	Move          bool // true for a PlaceObject2/3 "move" (modify existing).
	HasCharacter  bool
	CharacterID   uint16
	HasMatrix     bool
	Matrix        bits.Matrix
	HasColorXform bool
	ColorXform    bits.ColorTransform
	HasRatio      bool
	Ratio         uint16
	HasName       bool
	Name          string
	HasClipDepth  bool
	ClipDepth     int16
	BlendMode     uint8
	Visible       bool
}

// PlacedObject is one entry of a DisplayList: a character instance at a
// given depth, with the transform/attribute state accumulated across
// whatever PlaceObject tags have touched that depth.
type PlacedObject struct {
	CharacterID uint16
	Depth       int16
	Matrix      bits.Matrix
	ColorXform  *bits.ColorTransform
	Ratio       *uint16
	Name        string
	ClipDepth   *int16
	BlendMode   uint8
	Visible     bool
}

// DisplayList is a depth-indexed mapping of PlacedObject; at most one
// object occupies a given depth. It does not resolve character ids to
// Characters; that lookup belongs at the renderer boundary, through a
// Library.
type DisplayList struct {
	objects map[int16]PlacedObject
	order   []int16 // cached ascending depth order; nil means stale.
}

// NewDisplayList returns an empty DisplayList.
func NewDisplayList() *DisplayList {
	return &DisplayList{objects: make(map[int16]PlacedObject)}
}

// Place applies a PlaceObject{,2,3} tag's data. If data.HasCharacter, it
// replaces (or creates) the object at data.Depth. Otherwise it is a
// modify of an existing object: fields whose presence flag is set are
// updated in place, and it fails with *ModifyMissingDepthError if no
// object currently occupies the depth.
func (d *DisplayList) Place(data PlaceData) error {
	if data.HasCharacter {
		d.objects[data.Depth] = PlacedObject{
			CharacterID: data.CharacterID,
			Depth:       data.Depth,
			Matrix:      matrixOrIdentity(data),
			ColorXform:  colorXformOrNil(data),
			Ratio:       ratioOrNil(data),
			Name:        data.Name,
			ClipDepth:   clipDepthOrNil(data),
			BlendMode:   data.BlendMode,
			Visible:     true,
		}
		d.order = nil
		return nil
	}

	obj, ok := d.objects[data.Depth]
	if !ok {
		return &ModifyMissingDepthError{Depth: data.Depth}
	}
	if data.HasMatrix {
		obj.Matrix = data.Matrix
	}
	if data.HasColorXform {
		ct := data.ColorXform
		obj.ColorXform = &ct
	}
	if data.HasRatio {
		r := data.Ratio
		obj.Ratio = &r
	}
	if data.HasName {
		obj.Name = data.Name
	}
	if data.HasClipDepth {
		cd := data.ClipDepth
		obj.ClipDepth = &cd
	}
	d.objects[data.Depth] = obj
	// The cached order is unaffected by a field-only modify (depth is
	// unchanged), so it is left intact.
	return nil
}

// Remove deletes the object at depth, if any. Removing an absent depth is
// not an error; SWF files legitimately remove depths never placed.
func (d *DisplayList) Remove(depth int16) {
	if _, ok := d.objects[depth]; !ok {
		return
	}
	delete(d.objects, depth)
	d.order = nil
}

// ObjectsInRenderOrder returns the current objects sorted ascending by
// depth (lower depths render first, i.e. further back).
func (d *DisplayList) ObjectsInRenderOrder() []PlacedObject {
	if d.order == nil {
		d.order = make([]int16, 0, len(d.objects))
		for depth := range d.objects {
			d.order = append(d.order, depth)
		}
		sort.Slice(d.order, func(i, j int) bool { return d.order[i] < d.order[j] })
	}
	out := make([]PlacedObject, len(d.order))
	for i, depth := range d.order {
		out[i] = d.objects[depth]
	}
	return out
}

func matrixOrIdentity(data PlaceData) bits.Matrix {
	if data.HasMatrix {
		return data.Matrix
	}
	return bits.Identity()
}

func colorXformOrNil(data PlaceData) *bits.ColorTransform {
	if !data.HasColorXform {
		return nil
	}
	ct := data.ColorXform
	return &ct
}

func ratioOrNil(data PlaceData) *uint16 {
	if !data.HasRatio {
		return nil
	}
	r := data.Ratio
	return &r
}

func clipDepthOrNil(data PlaceData) *int16 {
	if !data.HasClipDepth {
		return nil
	}
	cd := data.ClipDepth
	return &cd
}
