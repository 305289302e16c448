/*
DESCRIPTION
  displaylist_test.go provides testing for utilities in displaylist.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package display

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/swf/codec/swf/bits"
)

func TestDisplayListPlaceAndOrder(t *testing.T) {
	dl := NewDisplayList()

	if err := dl.Place(PlaceData{Depth: 3, HasCharacter: true, CharacterID: 30}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dl.Place(PlaceData{Depth: 1, HasCharacter: true, CharacterID: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dl.Place(PlaceData{Depth: 2, HasCharacter: true, CharacterID: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := dl.ObjectsInRenderOrder()
	var ids []uint16
	for _, o := range got {
		ids = append(ids, o.CharacterID)
	}
	want := []uint16{10, 20, 30}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayListModifyMissingDepth(t *testing.T) {
	dl := NewDisplayList()
	err := dl.Place(PlaceData{Depth: 1, HasMatrix: true, Matrix: bits.Identity()})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var mmd *ModifyMissingDepthError
	if !errors.As(err, &mmd) {
		t.Fatalf("got %T, want *ModifyMissingDepthError", err)
	}
}

// TestDisplayListPlaceModifyRemove checks spec scenario C.
func TestDisplayListPlaceModifyRemove(t *testing.T) {
	dl := NewDisplayList()

	if err := dl.Place(PlaceData{
		Depth: 1, HasCharacter: true, CharacterID: 1,
		HasMatrix: true, Matrix: translate(0, 0),
	}); err != nil {
		t.Fatalf("unexpected error placing: %v", err)
	}
	objs := dl.ObjectsInRenderOrder()
	if len(objs) != 1 || objs[0].Matrix.TranslateX != 0 {
		t.Fatalf("after place: got %#v, want one object at (0,0)", objs)
	}

	if err := dl.Place(PlaceData{Depth: 1, Move: true, HasMatrix: true, Matrix: translate(100, 0)}); err != nil {
		t.Fatalf("unexpected error modifying: %v", err)
	}
	objs = dl.ObjectsInRenderOrder()
	if len(objs) != 1 || objs[0].Matrix.TranslateX != 100 {
		t.Fatalf("after modify: got %#v, want one object at (100,0)", objs)
	}

	dl.Remove(1)
	objs = dl.ObjectsInRenderOrder()
	if len(objs) != 0 {
		t.Fatalf("after remove: got %d objects, want 0", len(objs))
	}

	dl.Remove(99) // removing an absent depth is not an error.
}

func translate(x, y int32) bits.Matrix {
	m := bits.Identity()
	m.TranslateX, m.TranslateY = x, y
	return m
}
