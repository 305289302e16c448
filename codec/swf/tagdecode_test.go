/*
DESCRIPTION
  tagdecode_test.go covers the individual PlaceObject{,2,3}/RemoveObject{,2}
  body decoders, decodeTagStream's recovery of a malformed tag, and
  DefineSprite's recursion and Library sharing with its parent document.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package swf

import (
	"testing"

	"github.com/ausocean/swf/codec/swf/bits"
	"github.com/ausocean/swf/codec/swf/display"
	"github.com/ausocean/swf/codec/swf/shape"
	"github.com/ausocean/swf/codec/swf/tags"
)

func TestDecodePlaceObject2MinimalNewCharacter(t *testing.T) {
	data, err := decodePlaceObject2(placeObject2NewCharacter(1, 7), 0)
	if err != nil {
		t.Fatalf("decodePlaceObject2: %v", err)
	}
	if !data.HasCharacter || data.CharacterID != 7 {
		t.Errorf("data = %+v, want HasCharacter and CharacterID=7", data)
	}
	if data.Depth != 1 {
		t.Errorf("Depth = %d, want 1", data.Depth)
	}
	if data.HasMatrix || data.HasColorXform || data.HasName {
		t.Errorf("data = %+v, unexpected optional fields set", data)
	}
}

func TestDecodePlaceObject2Move(t *testing.T) {
	body := []byte{placeFlagMove}
	body = append(body, u16le(3)...) // depth
	data, err := decodePlaceObject2(body, 0)
	if err != nil {
		t.Fatalf("decodePlaceObject2: %v", err)
	}
	if !data.Move || data.HasCharacter {
		t.Errorf("data = %+v, want Move only", data)
	}
}

func TestDecodePlaceObject2NameRespectsMaxStringLen(t *testing.T) {
	body := []byte{placeFlagHasName}
	body = append(body, u16le(1)...)                 // depth
	body = append(body, []byte("hello")...)          // name, NUL-terminated below
	body = append(body, 0x00)

	if _, err := decodePlaceObject2(body, 0); err != nil {
		t.Fatalf("decodePlaceObject2 with default cap: %v", err)
	}
	if _, err := decodePlaceObject2(body, 2); err == nil {
		t.Fatal("decodePlaceObject2 with a 2 byte cap: expected an error, got nil")
	}
}

func TestDecodePlaceObjectMinimal(t *testing.T) {
	body := append(u16le(7), u16le(1)...) // characterId, depth
	data, err := decodePlaceObject(body)
	if err != nil {
		t.Fatalf("decodePlaceObject: %v", err)
	}
	if !data.HasCharacter || data.CharacterID != 7 || data.Depth != 1 {
		t.Errorf("data = %+v, want HasCharacter, CharacterID=7, Depth=1", data)
	}
	if data.HasMatrix || data.HasColorXform {
		t.Errorf("data = %+v, want no optional tail", data)
	}
}

func TestDecodePlaceObjectWithMatrix(t *testing.T) {
	m := bits.Matrix{
		ScaleX: 2, ScaleY: 0.5,
		RotateSkew0: 0.25, RotateSkew1: -0.25,
		TranslateX: 1000, TranslateY: -500,
	}
	body := append(u16le(7), u16le(1)...)
	body = append(body, encodeMatrix(m)...)

	data, err := decodePlaceObject(body)
	if err != nil {
		t.Fatalf("decodePlaceObject: %v", err)
	}
	if !data.HasMatrix || data.Matrix != m {
		t.Errorf("Matrix = %+v, want %+v (HasMatrix=%v)", data.Matrix, m, data.HasMatrix)
	}
	if data.HasColorXform {
		t.Errorf("data = %+v, want no color transform", data)
	}
}

func TestDecodePlaceObjectWithMatrixAndColorTransform(t *testing.T) {
	m := bits.Identity()
	ct := bits.ColorTransform{RMul: 0.5, GMul: 0.25, BMul: 0.75, AMul: 1, RAdd: 10, GAdd: -5, BAdd: 20}
	body := append(u16le(7), u16le(1)...)
	body = append(body, encodeMatrix(m)...)
	body = append(body, encodeColorTransform(ct, false)...)

	data, err := decodePlaceObject(body)
	if err != nil {
		t.Fatalf("decodePlaceObject: %v", err)
	}
	if !data.HasMatrix || data.Matrix != m {
		t.Errorf("Matrix = %+v, want %+v", data.Matrix, m)
	}
	if !data.HasColorXform || data.ColorXform != ct {
		t.Errorf("ColorXform = %+v, want %+v", data.ColorXform, ct)
	}
}

func TestDecodePlaceObject3ClassName(t *testing.T) {
	body := []byte{placeFlagHasCharacter, place3FlagHasClassName}
	body = append(body, u16le(1)...) // depth
	body = append(body, []byte("MyClip")...)
	body = append(body, 0x00) // NUL terminator
	body = append(body, u16le(42)...) // characterId, per placeFlagHasCharacter

	data, err := decodePlaceObject3(body, 0)
	if err != nil {
		t.Fatalf("decodePlaceObject3: %v", err)
	}
	if !data.HasCharacter || data.CharacterID != 42 {
		t.Errorf("data = %+v, want HasCharacter and CharacterID=42", data)
	}
}

func TestDecodePlaceObject3CacheAsBitmapAndBlendMode(t *testing.T) {
	body := []byte{0, place3FlagHasCacheAsBitmap | place3FlagHasBlendMode}
	body = append(body, u16le(3)...) // depth
	body = append(body, 0x01)        // cacheAsBitmap marker, value unchecked
	body = append(body, 0x05)        // blendMode

	data, err := decodePlaceObject3(body, 0)
	if err != nil {
		t.Fatalf("decodePlaceObject3: %v", err)
	}
	if data.BlendMode != 0x05 {
		t.Errorf("BlendMode = %#x, want 0x05", data.BlendMode)
	}
}

// TestDecodePlaceObject3StopsBeforeFilterList confirms the decoder
// neither parses nor requires a trailing filter list: bytes following
// blendMode are left untouched rather than causing a read error.
func TestDecodePlaceObject3StopsBeforeFilterList(t *testing.T) {
	body := []byte{0, place3FlagHasBlendMode | place3FlagHasFilterList}
	body = append(body, u16le(3)...)          // depth
	body = append(body, 0x07)                 // blendMode
	body = append(body, 0xde, 0xad, 0xbe, 0xef) // stand-in filter list bytes, unparsed

	data, err := decodePlaceObject3(body, 0)
	if err != nil {
		t.Fatalf("decodePlaceObject3: %v", err)
	}
	if data.BlendMode != 0x07 {
		t.Errorf("BlendMode = %#x, want 0x07", data.BlendMode)
	}
}

func TestDecodeRemoveObject(t *testing.T) {
	body := append(u16le(99), u16le(4)...) // characterId (ignored), depth
	depth, err := decodeRemoveObject(body)
	if err != nil {
		t.Fatalf("decodeRemoveObject: %v", err)
	}
	if depth != 4 {
		t.Errorf("depth = %d, want 4", depth)
	}
}

func TestDecodeRemoveObject2(t *testing.T) {
	depth, err := decodeRemoveObject2(u16le(5))
	if err != nil {
		t.Fatalf("decodeRemoveObject2: %v", err)
	}
	if depth != 5 {
		t.Errorf("depth = %d, want 5", depth)
	}
}

func TestDecodeSetBackgroundColor(t *testing.T) {
	col, err := decodeSetBackgroundColor([]byte{0x10, 0x20, 0x30})
	if err != nil {
		t.Fatalf("decodeSetBackgroundColor: %v", err)
	}
	want := bits.Color{R: float64(0x10) / 255, G: float64(0x20) / 255, B: float64(0x30) / 255, A: 1}
	if col != want {
		t.Errorf("col = %+v, want %+v", col, want)
	}
}

// TestDecodeTagStreamRecoversMalformedTag exercises the malformed-tag
// recovery path: a DefineShape1 body whose declared fill style count (255)
// has no data behind it fails partway through, is recorded as a
// TagDecodeFailure, and decoding continues with the frames that follow.
func TestDecodeTagStreamRecoversMalformedTag(t *testing.T) {
	badShape := append(u16le(1), zeroRectByte...)
	badShape = append(badShape, 0xff, 0x00) // fill count 255, one trailing byte then nothing

	stream := shortTag(tags.DefineShape, badShape)
	stream = append(stream, shortTag(tags.ShowFrame, nil)...)
	stream = append(stream, shortTag(tags.End, nil)...)

	recs, err := tags.Frame(stream)
	if err != nil {
		t.Fatalf("tags.Frame: %v", err)
	}
	tl, recovered := decodeTagStream(recs, display.NewLibrary(), nil, 0)

	if len(recovered) != 1 {
		t.Fatalf("recovered = %d errors, want 1: %v", len(recovered), recovered)
	}
	tdf, ok := recovered[0].(*TagDecodeFailure)
	if !ok {
		t.Fatalf("recovered[0] = %T, want *TagDecodeFailure", recovered[0])
	}
	if tdf.Code != tags.DefineShape {
		t.Errorf("tdf.Code = %d, want %d", tdf.Code, tags.DefineShape)
	}

	if tl.FrameCount() != 1 {
		t.Fatalf("FrameCount = %d, want 1", tl.FrameCount())
	}
	tl.Seek(0)
	if n := len(tl.DisplayList().ObjectsInRenderOrder()); n != 0 {
		t.Errorf("frame 0 has %d objects, want 0 (the shape never defined)", n)
	}
}

// TestDecodeDefineSpriteRecursion exercises DefineSprite's nested tag
// stream: the sprite's own ShowFrame delimits its child Timeline,
// independent of the parent document's frame boundaries.
func TestDecodeDefineSpriteRecursion(t *testing.T) {
	childStream := shortTag(tags.PlaceObject2, placeObject2NewCharacter(1, 42))
	childStream = append(childStream, shortTag(tags.ShowFrame, nil)...)
	childStream = append(childStream, shortTag(tags.End, nil)...)

	spriteBody := append(u16le(5), u16le(1)...) // characterId=5, frameCount=1
	spriteBody = append(spriteBody, childStream...)

	library := display.NewLibrary()
	id, sprite, recovered, err := decodeDefineSprite(spriteBody, library, nil, 0)
	if err != nil {
		t.Fatalf("decodeDefineSprite: %v", err)
	}
	if len(recovered) != 0 {
		t.Fatalf("recovered = %v, want none", recovered)
	}
	if id != 5 {
		t.Errorf("id = %d, want 5", id)
	}
	if sprite.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", sprite.FrameCount)
	}
	if sprite.Timeline.FrameCount() != 1 {
		t.Fatalf("child FrameCount = %d, want 1", sprite.Timeline.FrameCount())
	}

	sprite.Timeline.Seek(0)
	objs := sprite.Timeline.DisplayList().ObjectsInRenderOrder()
	if len(objs) != 1 || objs[0].CharacterID != 42 {
		t.Errorf("child frame 0 objects = %+v, want one object referencing characterId 42", objs)
	}
}

// TestDecodeDefineSpriteSharesParentLibrary confirms a sprite's child
// Timeline resolves characters against the same Library the parent
// document uses, rather than one scoped to the sprite: a character
// defined only in the parent's Library is visible through the child
// Timeline's Library accessor, and both Library() calls return the
// identical instance.
func TestDecodeDefineSpriteSharesParentLibrary(t *testing.T) {
	library := display.NewLibrary()
	if err := library.Define(42, shape.Shape{}); err != nil {
		t.Fatalf("library.Define: %v", err)
	}

	childStream := shortTag(tags.PlaceObject2, placeObject2NewCharacter(1, 42))
	childStream = append(childStream, shortTag(tags.ShowFrame, nil)...)
	childStream = append(childStream, shortTag(tags.End, nil)...)

	spriteBody := append(u16le(5), u16le(1)...) // characterId=5, frameCount=1
	spriteBody = append(spriteBody, childStream...)

	_, sprite, _, err := decodeDefineSprite(spriteBody, library, nil, 0)
	if err != nil {
		t.Fatalf("decodeDefineSprite: %v", err)
	}

	if sprite.Timeline.Library() != library {
		t.Fatal("child Timeline.Library() is not the parent's Library instance")
	}
	if _, ok := sprite.Timeline.Library().Get(42); !ok {
		t.Fatal("character 42, defined only at the parent level, is not visible via the child Timeline's Library")
	}
}
