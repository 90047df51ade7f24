package slot_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/feather-lang/slot"
)

func TestAttributeRoundTrip(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	s := &root.left

	for name, v := range map[string]any{"hp": 100, "name": "slime", "alive": true} {
		if err := s.Set(name, v); err != nil {
			t.Fatalf("Set(%q) failed: %v", name, err)
		}
	}

	hp, err := slot.Get[int](s, "hp")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hp != 100 {
		t.Errorf("expected 100, got %d", hp)
	}

	name, err := slot.Get[string](s, "name")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if name != "slime" {
		t.Errorf("expected 'slime', got %q", name)
	}

	alive, err := slot.Get[bool](s, "alive")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !alive {
		t.Error("expected alive to be true")
	}

	if got := s.AttrNames(); !slices.Equal(got, []string{"alive", "hp", "name"}) {
		t.Errorf("expected [alive hp name], got %v", got)
	}
}

func TestAttributeExactType(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	if err := root.left.Set("hp", 100); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := slot.Get[int64](&root.left, "hp")
	if !errors.Is(err, slot.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	var te *slot.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TypeError, got %T", err)
	}
	if te.Want != "int64" || te.Got != "int" {
		t.Errorf("expected int64/int, got %s/%s", te.Want, te.Got)
	}
	if !strings.Contains(err.Error(), `attribute "hp"`) {
		t.Errorf("error should name the attribute, got %q", err.Error())
	}
}

func TestAttributeOverwriteChangesType(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	s := &root.left

	if err := s.Set("x", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("x", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := slot.Get[int](s, "x"); !errors.Is(err, slot.ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	x, err := slot.Get[string](s, "x")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if x != "one" {
		t.Errorf("expected 'one', got %q", x)
	}
}

func TestAttributeMissing(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	s := &root.left

	if s.Has("missing") {
		t.Error("Has reported a missing attribute")
	}
	if _, err := slot.Get[int](s, "missing"); !errors.Is(err, slot.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set("present", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !s.Has("present") {
		t.Error("Has missed a present attribute")
	}
	if _, err := s.Lookup("missing"); !errors.Is(err, slot.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAttributesOnEmptySlot(t *testing.T) {
	root := newNode(1)
	s := &root.left

	if err := s.Set("hp", 1); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Set: expected ErrNullAccess, got %v", err)
	}
	if _, err := slot.Get[int](s, "hp"); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Get: expected ErrNullAccess, got %v", err)
	}
	if _, err := s.Attr("hp"); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Attr: expected ErrNullAccess, got %v", err)
	}
	if s.Has("hp") {
		t.Error("Has should be false on an empty slot")
	}
}

func TestAttributesSurviveReplacement(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	if err := root.left.Set("hp", 100); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	root.left.Adopt(newNode(3))

	hp, err := slot.Get[int](&root.left, "hp")
	if err != nil {
		t.Fatalf("Get after replacement failed: %v", err)
	}
	if hp != 100 {
		t.Errorf("expected 100, got %d", hp)
	}
}

func TestAttributesUnreachableWhileEmpty(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	if err := root.left.Set("hp", 100); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	root.left.Reset()
	if root.left.Has("hp") {
		t.Error("attributes should be unreachable while the slot is empty")
	}

	root.left.Emplace(withValue(4))
	if !root.left.Has("hp") {
		t.Error("attributes should be back once the slot holds a value")
	}
}

func TestDeleteAttr(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))
	if err := root.left.Set("hp", 100); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !root.left.DeleteAttr("hp") {
		t.Error("DeleteAttr should report a deleted attribute")
	}
	if root.left.DeleteAttr("hp") {
		t.Error("DeleteAttr should report false the second time")
	}
	if root.left.Has("hp") {
		t.Error("attribute still present after DeleteAttr")
	}
}

func TestFieldHandle(t *testing.T) {
	root := newNode(1)
	root.left.Emplace(withValue(2))

	f, err := root.left.Attr("hp")
	if err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if f.Name() != "hp" {
		t.Errorf("expected name 'hp', got %q", f.Name())
	}
	if f.Exists() {
		t.Error("field should not exist before Set")
	}

	if err := f.Set(100); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !f.Exists() {
		t.Error("field should exist after Set")
	}

	hp, err := slot.FieldAs[int](f)
	if err != nil {
		t.Fatalf("FieldAs failed: %v", err)
	}
	if hp != 100 {
		t.Errorf("expected 100, got %d", hp)
	}

	b, err := f.Box()
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	if b.Kind() != "int" {
		t.Errorf("expected kind int, got %s", b.Kind())
	}
}

func TestZeroFieldHandle(t *testing.T) {
	var f slot.Field[node, node]

	if f.Exists() {
		t.Error("zero field should not exist")
	}
	if err := f.Set(1); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Set: expected ErrNullAccess, got %v", err)
	}
	if _, err := f.Box(); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Box: expected ErrNullAccess, got %v", err)
	}
	if _, err := f.Call(); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("Call: expected ErrNullAccess, got %v", err)
	}
	if _, err := slot.FieldAs[int](f); !errors.Is(err, slot.ErrNullAccess) {
		t.Errorf("FieldAs: expected ErrNullAccess, got %v", err)
	}
}
