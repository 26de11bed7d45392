package utils_test

import (
	"testing"

	"github.com/voidlang/void/utils"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	om := utils.NewOrderedMap[string, int]()
	om.Set("z", 1)
	om.Set("a", 2)
	om.Set("m", 3)

	var keys []string
	om.Iterator()(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})

	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}

func TestOrderedMapSetUpdatesInPlace(t *testing.T) {
	om := utils.NewOrderedMap[string, int]()
	om.Set("x", 1)
	om.Set("x", 2)

	if om.Size() != 1 {
		t.Fatalf("expected size 1 after update, got %d", om.Size())
	}
	got, ok := om.Get("x")
	if !ok || got != 2 {
		t.Fatalf("expected x=2, got %v ok=%v", got, ok)
	}
}

func TestOrderedMapDeleteMissingKeyErrors(t *testing.T) {
	om := utils.NewOrderedMap[string, int]()
	if err := om.Delete("missing"); err == nil {
		t.Fatalf("expected error deleting missing key")
	}
}

func TestOrderedMapFromList(t *testing.T) {
	om := utils.NewOrderedMapFromList([]utils.MapEntry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
	})
	if om.Size() != 2 {
		t.Fatalf("expected size 2, got %d", om.Size())
	}
	if !om.Has("b") {
		t.Fatalf("expected key b to be present")
	}
}
