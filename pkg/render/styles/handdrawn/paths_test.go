package handdrawn

import (
	"strings"
	"testing"
)

func TestWobbledRect(t *testing.T) {
	path := wobbledRect(10, 20, 100, 50, 42, "test-block")

	if !strings.HasPrefix(path, "M") {
		t.Errorf("wobbledRect() should start with M, got: %s", path)
	}
	if !strings.HasSuffix(path, "Z") {
		t.Errorf("wobbledRect() should end with Z, got: %s", path)
	}
	if got := strings.Count(path, "Q"); got != 4 {
		t.Errorf("wobbledRect() has %d Q commands, want 4", got)
	}

	if path != wobbledRect(10, 20, 100, 50, 42, "test-block") {
		t.Error("wobbledRect() should be deterministic")
	}
	if path == wobbledRect(10, 20, 100, 50, 42, "other-block") {
		t.Error("wobbledRect() should produce different paths for different IDs")
	}
}

func TestWobbledRect_SmallRect(t *testing.T) {
	path := wobbledRect(0, 0, 5, 5, 42, "tiny")
	if !strings.HasPrefix(path, "M") {
		t.Errorf("small wobbledRect() should start with M, got: %s", path)
	}
}

func TestRotationFor(t *testing.T) {
	if rotationFor("test", 100, 50) != rotationFor("test", 100, 50) {
		t.Error("rotationFor() should be deterministic")
	}
	if rotationFor("test", 100, 50) == rotationFor("other", 100, 50) {
		t.Error("rotationFor() should differ between IDs")
	}
	for _, id := range []string{"a", "b", "c", "rashi", "rambam"} {
		if rot := rotationFor(id, 100, 50); rot < -2 || rot > 2 {
			t.Errorf("rotationFor(%q) = %f, want within [-2, 2]", id, rot)
		}
		if rot := rotationFor(id, 500, 50); rot < -1 || rot > 1 {
			t.Errorf("rotationFor(%q) wide = %f, want within [-1, 1]", id, rot)
		}
	}
}

func TestRNG(t *testing.T) {
	g := newRNG(42)
	for range 100 {
		if v := g.next(); v < 0 || v >= 1 {
			t.Errorf("next() = %f, want [0, 1)", v)
		}
	}

	a, b := newRNG(42), newRNG(42)
	for range 10 {
		if a.next() != b.next() {
			t.Fatal("rng should be deterministic")
		}
	}

	a, c := newRNG(42), newRNG(43)
	different := false
	for range 10 {
		if a.next() != c.next() {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different sequences")
	}
}

func TestHash(t *testing.T) {
	if hash("test", 42) != hash("test", 42) {
		t.Error("hash() should be deterministic")
	}
	if hash("test", 42) == hash("test", 43) {
		t.Error("hash() should depend on the seed")
	}
	if hash("test", 42) == hash("other", 42) {
		t.Error("hash() should depend on the input")
	}
}
