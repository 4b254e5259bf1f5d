package tripmap

import "testing"

func TestColorForIsStable(t *testing.T) {
	a := ColorFor("part-1")
	for i := 0; i < 10; i++ {
		if got := ColorFor("part-1"); got != a {
			t.Fatalf("color changed across calls: %s then %s", a, got)
		}
	}
}

func TestColorForIgnoresOrdering(t *testing.T) {
	// Colors key off identity, so reordering the fan-out response or adding
	// and removing participants never recolors anyone.
	ids := []string{"part-1", "part-2", "part-3", "part-4"}
	want := make(map[string]string, len(ids))
	for _, id := range ids {
		want[id] = ColorFor(id)
	}

	reordered := []string{"part-3", "part-1", "part-4", "part-2"}
	for _, id := range reordered {
		if got := ColorFor(id); got != want[id] {
			t.Errorf("%s changed color after reordering: %s != %s", id, got, want[id])
		}
	}
}

func TestColorForDrawsFromPalette(t *testing.T) {
	inPalette := func(c string) bool {
		for _, p := range palette {
			if p == c {
				return true
			}
		}
		return false
	}
	for _, id := range []string{"part-1", "", "a-long-participant-identifier"} {
		if c := ColorFor(id); !inPalette(c) {
			t.Errorf("ColorFor(%q) = %s not in palette", id, c)
		}
	}
}
