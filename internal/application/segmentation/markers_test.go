package segmentation

import (
	"reflect"
	"testing"
)

func TestHasMarkers(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{"before ---SLIDE--- after", true},
		{"before <!-- SLIDE --> after", true},
		{"before [SLIDE] after", true},
		{"before ---slide--- after", true},
		{"before [slide] after", true},
		{"before <!-- slide --> after", true},
		{"no markers here", false},
		{"--SLIDE--", false},
		{"", false},
	}

	for _, c := range cases {
		if got := HasMarkers(c.content); got != c.want {
			t.Errorf("HasMarkers(%q) = %v, want %v", c.content, got, c.want)
		}
	}
}

func TestSplitByMarkers(t *testing.T) {
	content := "First part ---SLIDE--- Second part <!-- SLIDE --> Third [SLIDE] Fourth"
	got := splitByMarkers(content)
	want := []string{"First part", "Second part", "Third", "Fourth"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitByMarkers() = %v, want %v", got, want)
	}
}

func TestSplitByMarkersDropsEmptyFragments(t *testing.T) {
	got := splitByMarkers("A---SLIDE------SLIDE---B")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitByMarkers() = %v, want %v", got, want)
	}
}

func TestSplitByMarkersNoMarkers(t *testing.T) {
	got := splitByMarkers("  whole content  ")
	want := []string{"whole content"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitByMarkers() = %v, want %v", got, want)
	}
}

func TestSplitByMarkersAllEmpty(t *testing.T) {
	if got := splitByMarkers("---SLIDE---  ---SLIDE---"); len(got) != 0 {
		t.Fatalf("expected no fragments, got %v", got)
	}
}
