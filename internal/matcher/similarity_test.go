package matcher

import (
	"math"
	"testing"
)

func TestSimilarity_Equal(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
	}{
		{"Identical", "victoria island", "victoria island"},
		{"Case_And_Punctuation", "VICTORIA, Island!", "victoria island"},
		{"Both_Empty", "", ""},
		{"Punctuation_Only_Vs_Empty", "?!", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Similarity(tc.a, tc.b); got != 100 {
				t.Errorf("Similarity(%q, %q) = %v, want 100", tc.a, tc.b, got)
			}
		})
	}
}

func TestSimilarity_Containment(t *testing.T) {
	got := Similarity("victoria island", "28 ahmadu bello way victoria island lagos")
	if got < 85 || got >= 100 {
		t.Errorf("containment score %v outside [85, 100)", got)
	}

	// Near-equal-length containment approaches 100; a tiny fragment inside a
	// long string stays just above 85.
	near := Similarity("lekki phase 1", "lekki phase 1 estate")
	tiny := Similarity("vi", "a very long address string mentioning vi somewhere")
	if near <= tiny {
		t.Errorf("near-length containment (%v) should outscore fragment containment (%v)", near, tiny)
	}
}

func TestSimilarity_WordOverlap(t *testing.T) {
	// {lekki, fase, 1} vs {lekki, phase, 1}: 2 common of 3+3 -> 66.67.
	got := Similarity("Lekki Fase 1", "Lekki Phase 1")
	want := 2.0 * 2.0 / 6.0 * 100
	if math.Abs(got-want) > 0.01 {
		t.Errorf("Similarity = %v, want %v", got, want)
	}

	if got := Similarity("ikeja", "epe"); got != 0 {
		t.Errorf("disjoint words should score 0, got %v", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"victoria island", "island"},
		{"Lekki Fase 1", "Lekki Phase 1"},
		{"", "ikeja"},
		{"otigba street computer village", "computer village ikeja"},
		{"Eti-Osa", "etiosa"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "anything at all"},
		{"a", "b"},
		{"victoria island lagos", "victoria island"},
		{"one two three", "two three four"},
		{"x x x", "x"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Similarity(%q, %q) = %v outside [0, 100]", p[0], p[1], got)
		}
	}
}
