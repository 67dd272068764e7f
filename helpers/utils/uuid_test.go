package utils

import "testing"

func TestGenerateUUID_Format(t *testing.T) {
	id := GenerateUUID()
	if len(id) != 36 {
		t.Fatalf("UUID length = %d, want 36: %q", len(id), id)
	}
	if id[14] != '4' {
		t.Errorf("version nibble = %c, want 4: %q", id[14], id)
	}
	switch id[19] {
	case '8', '9', 'a', 'b':
	default:
		t.Errorf("variant nibble = %c, want one of 89ab: %q", id[19], id)
	}
}

func TestGenerateUUID_NeverZero(t *testing.T) {
	// Even if the random source failed, the fallback must not produce the
	// all-zero ID.
	for i := 0; i < 100; i++ {
		if id := GenerateUUID(); id == "00000000-0000-4000-8000-000000000000" {
			t.Fatal("generated the all-zero UUID")
		}
	}
}

func TestGenerateUUID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateUUID()
		if seen[id] {
			t.Fatalf("duplicate UUID %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateShortID(t *testing.T) {
	id := GenerateShortID()
	if len(id) != 8 {
		t.Fatalf("short ID length = %d, want 8: %q", len(id), id)
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("non-hex character %c in %q", c, id)
		}
	}
}
