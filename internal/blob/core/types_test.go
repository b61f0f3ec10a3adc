package core

import "testing"

func TestCleanKey(t *testing.T) {
	valid := map[string]string{
		"runs/a/snapshot.json": "runs/a/snapshot.json",
		"runs//a/./b":          "runs/a/b",
		"file..name":           "file..name",
	}
	for in, want := range valid {
		got, err := CleanKey(in)
		if err != nil || got != want {
			t.Fatalf("CleanKey(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "  ", "/abs", "../escape", "a/../../b"} {
		if _, err := CleanKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCloneMetadata(t *testing.T) {
	if CloneMetadata(nil) != nil {
		t.Fatalf("nil metadata must stay nil")
	}
	in := map[string]string{"k": "v"}
	out := CloneMetadata(in)
	out["k"] = "x"
	if in["k"] != "v" {
		t.Fatalf("clone aliases input")
	}
}
