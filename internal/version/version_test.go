package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Dirty = v, c, d }(Version, Commit, Dirty)

	Version, Commit, Dirty = "", "", ""
	if got := String(); got != "1.0.0" {
		t.Fatalf("expected base release, got %q", got)
	}

	Commit, Dirty = "abc123", "dirty"
	if got := String(); got != "1.0.0+abc123.dirty" {
		t.Fatalf("unexpected dev version %q", got)
	}

	Version = "v1.4.0"
	if got := String(); got != "v1.4.0" {
		t.Fatalf("expected injected tag, got %q", got)
	}
}
