package meta

import "testing"

func TestVersionRoundTrip(t *testing.T) {
	v, err := NewVersion(1, 2, 3, "alpha", "build1")
	if err != nil {
		t.Fatalf("NewVersion: %v", err)
	}
	s := v.String()
	if s != "1.2.3-alpha+build1" {
		t.Fatalf("String() = %q", s)
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		t.Fatalf("ParseVersion: %v", err)
	}
	if parsed != v {
		t.Fatalf("ParseVersion(String()) = %+v, want %+v", parsed, v)
	}
}

func TestVersionInvalidPrerelease(t *testing.T) {
	if _, err := NewVersion(1, 0, 0, "bad_pre!", ""); err != ErrInvalidPrerelease {
		t.Fatalf("expected ErrInvalidPrerelease, got %v", err)
	}
}

func TestVersionCompare(t *testing.T) {
	v1, _ := NewVersion(1, 0, 0, "", "")
	v2, _ := NewVersion(1, 0, 0, "rc", "")
	v3, _ := NewVersion(1, 1, 0, "", "")

	if v2.Compare(v1) >= 0 {
		t.Fatal("a prerelease must compare lower than its release")
	}
	if v1.Compare(v3) >= 0 {
		t.Fatal("1.0.0 must compare lower than 1.1.0")
	}
}

func TestMetaCheck(t *testing.T) {
	v, _ := NewVersion(0, 1, 0, "", "")
	m, err := New("test-chain", v, StageDev)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.SetSize(42)
	if err := m.CheckSize(42); err != nil {
		t.Fatalf("CheckSize: %v", err)
	}
	if err := m.CheckSize(41); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestMetaInvalidStage(t *testing.T) {
	v, _ := NewVersion(0, 1, 0, "", "")
	if _, err := New("chain", v, Stage("bogus")); err != ErrInvalidStage {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
}
