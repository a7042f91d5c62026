package runfile

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestName The fixed data file naming convention
func TestName(t *testing.T) {
	n, err := Name(ModeBase, 32, 500)
	if err != nil {
		t.Fatal("Building a valid run name failed")
	}
	if n != "1-base_Array32k_500hz_s" {
		t.Fatalf("name = %q, want 1-base_Array32k_500hz_s", n)
	}
}

// TestNameBadMode Testing for failure. Only base and trace runs exist
func TestNameBadMode(t *testing.T) {
	_, err := Name("traced", 32, 500)
	if err == nil {
		t.Fatal("Building a run name with an unknown mode should have failed but succeeded")
	}
}

// TestFind Resolving the unique data file for a run
func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-base_Array1k_100hz_s")
	touch(t, dir, "1-trace_Array1k_100hz_s")
	fn, err := Find(dir, ModeBase, 1, 100)
	if err != nil {
		t.Fatal("Resolving an existing run file failed")
	}
	if filepath.Base(fn) != "1-base_Array1k_100hz_s" {
		t.Fatalf("resolved %q", fn)
	}
}

// TestFindNoMatch Testing for failure. Zero matching files
func TestFindNoMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-trace_Array1k_100hz_s")
	_, err := Find(dir, ModeBase, 1, 100)
	if err == nil {
		t.Fatal("Resolving a missing run file should have failed but succeeded")
	}
}

// TestFindAmbiguous Testing for failure. More than one matching file
func TestFindAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-base_Array1k_100hz_s")
	touch(t, dir, "1-base_Array1k_100hz_s.bak")
	_, err := Find(dir, ModeBase, 1, 100)
	if err == nil {
		t.Fatal("Resolving an ambiguous run file should have failed but succeeded")
	}
}

// TestFindSkipsArtifacts Report artifacts next to the data do not count
func TestFindSkipsArtifacts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1-base_Array1k_100hz_s")
	touch(t, dir, "1-base_Array1k_100hz_s.png")
	touch(t, dir, "1-base_Array1k_100hz_s.csv")
	fn, err := Find(dir, ModeBase, 1, 100)
	if err != nil {
		t.Fatal("Artifact files should not make the run file ambiguous")
	}
	if filepath.Base(fn) != "1-base_Array1k_100hz_s" {
		t.Fatalf("resolved %q", fn)
	}
}
