package importer

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBRoundTrip verifies marking a file and checking it back.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	done, err := state.IsImported("export.csv", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("fresh state reports file as imported")
	}

	if err := state.MarkImported("export.csv", 100, "abc"); err != nil {
		t.Fatal(err)
	}

	done, err = state.IsImported("export.csv", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("marked file not reported as imported")
	}
}

// TestStateDBChangedFile verifies a file with a new hash is treated as new.
func TestStateDBChangedFile(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	if err := state.MarkImported("export.csv", 100, "abc"); err != nil {
		t.Fatal(err)
	}

	done, err := state.IsImported("export.csv", 120, "def")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("changed file reported as already imported")
	}
}

// TestHashFile verifies hashing is stable and content-sensitive.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("hash not stable for unchanged file")
	}

	if err := os.WriteFile(path, []byte("hello!"), 0o644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Error("hash unchanged after content change")
	}
}
