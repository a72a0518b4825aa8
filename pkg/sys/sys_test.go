package sys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsATTY_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "f"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f) {
		t.Errorf("IsATTY(regular file) -> true")
	}
}

func TestIsATTY_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if IsATTY(r) || IsATTY(w) {
		t.Errorf("IsATTY(pipe) -> true")
	}
}
