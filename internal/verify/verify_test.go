package verify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pdf-splitter/internal/partition"
	"pdf-splitter/internal/ranger"
	"pdf-splitter/internal/testpdf"
)

func TestPageCount(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		pages int
	}{
		{"single page", 1},
		{"ten pages", 10},
		{"odd count", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".pdf")
			if err := testpdf.Write(path, tt.pages); err != nil {
				t.Fatal(err)
			}

			n, err := PageCount(path)
			if err != nil {
				t.Fatalf("PageCount() unexpected error: %v", err)
			}
			if n != tt.pages {
				t.Errorf("PageCount() = %d, want %d", n, tt.pages)
			}
		})
	}
}

func TestPageCountErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := PageCount(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("PageCount() expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := PageCount(garbage); err == nil {
		t.Error("PageCount() expected error for garbage")
	}
}

func TestParts(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "ok.pdf")
	short := filepath.Join(dir, "short.pdf")
	if err := testpdf.Write(ok, 10); err != nil {
		t.Fatal(err)
	}
	if err := testpdf.Write(short, 3); err != nil {
		t.Fatal(err)
	}

	good := []partition.Part{{Range: ranger.Range{From: 0, To: 9}, Path: ok}}
	if err := Parts(good); err != nil {
		t.Errorf("Parts() unexpected error: %v", err)
	}

	bad := []partition.Part{
		{Range: ranger.Range{From: 0, To: 9}, Path: ok},
		{Range: ranger.Range{From: 10, To: 19}, Path: short},
		{Range: ranger.Range{From: 20, To: 24}, Path: filepath.Join(dir, "missing.pdf")},
	}
	err := Parts(bad)
	if !errors.Is(err, ErrPageMismatch) {
		t.Fatalf("Parts() error = %v, want ErrPageMismatch", err)
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
		t.Errorf("Parts() should report both broken parts: %v", err)
	}

	if err := Parts(nil); err != nil {
		t.Errorf("Parts(nil) = %v, want nil", err)
	}
}
