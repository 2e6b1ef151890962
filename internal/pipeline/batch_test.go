package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, size := range []int{2, 5, 9} {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		if err := os.WriteFile(p, encodePNG(t, grayImage(size, size)), 0644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
		paths = append(paths, p)
	}

	results, err := RunBatch(context.Background(), paths, Options{}, 2)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, want := range []int{2, 5, 9} {
		if results[i].Width != want || results[i].Height != want {
			t.Errorf("result %d is %dx%d, want %dx%d", i, results[i].Width, results[i].Height, want, want)
		}
	}
}

func TestRunBatch_MissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	if err := os.WriteFile(good, encodePNG(t, grayImage(3, 3)), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := RunBatch(context.Background(), []string{good, filepath.Join(dir, "missing.png")}, Options{}, 0)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	t.Logf("error: %v", err)
}
