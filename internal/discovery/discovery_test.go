package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPatterns(t *testing.T) {
	patterns := DefaultPatterns()
	expected := map[string]bool{"*.bat": false, "*.cmd": false}
	for _, p := range patterns {
		if _, ok := expected[p]; ok {
			expected[p] = true
		}
	}
	for p, found := range expected {
		if !found {
			t.Errorf("DefaultPatterns() missing expected pattern %q", p)
		}
	}
}

func TestDiscoverFile(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "build.bat")
	if err := os.WriteFile(scriptPath, []byte("@echo off\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{scriptPath}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	absPath, err := filepath.Abs(scriptPath)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ConfigRoot != filepath.Dir(absPath) {
		t.Errorf("expected ConfigRoot %q, got %q", filepath.Dir(absPath), results[0].ConfigRoot)
	}
}

func TestDiscoverDirectoryRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"build.bat", "deploy.cmd", "sub/nested.bat", "readme.txt"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("@echo off\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{tmpDir}, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
		for _, r := range results {
			t.Logf("  found: %s", r.Path)
		}
	}
}

func TestDiscoverDirectoryNonRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"build.bat", "sub/nested.bat"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("@echo off\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{tmpDir}, Options{Recursive: false})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result (top level only), got %d", len(results))
	}
}

func TestDiscoverGlob(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"build.bat", "deploy.cmd", "notes.txt"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.WriteFile(path, []byte("@echo off\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pattern := filepath.Join(tmpDir, "*.cmd")
	results, err := Discover([]string{pattern}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestDiscoverExclude(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"build.bat", "test/build.bat", "vendor/build.bat", "sub/build.bat"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("@echo off\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	opts := Options{Recursive: true, ExcludePatterns: []string{"test/*", "vendor/*"}}
	results, err := Discover([]string{tmpDir}, opts)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
		for _, r := range results {
			t.Logf("  found: %s", r.Path)
		}
	}
}

func TestDiscoverDeduplication(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "build.bat")
	if err := os.WriteFile(scriptPath, []byte("@echo off\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{
		scriptPath,
		scriptPath,
		tmpDir,
		filepath.Join(tmpDir, "build.bat"),
	}, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result after deduplication, got %d", len(results))
	}
}

func TestDiscoverNonexistent(t *testing.T) {
	results, err := Discover([]string{"nonexistent-pattern-*.xyz"}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}
