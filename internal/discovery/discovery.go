// Package discovery enumerates .bat/.cmd scripts from a set of CLI inputs
// (files, directories, or glob patterns), per spec.md §1/§6's "external
// collaborator" for directory traversal.
package discovery

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoveredFile is one resolved script to analyze.
type DiscoveredFile struct {
	// Path preserves the original input form for an explicit file argument,
	// or is absolute for a discovered match.
	Path string

	// ConfigRoot is the directory config.Discover starts searching from.
	ConfigRoot string
}

// Options configures discovery.
type Options struct {
	// Patterns are the glob patterns to match. Default: DefaultPatterns().
	Patterns []string

	// ExcludePatterns are doublestar glob patterns to exclude.
	ExcludePatterns []string

	// Recursive controls whether a directory input is searched recursively
	// (the default) or only at its top level (--no-recursive).
	Recursive bool
}

// DefaultPatterns returns the default script-file patterns.
func DefaultPatterns() []string {
	return []string{"*.bat", "*.cmd"}
}

// Discover resolves every input into zero or more DiscoveredFiles,
// deduplicated by absolute path and sorted for deterministic output.
func Discover(inputs []string, opts Options) ([]DiscoveredFile, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	seen := make(map[string]bool)
	var results []DiscoveredFile

	for _, input := range inputs {
		discovered, err := discoverInput(input, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}

	slices.SortFunc(results, func(a, b DiscoveredFile) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return results, nil
}

func discoverInput(input string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	if containsGlobChars(input) {
		return discoverGlob(input, opts, seen)
	}

	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return discoverDirectory(input, opts, seen)
		}
		return discoverFile(input, opts, seen)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return discoverGlob(input, opts, seen)
}

func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[]")
}

func discoverFile(path string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
		return nil, nil
	}
	seen[absPath] = true
	return []DiscoveredFile{{Path: path, ConfigRoot: filepath.Dir(absPath)}}, nil
}

func discoverDirectory(dir string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, pattern := range opts.Patterns {
		patterns = append(patterns, filepath.Join(absDir, pattern))
		if opts.Recursive {
			patterns = append(patterns, filepath.Join(absDir, "**", pattern))
		}
	}

	var results []DiscoveredFile
	for _, pattern := range patterns {
		discovered, err := globMatches(pattern, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}
	return results, nil
}

func globMatches(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var results []DiscoveredFile
	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}
		if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
			continue
		}
		seen[absPath] = true
		results = append(results, DiscoveredFile{Path: absPath, ConfigRoot: filepath.Dir(absPath)})
	}
	return results, nil
}

func discoverGlob(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	return globMatches(pattern, opts, seen)
}

// isExcluded matches absPath against excludePatterns (doublestar glob
// syntax). Relative patterns are implicitly anchored at any depth.
func isExcluded(absPath string, excludePatterns []string) bool {
	pathSlash := filepath.ToSlash(absPath)
	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)
		if !strings.HasPrefix(pattern, "/") && !strings.HasPrefix(pattern, "**/") {
			pattern = "**/" + pattern
		}
		if matched, err := doublestar.Match(pattern, pathSlash); err == nil && matched {
			return true
		}
	}
	return false
}
