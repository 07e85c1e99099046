// Package classify assigns changed file paths to coarse categories.
//
// Classification drives the deterministic fallback paths: when the model
// is unavailable, files are grouped and titled purely by category. The
// predicate order matters: a path matching several predicates takes
// the first category listed.
package classify

import (
	"strings"

	"github.com/randalmurphal/gitsplit/internal/gitx"
)

// Category is the coarse kind of a changed file.
type Category string

// Categories, in no particular order. Ordering concerns live in the
// predicate list and in the grouping/title priority lists.
const (
	CategoryConfig Category = "config"
	CategoryTest   Category = "test"
	CategoryDocs   Category = "docs"
	CategoryBuild  Category = "build"
	CategoryOther  Category = "other"
)

// configExts are extensions treated as configuration.
var configExts = []string{".json", ".toml", ".yaml", ".yml"}

// testSuffixes are file name endings that mark test files across ecosystems.
var testSuffixes = []string{".test.ts", ".spec.ts", ".test.js", ".spec.js", "_test.go", "_test.py"}

// docsExts are extensions treated as documentation.
var docsExts = []string{".md", ".rst"}

// lockFiles are dependency lock files, grouped with build artifacts.
var lockFiles = []string{
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"go.sum", "cargo.lock", "poetry.lock", "gemfile.lock", "composer.lock",
}

// Classify maps a file path to its Category. Pure and total: every path
// gets exactly one category, and repeated calls agree. Matching is
// case-insensitive. The predicates are evaluated in order; first match wins:
// config, test, docs, build, other.
func Classify(path string) Category {
	p := strings.ToLower(path)

	switch {
	case hasAnySuffix(p, configExts) || strings.Contains(p, "config"):
		return CategoryConfig
	case strings.Contains(p, "test") || strings.Contains(p, "spec") || hasAnySuffix(p, testSuffixes):
		return CategoryTest
	case hasAnySuffix(p, docsExts) || strings.Contains(p, "docs/"):
		return CategoryDocs
	case strings.Contains(p, "build") || strings.Contains(p, "dist") || isLockFile(p):
		return CategoryBuild
	default:
		return CategoryOther
	}
}

// Bucket groups changes by category, preserving input order within each
// bucket.
func Bucket(files []gitx.FileChange) map[Category][]gitx.FileChange {
	buckets := make(map[Category][]gitx.FileChange)
	for _, fc := range files {
		cat := Classify(fc.Path)
		buckets[cat] = append(buckets[cat], fc)
	}
	return buckets
}

func hasAnySuffix(p string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}

func isLockFile(p string) bool {
	base := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		base = p[i+1:]
	}
	for _, lf := range lockFiles {
		if base == lf {
			return true
		}
	}
	return false
}
