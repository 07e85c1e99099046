package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/gitsplit/internal/gitx"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		// Config
		{"config.json", CategoryConfig},
		{"settings.toml", CategoryConfig},
		{"deploy.yaml", CategoryConfig},
		{"ci.yml", CategoryConfig},
		{"src/config/db.go", CategoryConfig},

		// Config wins over test: predicate order, not specificity
		{"test/fixtures/config.json", CategoryConfig},
		{"config_test.go", CategoryConfig},

		// Test
		{"app.test.ts", CategoryTest},
		{"widget.spec.ts", CategoryTest},
		{"internal/gitx/repo_test.go", CategoryTest},
		{"spec/helpers.rb", CategoryTest},

		// Docs
		{"README.md", CategoryDocs},
		{"guide.rst", CategoryDocs},
		{"docs/api.html", CategoryDocs},

		// Build
		{"build/output.bin", CategoryBuild},
		{"dist/bundle.js", CategoryBuild},
		{"yarn.lock", CategoryBuild},
		{"go.sum", CategoryBuild},
		{"sub/dir/package-lock.json", CategoryConfig}, // .json matches config first

		// Other
		{"src/app.ts", CategoryOther},
		{"main.go", CategoryOther},
		{"Makefile", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	paths := []string{"config.json", "a.test.ts", "README.md", "dist/x", "main.go"}
	for _, p := range paths {
		first := Classify(p)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Classify(p))
		}
	}
}

func TestBucketPreservesOrder(t *testing.T) {
	files := []gitx.FileChange{
		{Path: "b.go", Status: gitx.StatusModified},
		{Path: "config.json", Status: gitx.StatusModified},
		{Path: "a.go", Status: gitx.StatusModified},
		{Path: "README.md", Status: gitx.StatusAdded},
	}

	buckets := Bucket(files)

	assert.Equal(t, []gitx.FileChange{files[0], files[2]}, buckets[CategoryOther])
	assert.Equal(t, []gitx.FileChange{files[1]}, buckets[CategoryConfig])
	assert.Equal(t, []gitx.FileChange{files[3]}, buckets[CategoryDocs])
	assert.Empty(t, buckets[CategoryTest])
}
