package gitx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []FileChange
	}{
		{
			name: "empty output",
			out:  "",
			want: nil,
		},
		{
			name: "basic statuses",
			out:  "M\tmain.go\nA\tnew.go\nD\tgone.go\n",
			want: []FileChange{
				{Path: "main.go", Status: StatusModified},
				{Path: "new.go", Status: StatusAdded},
				{Path: "gone.go", Status: StatusDeleted},
			},
		},
		{
			name: "rename with similarity score keeps new path",
			out:  "R100\told/name.go\tnew/name.go\n",
			want: []FileChange{
				{Path: "new/name.go", Status: StatusRenamed},
			},
		},
		{
			name: "malformed line skipped",
			out:  "M\ta.go\nnot-a-status-line\nD\tb.go\n",
			want: []FileChange{
				{Path: "a.go", Status: StatusModified},
				{Path: "b.go", Status: StatusDeleted},
			},
		},
		{
			name: "unknown status letter degrades to modified",
			out:  "X\tweird.go\n",
			want: []FileChange{
				{Path: "weird.go", Status: StatusModified},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNameStatus(tt.out))
		})
	}
}

func TestStagedChanges(t *testing.T) {
	t.Run("empty index returns nil without error", func(t *testing.T) {
		exec := NewRecordingExecutor()
		repo := NewRepo("/repo", exec)

		changes, err := repo.StagedChanges(context.Background())
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("fetches per-file diffs and preserves order", func(t *testing.T) {
		exec := NewRecordingExecutor()
		exec.Outputs["diff --cached --name-status"] = "M\tsrc/app.go\nA\tREADME.md\n"
		exec.Outputs["diff --cached -- src/app.go"] = "diff --git a/src/app.go ..."
		exec.Outputs["show :README.md"] = "# readme"
		repo := NewRepo("/repo", exec)

		changes, err := repo.StagedChanges(context.Background())
		require.NoError(t, err)
		require.Len(t, changes, 2)

		assert.Equal(t, "src/app.go", changes[0].Path)
		assert.Equal(t, StatusModified, changes[0].Status)
		assert.Equal(t, "diff --git a/src/app.go ...", changes[0].Diff)

		assert.Equal(t, "README.md", changes[1].Path)
		assert.Equal(t, StatusAdded, changes[1].Status)
		assert.Equal(t, "# readme", changes[1].Diff)
	})

	t.Run("diff retrieval failure degrades to empty diff", func(t *testing.T) {
		exec := NewRecordingExecutor()
		exec.Outputs["diff --cached --name-status"] = "M\tlocked.go\nM\tok.go\n"
		exec.Errors["diff --cached -- locked.go"] = errors.New("permission denied")
		exec.Outputs["diff --cached -- ok.go"] = "some diff"
		repo := NewRepo("/repo", exec)

		changes, err := repo.StagedChanges(context.Background())
		require.NoError(t, err)
		require.Len(t, changes, 2)

		assert.Equal(t, "", changes[0].Diff)
		assert.Equal(t, "some diff", changes[1].Diff)
	})
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "added", StatusAdded.String())
	assert.Equal(t, "deleted", StatusDeleted.String())
	assert.Equal(t, "modified", FileStatus("?").String())
}
