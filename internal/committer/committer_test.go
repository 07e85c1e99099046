package committer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/gitsplit/internal/gitx"
	"github.com/randalmurphal/gitsplit/internal/grouping"
	"github.com/randalmurphal/gitsplit/internal/title"
)

// opRecorder records git operations in order and scripts failures.
type opRecorder struct {
	ops     []string
	lastAdd string

	emptyGroups map[string]bool // paths key -> report no staged changes
	failAdd     map[string]error
	failCommit  error
}

func newOpRecorder() *opRecorder {
	return &opRecorder{
		emptyGroups: make(map[string]bool),
		failAdd:     make(map[string]error),
	}
}

func (r *opRecorder) ResetIndex(ctx context.Context) error {
	r.ops = append(r.ops, "reset")
	r.lastAdd = ""
	return nil
}

func (r *opRecorder) Add(ctx context.Context, paths ...string) error {
	key := strings.Join(paths, ",")
	r.ops = append(r.ops, "add "+key)
	if err := r.failAdd[key]; err != nil {
		return err
	}
	r.lastAdd = key
	return nil
}

func (r *opRecorder) HasStagedChanges(ctx context.Context) (bool, error) {
	r.ops = append(r.ops, "check")
	return !r.emptyGroups[r.lastAdd], nil
}

func (r *opRecorder) Commit(ctx context.Context, message string) error {
	r.ops = append(r.ops, "commit "+strings.Split(message, "\n")[0])
	return r.failCommit
}

// fixedTitler returns a canned title per group's first path.
type fixedTitler struct{}

func (fixedTitler) Generate(ctx context.Context, files []gitx.FileChange) title.Result {
	return title.Result{Title: "chore: " + files[0].Path, Source: title.SourceFallback}
}

func group(paths ...string) grouping.FileGroup {
	g := make(grouping.FileGroup, len(paths))
	for i, p := range paths {
		g[i] = gitx.FileChange{Path: p, Status: gitx.StatusModified}
	}
	return g
}

func TestCommitGroupsSequentialOrdering(t *testing.T) {
	rec := newOpRecorder()
	c := New(rec, fixedTitler{})

	groups := []grouping.FileGroup{group("a.go"), group("b.go"), group("c.go")}
	summary, err := c.CommitGroups(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, summary.Commits, 3)

	// Strict reset -> add -> check -> commit tuples per group, in group order.
	assert.Equal(t, []string{
		"reset", "add a.go", "check", "commit chore: a.go",
		"reset", "add b.go", "check", "commit chore: b.go",
		"reset", "add c.go", "check", "commit chore: c.go",
	}, rec.ops)
}

func TestCommitGroupsSkipsEmptyDiff(t *testing.T) {
	rec := newOpRecorder()
	rec.emptyGroups["b.go"] = true
	c := New(rec, fixedTitler{})

	groups := []grouping.FileGroup{group("a.go"), group("b.go"), group("c.go")}
	summary, err := c.CommitGroups(context.Background(), groups)
	require.NoError(t, err)

	assert.Len(t, summary.Commits, 2)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "b.go", summary.Skipped[0][0].Path)

	// No commit op for the skipped group, later groups still processed.
	joined := strings.Join(rec.ops, "|")
	assert.NotContains(t, joined, "commit chore: b.go")
	assert.Contains(t, joined, "commit chore: c.go")
}

func TestCommitGroupsStageFailureIsFatal(t *testing.T) {
	rec := newOpRecorder()
	rec.failAdd["b.go"] = errors.New("pathspec did not match")
	c := New(rec, fixedTitler{})

	groups := []grouping.FileGroup{group("a.go"), group("b.go"), group("c.go")}
	summary, err := c.CommitGroups(context.Background(), groups)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage group 2")
	// Prior commit stands, later group never touched.
	assert.Len(t, summary.Commits, 1)
	assert.NotContains(t, strings.Join(rec.ops, "|"), "add c.go")
}

func TestCommitGroupsCommitFailureKeepsPriorCommits(t *testing.T) {
	rec := newOpRecorder()
	c := New(rec, fixedTitler{})

	groups := []grouping.FileGroup{group("a.go"), group("b.go")}
	// Fail every commit after the first.
	committed := 0
	c.git = gitOpsFunc{rec, func() error {
		committed++
		if committed > 1 {
			return errors.New("hook rejected")
		}
		return nil
	}}

	summary, err := c.CommitGroups(context.Background(), groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit group 2")
	assert.Len(t, summary.Commits, 1)
}

// gitOpsFunc overrides Commit on an embedded recorder.
type gitOpsFunc struct {
	*opRecorder
	commit func() error
}

func (g gitOpsFunc) Commit(ctx context.Context, message string) error {
	g.opRecorder.ops = append(g.opRecorder.ops, "commit "+strings.Split(message, "\n")[0])
	return g.commit()
}

func TestCommitGroupsAppendsTrailers(t *testing.T) {
	var messages []string
	rec := newOpRecorder()
	c := New(messageCapture{rec, &messages}, fixedTitler{},
		WithTrailers("Session-ID: abc123\nTime: 2026-08-29T10:00:00Z"))

	_, err := c.CommitGroups(context.Background(), []grouping.FileGroup{group("a.go")})
	require.NoError(t, err)

	require.Len(t, messages, 1)
	parts := strings.SplitN(messages[0], "\n\n", 2)
	require.Len(t, parts, 2, "expected title, blank line, trailer block")
	assert.Equal(t, "chore: a.go", parts[0])
	assert.Equal(t, "Session-ID: abc123\nTime: 2026-08-29T10:00:00Z", parts[1])
}

// messageCapture records full commit messages.
type messageCapture struct {
	*opRecorder
	messages *[]string
}

func (m messageCapture) Commit(ctx context.Context, message string) error {
	*m.messages = append(*m.messages, message)
	return m.opRecorder.Commit(ctx, message)
}

func TestCommitGroupsEmptyInput(t *testing.T) {
	rec := newOpRecorder()
	c := New(rec, fixedTitler{})

	summary, err := c.CommitGroups(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Commits)
	assert.Empty(t, rec.ops)
}

func TestCommitGroupsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newOpRecorder()
	c := New(rec, fixedTitler{})

	_, err := c.CommitGroups(ctx, []grouping.FileGroup{group("a.go")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.ops)
}
