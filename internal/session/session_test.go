package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/gitsplit/internal/gitx"
)

// The repository handle must keep satisfying HistorySource.
var _ HistorySource = (*gitx.Repo)(nil)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("add retry logic")

	assert.Len(t, meta.ID, 16)
	assert.Equal(t, "add retry logic", meta.Prompt)
	assert.WithinDuration(t, time.Now(), meta.Timestamp, time.Minute)

	other := NewMetadata("")
	assert.NotEqual(t, meta.ID, other.ID)
}

func TestTrailerBlock(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("full", func(t *testing.T) {
		meta := Metadata{
			ID:          "abc123def4567890",
			Timestamp:   ts,
			Prompt:      "fix the flaky test",
			ResumedFrom: "0011223344556677",
		}
		block := meta.TrailerBlock()
		assert.Equal(t, strings.Join([]string{
			`Session-ID: abc123def4567890`,
			`Prompt: "fix the flaky test"`,
			`Time: 2025-03-14T09:26:53Z`,
			`Resumed-From: 0011223344556677`,
		}, "\n"), block)
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		meta := Metadata{ID: "abc123def4567890", Timestamp: ts}
		block := meta.TrailerBlock()
		assert.NotContains(t, block, "Prompt:")
		assert.NotContains(t, block, "Resumed-From:")
		assert.Contains(t, block, "Session-ID: abc123def4567890")
		assert.Contains(t, block, "Time: 2025-03-14T09:26:53Z")
	})
}

func TestParseTrailers(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		meta := Metadata{
			ID:          "abc123def4567890",
			Timestamp:   time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			Prompt:      `say "hello"`,
			ResumedFrom: "0011223344556677",
		}
		body := "fix: resolve flaky retry test\n\n" + meta.TrailerBlock()

		parsed, ok := ParseTrailers(body)
		require.True(t, ok)
		assert.Equal(t, meta, parsed)
	})

	t.Run("no session trailer", func(t *testing.T) {
		_, ok := ParseTrailers("chore: bump deps\n\nSigned-off-by: someone")
		assert.False(t, ok)
	})

	t.Run("unquoted prompt kept as-is", func(t *testing.T) {
		body := "Session-ID: aa\nPrompt: plain text prompt"
		parsed, ok := ParseTrailers(body)
		require.True(t, ok)
		assert.Equal(t, "plain text prompt", parsed.Prompt)
	})
}

type fakeHistory struct {
	bodies []string
	err    error
}

func (f *fakeHistory) LogGrep(_ context.Context, _ string) ([]string, error) {
	return f.bodies, f.err
}

func TestHistoryList(t *testing.T) {
	source := &fakeHistory{bodies: []string{
		"feat: newer\n\nSession-ID: bbbb\nTime: 2025-03-15T10:00:00Z",
		"fix: same session again\n\nSession-ID: bbbb\nTime: 2025-03-15T09:00:00Z",
		"feat: older\n\nSession-ID: aaaa\nTime: 2025-03-14T10:00:00Z",
		"chore: unrelated commit with no trailers",
	}}

	sessions, err := NewHistory(source).List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "bbbb", sessions[0].ID)
	assert.Equal(t, "aaaa", sessions[1].ID)
}

func TestHistoryFind(t *testing.T) {
	source := &fakeHistory{bodies: []string{
		"feat: x\n\nSession-ID: aaaa\nPrompt: \"do x\"\nTime: 2025-03-14T10:00:00Z",
	}}
	history := NewHistory(source)

	meta, found, err := history.Find(context.Background(), "aaaa")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "do x", meta.Prompt)

	_, found, err = history.Find(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHistoryLatest(t *testing.T) {
	t.Run("empty repo", func(t *testing.T) {
		_, found, err := NewHistory(&fakeHistory{}).Latest(context.Background())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("returns newest", func(t *testing.T) {
		source := &fakeHistory{bodies: []string{
			"feat: newer\n\nSession-ID: bbbb\nTime: 2025-03-15T10:00:00Z",
			"feat: older\n\nSession-ID: aaaa\nTime: 2025-03-14T10:00:00Z",
		}}
		meta, found, err := NewHistory(source).Latest(context.Background())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "bbbb", meta.ID)
	})
}
