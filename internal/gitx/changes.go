package gitx

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// maxDiffFetches caps concurrent per-file diff processes.
const maxDiffFetches = 8

// FileStatus mirrors the single-letter git name-status codes.
type FileStatus string

// Status constants for staged files.
const (
	StatusAdded       FileStatus = "A"
	StatusModified    FileStatus = "M"
	StatusDeleted     FileStatus = "D"
	StatusRenamed     FileStatus = "R"
	StatusCopied      FileStatus = "C"
	StatusUnmerged    FileStatus = "U"
	StatusTypeChanged FileStatus = "T"
)

// String returns a human-readable status name.
func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusUnmerged:
		return "unmerged"
	case StatusTypeChanged:
		return "type changed"
	default:
		return "modified"
	}
}

// FileChange is one staged file with its status and diff text.
// For added files Diff holds the full index content; otherwise the
// cached unified diff. Diff may be empty when retrieval failed.
type FileChange struct {
	Path   string
	Status FileStatus
	Diff   string
}

// StagedChanges reads the staged files and their diffs from the index.
// Per-file diff retrieval runs concurrently; a failed retrieval degrades
// to an empty diff for that file and never aborts the read. The returned
// slice preserves the order git reported the files in. An empty slice
// means nothing is staged.
func (r *Repo) StagedChanges(ctx context.Context) ([]FileChange, error) {
	out, err := r.output(ctx, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}

	changes := parseNameStatus(out)
	if len(changes) == 0 {
		return nil, nil
	}

	// Bounded fan-out; each fetch spawns a git process.
	sem := make(chan struct{}, maxDiffFetches)
	var wg sync.WaitGroup
	for i := range changes {
		wg.Add(1)
		go func(fc *FileChange) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			diff, err := r.fileDiff(ctx, fc.Path, fc.Status)
			if err != nil {
				slog.Warn("could not read diff for staged file",
					"path", fc.Path, "error", err)
				return
			}
			fc.Diff = diff
		}(&changes[i])
	}
	wg.Wait()

	return changes, nil
}

// parseNameStatus parses `git diff --cached --name-status` output.
// Lines with fewer than two tab-separated fields are skipped.
func parseNameStatus(out string) []FileChange {
	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		status := parseStatus(fields[0])
		// Renames and copies report "old\tnew"; the staged path is the last field.
		path := fields[len(fields)-1]
		changes = append(changes, FileChange{Path: path, Status: status})
	}
	return changes
}

// parseStatus maps a name-status field to a FileStatus.
// Similarity scores like "R100" reduce to their leading letter.
func parseStatus(field string) FileStatus {
	if field == "" {
		return StatusModified
	}
	switch FileStatus(field[:1]) {
	case StatusAdded, StatusModified, StatusDeleted, StatusRenamed,
		StatusCopied, StatusUnmerged, StatusTypeChanged:
		return FileStatus(field[:1])
	default:
		return StatusModified
	}
}

// fileDiff fetches the diff for a single staged file. Added files have no
// cached diff against HEAD, so the full index content is shown instead.
func (r *Repo) fileDiff(ctx context.Context, path string, status FileStatus) (string, error) {
	if status == StatusAdded {
		return r.output(ctx, "show", ":"+path)
	}
	return r.output(ctx, "diff", "--cached", "--", path)
}
