package session

import "context"

// HistorySource lists commit message bodies matching a pattern.
// *gitx.Repo satisfies it.
type HistorySource interface {
	LogGrep(ctx context.Context, pattern string) ([]string, error)
}

// History looks up past session metadata recorded in commit trailers.
type History struct {
	source HistorySource
}

// NewHistory creates a History backed by the given repository.
func NewHistory(source HistorySource) *History {
	return &History{source: source}
}

// List returns metadata for every session recorded in the repository,
// newest first. A session that produced several commits appears once.
func (h *History) List(ctx context.Context) ([]Metadata, error) {
	bodies, err := h.source.LogGrep(ctx, TrailerSessionID+": ")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var sessions []Metadata
	for _, body := range bodies {
		meta, ok := ParseTrailers(body)
		if !ok || seen[meta.ID] {
			continue
		}
		seen[meta.ID] = true
		sessions = append(sessions, meta)
	}
	return sessions, nil
}

// Find returns the metadata for a specific session ID.
func (h *History) Find(ctx context.Context, id string) (Metadata, bool, error) {
	bodies, err := h.source.LogGrep(ctx, TrailerSessionID+": "+id)
	if err != nil {
		return Metadata{}, false, err
	}

	for _, body := range bodies {
		meta, ok := ParseTrailers(body)
		if ok && meta.ID == id {
			return meta, true, nil
		}
	}
	return Metadata{}, false, nil
}

// Latest returns the most recent session, if any.
func (h *History) Latest(ctx context.Context) (Metadata, bool, error) {
	sessions, err := h.List(ctx)
	if err != nil {
		return Metadata{}, false, err
	}
	if len(sessions) == 0 {
		return Metadata{}, false, nil
	}
	return sessions[0], true, nil
}
