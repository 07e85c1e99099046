// Package session carries metadata for the pass-through session wrapper.
//
// Each wrapped session gets an ID that is embedded in the resulting
// commit messages as trailer lines, so later runs can find and resume
// the conversation a change came from.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Trailer keys used in commit message bodies.
const (
	TrailerSessionID   = "Session-ID"
	TrailerPrompt      = "Prompt"
	TrailerTime        = "Time"
	TrailerResumedFrom = "Resumed-From"
)

// Metadata describes one wrapped session.
type Metadata struct {
	ID          string
	Timestamp   time.Time
	Prompt      string // optional
	ResumedFrom string // optional
}

// NewMetadata creates metadata for a fresh session with a random ID.
func NewMetadata(prompt string) Metadata {
	return Metadata{
		ID:        newID(),
		Timestamp: time.Now().UTC(),
		Prompt:    prompt,
	}
}

// newID returns a random 16-hex-character session ID.
func newID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand only fails on a broken platform; a time-derived ID
		// keeps the wrapper usable.
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

// TrailerBlock renders the metadata as trailer lines for a commit
// message body. Empty optional values are omitted entirely.
func (m Metadata) TrailerBlock() string {
	var lines []string

	lines = append(lines, TrailerSessionID+": "+m.ID)
	if m.Prompt != "" {
		lines = append(lines, fmt.Sprintf("%s: %q", TrailerPrompt, m.Prompt))
	}
	lines = append(lines, TrailerTime+": "+m.Timestamp.UTC().Format(time.RFC3339))
	if m.ResumedFrom != "" {
		lines = append(lines, TrailerResumedFrom+": "+m.ResumedFrom)
	}

	return strings.Join(lines, "\n")
}

// ParseTrailers extracts session metadata from a commit message body.
// Returns ok=false when the body carries no Session-ID trailer.
func ParseTrailers(body string) (Metadata, bool) {
	var meta Metadata

	for _, line := range strings.Split(body, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ": ")
		if !found {
			continue
		}
		switch key {
		case TrailerSessionID:
			meta.ID = value
		case TrailerPrompt:
			if unquoted, err := unquote(value); err == nil {
				meta.Prompt = unquoted
			} else {
				meta.Prompt = value
			}
		case TrailerTime:
			if ts, err := time.Parse(time.RFC3339, value); err == nil {
				meta.Timestamp = ts
			}
		case TrailerResumedFrom:
			meta.ResumedFrom = value
		}
	}

	return meta, meta.ID != ""
}

// unquote strips the %q quoting applied by TrailerBlock.
func unquote(s string) (string, error) {
	return strconv.Unquote(s)
}
