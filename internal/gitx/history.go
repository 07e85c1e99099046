package gitx

import (
	"context"
	"strings"
)

// LogGrep returns the full message bodies of commits whose messages match
// pattern, newest first, searching all refs.
func (r *Repo) LogGrep(ctx context.Context, pattern string) ([]string, error) {
	out, err := r.output(ctx, "log", "--grep="+pattern, "--format=%B%x00", "--all")
	if err != nil {
		return nil, err
	}

	var bodies []string
	for _, body := range strings.Split(out, "\x00") {
		body = strings.TrimSpace(body)
		if body != "" {
			bodies = append(bodies, body)
		}
	}
	return bodies, nil
}

// VerifyRef reports whether ref resolves to a valid object.
func (r *Repo) VerifyRef(ctx context.Context, ref string) bool {
	return r.run(ctx, "rev-parse", "--verify", "--quiet", ref) == nil
}

// Checkout switches to an existing branch or ref.
func (r *Repo) Checkout(ctx context.Context, ref string) error {
	return r.run(ctx, "checkout", ref)
}

// CheckoutNew creates and switches to a new branch.
func (r *Repo) CheckoutNew(ctx context.Context, branch string) error {
	return r.run(ctx, "checkout", "-b", branch)
}

// StashPush stashes local modifications with a message.
func (r *Repo) StashPush(ctx context.Context, message string) error {
	if message == "" {
		return r.run(ctx, "stash", "push")
	}
	return r.run(ctx, "stash", "push", "-m", message)
}

// StashPop restores the most recently stashed modifications.
func (r *Repo) StashPop(ctx context.Context) error {
	return r.run(ctx, "stash", "pop")
}
