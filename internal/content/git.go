// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/davetashner/csvwidgets/internal/testable"
)

// GitLoader reads resources from a git repository at a fixed revision, so
// a page always renders the committed baseline rather than the worktree.
type GitLoader struct {
	// Path is any directory inside the repository.
	Path string
	// Revision is a branch, tag, hash or revision expression. Empty means HEAD.
	Revision string

	// Opener overrides how the repository is opened (nil means real go-git).
	Opener testable.GitOpener
}

func (g *GitLoader) opener() testable.GitOpener {
	if g.Opener != nil {
		return g.Opener
	}
	return testable.DefaultGitOpener
}

// Load returns the blob at location in the configured revision. Modified
// is the committer time of the newest commit touching location, falling
// back to the revision's own commit time.
func (g *GitLoader) Load(ctx context.Context, location string) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}

	repo, err := g.opener().PlainOpen(g.Path)
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", g.Path, err)
	}

	rev := g.Revision
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}

	file, err := commit.File(loc)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s at %s: %w", location, rev, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s at %s: %w", location, rev, err)
	}
	body, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", location, rev, err)
	}

	modified := commit.Committer.When
	if last, ok := lastChange(repo, *hash, loc); ok {
		modified = last
	}
	slog.Debug("loaded git content", "location", loc, "revision", rev, "commit", hash.String()[:7])
	return &Content{Body: body, Modified: modified}, nil
}

// lastChange finds the newest commit reachable from head that touched loc.
func lastChange(repo testable.GitRepository, head plumbing.Hash, loc string) (c time.Time, ok bool) {
	iter, err := repo.Log(&git.LogOptions{From: head, FileName: &loc})
	if err != nil || iter == nil {
		return c, false
	}
	defer iter.Close()
	commit, err := iter.Next()
	if err != nil || commit == nil {
		return c, false
	}
	return commit.Committer.When, true
}
