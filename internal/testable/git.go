// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package testable provides interfaces for mocking external dependencies
// such as go-git operations. Production code uses the Real* implementations;
// tests can inject mock implementations to avoid hitting real git repos.
package testable

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitOpener abstracts opening a git repository. Production code uses
// RealGitOpener; tests inject a mock to avoid filesystem dependencies.
type GitOpener interface {
	PlainOpen(path string) (GitRepository, error)
}

// GitRepository abstracts the subset of *git.Repository methods needed to
// read a file at a revision and find when it last changed.
type GitRepository interface {
	ResolveRevision(rev plumbing.Revision) (*plumbing.Hash, error)
	CommitObject(h plumbing.Hash) (*object.Commit, error)
	Log(opts *git.LogOptions) (object.CommitIter, error)
}

// RealGitOpener is the production implementation of GitOpener.
// It opens the repository containing path, walking up to the .git directory.
type RealGitOpener struct{}

// PlainOpen opens the git repository containing path.
func (RealGitOpener) PlainOpen(path string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &RealGitRepository{repo: repo}, nil
}

// RealGitRepository wraps *git.Repository to satisfy GitRepository.
type RealGitRepository struct {
	repo *git.Repository
}

// ResolveRevision resolves a branch, tag, hash or expression such as HEAD~2.
func (r *RealGitRepository) ResolveRevision(rev plumbing.Revision) (*plumbing.Hash, error) {
	return r.repo.ResolveRevision(rev)
}

// CommitObject returns the commit with the given hash.
func (r *RealGitRepository) CommitObject(h plumbing.Hash) (*object.Commit, error) {
	return r.repo.CommitObject(h)
}

// Log returns the commit history following the given options.
func (r *RealGitRepository) Log(opts *git.LogOptions) (object.CommitIter, error) {
	return r.repo.Log(opts)
}

// DefaultGitOpener is the production GitOpener used as default.
var DefaultGitOpener GitOpener = RealGitOpener{}

// Compile-time interface checks.
var _ GitOpener = RealGitOpener{}
var _ GitRepository = (*RealGitRepository)(nil)
