// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package testable

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// MockGitOpener is a test double for GitOpener.
// Set OpenFunc to control PlainOpen behavior. If nil, PlainOpen returns
// the Repo field (or ErrRepositoryNotExists if Repo is nil).
type MockGitOpener struct {
	// Repo is the repository returned by PlainOpen when OpenFunc is nil.
	Repo GitRepository

	// OpenErr is the error returned by PlainOpen when OpenFunc is nil.
	OpenErr error

	// OpenFunc, if set, is called instead of using Repo/OpenErr.
	OpenFunc func(path string) (GitRepository, error)

	// OpenCalls records the paths passed to PlainOpen.
	OpenCalls []string
}

// PlainOpen records the call and delegates to OpenFunc or returns Repo/OpenErr.
func (m *MockGitOpener) PlainOpen(path string) (GitRepository, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.Repo != nil {
		return m.Repo, nil
	}
	return nil, git.ErrRepositoryNotExists
}

// MockGitRepository is a test double for GitRepository.
type MockGitRepository struct {
	// Revisions maps revision strings to hashes for ResolveRevision().
	Revisions map[plumbing.Revision]plumbing.Hash
	// ResolveErr is returned by ResolveRevision() for unknown revisions.
	ResolveErr error

	// CommitObjects maps hashes to commits for CommitObject().
	CommitObjects map[plumbing.Hash]*object.Commit
	// CommitObjectErr is the default error returned by CommitObject() when
	// the hash is not found in CommitObjects.
	CommitObjectErr error

	// LogIter is returned by Log().
	LogIter object.CommitIter
	// LogErr is the error returned by Log().
	LogErr error
	// LogCalls records LogOptions passed to Log().
	LogCalls []*git.LogOptions
}

// ResolveRevision looks up rev in Revisions, falling back to ResolveErr.
func (m *MockGitRepository) ResolveRevision(rev plumbing.Revision) (*plumbing.Hash, error) {
	if h, ok := m.Revisions[rev]; ok {
		return &h, nil
	}
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	return nil, plumbing.ErrReferenceNotFound
}

// CommitObject looks up the hash in CommitObjects, falling back to CommitObjectErr.
func (m *MockGitRepository) CommitObject(h plumbing.Hash) (*object.Commit, error) {
	if m.CommitObjects != nil {
		if c, ok := m.CommitObjects[h]; ok {
			return c, nil
		}
	}
	if m.CommitObjectErr != nil {
		return nil, m.CommitObjectErr
	}
	return nil, plumbing.ErrObjectNotFound
}

// Log records the call and returns LogIter and LogErr.
func (m *MockGitRepository) Log(opts *git.LogOptions) (object.CommitIter, error) {
	m.LogCalls = append(m.LogCalls, opts)
	return m.LogIter, m.LogErr
}

// Compile-time interface checks.
var _ GitOpener = (*MockGitOpener)(nil)
var _ GitRepository = (*MockGitRepository)(nil)
