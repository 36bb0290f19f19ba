// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
)

// githubAPI is the subset of the GitHub repositories API used by GitHubLoader.
type githubAPI interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	DownloadContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (io.ReadCloser, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

// GitHubLoader reads resources from a GitHub repository.
type GitHubLoader struct {
	Owner string
	Repo  string
	// Ref is a branch, tag or commit SHA. Empty means the default branch.
	Ref string

	api githubAPI
}

// NewGitHubLoader creates a loader for owner/repo. An empty token gives
// anonymous, rate-limited access.
func NewGitHubLoader(owner, repo, ref, token string) *GitHubLoader {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubLoader{Owner: owner, Repo: repo, Ref: ref, api: client.Repositories}
}

// Load fetches location at the configured ref. Modified is the committer
// date of the newest commit touching the path.
func (g *GitHubLoader) Load(ctx context.Context, location string) (*Content, error) {
	loc, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentGetOptions{Ref: g.Ref}
	file, dir, resp, err := g.api.GetContents(ctx, g.Owner, g.Repo, loc, opts)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, fmt.Errorf("%s in %s/%s: %w", location, g.Owner, g.Repo, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch %s from %s/%s: %w", location, g.Owner, g.Repo, err)
	}
	if file == nil || dir != nil {
		return nil, fmt.Errorf("%s is a directory", location)
	}

	var body io.ReadCloser
	if file.GetEncoding() == "none" {
		// Files above the contents API size limit come back without inline data.
		body, _, err = g.api.DownloadContents(ctx, g.Owner, g.Repo, loc, opts)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", location, err)
		}
	} else {
		text, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", location, err)
		}
		body = io.NopCloser(strings.NewReader(text))
	}

	modified, err := g.lastChange(ctx, loc)
	if err != nil {
		_ = body.Close()
		return nil, err
	}
	slog.Debug("loaded github content", "location", loc, "repo", g.Owner+"/"+g.Repo, "ref", g.Ref)
	return &Content{Body: body, Modified: modified}, nil
}

func (g *GitHubLoader) lastChange(ctx context.Context, loc string) (time.Time, error) {
	commits, _, err := g.api.ListCommits(ctx, g.Owner, g.Repo, &github.CommitsListOptions{
		SHA:         g.Ref,
		Path:        loc,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("list commits for %s: %w", loc, err)
	}
	if len(commits) == 0 {
		return time.Time{}, nil
	}
	return commits[0].GetCommit().GetCommitter().GetDate().Time, nil
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
