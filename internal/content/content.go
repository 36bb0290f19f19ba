// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package content loads raw widget data from a document repository.
//
// A Loader returns the bytes stored at a repository path together with the
// time the resource last changed. Implementations read from a local
// directory, a git repository at a fixed revision, GitHub, or an S3
// compatible bucket.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when a location does not exist in the repository.
var ErrNotFound = errors.New("content not found")

// Content is an open repository resource. Callers must close Body.
type Content struct {
	Body     io.ReadCloser
	Modified time.Time
}

// Loader fetches repository resources.
type Loader interface {
	Load(ctx context.Context, location string) (*Content, error)
}

// Repository kinds accepted by New.
const (
	KindDir    = "dir"
	KindGit    = "git"
	KindGitHub = "github"
	KindS3     = "s3"
)

// Options selects and configures a Loader.
type Options struct {
	Kind string

	// dir and git
	Path     string
	Revision string

	// github
	Owner string
	Repo  string
	Ref   string
	Token string

	// s3
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	Secure    bool
}

// New builds the Loader described by opts.
func New(opts Options) (Loader, error) {
	switch opts.Kind {
	case KindDir, "":
		return NewDirLoader(opts.Path), nil
	case KindGit:
		return &GitLoader{Path: opts.Path, Revision: opts.Revision}, nil
	case KindGitHub:
		return NewGitHubLoader(opts.Owner, opts.Repo, opts.Ref, opts.Token), nil
	case KindS3:
		return NewS3Loader(opts)
	default:
		return nil, fmt.Errorf("unknown repository kind %q", opts.Kind)
	}
}

// cleanLocation turns a repository path into a slash separated relative
// path, rejecting attempts to leave the repository root.
func cleanLocation(location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", fmt.Errorf("empty location")
	}
	loc := strings.ReplaceAll(location, "\\", "/")
	if c := path.Clean(loc); c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("location %q escapes the repository", location)
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+loc), "/")
	if cleaned == "" {
		return "", fmt.Errorf("location %q names the repository root", location)
	}
	return cleaned, nil
}
