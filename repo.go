// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package gitdeploy implements deploying Juju charms directly from
// Github repositories.

package gitdeploy

import (
	"errors"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/juju/loggo"
	"gopkg.in/errgo.v1"
)

var logger = loggo.GetLogger("gitdeploy")

var (
	// ErrInvalidReference is the cause of errors returned when a charm
	// reference cannot be parsed.
	ErrInvalidReference = errgo.New("invalid charm reference")

	// ErrNotFound is the cause of errors returned when the referenced
	// repository or git reference does not exist.
	ErrNotFound = errgo.New("not found")

	// ErrNetwork is the cause of errors returned when the repository
	// host cannot be reached or the transfer fails.
	ErrNetwork = errgo.New("cannot contact repository host")

	// ErrDeployFailed is the cause of errors returned when the juju
	// deploy invocation exits with a non-zero status.
	ErrDeployFailed = errgo.New("deploy failed")
)

// Repository materializes remote charm content locally.
type Repository interface {
	// Fetch retrieves the repository identified by the given reference
	// and returns the path of a local directory holding its contents.
	// The caller is responsible for removing the directory.
	Fetch(ref *Reference) (string, error)
}

// NewGitRepository returns a Repository that fetches charm content by
// cloning git repositories over HTTPS. Transfer progress reported by
// the remote is written to the given writer, which may be nil.
func NewGitRepository(progress io.Writer) Repository {
	return &gitRepository{
		progress: progress,
	}
}

type gitRepository struct {
	progress io.Writer
}

// Hook for testing.
var gitClone = git.PlainClone

// Fetch implements Repository by making a shallow single-branch clone
// of the referenced repository into a fresh temporary directory. A
// named reference is tried as a branch first and then as a tag.
func (r *gitRepository) Fetch(ref *Reference) (string, error) {
	dir, err := os.MkdirTemp("", "juju-git-deploy-")
	if err != nil {
		return "", errgo.Notef(err, "cannot make directory for %q", ref)
	}
	opts := &git.CloneOptions{
		URL:          ref.CloneURL(),
		Depth:        1,
		SingleBranch: true,
		Progress:     r.progress,
	}
	logger.Debugf("cloning %s", opts.URL)
	if ref.Ref == "" {
		_, err = gitClone(dir, false, opts)
	} else {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref.Ref)
		if _, err = gitClone(dir, false, opts); isRefNotFound(err) {
			logger.Debugf("no branch %q, trying tag", ref.Ref)
			opts.ReferenceName = plumbing.NewTagReferenceName(ref.Ref)
			_, err = gitClone(dir, false, opts)
		}
	}
	if err != nil {
		os.RemoveAll(dir)
		return "", fetchError(err, ref)
	}
	return dir, nil
}

// fetchError translates a go-git clone failure into one of the error
// kinds exposed by this package.
func fetchError(err error, ref *Reference) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		// Github reports missing and private repositories alike as
		// requiring authentication.
		errors.Is(err, transport.ErrAuthenticationRequired):
		return errgo.WithCausef(nil, ErrNotFound, "repository %s not found", ref)
	case isRefNotFound(err):
		return errgo.WithCausef(nil, ErrNotFound, "no reference %q in repository %s/%s on %s", ref.Ref, ref.Owner, ref.Repo, ref.Host)
	}
	return errgo.WithCausef(nil, ErrNetwork, "cannot fetch %s: %v", ref, err)
}

func isRefNotFound(err error) bool {
	if err == nil {
		return false
	}
	var refSpecErr git.NoMatchingRefSpecError
	return errors.Is(err, plumbing.ErrReferenceNotFound) || errors.As(err, &refSpecErr)
}
