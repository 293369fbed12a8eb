// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package gitdeploy

import (
	"regexp"
	"strings"

	"gopkg.in/errgo.v1"
)

// Reference identifies a charm hosted in a Github repository,
// optionally pinned to a specific branch, tag or other git reference.
// A Reference is immutable once created.
type Reference struct {
	// Host holds the repository host, "github.com" by default.
	Host string

	// Owner and Repo hold the repository owner and name.
	// They are never empty in a successfully parsed reference.
	Owner string
	Repo  string

	// Ref optionally holds the git reference to deploy. When empty,
	// the repository's default branch is used.
	Ref string
}

const defaultHost = "github.com"

// ParseReference parses the given charm reference string.
// The following forms are accepted:
//
//	[scheme://]host/owner/repo[:ref]
//	owner/repo[:ref]
//
// In the second form the host defaults to github.com. The ref suffix
// is separated by the last colon appearing after the last slash, so a
// colon occurring earlier (for instance in a port qualified host) is
// left in the host portion untouched. A trailing ".git" on the
// repository name is ignored.
func ParseReference(url string) (*Reference, error) {
	fail := func() (*Reference, error) {
		return nil, errgo.WithCausef(nil, ErrInvalidReference, "invalid charm reference %q", url)
	}
	s := url
	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
	}
	var ref string
	if i := strings.LastIndex(s, ":"); i > strings.LastIndex(s, "/") {
		s, ref = s[:i], s[i+1:]
		if ref == "" {
			return fail()
		}
	}
	s = strings.TrimSuffix(s, "/")
	segments := strings.Split(s, "/")
	if len(segments) < 2 {
		return fail()
	}
	owner := segments[len(segments)-2]
	repo := strings.TrimSuffix(segments[len(segments)-1], ".git")
	if owner == "" || repo == "" {
		return fail()
	}
	host := strings.Join(segments[:len(segments)-2], "/")
	if host == "" {
		host = defaultHost
	}
	return &Reference{
		Host:  host,
		Owner: owner,
		Repo:  repo,
		Ref:   ref,
	}, nil
}

// String returns the canonical form of the reference,
// for instance "github.com/hatched/ghost-charm:develop".
func (r *Reference) String() string {
	s := r.Host + "/" + r.Owner + "/" + r.Repo
	if r.Ref != "" {
		s += ":" + r.Ref
	}
	return s
}

// CloneURL returns the HTTPS URL used to clone the repository.
func (r *Reference) CloneURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Repo
}

var serviceNameReplace = regexp.MustCompile("[^a-z0-9]+")

// ServiceName returns the name of the service deployed from this
// reference when the user does not provide one: the repository name
// lower cased, with runs of non-alphanumeric characters collapsed
// into single dashes.
func (r *Reference) ServiceName() string {
	name := serviceNameReplace.ReplaceAllString(strings.ToLower(r.Repo), "-")
	return strings.Trim(name, "-")
}
