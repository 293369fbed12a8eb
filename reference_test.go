// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package gitdeploy_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
	"gopkg.in/errgo.v1"

	gitdeploy "github.com/frankban/juju-git-deploy"
)

type referenceSuite struct{}

var _ = gc.Suite(&referenceSuite{})

var parseReferenceTests = []struct {
	about  string
	url    string
	expect *gitdeploy.Reference
	err    string
}{{
	about: "shorthand",
	url:   "hatched/ghost-charm",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
	},
}, {
	about: "shorthand with reference",
	url:   "frankban/ghost-charm:develop",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "frankban",
		Repo:  "ghost-charm",
		Ref:   "develop",
	},
}, {
	about: "full URL",
	url:   "https://github.com/frankban/ghost-charm:develop",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "frankban",
		Repo:  "ghost-charm",
		Ref:   "develop",
	},
}, {
	about: "URL without scheme",
	url:   "github.com/hatched/ghost-charm",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
	},
}, {
	about: "trailing slash",
	url:   "github.com/hatched/ghost-charm/",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
	},
}, {
	about: "git suffix",
	url:   "https://github.com/hatched/ghost-charm.git",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
	},
}, {
	about: "git suffix with reference",
	url:   "hatched/ghost-charm.git:v1.0.0",
	expect: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
		Ref:   "v1.0.0",
	},
}, {
	about: "custom host",
	url:   "example.com/who/django-app",
	expect: &gitdeploy.Reference{
		Host:  "example.com",
		Owner: "who",
		Repo:  "django-app",
	},
}, {
	about: "multi-segment host",
	url:   "git.example.com/nested/who/django-app",
	expect: &gitdeploy.Reference{
		Host:  "git.example.com/nested",
		Owner: "who",
		Repo:  "django-app",
	},
}, {
	about: "colon before last slash stays in the host",
	url:   "example.com:8080/who/django-app",
	expect: &gitdeploy.Reference{
		Host:  "example.com:8080",
		Owner: "who",
		Repo:  "django-app",
	},
}, {
	about: "no slash",
	url:   "not-a-valid-ref",
	err:   `invalid charm reference "not-a-valid-ref"`,
}, {
	about: "empty string",
	url:   "",
	err:   `invalid charm reference ""`,
}, {
	about: "empty owner",
	url:   "/ghost-charm",
	err:   `invalid charm reference "/ghost-charm"`,
}, {
	about: "empty repository",
	url:   "hatched/",
	err:   `invalid charm reference "hatched/"`,
}, {
	about: "empty reference after colon",
	url:   "hatched/ghost-charm:",
	err:   `invalid charm reference "hatched/ghost-charm:"`,
}, {
	about: "scheme only",
	url:   "https://",
	err:   `invalid charm reference "https://"`,
}}

func (s *referenceSuite) TestParseReference(c *gc.C) {
	for i, test := range parseReferenceTests {
		c.Logf("test %d: %s", i, test.about)
		ref, err := gitdeploy.ParseReference(test.url)
		if test.err != "" {
			c.Assert(err, gc.ErrorMatches, test.err)
			c.Assert(errgo.Cause(err), gc.Equals, gitdeploy.ErrInvalidReference)
			c.Assert(ref, gc.IsNil)
			continue
		}
		c.Assert(err, jc.ErrorIsNil)
		c.Assert(ref, jc.DeepEquals, test.expect)
	}
}

func (s *referenceSuite) TestParseReferenceIsDeterministic(c *gc.C) {
	ref1, err := gitdeploy.ParseReference("hatched/ghost-charm:develop")
	c.Assert(err, jc.ErrorIsNil)
	ref2, err := gitdeploy.ParseReference("hatched/ghost-charm:develop")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ref1, jc.DeepEquals, ref2)
}

var referenceStringTests = []struct {
	ref            *gitdeploy.Reference
	expectString   string
	expectCloneURL string
	expectService  string
}{{
	ref: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "hatched",
		Repo:  "ghost-charm",
	},
	expectString:   "github.com/hatched/ghost-charm",
	expectCloneURL: "https://github.com/hatched/ghost-charm",
	expectService:  "ghost-charm",
}, {
	ref: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "frankban",
		Repo:  "ghost-charm",
		Ref:   "develop",
	},
	expectString:   "github.com/frankban/ghost-charm:develop",
	expectCloneURL: "https://github.com/frankban/ghost-charm",
	expectService:  "ghost-charm",
}, {
	ref: &gitdeploy.Reference{
		Host:  "example.com",
		Owner: "who",
		Repo:  "My.Cool_Charm",
	},
	expectString:   "example.com/who/My.Cool_Charm",
	expectCloneURL: "https://example.com/who/My.Cool_Charm",
	expectService:  "my-cool-charm",
}, {
	ref: &gitdeploy.Reference{
		Host:  "github.com",
		Owner: "who",
		Repo:  "--Ghost--",
	},
	expectString:   "github.com/who/--Ghost--",
	expectCloneURL: "https://github.com/who/--Ghost--",
	expectService:  "ghost",
}}

func (s *referenceSuite) TestReferenceString(c *gc.C) {
	for i, test := range referenceStringTests {
		c.Logf("test %d: %s", i, test.expectString)
		c.Assert(test.ref.String(), gc.Equals, test.expectString)
		c.Assert(test.ref.CloneURL(), gc.Equals, test.expectCloneURL)
		c.Assert(test.ref.ServiceName(), gc.Equals, test.expectService)
	}
}
