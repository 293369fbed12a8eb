// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package testing provides charm directory fixtures for tests.
package testing

import (
	"os"
	"path/filepath"
	"strconv"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

// CharmSpec holds the contents of a charm directory to be written
// for a test.
type CharmSpec struct {
	// Meta holds the contents of metadata.yaml.
	Meta string

	// Config optionally holds the contents of config.yaml.
	Config string

	// Revision optionally holds the charm revision.
	Revision int
}

// MetaWithSeries returns charm metadata declaring the given supported
// series, if any.
func MetaWithSeries(series ...string) string {
	meta := `
name: ghost
summary: "A blogging platform"
description: "The Ghost blogging platform, deployable as a charm"
`[1:]
	if len(series) != 0 {
		meta += "series:\n"
		for _, s := range series {
			meta += "  - " + s + "\n"
		}
	}
	return meta
}

// WriteCharm populates dir with the charm described by spec,
// as if the charm repository had just been fetched there.
func WriteCharm(c *gc.C, dir string, spec CharmSpec) {
	write := func(name, contents string) {
		err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644)
		c.Assert(err, jc.ErrorIsNil)
	}
	write("metadata.yaml", spec.Meta)
	if spec.Config != "" {
		write("config.yaml", spec.Config)
	}
	if spec.Revision != 0 {
		write("revision", strconv.Itoa(spec.Revision))
	}
}
