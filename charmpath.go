// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package gitdeploy

import (
	"os"

	"github.com/juju/charm/v8"
	"gopkg.in/errgo.v1"
)

// ReadCharmAtPath returns the charm found in the given directory,
// usually a freshly fetched repository clone. If a series is given it
// is validated against those the charm declares it supports; charms
// declaring no series accept any.
func ReadCharmAtPath(path, series string) (charm.Charm, error) {
	if path == "" {
		return nil, errgo.New("path to charm not specified")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errgo.Newf("path %q does not exist", path)
	}
	ch, err := charm.ReadCharmDir(path)
	if err != nil {
		return nil, errgo.Notef(err, "no charm found at %q", path)
	}
	if err := checkSeries(ch.Meta().Series, series); err != nil {
		return nil, errgo.Mask(err)
	}
	return ch, nil
}

func checkSeries(supported []string, series string) error {
	if series == "" || len(supported) == 0 {
		return nil
	}
	for _, s := range supported {
		if s == series {
			return nil
		}
	}
	return errgo.Newf("series %q not supported by charm, supported series are: %v", series, supported)
}
