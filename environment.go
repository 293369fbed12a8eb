// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package gitdeploy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/utils/v3"
	"gopkg.in/yaml.v2"
)

// DefaultEnvironment returns the name of the Juju environment used
// when the user does not specify one: the JUJU_ENV environment
// variable if set, otherwise the environment selected with
// "juju switch", otherwise the default environment declared in the
// environments.yaml file in the Juju home directory. An empty string
// is returned when no default can be found, in which case the choice
// is left to juju itself.
func DefaultEnvironment() string {
	if env := strings.TrimSpace(os.Getenv("JUJU_ENV")); env != "" {
		return env
	}
	if env := switchedEnvironment(); env != "" {
		return env
	}
	path := filepath.Join(jujuHome(), "environments.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var environments struct {
		Default string `yaml:"default"`
	}
	if err := yaml.Unmarshal(data, &environments); err != nil {
		logger.Debugf("cannot parse %s: %v", path, err)
		return ""
	}
	return environments.Default
}

// switchedEnvironment returns the environment selected with
// "juju switch", which juju records in the current-environment file
// in its home directory.
func switchedEnvironment() string {
	data, err := os.ReadFile(filepath.Join(jujuHome(), "current-environment"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// jujuHome returns the path of the Juju home directory.
func jujuHome() string {
	if home := os.Getenv("JUJU_HOME"); home != "" {
		return home
	}
	return filepath.Join(utils.Home(), ".juju")
}
