// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// The juju-git-deploy command is a juju plugin deploying charms
// hosted on Github repositories: it fetches the referenced repository
// into a temporary directory and runs juju deploy against it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"

	gitdeploy "github.com/frankban/juju-git-deploy"
	"github.com/frankban/juju-git-deploy/internal/progress"
)

const gitDeployPurpose = "deploy a charm from a Github repository"

const gitDeployDoc = `
juju-git-deploy fetches a charm hosted on a Github repository and
deploys it to a Juju environment, e.g.:

    juju git-deploy github.com/hatched/ghost-charm

The charm above can be deployed also copy/pasting the URL:

    juju git-deploy https://github.com/hatched/ghost-charm

It is possible to use the simplified {user}/{repo} form:

    juju git-deploy hatched/ghost-charm

To deploy a specific git branch or reference, append a colon followed
by the reference identifier, e.g.:

    juju git-deploy frankban/ghost-charm:develop

If the reference is not specified, the repository's default branch is
used (usually "master"). The service name is derived from the
repository name unless given as a second argument.
`

func newGitDeployCommand() cmd.Command {
	return &gitDeployCommand{
		newRepository: gitdeploy.NewGitRepository,
		newDeployer: func(ctx *cmd.Context) gitdeploy.Deployer {
			return gitdeploy.NewDeployer(ctx.Stdin, ctx.Stdout, ctx.Stderr)
		},
	}
}

// gitDeployCommand fetches a charm from a Github repository and
// deploys it.
type gitDeployCommand struct {
	cmd.CommandBase

	reference   *gitdeploy.Reference
	service     string
	series      string
	envName     string
	placement   string
	numUnits    int
	debug       bool
	description bool

	newRepository func(progress io.Writer) gitdeploy.Repository
	newDeployer   func(ctx *cmd.Context) gitdeploy.Deployer
}

// Info implements Command.Info.
func (c *gitDeployCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "juju-git-deploy",
		Args:    "<reference> [<service-name>]",
		Purpose: gitDeployPurpose,
		Doc:     gitDeployDoc,
	}
}

// SetFlags implements Command.SetFlags.
func (c *gitDeployCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.series, "s", "", "OS series to deploy with (defaults to the environment's)")
	f.StringVar(&c.series, "series", "", "")
	f.StringVar(&c.envName, "e", "", "juju environment to operate in")
	f.StringVar(&c.envName, "environment", "", "")
	f.StringVar(&c.placement, "to", "", "machine or container to deploy the unit in")
	f.IntVar(&c.numUnits, "n", 1, "number of units to deploy")
	f.IntVar(&c.numUnits, "num-units", 1, "")
	f.BoolVar(&c.debug, "debug", false, "enable debug logging")
	// Required of juju plugins: see "juju help plugins".
	f.BoolVar(&c.description, "description", false, "show the plugin description and exit")
}

// Init implements Command.Init.
func (c *gitDeployCommand) Init(args []string) error {
	if c.description {
		return nil
	}
	if len(args) == 0 {
		return errors.New("no charm reference specified")
	}
	reference, err := gitdeploy.ParseReference(args[0])
	if err != nil {
		return err
	}
	c.reference = reference
	args = args[1:]
	if len(args) > 0 {
		c.service = args[0]
		args = args[1:]
	}
	if err := cmd.CheckEmpty(args); err != nil {
		return err
	}
	if c.numUnits < 1 {
		return errors.Errorf("--num-units must be a positive integer, got %d", c.numUnits)
	}
	if c.placement != "" && c.numUnits != 1 {
		return errors.New("cannot use --num-units > 1 with --to")
	}
	if c.envName == "" {
		c.envName = gitdeploy.DefaultEnvironment()
	}
	return nil
}

// Run implements Command.Run.
func (c *gitDeployCommand) Run(ctx *cmd.Context) error {
	if c.description {
		fmt.Fprintln(ctx.Stdout, gitDeployPurpose)
		return nil
	}
	if c.debug {
		if err := loggo.ConfigureLoggers("<root>=DEBUG"); err != nil {
			return errors.Trace(err)
		}
	}
	ctx.Infof("fetching %s", c.reference)
	monitor := progress.New(progress.Params{
		Setter: fetchStatus{ctx},
	})
	dir, err := c.newRepository(monitor).Fetch(c.reference)
	monitor.Kill()
	monitor.Wait()
	if err != nil {
		return errors.Trace(err)
	}
	defer os.RemoveAll(dir)
	ch, err := gitdeploy.ReadCharmAtPath(dir, c.series)
	if err != nil {
		return errors.Trace(err)
	}
	service := c.service
	if service == "" {
		service = c.reference.ServiceName()
	}
	ctx.Infof("deploying charm %q as service %q", ch.Meta().Name, service)
	err = c.newDeployer(ctx).Deploy(gitdeploy.DeployParams{
		CharmPath:   dir,
		Service:     service,
		Series:      c.series,
		Environment: c.envName,
		Placement:   c.placement,
		NumUnits:    c.numUnits,
	})
	return errors.Trace(err)
}

// fetchStatus reports transfer progress to the user.
type fetchStatus struct {
	ctx *cmd.Context
}

func (s fetchStatus) SetStatus(st progress.Status) {
	s.ctx.Infof("received %s", progress.FormatByteCount(st.Received))
}
