// Copyright 2016 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package gitdeploy

import (
	"io"
	"os/exec"
	"strconv"
	"strings"

	"gopkg.in/errgo.v1"
)

// DeployParams holds the parameters of a single deploy request.
type DeployParams struct {
	// CharmPath holds the local directory containing the charm.
	CharmPath string

	// Service optionally holds the name of the resulting service.
	// When empty, juju derives it from the charm.
	Service string

	// Series optionally holds the OS series to deploy with.
	Series string

	// Environment optionally holds the name of the target Juju
	// environment.
	Environment string

	// Placement optionally holds the machine or container to deploy
	// the unit in.
	Placement string

	// NumUnits holds the number of units to deploy. Zero means one.
	NumUnits int
}

// args returns the juju command line implementing the request.
func (p DeployParams) args() []string {
	args := []string{"deploy", p.CharmPath}
	if p.Service != "" {
		args = append(args, p.Service)
	}
	if p.Series != "" {
		args = append(args, "--series", p.Series)
	}
	if p.Environment != "" {
		args = append(args, "-e", p.Environment)
	}
	if p.Placement != "" {
		args = append(args, "--to", p.Placement)
	}
	if p.NumUnits > 1 {
		args = append(args, "-n", strconv.Itoa(p.NumUnits))
	}
	return args
}

// Deployer issues deploy requests to a Juju environment.
type Deployer interface {
	// Deploy deploys the charm described by the given parameters.
	Deploy(p DeployParams) error
}

// NewDeployer returns a Deployer that runs the external juju command
// synchronously with the given standard streams attached, so that the
// tool's own output reaches the user verbatim.
func NewDeployer(stdin io.Reader, stdout, stderr io.Writer) Deployer {
	return &jujuDeployer{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

type jujuDeployer struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Hook for testing.
var runCommand = (*exec.Cmd).Run

// Deploy implements Deployer by invoking "juju deploy".
func (d *jujuDeployer) Deploy(p DeployParams) error {
	if p.NumUnits < 0 {
		return errgo.Newf("invalid number of units %d", p.NumUnits)
	}
	if p.Placement != "" && p.NumUnits > 1 {
		return errgo.New("cannot use more than one unit with a placement directive")
	}
	args := p.args()
	logger.Debugf("running juju %s", strings.Join(args, " "))
	cmd := exec.Command("juju", args...)
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	if err := runCommand(cmd); err != nil {
		return errgo.WithCausef(nil, ErrDeployFailed, "juju deploy failed: %v", err)
	}
	return nil
}
