// Package imcl drives the Installation Manager command-line tool. A
// Client is constructed once per user context with the tool path already
// resolved; operations stop processes holding the target first, run the
// vendor tool under the acting user's identity, and finish ownership of
// the installed tree.
package imcl

import (
	"errors"

	"github.com/conn-castle/imctl/internal/procs"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

var (
	// ErrNotFound reports that Installation Manager or its imcl binary is
	// not present for the user context.
	ErrNotFound = errors.New("imcl not found")
	// ErrParse reports unreadable Installation Manager metadata.
	ErrParse = errors.New("installation manager metadata unreadable")
	// ErrNotExecutable reports an imcl binary without execute permission.
	ErrNotExecutable = errors.New("imcl not executable")
	// ErrExec reports a failed vendor-tool invocation.
	ErrExec = errors.New("imcl invocation failed")
)

// Stopper clears processes holding a target directory before mutation.
// *procs.Terminator satisfies it.
type Stopper interface {
	Stop(target string) (procs.KillReport, error)
}

// Client drives imcl for one resolved user context.
type Client struct {
	// Tool is the absolute path of the imcl binary.
	Tool string
	// User is the account operations execute as.
	User userctx.User

	system  System
	stopper Stopper
}

// New locates imcl for u and returns a client bound to that context.
func New(u userctx.User) (*Client, error) {
	return newClient(u, RealSystem{}, procs.NewTerminator())
}

func newClient(u userctx.User, system System, stopper Stopper) (*Client, error) {
	tool, err := locate(u, system)
	if err != nil {
		return nil, err
	}
	return &Client{Tool: tool, User: u, system: system, stopper: stopper}, nil
}

// Install brings one declared package onto the host: stop whatever holds
// the target, run the install invocation, then reassign ownership of the
// installed tree when the spec asks for it and the target now exists.
func (c *Client) Install(spec state.PackageSpec) (string, error) {
	if _, err := c.stopper.Stop(spec.Target); err != nil {
		return "", err
	}
	out, err := c.Run(InstallArgs(spec, c.User)...)
	if err != nil {
		return out, err
	}
	if spec.ManageOwner() {
		if _, statErr := c.system.Stat(spec.Target); statErr == nil {
			if err := c.Chown(spec); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

// Uninstall removes one installed package: stop whatever holds the
// target, then run the silent uninstall invocation.
func (c *Client) Uninstall(spec state.PackageSpec) (string, error) {
	if _, err := c.stopper.Stop(spec.Target); err != nil {
		return "", err
	}
	return c.Run(UninstallArgs(spec)...)
}
