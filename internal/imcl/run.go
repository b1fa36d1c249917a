package imcl

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/conn-castle/imctl/internal/logging"
	"github.com/conn-castle/imctl/internal/messages"
)

// Run executes the tool with args. The working directory is switched to
// the acting user's home for the duration and restored on every path;
// the vendor tool resolves its workspace and log locations relative to
// where it starts. When the process is privileged and the acting user is
// not, the child runs under that user's credentials. Output is the
// combined stdout and stderr, returned even on failure.
func (c *Client) Run(args ...string) (string, error) {
	prev, err := c.system.Getwd()
	if err != nil {
		return "", err
	}
	if err := c.system.Chdir(c.User.Home); err != nil {
		return "", err
	}
	defer func() {
		_ = c.system.Chdir(prev)
	}()

	cmd := exec.Command(c.Tool, args...)
	if c.system.Geteuid() == 0 && c.User.UID != 0 {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Credential: &syscall.Credential{Uid: uint32(c.User.UID), Gid: uint32(c.User.GID)},
		}
	}

	logger := logging.L()
	logger.Debug().Str("tool", c.Tool).Strs("args", args).Str("user", c.User.Name).Msg("running imcl")
	out, err := c.system.CombinedOutput(cmd)
	if err != nil {
		return string(out), fmt.Errorf(messages.ExecFailedFmt, ErrExec, c.Tool, strings.Join(args, " "), c.User.Name, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
