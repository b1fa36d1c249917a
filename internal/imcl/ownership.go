package imcl

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/conn-castle/imctl/internal/logging"
	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/state"
)

// Chown recursively reassigns the installed tree at the spec's target.
// The owner defaults to the acting user and the group to that owner's
// primary group. Symlinks themselves change owner; their referents are
// left alone.
func (c *Client) Chown(spec state.PackageSpec) error {
	uid, gid, err := c.ownership(spec)
	if err != nil {
		return err
	}

	logger := logging.L()
	logger.Debug().Str("target", spec.Target).Int("uid", uid).Int("gid", gid).Msg("reassigning installed tree")
	err = c.system.WalkDir(spec.Target, func(path string, _ fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		return c.system.Lchown(path, uid, gid)
	})
	if err != nil {
		return fmt.Errorf(messages.ChownWalkFmt, spec.Target, err)
	}
	return nil
}

// ownership resolves the numeric uid and gid the tree should end up with.
func (c *Client) ownership(spec state.PackageSpec) (uid, gid int, err error) {
	uid, gid = c.User.UID, c.User.GID

	if spec.Owner != "" && spec.Owner != c.User.Name {
		owner, lookupErr := c.system.LookupUser(spec.Owner)
		if lookupErr != nil {
			return 0, 0, fmt.Errorf(messages.ChownLookupOwnerFmt, spec.Owner, lookupErr)
		}
		uid, err = strconv.Atoi(owner.Uid)
		if err != nil {
			return 0, 0, fmt.Errorf(messages.ChownLookupOwnerFmt, spec.Owner, err)
		}
		gid, err = strconv.Atoi(owner.Gid)
		if err != nil {
			return 0, 0, fmt.Errorf(messages.ChownLookupOwnerFmt, spec.Owner, err)
		}
	}

	if spec.Group != "" {
		group, lookupErr := c.system.LookupGroup(spec.Group)
		if lookupErr != nil {
			return 0, 0, fmt.Errorf(messages.ChownLookupGroupFmt, spec.Group, lookupErr)
		}
		gid, err = strconv.Atoi(group.Gid)
		if err != nil {
			return 0, 0, fmt.Errorf(messages.ChownLookupGroupFmt, spec.Group, err)
		}
	}
	return uid, gid, nil
}
