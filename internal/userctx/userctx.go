// Package userctx resolves the operating-system user a package operation
// acts as. The resolved user decides which installation registry is
// consulted, where imcl runs from, and which identity the vendor tool
// executes under.
package userctx

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/conn-castle/imctl/internal/messages"
)

// ErrLookup wraps failures to resolve a named user or their home directory.
var ErrLookup = errors.New("user lookup failed")

// User is a resolved operating-system account.
type User struct {
	Name string
	UID  int
	GID  int
	Home string
}

// Privileged reports whether the user installs system-wide. Privileged
// installs read /var/ibm; everything else uses the home-based registry.
func (u User) Privileged() bool {
	return u.UID == 0
}

var (
	lookupFunc  = user.Lookup
	currentFunc = user.Current
	homedirFunc = homedir.Dir
)

// Resolve looks up name and returns the resolved account. An empty name
// resolves the current user, with a go-homedir fallback when the process
// environment hides the home directory (static builds, no cgo).
func Resolve(name string) (User, error) {
	var (
		u   *user.User
		err error
	)
	if name == "" {
		u, err = currentFunc()
	} else {
		u, err = lookupFunc(name)
	}
	if err != nil {
		return User{}, fmt.Errorf(messages.UserLookupFmt, ErrLookup, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return User{}, fmt.Errorf(messages.UserLookupFmt, ErrLookup, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return User{}, fmt.Errorf(messages.UserLookupFmt, ErrLookup, err)
	}

	home := u.HomeDir
	if home == "" && name == "" {
		home, _ = homedirFunc()
	}
	if home == "" {
		return User{}, fmt.Errorf(messages.UserNoHomeFmt, ErrLookup, u.Username)
	}

	return User{Name: u.Username, UID: uid, GID: gid, Home: home}, nil
}
