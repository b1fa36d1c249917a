package imcl

import (
	"io/fs"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// System abstracts process and filesystem operations needed by the
// driver. It is package-local; other packages define their own System
// interfaces with the operations they need.
type System interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
	Access(path string, mode uint32) error
	Getwd() (string, error)
	Chdir(dir string) error
	Geteuid() int
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
	LookupUser(name string) (*user.User, error)
	LookupGroup(name string) (*user.Group, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	Lchown(name string, uid, gid int) error
}

// RealSystem implements System using the operating system.
type RealSystem struct{}

// ReadFile reads the named file and returns its contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Access checks real-uid permission bits on path, e.g. unix.X_OK.
func (RealSystem) Access(path string, mode uint32) error {
	return unix.Access(path, mode)
}

// Getwd returns the current working directory.
func (RealSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the working directory of the whole process.
func (RealSystem) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Geteuid returns the effective user id of the process.
func (RealSystem) Geteuid() int {
	return os.Geteuid()
}

// CombinedOutput runs cmd and returns its combined stdout and stderr.
func (RealSystem) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

// LookupUser looks up an operating-system user by name.
func (RealSystem) LookupUser(name string) (*user.User, error) {
	return user.Lookup(name)
}

// LookupGroup looks up an operating-system group by name.
func (RealSystem) LookupGroup(name string) (*user.Group, error) {
	return user.LookupGroup(name)
}

// WalkDir walks the file tree rooted at root.
func (RealSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// Lchown changes the owner of the named file without following symlinks.
func (RealSystem) Lchown(name string, uid, gid int) error {
	return os.Lchown(name, uid, gid)
}
