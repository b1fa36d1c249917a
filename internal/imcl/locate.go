package imcl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/userctx"
)

const (
	systemDir     = "/var/ibm/InstallationManager"
	installedFile = "installed.xml"
	// imLocationID is the inventory entry recording where Installation
	// Manager itself lives.
	imLocationID = "IBM Installation Manager"
)

// InstalledPath returns the Installation Manager inventory file for u:
// the system-wide one for privileged users, the home-based one otherwise.
func InstalledPath(u userctx.User) string {
	if u.Privileged() {
		return filepath.Join(systemDir, installedFile)
	}
	return filepath.Join(u.Home, "var", "ibm", "InstallationManager", installedFile)
}

// Locate finds the imcl binary recorded in u's Installation Manager
// inventory and verifies it is executable.
func Locate(u userctx.User) (string, error) {
	return locate(u, RealSystem{})
}

func locate(u userctx.User, system System) (string, error) {
	metaPath := InstalledPath(u)
	data, err := system.ReadFile(metaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf(messages.CLIRegistryAbsentFmt, ErrNotFound, metaPath)
		}
		return "", err
	}

	var doc xmlInstallInfo
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf(messages.CLIDecodeFmt, ErrParse, metaPath, err)
	}
	root := doc.pathOf(imLocationID)
	if root == "" {
		return "", fmt.Errorf(messages.CLIMissingFmt, ErrNotFound, metaPath)
	}

	tool := filepath.Join(root, "eclipse", "tools", "imcl")
	if _, err := system.Stat(tool); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf(messages.CLIBinaryMissingFmt, ErrNotFound, tool)
		}
		return "", err
	}
	if err := system.Access(tool, unix.X_OK); err != nil {
		return "", fmt.Errorf(messages.CLINotExecutableFmt, ErrNotExecutable, tool)
	}
	return tool, nil
}

type xmlInstallInfo struct {
	XMLName   xml.Name      `xml:"installInfo"`
	Locations []xmlLocation `xml:"location"`
}

type xmlLocation struct {
	ID   string `xml:"id,attr"`
	Path string `xml:"path,attr"`
}

func (d xmlInstallInfo) pathOf(id string) string {
	for _, loc := range d.Locations {
		if loc.ID == id {
			return loc.Path
		}
	}
	return ""
}
