// Package registry reads the Installation Manager installation registry.
//
// The registry is a vendor-maintained XML file listing every profile
// (product root) with its offerings and fixes. It is the source of truth
// for what is installed; imctl never caches it across reconciliation
// passes.
package registry

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/userctx"
)

// ErrNotFound reports that no registry file exists at the resolved path.
var ErrNotFound = errors.New("installation registry not found")

// ErrParse reports a malformed registry or one missing required attributes.
var ErrParse = errors.New("installation registry unreadable")

const (
	// systemDir holds the registry for privileged (system-wide) installs.
	systemDir    = "/var/ibm/InstallationManager"
	registryFile = "installRegistry.xml"
)

// Package is one installed unit recorded in the registry: an offering or a
// fix version inside a profile. Identity is (Path, ID, Version).
type Package struct {
	// ProductName is the enclosing profile id, e.g. "IBM WebSphere Application Server V8.5".
	ProductName string `json:"product"`
	// Path is the profile's installLocation property.
	Path string `json:"path"`
	// ID is the offering or fix identifier.
	ID string `json:"package"`
	// Version is the vendor version string. Ordering is vendor-defined, not semver.
	Version string `json:"version"`
	// Repository is the first repository recorded in the version's repoInfo attribute.
	Repository string `json:"repository,omitempty"`
	// Fix marks records that came from a fix element rather than an offering.
	Fix bool `json:"fix,omitempty"`
}

// Kind returns "fix" or "offering" for display.
func (p Package) Kind() string {
	if p.Fix {
		return "fix"
	}
	return "offering"
}

// DefaultPath returns the registry location for u: the system registry for
// privileged users, the home-based one for everyone else.
func DefaultPath(u userctx.User) string {
	if u.Privileged() {
		return filepath.Join(systemDir, registryFile)
	}
	return filepath.Join(u.Home, "var", "ibm", "InstallationManager", registryFile)
}

// ReadFor reads the registry belonging to u.
func ReadFor(u userctx.User) ([]Package, error) {
	return Read(DefaultPath(u))
}

// Read parses the registry at path into the flat list of installed
// packages: one Package per version element under each offering and fix,
// with the path taken from the enclosing profile.
func Read(path string) ([]Package, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(messages.RegistryMissingFmt, ErrNotFound, path)
		}
		return nil, fmt.Errorf(messages.RegistryOpenFmt, path, err)
	}
	defer f.Close()

	var doc xmlRegistry
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf(messages.RegistryDecodeFmt, ErrParse, path, err)
	}

	var packages []Package
	for _, profile := range doc.Profiles {
		if profile.ID == "" {
			return nil, fmt.Errorf(messages.RegistryNoIDFmt, ErrParse, path)
		}
		location, ok := profile.installLocation()
		if !ok {
			return nil, fmt.Errorf(messages.RegistryNoPathFmt, ErrParse, profile.ID, path)
		}
		for _, unit := range profile.Offerings {
			pkgs, err := unit.packages(profile.ID, location, false, path)
			if err != nil {
				return nil, err
			}
			packages = append(packages, pkgs...)
		}
		for _, unit := range profile.Fixes {
			pkgs, err := unit.packages(profile.ID, location, true, path)
			if err != nil {
				return nil, err
			}
			packages = append(packages, pkgs...)
		}
	}
	return packages, nil
}

type xmlRegistry struct {
	XMLName  xml.Name     `xml:"installRegistry"`
	Profiles []xmlProfile `xml:"profile"`
}

type xmlProfile struct {
	ID         string        `xml:"id,attr"`
	Properties []xmlProperty `xml:"property"`
	Offerings  []xmlUnit     `xml:"offering"`
	Fixes      []xmlUnit     `xml:"fix"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlUnit struct {
	ID       string       `xml:"id,attr"`
	Versions []xmlVersion `xml:"version"`
}

type xmlVersion struct {
	Value    string `xml:"value,attr"`
	RepoInfo string `xml:"repoInfo,attr"`
}

func (p xmlProfile) installLocation() (string, bool) {
	for _, prop := range p.Properties {
		if prop.Name == "installLocation" && prop.Value != "" {
			return prop.Value, true
		}
	}
	return "", false
}

func (u xmlUnit) packages(product, location string, fix bool, path string) ([]Package, error) {
	if u.ID == "" {
		return nil, fmt.Errorf(messages.RegistryUnitNoIDFmt, ErrParse, product, path)
	}
	out := make([]Package, 0, len(u.Versions))
	for _, v := range u.Versions {
		if v.Value == "" {
			return nil, fmt.Errorf(messages.RegistryVersionNoValueFmt, ErrParse, u.ID, path)
		}
		out = append(out, Package{
			ProductName: product,
			Path:        location,
			ID:          u.ID,
			Version:     v.Value,
			Repository:  parseRepoInfo(v.RepoInfo),
			Fix:         fix,
		})
	}
	return out, nil
}

// parseRepoInfo extracts the first repository from a repoInfo attribute,
// which the registry encodes as a comma-separated key=value list. A missing
// attribute is not an error; older registries omit it.
func parseRepoInfo(info string) string {
	if info == "" {
		return ""
	}
	first := info
	if i := strings.Index(info, ","); i >= 0 {
		first = info[:i]
	}
	if i := strings.Index(first, "="); i >= 0 {
		return first[i+1:]
	}
	return first
}
