// Package state loads and validates the desired-state declaration: the
// list of packages this host should (or should not) have installed.
//
// State documents are TOML (the native format) or YAML, chosen by file
// extension. A declared package may defer its identity to a vendor
// response file; resolution produces a new spec and never mutates the
// declaration.
package state

import "github.com/conn-castle/imctl/internal/response"

// Ensure values.
const (
	EnsurePresent = "present"
	EnsureAbsent  = "absent"
)

// PackageSpec is one declared package: what should be installed where,
// and as whom.
type PackageSpec struct {
	// Name labels the declaration. Defaults to Package when empty.
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`
	// Ensure is "present" (default) or "absent".
	Ensure string `toml:"ensure,omitempty" yaml:"ensure,omitempty"`
	// Package is the Installation Manager offering id.
	Package string `toml:"package,omitempty" yaml:"package,omitempty"`
	// Version is the exact vendor version string.
	Version string `toml:"version,omitempty" yaml:"version,omitempty"`
	// Target is the installation directory.
	Target string `toml:"target,omitempty" yaml:"target,omitempty"`
	// User is the operating-system account the operation acts as.
	// Empty means the invoking user.
	User string `toml:"user,omitempty" yaml:"user,omitempty"`
	// Response points at a vendor response file that supplies the
	// effective package, version, target, and repository.
	Response string `toml:"response,omitempty" yaml:"response,omitempty"`
	// Repositories are the locations imcl installs from.
	Repositories []string `toml:"repositories,omitempty" yaml:"repositories,omitempty"`
	// JDKPackage and JDKVersion name a bundled JDK installed alongside
	// the main offering.
	JDKPackage string `toml:"jdk_package,omitempty" yaml:"jdk_package,omitempty"`
	JDKVersion string `toml:"jdk_version,omitempty" yaml:"jdk_version,omitempty"`
	// Options are appended verbatim to the imcl invocation.
	Options string `toml:"options,omitempty" yaml:"options,omitempty"`
	// Owner and Group are applied recursively to the installed tree after
	// a successful install. Owner defaults to User; Group defaults to the
	// owner's primary group.
	Owner string `toml:"owner,omitempty" yaml:"owner,omitempty"`
	Group string `toml:"group,omitempty" yaml:"group,omitempty"`
	// ManageOwnership disables the ownership pass when set to false.
	ManageOwnership *bool `toml:"manage_ownership,omitempty" yaml:"manage_ownership,omitempty"`
}

// Document is a parsed desired-state file.
type Document struct {
	Packages []PackageSpec `toml:"package" yaml:"packages"`
}

// Label returns the display name of the spec.
func (s PackageSpec) Label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Package != "":
		return s.Package
	default:
		return s.Response
	}
}

// Present reports whether the spec wants the package installed.
func (s PackageSpec) Present() bool {
	return s.Ensure == "" || s.Ensure == EnsurePresent
}

// ManageOwner reports whether the ownership pass runs after install.
// Unset means yes.
func (s PackageSpec) ManageOwner() bool {
	return s.ManageOwnership == nil || *s.ManageOwnership
}

// Resolved returns a copy of s with the response file's values applied.
// The response file supplies the effective package, version, target, and
// repository; the declaration itself is never modified.
func (s PackageSpec) Resolved(d *response.Data) PackageSpec {
	out := s
	out.Package = d.PackageID
	out.Version = d.Version
	out.Target = d.Target
	out.Repositories = []string{d.Repository}
	return out
}
