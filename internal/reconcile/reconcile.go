// Package reconcile decides what has to change: it binds each declared
// package to the installation-registry record that satisfies it and turns
// the unbound remainder into install and uninstall actions.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/registry"
	"github.com/conn-castle/imctl/internal/response"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

// Op is the action apply takes for one declared package.
type Op string

const (
	// OpNone means the installed state already matches.
	OpNone Op = "none"
	// OpInstall means the package is declared present but not installed.
	OpInstall Op = "install"
	// OpUninstall means the package is declared absent but installed.
	OpUninstall Op = "uninstall"
)

// Binding pairs a resolved spec with the registry record that satisfies
// it, if any.
type Binding struct {
	Spec state.PackageSpec
	// Installed is the first matching registry record, nil when none.
	Installed *registry.Package
	// Drift notes a record sharing the spec's target and package id but
	// not its version. Informational only; it never changes the plan.
	Drift string
}

// Action is one planned step.
type Action struct {
	Op      Op
	Binding Binding
}

// Plan is what one reconciliation pass would do.
type Plan struct {
	Actions []Action
}

// Counts returns how many actions install, remove, and leave alone.
func (p Plan) Counts() (installs, removes, unchanged int) {
	for _, a := range p.Actions {
		switch a.Op {
		case OpInstall:
			installs++
		case OpUninstall:
			removes++
		default:
			unchanged++
		}
	}
	return installs, removes, unchanged
}

// HasChanges reports whether the plan mutates anything.
func (p Plan) HasChanges() bool {
	installs, removes, _ := p.Counts()
	return installs+removes > 0
}

// Inventory is the installed-package view one pass reconciles against.
type Inventory struct {
	User     userctx.User
	Packages []registry.Package
}

// Test seams.
var (
	readResponseFunc = response.Read
	resolveUserFunc  = userctx.Resolve
	readRegistryFunc = registry.ReadFor
)

// Resolve returns a copy of specs with every declared response file
// applied. The input slice is never modified; bindings downstream see
// only resolved specs.
func Resolve(specs []state.PackageSpec) ([]state.PackageSpec, error) {
	out := make([]state.PackageSpec, len(specs))
	for i, s := range specs {
		if s.Response == "" {
			out[i] = s
			continue
		}
		data, err := readResponseFunc(s.Response)
		if err != nil {
			return nil, fmt.Errorf(messages.ApplyResolveCtxFmt, s.Label(), err)
		}
		out[i] = s.Resolved(data)
	}
	return out, nil
}

// LoadInventory reads the installation registry once for the whole pass,
// as the first declared user. A missing registry is an empty inventory,
// not an error: it means nothing is installed yet.
func LoadInventory(specs []state.PackageSpec) (Inventory, error) {
	var name string
	if len(specs) > 0 {
		name = specs[0].User
	}
	u, err := resolveUserFunc(name)
	if err != nil {
		return Inventory{}, err
	}
	packages, err := readRegistryFunc(u)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return Inventory{User: u}, nil
		}
		return Inventory{}, err
	}
	return Inventory{User: u, Packages: packages}, nil
}

// Match reports whether rec satisfies spec: exact equality on target
// path, package id, and version. Vendor version strings do not order
// reliably, so nothing looser than equality is safe here.
func Match(spec state.PackageSpec, rec registry.Package) bool {
	return rec.Path == spec.Target && rec.ID == spec.Package && rec.Version == spec.Version
}

// Find returns the first registry record matching spec, or nil.
func Find(spec state.PackageSpec, installed []registry.Package) *registry.Package {
	for i := range installed {
		if Match(spec, installed[i]) {
			return &installed[i]
		}
	}
	return nil
}

// BuildPlan compares resolved specs against the installed inventory and
// decides the action for each.
func BuildPlan(specs []state.PackageSpec, installed []registry.Package) Plan {
	actions := make([]Action, 0, len(specs))
	for _, s := range specs {
		rec := Find(s, installed)
		b := Binding{Spec: s, Installed: rec}
		if rec == nil {
			b.Drift = driftNote(s, installed)
		}

		op := OpNone
		switch {
		case s.Present() && rec == nil:
			op = OpInstall
		case !s.Present() && rec != nil:
			op = OpUninstall
		}
		actions = append(actions, Action{Op: op, Binding: b})
	}
	return Plan{Actions: actions}
}

// driftNote looks for a record that matches everything but the version.
func driftNote(spec state.PackageSpec, installed []registry.Package) string {
	for _, rec := range installed {
		if rec.Path == spec.Target && rec.ID == spec.Package && rec.Version != spec.Version {
			return fmt.Sprintf(messages.PlanDriftedFmt, describeDrift(rec.Version, spec.Version))
		}
	}
	return ""
}
