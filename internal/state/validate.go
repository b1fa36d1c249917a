package state

import (
	"fmt"

	"github.com/conn-castle/imctl/internal/messages"
)

// Validate checks the document against the declaration rules. source is
// the file path used in error messages.
func (d *Document) Validate(source string) error {
	if len(d.Packages) == 0 {
		return fmt.Errorf(messages.StateNoPackages, ErrValidation, source)
	}
	seen := make(map[string]struct{}, len(d.Packages))
	for i, p := range d.Packages {
		label := p.Label()
		if label == "" {
			return fmt.Errorf(messages.StateNameRequiredFmt, ErrValidation, i+1, source)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf(messages.StateDuplicateNameFmt, ErrValidation, label, source)
		}
		seen[label] = struct{}{}
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p PackageSpec) validate() error {
	if p.Ensure != "" && p.Ensure != EnsurePresent && p.Ensure != EnsureAbsent {
		return fmt.Errorf(messages.StateEnsureInvalidFmt, ErrValidation, p.Label(), p.Ensure)
	}
	// A response file supplies package, version, target, and repository at
	// resolution time; without one they must be declared.
	if p.Response == "" && (p.Package == "" || p.Version == "" || p.Target == "") {
		return fmt.Errorf(messages.StateSpecIncompleteFmt, ErrValidation, p.Label())
	}
	if p.Response == "" && p.Present() && len(p.Repositories) == 0 {
		return fmt.Errorf(messages.StateNoRepositoriesFmt, ErrValidation, p.Label())
	}
	if (p.JDKPackage == "") != (p.JDKVersion == "") {
		return fmt.Errorf(messages.StateJDKPairFmt, ErrValidation, p.Label())
	}
	return nil
}
