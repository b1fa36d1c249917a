// Package wizard drives the interactive flow behind "imctl init": it
// prompts for the first package entry and renders the desired-state file.
package wizard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/state"
)

var (
	errWizardBack      = errors.New("wizard back requested")
	errWizardCancelled = errors.New("wizard cancelled")
)

// Answers collects the fields of the first package entry.
type Answers struct {
	Package    string
	Version    string
	Target     string
	Repository string
	User       string
}

// Spec converts the collected answers into a package entry. The package
// id doubles as the entry label, so no explicit name is emitted.
func (a Answers) Spec() state.PackageSpec {
	spec := state.PackageSpec{
		Package: strings.TrimSpace(a.Package),
		Version: strings.TrimSpace(a.Version),
		Target:  strings.TrimSpace(a.Target),
		User:    strings.TrimSpace(a.User),
	}
	if repo := strings.TrimSpace(a.Repository); repo != "" {
		spec.Repositories = []string{repo}
	}
	return spec
}

type flowStep int

const (
	stepPackage flowStep = iota
	stepVersion
	stepTarget
	stepRepository
	stepUser
	stepConfirm
)

// Run walks through the package prompts and the final confirmation.
// ok is false when the user backs out of the wizard or declines the
// confirmation; neither is an error.
func Run(ui UI, defaults Answers) (answers Answers, ok bool, err error) {
	answers = defaults
	confirmed := true
	if err := promptFlow(ui, &answers, &confirmed); err != nil {
		if errors.Is(err, errWizardBack) || errors.Is(err, errWizardCancelled) {
			return Answers{}, false, nil
		}
		return Answers{}, false, err
	}
	if !confirmed {
		return Answers{}, false, nil
	}
	return answers, true, nil
}

func promptFlow(ui UI, answers *Answers, confirmed *bool) error {
	step := stepPackage
	for {
		snapshot := *answers
		var err error

		switch step {
		case stepPackage:
			err = ui.Input(messages.WizardTitlePackage, messages.WizardDescPackage, validatePackage, &answers.Package)
		case stepVersion:
			err = ui.Input(messages.WizardTitleVersion, messages.WizardDescVersion, validateVersion, &answers.Version)
		case stepTarget:
			err = ui.Input(messages.WizardTitleTarget, messages.WizardDescTarget, validateTarget, &answers.Target)
		case stepRepository:
			err = ui.Input(messages.WizardTitleRepository, messages.WizardDescRepository, nil, &answers.Repository)
		case stepUser:
			err = ui.Input(messages.WizardTitleUser, messages.WizardDescUser, nil, &answers.User)
		case stepConfirm:
			err = ui.Confirm(messages.WizardTitleConfirm, confirmed)
		default:
			return nil
		}

		if err == nil {
			if step == stepConfirm {
				return nil
			}
			step++
			continue
		}

		if !errors.Is(err, errWizardBack) {
			return err
		}

		*answers = snapshot

		if step == stepPackage {
			exit, confirmErr := confirmExitOnFirstStepEscape(ui)
			if confirmErr != nil {
				return confirmErr
			}
			if exit {
				return errWizardCancelled
			}
			continue
		}

		step--
	}
}

func confirmExitOnFirstStepEscape(ui UI) (bool, error) {
	exit := true
	if err := ui.Confirm(messages.WizardExitPrompt, &exit); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return exit, nil
}

func validatePackage(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(messages.WizardPackageRequired)
	}
	return nil
}

func validateVersion(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(messages.WizardVersionRequired)
	}
	return nil
}

func validateTarget(value string) error {
	if !filepath.IsAbs(strings.TrimSpace(value)) {
		return errors.New(messages.WizardTargetAbsolute)
	}
	return nil
}

// Scaffold renders a fresh desired-state file containing the single
// entry spec. source is the destination path, used in error messages.
func Scaffold(spec state.PackageSpec, source string, now time.Time) (string, error) {
	preamble := fmt.Sprintf(messages.WizardStatePreambleFmt, now.Format("2006-01-02"))
	return state.AppendPackage(preamble, spec, source)
}
