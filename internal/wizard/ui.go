package wizard

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/terminal"
)

// UI defines the interaction methods.
type UI interface {
	Input(title, description string, validate func(string) error, value *string) error
	Confirm(title string, value *bool) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	ctrlCAbort bool // set by key filter during form.Run(); reset before each form
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a new HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.WizardRequiresTerminal)
}

// wizardKeyMap returns a custom keymap for wizard forms. Esc triggers
// form abort (mapped to back navigation) and Ctrl+C triggers form abort
// (mapped to hard exit). The field-level Prev and Next bindings are
// repurposed as display-only hints since the form intercepts both keys
// at the Quit level before any field binding can fire.
func wizardKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	// Both Esc and Ctrl+C trigger form abort; runForm distinguishes them
	// via the ctrlCAbort flag.
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	// Display-only Prev: shows "esc • back" in hints bar.
	escBack := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	km.Input.Prev = escBack
	km.Confirm.Prev = escBack
	km.Note.Prev = escBack

	// Display-only Next: shows "ctrl+c • exit" in hints bar.
	ctrlCExit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))
	km.Input.Next = ctrlCExit
	km.Confirm.Next = ctrlCExit
	km.Note.Next = ctrlCExit

	return km
}

// hintField wraps a huh.Field so that the Prev ("esc"/"back") and Next
// ("ctrl+c"/"exit") hint bindings remain visible in the help bar.
//
// huh's UpdateFieldPositions (called on every KeyMsg and during NewForm)
// calls WithPosition on each field, which disables Prev for the first field
// and Next for the last field. Since every wizard form has a single field,
// both are always disabled. This wrapper intercepts WithPosition and
// immediately re-applies the wizard keymap to restore the hint bindings.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

// Update delegates to the inner field and re-wraps so the wrapper stays in
// the group's field list (group.Update stores the returned tea.Model).
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition lets huh set positional state (which disables Prev/Next),
// then re-applies the wizard keymap to restore the hint bindings.
func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

// formFilter returns a tea.WithFilter callback that sets ctrlCAbort when
// Ctrl+C is pressed and converts InterruptMsg (from huh's CancelCmd, or
// an external SIGINT) to QuitMsg so bubbletea takes the graceful shutdown
// path and the renderer properly clears the form output.
//
// In raw mode keyboard Ctrl+C arrives as tea.KeyMsg{Type: KeyCtrlC}, not
// as an OS signal. The KeyMsg fires before InterruptMsg, so the flag is
// already set when the abort completes. Esc produces KeyEscape with no
// flag set, so that abort maps to back.
func (ui *HuhUI) formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.ctrlCAbort = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm validates terminal availability and runs the provided form.
// Esc returns errWizardBack; Ctrl+C returns errWizardCancelled.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.ctrlCAbort = false
	form.WithKeyMap(wizardKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.ctrlCAbort {
			return errWizardCancelled
		}
		return errWizardBack
	}
	return err
}

// newHintField wraps a huh.Field so that Prev/Next hint bindings survive
// huh's positional disabling in single-field forms.
func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: wizardKeyMap()}
}

// Input renders a single text prompt. validate runs when the field is
// submitted; nil accepts anything.
func (ui *HuhUI) Input(title, description string, validate func(string) error, value *string) error {
	input := huh.NewInput().
		Title(title).
		Description(description).
		Value(value)
	if validate != nil {
		input = input.Validate(validate)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(input),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewConfirm().
				Title(title).
				Value(value)),
		),
	))
}

// Note renders an informational note screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewNote().
				Title(title).
				Description(body)),
		),
	))
}
