package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/fsutil"
	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/terminal"
	"github.com/conn-castle/imctl/internal/wizard"
)

var (
	isTerminalFunc = terminal.IsInteractive
	runWizardFunc  = func(defaults wizard.Answers) (wizard.Answers, bool, error) {
		return wizard.Run(wizard.NewHuhUI(), defaults)
	}
)

func newInitCmd() *cobra.Command {
	var (
		force    bool
		output   string
		defaults wizard.Answers
	)

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Long:  messages.InitLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf(messages.InitExistsFmt, output)
			}

			var answers wizard.Answers
			switch {
			case defaults.Package != "" && defaults.Version != "" && defaults.Target != "":
				answers = defaults
			case isTerminalFunc():
				var (
					ok  bool
					err error
				)
				answers, ok, err = runWizardFunc(defaults)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(out, messages.InitCancelled)
					return nil
				}
			case force:
				return writeInitSample(out, output)
			default:
				return errors.New(messages.InitNonInteractive)
			}

			spec := answers.Spec()
			content, err := wizard.Scaffold(spec, output, time.Now())
			if err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(output, []byte(content), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.InitWroteFmt, output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.InitForceFlag)
	cmd.Flags().StringVarP(&output, "output", "o", state.LocalFile, messages.InitOutputFlag)
	cmd.Flags().StringVar(&defaults.Package, "package", "", messages.InitPackageFlag)
	cmd.Flags().StringVar(&defaults.Version, "version", "", messages.InitVersionFlag)
	cmd.Flags().StringVar(&defaults.Target, "target", "", messages.InitTargetFlag)
	cmd.Flags().StringVar(&defaults.Repository, "repository", "", messages.InitRepositoryFlag)
	cmd.Flags().StringVar(&defaults.User, "user", "", messages.InitUserFlag)

	return cmd
}

// writeInitSample scaffolds a commented template when no terminal is
// attached and no package details were supplied.
func writeInitSample(out io.Writer, output string) error {
	content := fmt.Sprintf(messages.WizardStatePreambleFmt, time.Now().Format("2006-01-02")) + messages.InitSampleBody
	if err := fsutil.WriteFileAtomic(output, []byte(content), 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, messages.InitWroteFmt, output)
	return nil
}
