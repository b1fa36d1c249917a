package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/reconcile"
	"github.com/conn-castle/imctl/internal/state"
)

// specFlags collects the package-definition flags shared by install and add.
type specFlags struct {
	version      string
	target       string
	user         string
	repositories []string
	response     string
	jdkPackage   string
	jdkVersion   string
	options      string
	owner        string
	group        string
	noChown      bool
}

func (f *specFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.version, "version", "", messages.InstallVersionFlag)
	fl.StringVar(&f.target, "target", "", messages.InstallTargetFlag)
	fl.StringVar(&f.user, "user", "", messages.InstallUserFlag)
	fl.StringArrayVar(&f.repositories, "repository", nil, messages.InstallRepositoryFlag)
	fl.StringVar(&f.response, "response", "", messages.InstallResponseFlag)
	fl.StringVar(&f.jdkPackage, "jdk-package", "", messages.InstallJDKPackageFlag)
	fl.StringVar(&f.jdkVersion, "jdk-version", "", messages.InstallJDKVersionFlag)
	fl.StringVar(&f.options, "options", "", messages.InstallOptionsFlag)
	fl.StringVar(&f.owner, "owner", "", messages.InstallOwnerFlag)
	fl.StringVar(&f.group, "group", "", messages.InstallGroupFlag)
	fl.BoolVar(&f.noChown, "no-chown", false, messages.InstallNoChownFlag)
}

func (f *specFlags) spec(packageID, ensure string) state.PackageSpec {
	spec := state.PackageSpec{
		Ensure:       ensure,
		Package:      packageID,
		Version:      f.version,
		Target:       f.target,
		User:         f.user,
		Response:     f.response,
		Repositories: f.repositories,
		JDKPackage:   f.jdkPackage,
		JDKVersion:   f.jdkVersion,
		Options:      f.options,
		Owner:        f.owner,
		Group:        f.group,
	}
	if f.noChown {
		manage := false
		spec.ManageOwnership = &manage
	}
	return spec
}

// requirePackageArg validates the single <package-id> positional argument.
func requirePackageArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New(messages.PackageIDRequired)
	}
	return nil
}

func newInstallCmd() *cobra.Command {
	flags := &specFlags{}

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  requirePackageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			doc := &state.Document{Packages: []state.PackageSpec{flags.spec(args[0], state.EnsurePresent)}}
			if err := doc.Validate("command line"); err != nil {
				return err
			}

			specs, err := resolveSpecsFunc(doc.Packages)
			if err != nil {
				return err
			}
			inv, err := loadInventoryFunc(specs)
			if err != nil {
				return err
			}
			plan := reconcile.BuildPlan(specs, inv.Packages)

			resolved := plan.Actions[0].Binding.Spec
			if plan.Actions[0].Op == reconcile.OpNone {
				_, _ = fmt.Fprintf(out, messages.InstallAlreadyFmt, resolved.Package, resolved.Version, resolved.Target)
				return nil
			}

			u, err := resolveFunc(resolved.User)
			if err != nil {
				return err
			}
			client, err := newClientFunc(u)
			if err != nil {
				return err
			}
			if _, err := client.Install(resolved); err != nil {
				return fmt.Errorf(messages.ApplyInstallCtxFmt, resolved.Label(), resolved.Version, u.Name, err)
			}
			_, _ = fmt.Fprintf(out, messages.InstallDoneFmt, resolved.Package, resolved.Version, resolved.Target)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
