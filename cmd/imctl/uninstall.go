package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/reconcile"
	"github.com/conn-castle/imctl/internal/state"
)

func newUninstallCmd() *cobra.Command {
	var version, target, userName string

	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  requirePackageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			spec := state.PackageSpec{
				Ensure:  state.EnsureAbsent,
				Package: args[0],
				Version: version,
				Target:  target,
				User:    userName,
			}
			doc := &state.Document{Packages: []state.PackageSpec{spec}}
			if err := doc.Validate("command line"); err != nil {
				return err
			}

			inv, err := loadInventoryFunc(doc.Packages)
			if err != nil {
				return err
			}
			plan := reconcile.BuildPlan(doc.Packages, inv.Packages)

			if plan.Actions[0].Op == reconcile.OpNone {
				_, _ = fmt.Fprintf(out, messages.UninstallNotInstalledFmt, spec.Package, spec.Version, spec.Target)
				return nil
			}

			u, err := resolveFunc(spec.User)
			if err != nil {
				return err
			}
			client, err := newClientFunc(u)
			if err != nil {
				return err
			}
			if _, err := client.Uninstall(spec); err != nil {
				return fmt.Errorf(messages.ApplyRemoveCtxFmt, spec.Label(), spec.Version, u.Name, err)
			}
			_, _ = fmt.Fprintf(out, messages.UninstallDoneFmt, spec.Package, spec.Version, spec.Target)
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", messages.InstallVersionFlag)
	cmd.Flags().StringVar(&target, "target", "", messages.InstallTargetFlag)
	cmd.Flags().StringVar(&userName, "user", "", messages.InstallUserFlag)
	return cmd
}
