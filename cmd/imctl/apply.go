package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/imcl"
	"github.com/conn-castle/imctl/internal/logging"
	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/reconcile"
	"github.com/conn-castle/imctl/internal/state"
	"github.com/conn-castle/imctl/internal/userctx"
)

// installer is the slice of imcl.Client the apply loop drives.
type installer interface {
	Install(spec state.PackageSpec) (string, error)
	Uninstall(spec state.PackageSpec) (string, error)
}

var (
	newClientFunc = func(u userctx.User) (installer, error) { return imcl.New(u) }
	resolveFunc   = userctx.Resolve
)

// clientFor returns the cached imcl client for u, creating it on first use.
func clientFor(cache map[string]installer, u userctx.User) (installer, error) {
	if client, ok := cache[u.Name]; ok {
		return client, nil
	}
	client, err := newClientFunc(u)
	if err != nil {
		return nil, err
	}
	cache[u.Name] = client
	return client, nil
}

func newApplyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   messages.ApplyUse,
		Short: messages.ApplyShort,
		Long:  messages.ApplyLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path, doc, err := loadState()
			if err != nil {
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

			_, _ = fmt.Fprintf(out, messages.ApplyHeaderFmt, len(specs), path)
			if !plan.HasChanges() {
				_, _ = fmt.Fprintln(out, messages.ApplyNothingToDo)
				return nil
			}
			if dryRun {
				printPlanTable(out, plan)
				_, _ = fmt.Fprintln(out, messages.ApplyDryRunNotice)
				return nil
			}

			log := logging.WithRun(uuid.NewString())
			clients := make(map[string]installer)
			installed, removed := 0, 0
			for _, action := range plan.Actions {
				if action.Op == reconcile.OpNone {
					continue
				}
				spec := action.Binding.Spec

				u, err := resolveFunc(spec.User)
				if err != nil {
					return err
				}
				client, err := clientFor(clients, u)
				if err != nil {
					return err
				}

				switch action.Op {
				case reconcile.OpInstall:
					_, _ = fmt.Fprintf(out, messages.ApplyInstallingFmt, spec.Label(), spec.Version, spec.Target)
					log.Info().
						Str("package", spec.Package).
						Str("version", spec.Version).
						Str("target", spec.Target).
						Str("user", u.Name).
						Msg("installing")
					if _, err := client.Install(spec); err != nil {
						return fmt.Errorf(messages.ApplyInstallCtxFmt, spec.Label(), spec.Version, u.Name, err)
					}
					installed++
				case reconcile.OpUninstall:
					_, _ = fmt.Fprintf(out, messages.ApplyRemovingFmt, spec.Label(), spec.Version, spec.Target)
					log.Info().
						Str("package", spec.Package).
						Str("version", spec.Version).
						Str("target", spec.Target).
						Str("user", u.Name).
						Msg("removing")
					if _, err := client.Uninstall(spec); err != nil {
						return fmt.Errorf(messages.ApplyRemoveCtxFmt, spec.Label(), spec.Version, u.Name, err)
					}
					removed++
				}
			}

			_, _ = fmt.Fprintf(out, messages.ApplyDoneFmt, installed+removed, installed, removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.ApplyDryRunFlag)
	return cmd
}
