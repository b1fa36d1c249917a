package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/reconcile"
	"github.com/conn-castle/imctl/internal/registry"
	"github.com/conn-castle/imctl/internal/state"
)

var (
	resolveSpecsFunc  = reconcile.Resolve
	loadInventoryFunc = reconcile.LoadInventory
)

// loadState finds and strictly loads the desired-state file.
func loadState() (string, *state.Document, error) {
	path, err := state.Find(flagFile)
	if err != nil {
		return "", nil, err
	}
	doc, err := state.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

func newPlanCmd() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
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

			_, _ = fmt.Fprintf(out, messages.PlanHeaderFmt, path, len(specs), len(inv.Packages))
			if showDiff {
				printPlanDiff(out, inv.Packages, plan)
			} else {
				printPlanTable(out, plan)
			}

			if !plan.HasChanges() {
				_, _ = fmt.Fprintln(out, messages.PlanNoChanges)
				return nil
			}
			installs, removes, unchanged := plan.Counts()
			_, _ = fmt.Fprintf(out, messages.PlanSummaryFmt, installs, removes, unchanged)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.PlanDiffFlag)
	return cmd
}

func printPlanTable(out io.Writer, plan reconcile.Plan) {
	for _, action := range plan.Actions {
		spec := action.Binding.Spec
		note := spec.Target
		var glyph string
		switch action.Op {
		case reconcile.OpInstall:
			glyph = color.GreenString("+")
			if action.Binding.Drift != "" {
				note += " (" + action.Binding.Drift + ")"
			}
		case reconcile.OpUninstall:
			glyph = color.RedString("-")
		default:
			glyph = " "
		}
		_, _ = fmt.Fprintf(out, messages.PlanLineFmt, glyph, spec.Label(), spec.Version, note)
	}
}

// printPlanDiff renders the plan as a unified diff from the installed
// inventory to the declared outcome.
func printPlanDiff(out io.Writer, installed []registry.Package, plan reconcile.Plan) {
	diff := udiff.Unified("installed", "declared", inventoryLines(installed), projectedLines(installed, plan))
	if diff != "" {
		_, _ = fmt.Fprint(out, diff)
	}
}

func recordLine(rec registry.Package) string {
	return fmt.Sprintf("%s %s @ %s\n", rec.ID, rec.Version, rec.Path)
}

func inventoryLines(installed []registry.Package) string {
	var b strings.Builder
	for _, rec := range installed {
		b.WriteString(recordLine(rec))
	}
	return b.String()
}

// projectedLines renders the inventory as it would look after apply:
// uninstalled records dropped, planned installs appended.
func projectedLines(installed []registry.Package, plan reconcile.Plan) string {
	removed := make(map[registry.Package]bool)
	for _, action := range plan.Actions {
		if action.Op == reconcile.OpUninstall && action.Binding.Installed != nil {
			removed[*action.Binding.Installed] = true
		}
	}

	var b strings.Builder
	for _, rec := range installed {
		if removed[rec] {
			continue
		}
		b.WriteString(recordLine(rec))
	}
	for _, action := range plan.Actions {
		if action.Op == reconcile.OpInstall {
			spec := action.Binding.Spec
			b.WriteString(recordLine(registry.Package{ID: spec.Package, Version: spec.Version, Path: spec.Target}))
		}
	}
	return b.String()
}
