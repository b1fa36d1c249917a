package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/fsutil"
	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/state"
)

func newAddCmd() *cobra.Command {
	flags := &specFlags{}
	var name, ensure string

	cmd := &cobra.Command{
		Use:   messages.AddUse,
		Short: messages.AddShort,
		Args:  requirePackageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path, err := state.Find(flagFile)
			if err != nil {
				return fmt.Errorf(messages.AddMissingFmt, state.LocalFile)
			}
			if !strings.HasSuffix(path, ".toml") {
				return fmt.Errorf(messages.AddTOMLOnlyFmt, path)
			}
			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				return fmt.Errorf(messages.AddMissingFmt, path)
			}
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, err := state.ParseLenient(data, path)
			if err != nil {
				return err
			}

			spec := flags.spec(args[0], ensure)
			spec.Name = name
			label := spec.Label()
			for _, existing := range doc.Packages {
				if existing.Label() == label {
					return fmt.Errorf(messages.AddDuplicateFmt, label, path)
				}
			}

			combined := &state.Document{Packages: append(doc.Packages, spec)}
			if err := combined.Validate(path); err != nil {
				return err
			}

			updated, err := state.AppendPackage(string(data), spec, path)
			if err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.AddDoneFmt, label, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", messages.AddNameFlag)
	cmd.Flags().StringVar(&ensure, "ensure", "", messages.AddEnsureFlag)
	flags.register(cmd)
	return cmd
}
