package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/messages"
	"github.com/conn-castle/imctl/internal/registry"
)

var readRegistryFunc = registry.ReadFor

func newInstalledCmd() *cobra.Command {
	var userName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   messages.InstalledUse,
		Short: messages.InstalledShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			u, err := resolveFunc(userName)
			if err != nil {
				return err
			}
			records, err := readRegistryFunc(u)
			if err != nil && !errors.Is(err, registry.ErrNotFound) {
				return err
			}

			if asJSON {
				if records == nil {
					records = []registry.Package{}
				}
				encoded, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(encoded))
				return nil
			}

			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, messages.InstalledEmpty)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.InstalledHeaderFmt, len(records), registry.DefaultPath(u))
			for _, rec := range records {
				_, _ = fmt.Fprintf(out, messages.InstalledLineFmt, rec.ID, rec.Version, rec.Kind(), rec.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", messages.InstalledUserFlag)
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.InstalledJSONFlag)
	return cmd
}
