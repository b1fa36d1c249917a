package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/logging"
	"github.com/conn-castle/imctl/internal/messages"
)

// Global flags, bound by newRootCmd and read by the subcommands.
var (
	flagFile      string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(logging.Config{
				Level:  flagLogLevel,
				Debug:  flagDebug,
				Format: flagLogFormat,
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", messages.RootFileFlag)
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, messages.RootDebugFlag)
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", messages.RootLogLevelFlag)
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", messages.RootLogFormatFlag)

	cmd.AddCommand(
		newPlanCmd(),
		newApplyCmd(),
		newInstalledCmd(),
		newInstallCmd(),
		newUninstallCmd(),
		newAddCmd(),
		newInitCmd(),
		newDoctorCmd(),
	)
	return cmd
}
