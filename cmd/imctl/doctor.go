package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/imctl/internal/doctor"
	"github.com/conn-castle/imctl/internal/messages"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Long:  messages.DoctorLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			hostname, err := os.Hostname()
			if err != nil {
				hostname = "localhost"
			}
			_, _ = fmt.Fprintf(out, messages.DoctorHeaderFmt, hostname)

			var allResults []doctor.Result

			stateResults, doc := doctor.CheckState(flagFile)
			allResults = append(allResults, stateResults...)

			if doc != nil {
				allResults = append(allResults, doctor.CheckUsers(doc)...)
			}

			if u, ok := doctor.ActingUser(doc); ok {
				allResults = append(allResults, doctor.CheckInstaller(u)...)
				allResults = append(allResults, doctor.CheckRegistry(u)...)
			} else {
				allResults = append(allResults, doctor.Result{
					Status:    doctor.StatusWarn,
					CheckName: messages.DoctorCheckNameCLI,
					Message:   messages.DoctorCLINoUser,
				})
			}

			allResults = append(allResults, doctor.CheckHost()...)

			if doc != nil {
				allResults = append(allResults, doctor.CheckBusyTargets(doc)...)
			}

			hasFailures := false
			for _, result := range allResults {
				printDoctorResult(out, result)
				if result.Status == doctor.StatusFail {
					hasFailures = true
				}
			}

			_, _ = fmt.Fprintln(out)
			if hasFailures {
				return errors.New(messages.DoctorHasFailures)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorAllGood))
			return nil
		},
	}
}

func printDoctorResult(out io.Writer, result doctor.Result) {
	var status string
	switch result.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorOKPrefix)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorWarnPrefix)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorFailPrefix)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, result.CheckName, result.Message)
	if result.Recommendation != "" {
		_, _ = fmt.Fprintf(out, messages.DoctorRecommendFmt, result.Recommendation)
	}
}
