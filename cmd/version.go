package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dum-monitor/dum/internal/pkg/utils"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			version := utils.GetVersion()

			fmt.Println("dum", version.Version)
			if version.GoVersion != "" {
				fmt.Println("built with", version.GoVersion)
			}
		},
	}
}
