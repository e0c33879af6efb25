package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/canary"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of canary",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("canary version %s\n", strings.TrimSpace(canary.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
