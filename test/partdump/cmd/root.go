package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "partdump",
	Short: "Tools for inspecting captured multipart/form-data bodies",
}

func Execute() error {
	return rootCmd.Execute()
}
