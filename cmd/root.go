package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "stockdash",
	Short: "Stock price dashboard & predictor",
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
