package cmd

import (
	"github.com/ZacxDev/go-static-blog/builder"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadConfig()
		if err != nil {
			return err
		}

		_, err = builder.New(site, newLogger()).Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
