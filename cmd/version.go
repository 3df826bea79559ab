package cmd

import (
	"fmt"

	"github.com/smat-dev/jinni/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd displays the current version of jinni.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of jinni",
	Long:  `Display the current version information of the jinni CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Println(v.Version)
		} else {
			fmt.Println(v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
