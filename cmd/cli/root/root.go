package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facility",
	Short: "Facility Control CLI",
	Long:  "Command line interface for the Facility Control API",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command so subcommand packages can attach
// themselves in their init functions.
func GetRoot() *cobra.Command {
	return rootCmd
}
