package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version of the current build, overridden with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "facetd <command> [flags]",
		Short:         "Facet filtering and suggestion engine",
		Long:          "Facet filtering, autocomplete suggestions and ranking for catalog collections.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: `  facetd serve
  facetd serve -c ./facetd.yaml
  facetd filter --seed seed/agency.json --collection athletes --range age=24:26
  facetd version`,
	}

	rootCmd.AddCommand(
		serveCmd(),
		filterCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "facetd version %s\n", Version)
		},
	}
}
