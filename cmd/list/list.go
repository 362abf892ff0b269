package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/replicate/modelget/pkg/catalog"
	"github.com/replicate/modelget/pkg/config"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the built-in models and their sources",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, entry := range catalog.All().WithSources(config.SourceOverrides()) {
				fmt.Fprintf(out, "%s\n  %s\n", entry.Name, strings.Join(entry.URLs, "\n  "))
			}
		},
	}
}
