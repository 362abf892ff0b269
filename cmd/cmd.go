package cmd

import (
	"github.com/spf13/cobra"

	"github.com/replicate/modelget/cmd/bundle"
	"github.com/replicate/modelget/cmd/convert"
	"github.com/replicate/modelget/cmd/fallback"
	"github.com/replicate/modelget/cmd/fetch"
	"github.com/replicate/modelget/cmd/list"
	"github.com/replicate/modelget/cmd/root"
	"github.com/replicate/modelget/cmd/version"
)

func GetRootCommand() *cobra.Command {
	rootCMD := root.GetCommand()
	rootCMD.AddCommand(fetch.GetCommand())
	rootCMD.AddCommand(bundle.GetCommand())
	rootCMD.AddCommand(fallback.GetCommand())
	rootCMD.AddCommand(convert.GetCommand())
	rootCMD.AddCommand(list.GetCommand())
	rootCMD.AddCommand(version.VersionCMD)
	return rootCMD
}
