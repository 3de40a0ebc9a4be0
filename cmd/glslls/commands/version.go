package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/glslls/version"
)

// VersionCmd prints build and platform information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show glslls version information",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		info := version.Get()

		if jsonOutput {
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(out))
			return
		}
		fmt.Println(info.String())
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "output version info as JSON")
}
