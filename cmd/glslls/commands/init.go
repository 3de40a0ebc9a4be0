package commands

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/teranos/glslls/config"
)

var initForce bool

// InitCmd writes a glslls.toml populated with the default
// configuration values to the current directory, so a project can
// start from a baseline holding every default value instead of an
// empty file. The file carries no comments.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default glslls.toml in the current directory",
	RunE:  runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing glslls.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	const path = "glslls.toml"

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	config.Reset()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
