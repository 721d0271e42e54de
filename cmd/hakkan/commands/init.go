package commands

import (
	"fmt"

	"git.home.luguber.info/inful/hakkan/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(root.Config, i.Force)
}

func RunInit(configPath string, force bool) error {
	path := config.NormalizeFilename(configPath)
	if err := config.Init(path, force); err != nil {
		return err
	}
	fmt.Printf("Wrote example configuration to %s\n", path)
	return nil
}
