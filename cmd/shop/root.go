package main

import (
	"github.com/spf13/cobra"
	"go.llib.dev/frameless/pkg/logging"

	"github.com/mvvmkit/blueprint/internal/di"
	"github.com/mvvmkit/blueprint/pkg/command"
)

var rootLogger *logging.Logger

var rootCmd = &cobra.Command{
	Use:           "shop",
	Short:         "shop is a terminal front end for the blueprint shop feature",
	Long:          "shop registers users, manages their carts and places orders, storage is picked with SHOP_STORAGE",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// openContainer builds the dependency container from the environment.
// The caller must Close it.
func openContainer() (*di.Container, error) {
	c, err := di.LoadConfig()
	if err != nil {
		return nil, err
	}
	return di.New(c, rootLogger)
}

// failure turns a finished command into the error of the cobra command.
func failure[Arg, R any](c *command.Command[Arg, R]) error {
	if c.HasError() {
		return c.Result().Err()
	}
	return nil
}
