package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/pkg/command"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		type input struct{ Name, Email string }
		register := command.New(func(ctx context.Context, in input) (shop.User, error) {
			return ctr.UseCases.RegisterUser(ctx, in.Name, in.Email)
		})
		register.Name = "user.register"
		register.Logger = ctr.Logger

		register.Invoke(cmd.Context(), input{Name: args[0], Email: args[1]})
		if err := failure(register); err != nil {
			return err
		}
		u, _ := register.Result().Value()
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s <%s> with id %s\n", u.Name, u.Email, u.ID)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userRegisterCmd)
	rootCmd.AddCommand(userCmd)
}
