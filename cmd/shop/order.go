package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvvmkit/blueprint/domain/shop"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and list orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place <user>",
	Short: "Turn the cart into an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		vm := ctr.CartViewModel(shop.UserID(args[0]))
		vm.Checkout.Invoke(cmd.Context(), struct{}{})
		if err := failure(vm.Checkout); err != nil {
			return err
		}
		o, _ := vm.LastOrder()
		fmt.Fprintf(cmd.OutOrStdout(), "placed order %s with %d line(s), total %s\n", o.ID, len(o.Lines), o.Total)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List the orders of a user, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		vm := ctr.OrdersViewModel(shop.UserID(args[0]))
		vm.Load.Invoke(cmd.Context(), struct{}{})
		if err := failure(vm.Load); err != nil {
			return err
		}
		orders := vm.Orders()
		if len(orders) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no orders yet")
			return nil
		}
		for _, o := range orders {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", o.ID, o.PlacedAt.Format(time.RFC3339), o.Total)
		}
		return nil
	},
}

func init() {
	orderCmd.AddCommand(orderPlaceCmd, orderListCmd)
	rootCmd.AddCommand(orderCmd)
}
