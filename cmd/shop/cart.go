package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/ui/viewmodel"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the cart of a user",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <user> <sku> <quantity> <unit-price>",
	Short: "Put an item into the cart",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		price, err := shop.ParseMoney(args[3])
		if err != nil {
			return err
		}

		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		vm := ctr.CartViewModel(shop.UserID(args[0]))
		vm.Add.Invoke(cmd.Context(), viewmodel.AddItem{SKU: args[1], Quantity: qty, UnitPrice: price})
		if err := failure(vm.Add); err != nil {
			return err
		}
		renderCart(cmd.OutOrStdout(), vm)
		return nil
	},
}

var cartListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "Show the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		vm := ctr.CartViewModel(shop.UserID(args[0]))
		vm.Load.Invoke(cmd.Context(), struct{}{})
		if err := failure(vm.Load); err != nil {
			return err
		}
		renderCart(cmd.OutOrStdout(), vm)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <user> <item-id>",
	Short: "Take an item out of the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctr, err := openContainer()
		if err != nil {
			return err
		}
		defer ctr.Close()

		vm := ctr.CartViewModel(shop.UserID(args[0]))
		vm.Remove.Invoke(cmd.Context(), shop.CartItemID(args[1]))
		if err := failure(vm.Remove); err != nil {
			return err
		}
		renderCart(cmd.OutOrStdout(), vm)
		return nil
	},
}

func renderCart(out io.Writer, vm *viewmodel.CartViewModel) {
	items := vm.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", item.ID, item.SKU, item.Quantity, item.UnitPrice, item.Subtotal())
	}
	fmt.Fprintf(w, "\t\t\tTOTAL\t%s\n", vm.Total())
	_ = w.Flush()
}

func init() {
	cartCmd.AddCommand(cartAddCmd, cartListCmd, cartRemoveCmd)
	rootCmd.AddCommand(cartCmd)
}
