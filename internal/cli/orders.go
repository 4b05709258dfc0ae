package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Query and modify the orders table",
}

var ordersListLimit int

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			orders, err := dal.ListOrders(cmd.Context(), h, ordersListLimit)
			if err != nil {
				return err
			}
			printOrders(cmd, orders)
			return nil
		})
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order_number>",
	Short: "Show one order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "order number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			ctx := cmd.Context()
			o, err := dal.GetOrder(ctx, h, number)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printOrder(out, o)
			if o.Comments.Valid {
				fmt.Fprintf(out, "  comments: %s\n", o.Comments.String)
			}

			items, err := dal.OrderLineItems(ctx, h, number)
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(out, "  %2d  %-40s %3d x %8.2f\n",
					it.OrderLineNumber, it.ProductName, it.QuantityOrdered, it.PriceEach)
			}
			return nil
		})
	},
}

var ordersByCustomerCmd = &cobra.Command{
	Use:   "by-customer <customer_number>",
	Short: "List orders of one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "customer number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			orders, err := dal.OrdersByCustomer(cmd.Context(), h, number)
			if err != nil {
				return err
			}
			printOrders(cmd, orders)
			return nil
		})
	},
}

var ordersByStatusCmd = &cobra.Command{
	Use:   "by-status <status>",
	Short: "List orders with a given status",
	Long: `List orders with a given status. ClassicModels statuses are
In Process, Shipped, Resolved, Cancelled, On Hold and Disputed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			orders, err := dal.OrdersByStatus(cmd.Context(), h, args[0])
			if err != nil {
				return err
			}
			printOrders(cmd, orders)
			return nil
		})
	},
}

var ordersShipCmd = &cobra.Command{
	Use:   "ship <order_number>",
	Short: "Mark an order shipped as of today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "order number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			shipped := time.Now().UTC()
			if err := dal.UpdateOrderStatus(cmd.Context(), h, number, "Shipped", &shipped); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %d shipped %s\n", number, shipped.Format("2006-01-02"))
			return nil
		})
	},
}

func init() {
	ordersListCmd.Flags().IntVar(&ordersListLimit, "limit", 20, "Maximum rows to return")
	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersByCustomerCmd,
		ordersByStatusCmd, ordersShipCmd)
	rootCmd.AddCommand(ordersCmd)
}

func printOrders(cmd *cobra.Command, orders []dal.Order) {
	out := cmd.OutOrStdout()
	for _, o := range orders {
		printOrder(out, o)
	}
	fmt.Fprintf(out, "%d order(s)\n", len(orders))
}
