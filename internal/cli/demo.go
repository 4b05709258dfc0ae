package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the ClassicModels walkthrough",
	Long: `Demo acquires one connection and walks through the sample data:
customers in the USA, one customer with their orders, the most recent
orders, and the line items of the first of those orders.

Requires the ClassicModels sample database to be loaded.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	return withConnection(cmd, func(h mydal.Handle) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		usa, err := dal.CustomersByCountry(ctx, h, "USA")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Customers in the USA: %d\n", len(usa))
		for i, c := range usa {
			if i == 5 {
				fmt.Fprintf(out, "  ... and %d more\n", len(usa)-5)
				break
			}
			fmt.Fprintf(out, "  %d  %s (%s)\n", c.CustomerNumber, c.CustomerName, c.City)
		}

		const customerNumber = 103
		customer, err := dal.GetCustomer(ctx, h, customerNumber)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nCustomer %d: %s, %s, %s\n",
			customer.CustomerNumber, customer.CustomerName, customer.City, customer.Country)

		orders, err := dal.OrdersByCustomer(ctx, h, customerNumber)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Orders of customer %d: %d\n", customerNumber, len(orders))
		for _, o := range orders {
			printOrder(out, o)
		}

		recent, err := dal.ListOrders(ctx, h, 5)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nMost recent orders:\n")
		for _, o := range recent {
			printOrder(out, o)
		}

		if len(recent) > 0 {
			items, err := dal.OrderLineItems(ctx, h, recent[0].OrderNumber)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nLine items of order %d:\n", recent[0].OrderNumber)
			for _, it := range items {
				fmt.Fprintf(out, "  %2d  %-40s %3d x %8.2f\n",
					it.OrderLineNumber, it.ProductName, it.QuantityOrdered, it.PriceEach)
			}
		}

		return nil
	})
}

func printOrder(out io.Writer, o dal.Order) {
	shipped := "not shipped"
	if o.ShippedDate.Valid {
		shipped = "shipped " + o.ShippedDate.Time.Format("2006-01-02")
	}
	fmt.Fprintf(out, "  order %d  %s  %-10s (%s)\n",
		o.OrderNumber, o.OrderDate.Format("2006-01-02"), o.Status, shipped)
}
