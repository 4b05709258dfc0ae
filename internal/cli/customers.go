package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Query and modify the customers table",
}

var customersListLimit int

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			customers, err := dal.ListCustomers(cmd.Context(), h, customersListLimit)
			if err != nil {
				return err
			}
			printCustomers(cmd.OutOrStdout(), customers)
			return nil
		})
	},
}

var customersGetCmd = &cobra.Command{
	Use:   "get <customer_number>",
	Short: "Show one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "customer number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			c, err := dal.GetCustomer(cmd.Context(), h, number)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d  %s\n", c.CustomerNumber, c.CustomerName)
			fmt.Fprintf(out, "  contact: %s %s, %s\n", c.ContactFirstName, c.ContactLastName, c.Phone)
			fmt.Fprintf(out, "  address: %s, %s, %s\n", c.AddressLine1, c.City, c.Country)
			if c.SalesRepEmployeeNumber.Valid {
				fmt.Fprintf(out, "  sales rep: %d\n", c.SalesRepEmployeeNumber.Int64)
			}
			if c.CreditLimit.Valid {
				fmt.Fprintf(out, "  credit limit: %.2f\n", c.CreditLimit.Float64)
			}
			return nil
		})
	},
}

var customersByCountryCmd = &cobra.Command{
	Use:   "by-country <country>",
	Short: "List customers in one country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			customers, err := dal.CustomersByCountry(cmd.Context(), h, args[0])
			if err != nil {
				return err
			}
			printCustomers(cmd.OutOrStdout(), customers)
			return nil
		})
	},
}

var customersByRepCmd = &cobra.Command{
	Use:   "by-rep <employee_number>",
	Short: "List customers of one sales rep",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := parseNumber(args[0], "employee number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			customers, err := dal.CustomersBySalesRep(cmd.Context(), h, rep)
			if err != nil {
				return err
			}
			printCustomers(cmd.OutOrStdout(), customers)
			return nil
		})
	},
}

var customersCreditCmd = &cobra.Command{
	Use:   "credit <customer_number> <limit>",
	Short: "Update a customer's credit limit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "customer number")
		if err != nil {
			return err
		}
		limit, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: credit limit %q is not a number", mydal.ErrInvalidConfig, args[1])
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			if err := dal.UpdateCustomerCredit(cmd.Context(), h, number, limit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "customer %d credit limit set to %.2f\n", number, limit)
			return nil
		})
	},
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <customer_number>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "customer number")
		if err != nil {
			return err
		}
		return withConnection(cmd, func(h mydal.Handle) error {
			if err := dal.DeleteCustomer(cmd.Context(), h, number); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "customer %d deleted\n", number)
			return nil
		})
	},
}

func init() {
	customersListCmd.Flags().IntVar(&customersListLimit, "limit", 50, "Maximum rows to return")
	customersCmd.AddCommand(customersListCmd, customersGetCmd, customersByCountryCmd,
		customersByRepCmd, customersCreditCmd, customersDeleteCmd)
	rootCmd.AddCommand(customersCmd)
}

func printCustomers(out io.Writer, customers []dal.Customer) {
	for _, c := range customers {
		fmt.Fprintf(out, "%d  %-35s %-20s %s\n", c.CustomerNumber, c.CustomerName, c.City, c.Country)
	}
	fmt.Fprintf(out, "%d customer(s)\n", len(customers))
}

// parseNumber converts a positional argument to an int with a usage-style
// error on failure.
func parseNumber(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", mydal.ErrInvalidConfig, what, s)
	}
	return n, nil
}
