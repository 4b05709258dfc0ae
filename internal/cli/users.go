package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the users table",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Create a user with a generated id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			u, err := dal.CreateUser(cmd.Context(), h, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s <%s>\n", u.ID, u.Name, u.Email)
			return nil
		})
	},
}

var usersGetByEmail bool

var usersGetCmd = &cobra.Command{
	Use:   "get <id|email>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			var (
				u   dal.User
				err error
			)
			if usersGetByEmail {
				u, err = dal.GetUserByEmail(cmd.Context(), h, args[0])
			} else {
				u, err = dal.GetUser(cmd.Context(), h, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s <%s>  created %s\n",
				u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		})
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			users, err := dal.ListUsers(cmd.Context(), h)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(out, "%s  %-25s %s\n", u.ID, u.Name, u.Email)
			}
			fmt.Fprintf(out, "%d user(s)\n", len(users))
			return nil
		})
	},
}

var usersEmailCmd = &cobra.Command{
	Use:   "email <id> <new_email>",
	Short: "Change a user's email address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			if err := dal.UpdateUserEmail(cmd.Context(), h, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s email set to %s\n", args[0], args[1])
			return nil
		})
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(h mydal.Handle) error {
			if err := dal.DeleteUser(cmd.Context(), h, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s deleted\n", args[0])
			return nil
		})
	},
}

func init() {
	usersGetCmd.Flags().BoolVar(&usersGetByEmail, "by-email", false, "Look the user up by email instead of id")
	usersCmd.AddCommand(usersAddCmd, usersGetCmd, usersListCmd, usersEmailCmd, usersRmCmd)
	rootCmd.AddCommand(usersCmd)
}
