package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/shop-directory/internal/entities/owners"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage shop administrators",
	Long:  `Seed and list administrator accounts. Superadmins can only be created here.`,
}

var (
	adminCreateFlags struct {
		username   string
		email      string
		password   string
		firstName  string
		lastName   string
		phone      string
		superadmin bool
	}

	adminCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := newServices()
			if err != nil {
				return err
			}

			f := adminCreateFlags
			req := &owners.RegisterRequest{
				Email:       f.email,
				Username:    f.username,
				Password:    f.password,
				FirstName:   f.firstName,
				LastName:    f.lastName,
				PhoneNumber: f.phone,
			}

			create := services.Accounts.RegisterOwner
			if f.superadmin {
				create = services.Accounts.CreateSuperAdmin
			}
			owner, err := create(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s '%s' (%s)\n", owner.Role, owner.Username, owner.UniqueID)
			return nil
		},
	}

	adminListCmd = &cobra.Command{
		Use:   "list",
		Short: "List administrator accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := newServices()
			if err != nil {
				return err
			}

			list, err := services.Accounts.ListOwners(context.Background())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"ID", "Username", "Email", "Role", "Shops", "Registered"})
			for _, o := range list {
				table.Append([]string{
					o.UniqueID,
					o.Username,
					o.Email,
					o.Role,
					strconv.Itoa(len(o.ShopsOwned)),
					o.RegisteredOn,
				})
			}
			table.Render()
			return nil
		},
	}
)

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminCreateFlags.username, "username", "", "login username (required)")
	f.StringVar(&adminCreateFlags.email, "email", "", "login email (required)")
	f.StringVar(&adminCreateFlags.password, "password", "", "initial password (required)")
	f.StringVar(&adminCreateFlags.firstName, "first-name", "", "first name")
	f.StringVar(&adminCreateFlags.lastName, "last-name", "", "last name")
	f.StringVar(&adminCreateFlags.phone, "phone", "", "phone number")
	f.BoolVar(&adminCreateFlags.superadmin, "superadmin", false, "grant the "+string(auth.RoleSuperAdmin)+" role")
	for _, name := range []string{"username", "email", "password"} {
		_ = adminCreateCmd.MarkFlagRequired(name)
	}

	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminListCmd)
}
