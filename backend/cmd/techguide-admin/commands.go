package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"techguide/backend/config"
	"techguide/backend/models"
	"techguide/backend/repository"
	"techguide/backend/services"
	"techguide/backend/utils"
)

// dbOpener defers connecting until a command actually needs the database.
type dbOpener func() (*gorm.DB, error)

func newRootCmd(cfg *config.Config, open dbOpener) *cobra.Command {
	root := &cobra.Command{
		Use:          "techguide-admin",
		Short:        "TechGuide maintenance commands",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(open),
		newCreateUserCmd(cfg, open),
		newSeedCatalogCmd(open),
	)
	return root
}

func newMigrateCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := utils.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newCreateUserCmd(cfg *config.Config, open dbOpener) *cobra.Command {
	var in services.NewAccount
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a verified account with any role",
		Long: `Create an account that skips email verification.

The account is created with admin rights, so any role may be assigned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			accounts := services.NewAccountService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.JWTTTL)
			user, err := accounts.CreatePrivileged(cmd.Context(), models.RoleAdmin, in)
			if err != nil {
				if fields := validationMessages(err); fields != "" {
					return fmt.Errorf("create user: %s", fields)
				}
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) as %s\n", user.Email, user.ID, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&in.FirstName, "first", "", "first name (required)")
	cmd.Flags().StringVar(&in.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&in.Role, "role", string(models.RoleStudent), "student, instructor or admin")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password, at least 8 characters (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedCatalogCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-catalog",
		Short: "Insert the default tutorial catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			seeded, err := services.SeedCatalog(cmd.Context(), repository.NewCatalogRepository(db), services.DefaultCatalog())
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already present, nothing to do")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "default catalog inserted")
			return nil
		},
	}
}

func validationMessages(err error) string {
	fields := utils.ValidationErrors(err)
	if _, raw := fields["body"]; raw {
		return ""
	}
	msgs := make([]string, 0, len(fields))
	for _, msg := range fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
