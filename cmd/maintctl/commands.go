package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/seed"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

func newMigrateCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := open()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			// opening already migrates; run it again so the command is explicit about it
			if err := database.Migrate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(models.All()))
			return nil
		},
	}
}

func newSeedCmd(open openFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample data from a YAML fixtures file",
		Long: `Loads a company, users, maintenance logs and their work orders from a YAML file.

Rows go through the same engine as the web UI, so critical work orders raise
notifications. Seeding is never done implicitly by the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := seed.Load(file)
			if err != nil {
				return err
			}

			database, err := open()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			result, err := seed.Apply(context.Background(), tracker.New(database), fixtures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Company {
				fmt.Fprintln(out, "Company saved")
			}
			fmt.Fprintf(out, "Seeded %d users, %d maintenance logs, %d work orders from %s\n",
				result.Users, result.Logs, result.WorkOrders, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "path to the fixtures file")
	return cmd
}

func newUserCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}
	cmd.AddCommand(newUserCreateCmd(open))
	return cmd
}

func newUserCreateCmd(open openFunc) *cobra.Command {
	var input tracker.UserInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := open()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			user, err := tracker.New(database).User.RegisterUser(context.Background(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "password, at least 8 characters")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
