package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// openFunc opens (and migrates) the store the commands work on.
type openFunc func() (*db.DB, error)

func openFromEnv() (*db.DB, error) {
	// .env is optional here; the environment alone is enough for scripted use.
	_ = godotenv.Load()

	cfg, err := common.LoadStoreConfig()
	if err != nil {
		return nil, err
	}
	return db.OpenFromConfig(cfg)
}

func newRootCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "maintctl",
		Short:        "Maintenance tracker administration",
		Long:         "maintctl migrates the database, loads fixtures and manages users for the maintenance tracker.",
		SilenceUsage: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd(open))
	cmd.AddCommand(newSeedCmd(open))
	cmd.AddCommand(newUserCmd(open))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "maintctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd(openFromEnv)))
}
