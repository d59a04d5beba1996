package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "userctl",
		Short: "Manage login accounts for the daily briefing service",
		Long: `Manage login accounts stored in the auth.users section of the config.

Passwords are never stored. Each account keeps a random salt and
SHA256(PEPPER + password + salt) as lowercase hex.

Available subcommands:
  hash   - Generate a salt and hash for a new or changed password
  verify - Check a password against an account in the config`,
		SilenceUsage: true,
	}
	root.AddCommand(newHashCmd(), newVerifyCmd())
	return root
}
