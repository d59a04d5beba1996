package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/secrets"
)

var errPasswordMismatch = errors.New("账号或密码错误")

type verifyOptions struct {
	username   string
	configPath string
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a password against an account in the config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.username, "user", "u", "", "login name (required)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (defaults to ./config/config.yaml)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runVerify(cmd *cobra.Command, opts *verifyOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	pepper := secrets.ResolvePepper(cfg.Auth.SecretsFile, cfg.Auth.FallbackPepper)

	pw, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
	if err != nil {
		return err
	}

	repo := &repository.Repository{User: repository.NewUserRepo(cfg.Auth.Users)}
	auth := service.NewAuthService(cfg, repo, nil, pepper, zap.NewNop())
	if !auth.Check(cmd.Context(), opts.username, pw) {
		return errPasswordMismatch
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", opts.username)
	return nil
}
