package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"daily-briefing/backend/config"
	"daily-briefing/backend/pkg/password"
	"daily-briefing/backend/pkg/secrets"
)

type hashOptions struct {
	configPath     string
	username       string
	name           string
	secretsFile    string
	fallbackPepper string
}

func newHashCmd() *cobra.Command {
	opts := &hashOptions{}
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Generate salt and password hash for an account",
		Long: `Prompt for a password and print a YAML entry for auth.users.

The pepper is resolved in the same order as the server: the PEPPER
environment variable, then auth.secrets_file, then auth.fallback_pepper,
both read from --config. --secrets-file and --fallback-pepper override
the configured values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHash(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (defaults to ./config/config.yaml)")
	cmd.Flags().StringVarP(&opts.username, "user", "u", "", "login name (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name (defaults to --user)")
	cmd.Flags().StringVar(&opts.secretsFile, "secrets-file", "", "dotenv file holding PEPPER (overrides auth.secrets_file)")
	cmd.Flags().StringVar(&opts.fallbackPepper, "fallback-pepper", "", "pepper used when PEPPER is not set anywhere (overrides auth.fallback_pepper)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runHash(cmd *cobra.Command, opts *hashOptions) error {
	cfg, err := config.LoadRaw(opts.configPath)
	if err != nil {
		return err
	}
	secretsFile, fallback := cfg.Auth.SecretsFile, cfg.Auth.FallbackPepper
	if cmd.Flags().Changed("secrets-file") {
		secretsFile = opts.secretsFile
	}
	if cmd.Flags().Changed("fallback-pepper") {
		fallback = opts.fallbackPepper
	}

	pepper := secrets.ResolvePepper(secretsFile, fallback)
	if pepper == "" {
		return errors.New("未找到 PEPPER：请设置环境变量、secrets 文件或 auth.fallback_pepper")
	}

	pw, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
	if err != nil {
		return err
	}
	if pw == "" {
		return errors.New("密码不能为空")
	}

	salt, err := password.NewSalt(password.SaltLength)
	if err != nil {
		return fmt.Errorf("生成盐值失败: %w", err)
	}

	name := opts.name
	if name == "" {
		name = opts.username
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "    - username: %q\n", opts.username)
	fmt.Fprintf(out, "      name: %q\n", name)
	fmt.Fprintf(out, "      salt: %q\n", salt)
	fmt.Fprintf(out, "      pw_hash: %q\n", password.Hash(pepper, pw, salt))
	return nil
}
