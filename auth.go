package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/driveql/driveql/internal/config"
	"github.com/driveql/driveql/internal/drive"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with Google Drive in the browser",
		Args:  cobra.NoArgs,
		RunE:  runLogin,
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the cached credential",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

// authOptions maps the resolved config onto the drive auth options.
func authOptions(cfg *config.Config) drive.AuthOptions {
	return drive.AuthOptions{
		CredentialsPath: cfg.CredentialsFile,
		SecretsPath:     cfg.SecretsFile,
		Scopes:          []string{drive.ScopeDriveFull},
	}
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.CLIOverrides{})
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	ctx := context.Background()

	logger.Info("login started")

	// Login always runs the interactive flow, replacing any cached credential.
	if _, err := drive.Login(ctx, authOptions(cfg), drive.BrowserConsent(openBrowser, logger), logger); err != nil {
		return err
	}

	logger.Info("login successful")
	statusf(flagQuiet, "Login successful.\n")

	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.CLIOverrides{})
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)

	if err := drive.Logout(cfg.CredentialsFile, logger); err != nil {
		return err
	}

	statusf(flagQuiet, "Logged out.\n")

	return nil
}
