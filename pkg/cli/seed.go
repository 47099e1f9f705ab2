package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/cli/config"
	"github.com/robofest-ru/robofest/pkg/usecase"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

func cmdSeed() *cli.Command {
	var siteConfigPath string
	var adminEmail string
	var adminPassword string
	var repoCfg config.Repository
	var authCfg config.Auth

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "Path to the site configuration TOML file",
			Sources:     cli.EnvVars("ROBOFEST_SITE_CONFIG"),
			Destination: &siteConfigPath,
		},
		&cli.StringFlag{
			Name:        "admin-email",
			Usage:       "Admin account email, created only when no users exist",
			Sources:     cli.EnvVars("ROBOFEST_ADMIN_EMAIL"),
			Destination: &adminEmail,
		},
		&cli.StringFlag{
			Name:        "admin-password",
			Usage:       "Admin account password",
			Sources:     cli.EnvVars("ROBOFEST_ADMIN_PASSWORD"),
			Destination: &adminPassword,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Seed news categories and the bootstrap admin account",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if siteConfigPath != "" {
				siteCfg, err := config.LoadSiteConfig(siteConfigPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load site configuration")
				}
				if err := seedCategories(ctx, repo, siteCfg.Categories); err != nil {
					return goerr.Wrap(err, "failed to seed news categories")
				}
			}

			if adminEmail == "" || adminPassword == "" {
				logging.Default().Info("admin-email/admin-password not set, skipping admin bootstrap")
				return nil
			}

			secret, err := authCfg.Secret()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			uc := usecase.New(repo, usecase.WithAuthSecret(secret))
			created, err := uc.Auth.EnsureDefaultAdmin(ctx, adminEmail, adminPassword)
			if err != nil {
				return goerr.Wrap(err, "failed to bootstrap admin account")
			}
			if created == nil {
				logging.Default().Info("Users already exist, admin bootstrap skipped")
			} else {
				logging.Default().Info("Bootstrap admin account created", "email", created.Email)
			}

			return nil
		},
	}
}
