package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/cli/config"
	httpctrl "github.com/robofest-ru/robofest/pkg/controller/http"
	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/service/worker"
	"github.com/robofest-ru/robofest/pkg/usecase"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var siteConfigPath string
	var adminEmail string
	var adminPassword string
	var repoCfg config.Repository
	var authCfg config.Auth
	var captchaCfg config.Captcha
	var smtpCfg config.SMTP
	var slackCfg config.Slack
	var mediaCfg config.Media
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ROBOFEST_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "Path to the site configuration TOML file",
			Sources:     cli.EnvVars("ROBOFEST_SITE_CONFIG"),
			Destination: &siteConfigPath,
		},
		&cli.StringFlag{
			Name:        "admin-email",
			Usage:       "Bootstrap admin email, created only when no users exist",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ROBOFEST_ADMIN_EMAIL"),
			Destination: &adminEmail,
		},
		&cli.StringFlag{
			Name:        "admin-password",
			Usage:       "Bootstrap admin password",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ROBOFEST_ADMIN_PASSWORD"),
			Destination: &adminPassword,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, captchaCfg.Flags()...)
	flags = append(flags, smtpCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, mediaCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flushSentry, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flushSentry()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{}

			var siteCfg *config.SiteConfig
			if siteConfigPath != "" {
				siteCfg, err = config.LoadSiteConfig(siteConfigPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load site configuration")
				}
				loc, err := siteCfg.Site.Location()
				if err != nil {
					return err
				}
				ucOpts = append(ucOpts, usecase.WithLocation(loc))
			}

			if authCfg.IsConfigured() {
				secret, err := authCfg.Secret()
				if err != nil {
					return goerr.Wrap(err, "failed to configure authentication")
				}
				ucOpts = append(ucOpts, usecase.WithAuthSecret(secret))
			} else {
				logging.Default().Warn("auth-secret not configured, admin API is disabled")
			}

			if v := captchaCfg.Configure(); v != nil {
				ucOpts = append(ucOpts, usecase.WithCaptcha(v))
				logging.Default().Info("Captcha gate enabled")
			} else {
				logging.Default().Info("Captcha secret not configured, registration is not gated")
			}

			if m, err := smtpCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to configure mail")
			} else if m != nil {
				ucOpts = append(ucOpts, usecase.WithMailer(m))
				logging.Default().Info("Mail notifications enabled")
			}

			if n, err := slackCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			} else if n != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(n))
				logging.Default().Info("Slack notifications enabled")
			}

			mediaStore, err := mediaCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure media storage")
			}
			if mediaStore != nil {
				defer func() {
					if err := mediaStore.Close(); err != nil {
						logging.Default().Error("failed to close media store", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithMediaStore(mediaStore))
				logging.Default().Info("Media uploads enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			if siteCfg != nil {
				if err := seedCategories(ctx, repo, siteCfg.Categories); err != nil {
					return goerr.Wrap(err, "failed to seed news categories")
				}
			}

			if uc.Auth != nil && adminEmail != "" && adminPassword != "" {
				created, err := uc.Auth.EnsureDefaultAdmin(ctx, adminEmail, adminPassword)
				if err != nil {
					return goerr.Wrap(err, "failed to bootstrap admin account")
				}
				if created != nil {
					logging.Default().Info("Bootstrap admin account created", "email", created.Email)
				}
			}

			publisher := worker.NewPublisherWorker(repo, worker.DefaultPublishInterval)
			if err := publisher.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start publisher worker")
			}

			vkFetcher := worker.NewVKFetchWorker(uc.VKImport, worker.DefaultVKFetchInterval)
			if err := vkFetcher.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start VK fetch worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				vkFetcher.Stop()
				publisher.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// seedCategories creates the configured news categories that do not
// exist yet. Existing categories are left untouched.
func seedCategories(ctx context.Context, repo interfaces.Repository, categories []config.Category) error {
	for _, cat := range categories {
		catSlug := cat.EffectiveSlug()
		existing, err := repo.Category().GetBySlug(ctx, catSlug)
		if err != nil {
			return goerr.Wrap(err, "failed to check category", goerr.V("slug", catSlug))
		}
		if existing != nil {
			continue
		}
		if _, err := repo.Category().Create(ctx, &model.NewsCategory{Name: cat.Name, Slug: catSlug}); err != nil {
			return goerr.Wrap(err, "failed to create category", goerr.V("slug", catSlug))
		}
		logging.Default().Info("Seeded news category", "name", cat.Name, "slug", catSlug)
	}
	return nil
}
