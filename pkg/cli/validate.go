package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/cli/config"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a site configuration TOML file",
		ArgsUsage: "<config-file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one config file argument is required")
			}
			path := c.Args().First()

			cfg, err := config.LoadSiteConfig(path)
			if err != nil {
				return err
			}

			logging.Default().Info("Configuration is valid",
				"path", path,
				"site", cfg.Site.Name,
				"categories", len(cfg.Categories),
			)
			return nil
		},
	}
}
