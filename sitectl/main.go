// Command sitectl inspects the CMS content and the redirect tables the site serves.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	cmsURL  string
	token   string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
}

func (o *options) client() (*cmsclient.Client, error) {
	return cmsclient.NewClient(&cmsclient.Config{
		BaseURL: o.cmsURL,
		Token:   o.token,
		Timeout: o.timeout,
	}, o.logger)
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sitectl",
		Short:         "Inspect CMS content and legacy redirects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cmsURL, "cms-url", envOr("CMS_URL", "http://localhost:1337"), "CMS base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("CMS_TOKEN"), "CMS API token")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "CMS request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log CMS requests")

	rootCmd.AddCommand(
		newPostsCommand(opts),
		newGetCommand(opts),
		newDirectoryCommand(opts),
		newRedirectsCommand(),
	)
	return rootCmd
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sitectl:", err)
		os.Exit(1)
	}
}
