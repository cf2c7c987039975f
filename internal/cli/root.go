// Package cli implements the tracker command line: an offline-first client
// of the event API.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	API    string
	Cache  string
	Format string // "json" | "text"

	newClient ClientFactory
}

// ClientFactory builds the sync client for one invocation. The returned
// close function is never nil.
type ClientFactory func(opts *RootOptions) (*syncclient.Client, func() error, error)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command wired to the configured API and cache.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(configuredClient)
}

// NewRootCommandWith creates the root command with a custom client factory.
func NewRootCommandWith(factory ClientFactory) *cobra.Command {
	opts := &RootOptions{newClient: factory}

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Pet diabetes event tracker",
		Long: `Record glucose readings, insulin doses, medication and meals.

Events go to the API when it is reachable and are kept in a local cache
otherwise, so the tracker keeps working offline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.API, "api", "", "API base URL (overrides API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Cache, "cache", "", "cache file path (overrides CACHE_PATH)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewRecentCommand(opts))
	cmd.AddCommand(NewDayCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func configuredClient(opts *RootOptions) (*syncclient.Client, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.API != "" {
		cfg.Client.APIURL = opts.API
	}
	if opts.Cache != "" {
		cfg.Client.CacheBackend = "file"
		cfg.Client.CachePath = opts.Cache
	}
	if err := logger.InitWithConfig(cfg.Logger.Options()); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return syncclient.NewFromConfig(cfg)
}

// session opens a client and loads the collection before running fn.
func (o *RootOptions) session(ctx context.Context, fn func(*syncclient.Client, syncclient.Source) error) error {
	client, closeClient, err := o.newClient(o)
	if err != nil {
		return err
	}
	defer closeClient()

	source, err := client.Load(ctx)
	if err != nil {
		logger.Warn("Cache could not be read", "error", err)
	}
	return fn(client, source)
}
