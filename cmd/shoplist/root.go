package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"shoplist/internal/config"
	"shoplist/internal/core"
	"shoplist/internal/recipes"
	"shoplist/pkg/domain"
)

type rootOptions struct {
	cfgFile string
	verbose bool
}

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	cfg     config.Config
	logger  charmLogger
	catalog *recipes.Catalog
	store   domain.DocumentStore
	svc     *core.Service
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "shoplist",
		Short: "Aggregate recipe ingredients into one shopping list",
		Long: titleStyle.Render("shoplist") + mutedStyle.Render(" - one shopping list for every recipe you plan to cook") + `

Ingredients from each added recipe are merged by name; amounts in the same
units add up and different units are kept side by side. Withdrawing a recipe
shrinks or removes what it contributed.

` + mutedStyle.Render("Examples:") + `
  shoplist add "Pancakes" --portions 8
  shoplist list
  shoplist check milk
  shoplist serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newWithdrawCmd(opts),
		newCheckCmd(opts),
		newSetCmd(opts),
		newClearCmd(opts),
		newRecipesCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func loadConfig(opts *rootOptions, stderr io.Writer) (config.Config, charmLogger, *recipes.Catalog, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return config.Config{}, charmLogger{}, nil, err
	}
	logger := newLogger(stderr, cfg.Log.Level, opts.verbose)
	catalog := recipes.Default()
	if cfg.Recipes.File != "" {
		if catalog, err = recipes.LoadFile(cfg.Recipes.File); err != nil {
			return config.Config{}, charmLogger{}, nil, err
		}
		logger.Debug("recipe book loaded", "file", cfg.Recipes.File, "recipes", catalog.Len())
	}
	return cfg, logger, catalog, nil
}

// openApp loads configuration, opens the configured backend and the engine.
func openApp(ctx context.Context, opts *rootOptions, stderr io.Writer, svcOpts ...core.Option) (*app, error) {
	cfg, logger, catalog, err := loadConfig(opts, stderr)
	if err != nil {
		return nil, err
	}
	store, err := core.OpenDocumentStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Debug("document store opened", "driver", store.Driver())

	svcOpts = append([]core.Option{
		core.WithLogger(logger),
		core.WithDocumentKey(cfg.Storage.Key),
		core.WithSaveTimeout(cfg.Storage.SaveTimeout),
	}, svcOpts...)
	svc, err := core.NewService(ctx, store, svcOpts...)
	if err != nil {
		_ = core.CloseDocumentStore(store)
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, catalog: catalog, store: store, svc: svc}, nil
}

// close waits for pending saves, then releases the backend.
func (a *app) close(ctx context.Context) error {
	err := a.svc.Close(ctx)
	return errors.Join(err, core.CloseDocumentStore(a.store))
}

// withApp runs fn against an open app and always closes it.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(*app) error) (err error) {
	a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(context.WithoutCancel(cmd.Context())); cerr != nil && err == nil {
			err = fmt.Errorf("saving shopping list: %w", cerr)
		}
	}()
	return fn(a)
}

func newMetricsRegistry() (*prometheus.Registry, *core.PrometheusRecorder, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := core.NewPrometheusRecorder(reg)
	if err != nil {
		return nil, nil, err
	}
	return reg, rec, nil
}
