package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/config"
	"github.com/talkincode/toughpos/internal/adminapi"
	"github.com/talkincode/toughpos/internal/app"
	"github.com/talkincode/toughpos/internal/export"
	"github.com/talkincode/toughpos/internal/webserver"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newCLIApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLIApp() *cli.App {
	return &cli.App{
		Name:  "toughpos",
		Usage: "retail point of sale, inventory, receivables and repair tracking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file",
				Value:   "toughpos.yml",
				EnvVars: []string{"TOUGHPOS_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the admin API and daily jobs",
				Action: serve,
			},
			{
				Name:   "reset",
				Usage:  "restore the built-in demo data and clear stored data",
				Action: reset,
			},
			{
				Name:  "export",
				Usage: "write products or sales to a CSV or XLSX file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "sales", Usage: "products or sales"},
					&cli.StringFlag{Name: "format", Value: "csv", Usage: "csv or xlsx"},
					&cli.StringFlag{Name: "out", Usage: "output file, defaults to <kind>.<format>"},
				},
				Action: exportData,
			},
		},
		DefaultCommand: "serve",
	}
}

func setup(c *cli.Context) (*app.Application, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		return nil, err
	}
	return application, nil
}

func serve(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Release()

	webserver.Init(application)
	adminapi.Init()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(webserver.Start)
	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutting down admin server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return webserver.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func reset(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Release()

	if err := application.ResetAll(); err != nil {
		return err
	}
	zap.L().Info("shop data reset to defaults")
	return nil
}

func exportData(c *cli.Context) error {
	kind, err := export.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		out = export.Filename(kind, format)
	}

	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Release()

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	defer f.Close()

	snap := application.Store().Snapshot()
	if err := export.Write(f, kind, format, export.Source{Products: snap.Products, Sales: snap.Sales}); err != nil {
		return err
	}
	zap.L().Info("export written", zap.String("file", out), zap.String("kind", string(kind)), zap.String("format", string(format)))
	return nil
}
