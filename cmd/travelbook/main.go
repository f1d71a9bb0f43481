package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/travelbook/internal/buildinfo"
	"github.com/dmitrijs2005/travelbook/internal/client/cli"
	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/client/config"
	"github.com/dmitrijs2005/travelbook/internal/client/resolver"
	"github.com/dmitrijs2005/travelbook/internal/client/services"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, false)
	if err != nil {
		return err
	}

	interactive := cli.IsInteractive(os.Stdin)
	if interactive {
		buildinfo.PrintBuildData(os.Stdout)
	}

	st, err := store.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	remote, err := client.NewHTTPClient(cfg.RemoteBaseURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	images := resolver.NewMux()
	images.Handle("file", resolver.FileResolver{Root: cfg.ImageRoot})
	web := resolver.NewHTTPResolver(cfg.RequestTimeout)
	images.Handle("http", web)
	images.Handle("https", web)
	s3c, err := resolver.NewS3Client(ctx, resolver.S3Config{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Warn(ctx, "s3 images disabled", "error", err)
	} else {
		images.Handle("s3", resolver.NewS3Resolver(s3c))
	}

	svc := services.NewContainer(services.Deps{
		Store:    st,
		Remote:   remote,
		Resolver: images,
		Clock:    timex.SystemClock{},
		Logger:   log,
	})

	cli.NewApp(svc, log, os.Stdin, os.Stdout, interactive).Run(ctx)
	return nil
}
