package main

import (
	"context"

	"github.com/lgbarn/connect4-go/internal/server"
	"github.com/lgbarn/connect4-go/internal/storage"
)

func runServe(ctx context.Context, e *env, args []string) error {
	var opts serveOptions
	fs := newServeFlags(&opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	opts.apply(e.cfg)
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	var store *storage.Store
	if e.cfg.Storage.Path != "" {
		var err error
		if store, err = storage.Open(ctx, e.cfg.Storage.Path); err != nil {
			return err
		}
		defer store.Close()
	}
	return server.New(e.cfg, store, programVersion).Run(ctx)
}
