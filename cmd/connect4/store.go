package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/output"
	"github.com/lgbarn/connect4-go/internal/storage"
)

// runStore dispatches "store save|list|get|delete".
func runStore(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: store needs one of save, list, get or delete", errors.ErrInvalidConfig)
	}
	action := args[0]
	switch action {
	case "save", "list", "get", "delete":
	default:
		return fmt.Errorf("%w: unknown store action %q", errors.ErrInvalidConfig, action)
	}

	var opts storeOptions
	fs := newStoreFlags(action, &opts, e.stderr)
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	kind, err := storage.ParseKind(opts.kind)
	if err != nil {
		return err
	}
	e.cfg.Storage.Path = opts.db
	e.cfg.Output.JSON = opts.json

	store, err := storage.Open(ctx, e.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch action {
	case "save":
		return storeSave(ctx, e, store, kind, fs.Args())
	case "list":
		return storeList(ctx, e, store, kind)
	case "get":
		return storeGet(ctx, e, store, fs.Args())
	}
	return storeDelete(ctx, e, store, fs.Args())
}

func storeSave(ctx context.Context, e *env, store *storage.Store, kind storage.Kind, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: store save needs one move string", errors.ErrInvalidConfig)
	}
	id, err := store.Save(ctx, kind, args[0])
	if err != nil {
		return err
	}
	e.log.Info().Int64("id", id).Str("kind", kind.String()).Msg("saved")
	if e.cfg.Output.JSON {
		return output.WriteJSON(e.stdout, map[string]int64{"id": id})
	}
	_, err = fmt.Fprintln(e.stdout, id)
	return err
}

func storeList(ctx context.Context, e *env, store *storage.Store, kind storage.Kind) error {
	records, err := store.List(ctx, kind)
	if err != nil {
		return err
	}
	if e.cfg.Output.JSON {
		if records == nil {
			records = []storage.Record{}
		}
		return output.WriteJSON(e.stdout, records)
	}
	return output.WriteRecords(e.stdout, records)
}

func storeGet(ctx context.Context, e *env, store *storage.Store, args []string) error {
	id, err := recordID(args)
	if err != nil {
		return err
	}
	r, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.cfg.Output.JSON {
		return output.WriteJSON(e.stdout, r)
	}
	b, err := r.Board()
	if err != nil {
		return err
	}
	if err := output.WriteRecords(e.stdout, []storage.Record{r}); err != nil {
		return err
	}
	return output.WritePosition(e.stdout, b, e.cfg.Output)
}

func storeDelete(ctx context.Context, e *env, store *storage.Store, args []string) error {
	id, err := recordID(args)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	e.log.Info().Int64("id", id).Msg("deleted")
	return nil
}

func recordID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one record id", errors.ErrInvalidConfig)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid record id %q", errors.ErrInvalidConfig, args[0])
	}
	return id, nil
}
