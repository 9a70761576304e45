package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mrossi/soldi/internal/common"
	"github.com/mrossi/soldi/internal/config"
	"github.com/mrossi/soldi/internal/ledger"
	"github.com/mrossi/soldi/internal/model"
	"github.com/mrossi/soldi/internal/storage"
)

// openStore builds the configured storage backend.
func openStore() (ledger.Store, error) {
	backend := viper.GetString("data.backend")

	path := config.ExpandPath(viper.GetString("data.file"))
	if path == "" {
		path = config.DefaultDataFile(backend)
	}

	switch backend {
	case "csv":
		return storage.NewCSVStore(path)
	case "sqlite":
		return storage.NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, backend)
	}
}

// newService opens the configured store and builds the ledger service
// over it. The caller owns the returned store and must Close it.
func newService(ctx context.Context) (*ledger.Service, ledger.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return ledger.NewService(ctx, store), store, nil
}

// resolveCategory finds a registered category by name, or builds an ad
// hoc one when the name is not in the registry. The factory only
// requires a named category, not a registered one.
func resolveCategory(svc *ledger.Service, name string) model.Category {
	if cat, ok := svc.Category(name); ok {
		return cat
	}
	return model.NewCategory(name, "")
}
