package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"lexvault/internal/api"
	"lexvault/internal/domain"
	"lexvault/internal/logging"
	"lexvault/internal/protocol/hybrid"
	"lexvault/internal/services/identity"
	"lexvault/internal/services/material"
	"lexvault/internal/store"
)

// Wire bundles the store and services of one daemon process.
type Wire struct {
	Config    Config
	Log       *logging.Logger
	Store     domain.MaterialStore
	Keys      *identity.KeyStore
	Materials *material.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. Key generation is not
// started; call Keys.Start or Keys.Initialize.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New(cfg.Verbose, cfg.Debug)

	w := &Wire{Config: cfg, Log: log}
	st, err := w.openStore()
	if err != nil {
		return nil, err
	}
	w.Store = st

	w.Keys = identity.NewKeyStore(identity.WithLogger(log))
	w.Materials = material.New(st, w.Keys,
		material.WithTimeout(cfg.OperationTimeout),
		material.WithLogger(log),
		material.WithViewObserver(func(id domain.MaterialID, s hybrid.State) {
			log.Debugf("view %s: %s", id, s)
		}),
	)
	return w, nil
}

// Server returns the HTTP API for w.
func (w *Wire) Server() *api.Server {
	return api.NewServer(w.Materials, w.Keys,
		api.WithConcealedFailures(w.Config.ConcealFailureKind),
		api.WithServerLogger(w.Log),
	)
}

// Close releases the store.
func (w *Wire) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		errs = append(errs, w.closers[i]())
	}
	w.closers = nil
	return errors.Join(errs...)
}

func (w *Wire) openStore() (domain.MaterialStore, error) {
	cfg := w.Config
	switch cfg.Store.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		st, err := store.OpenMaterialSQLStore(cfg.SQLiteDSN())
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		w.closers = append(w.closers, st.Close)
		w.Log.Debugf("store: sqlite %s", cfg.SQLiteDSN())
		return st, nil
	case BackendMinIO:
		st, err := store.NewMaterialObjectStore(cfg.Store.MinIO)
		if err != nil {
			return nil, fmt.Errorf("open minio store: %w", err)
		}
		w.Log.Debugf("store: minio %s/%s", cfg.Store.MinIO.Endpoint, cfg.Store.MinIO.Bucket)
		return st, nil
	default:
		w.Log.Debugf("store: file %s", cfg.StorePath())
		return store.NewMaterialFileStore(cfg.StorePath()), nil
	}
}

// NewClient returns an API client for cfg.ServerURL.
func NewClient(cfg Config) *api.Client {
	c := api.NewClient(cfg.ServerURL)
	if cfg.HTTP != nil {
		c.HTTP = cfg.HTTP
	} else {
		c.HTTP = http.DefaultClient
	}
	return c
}
