package main

import (
	"database/sql"
	"fmt"

	"homepanel/internal/config"
	"homepanel/internal/devices"
	"homepanel/internal/logger"
	"homepanel/internal/registry"
	"homepanel/internal/repository"
	"homepanel/internal/repository/db"
	"homepanel/internal/service"
	"homepanel/internal/statuscake"
)

// app holds the wired dependency graph shared by serve and probe.
type app struct {
	db       *sql.DB
	registry *registry.Registry
	services *service.Service
	log      *logger.Logger
}

func buildApp(cfg config.Config, log *logger.Logger) (*app, error) {
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to init sqlite: %w", err)
	}

	reg, err := registry.FromConfig(cfg.Devices)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("invalid device registry: %w", err)
	}

	client := devices.NewClient(nil, devices.Timeouts{
		Command: cfg.Timeouts.Command,
		Status:  cfg.Timeouts.Status,
	})
	uptime := statuscake.NewClient(cfg.StatusCake.BaseURL, cfg.StatusCake.APIKey, cfg.StatusCake.TestID, cfg.Timeouts.Uptime)

	services, err := service.NewService(service.Deps{
		Config:   cfg,
		Registry: reg,
		Devices:  client,
		Periods:  uptime,
		Repos:    repository.NewRepository(conn),
		Log:      log.Named("service"),
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &app{db: conn, registry: reg, services: services, log: log}, nil
}

func (a *app) switchIDs() []string {
	sw := a.registry.Switches()
	ids := make([]string, 0, len(sw))
	for _, s := range sw {
		ids = append(ids, s.ID)
	}
	return ids
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Errorw("failed to close sqlite", "err", err)
	}
}
