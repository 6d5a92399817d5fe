package config

import (
	"context"
	"os"

	appconfig "github.com/crucial707/equipment-registry/internal/config"
	"github.com/crucial707/equipment-registry/internal/db"
	"github.com/crucial707/equipment-registry/internal/logging"
	"github.com/crucial707/equipment-registry/internal/repo"
	"github.com/crucial707/equipment-registry/internal/service"
)

// OpenService connects to the database described by the environment (and
// .env, if present) and returns the equipment service with a func that
// releases the connection. Service logs go to stderr so stdout stays clean
// for tables and JSON.
func OpenService(ctx context.Context) (*service.EquipmentService, func() error, error) {
	cfg := appconfig.Load()
	logger := logging.NewWithWriter(os.Stderr, cfg.LogFormat, cfg.LogLevel)

	conn, err := db.Connect(ctx, cfg.DBOptions())
	if err != nil {
		return nil, nil, err
	}
	return service.NewEquipmentService(conn, repo.NewEquipmentRepo(), logger), conn.Close, nil
}

// DatabaseURL returns the postgres:// URL used by the migrate commands.
func DatabaseURL() string {
	return appconfig.Load().DBOptions().URL()
}
