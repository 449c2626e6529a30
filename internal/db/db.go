package db

import (
	"fmt"

	glebarez "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	conf "github.com/bartek5186/tourops/internal/config"
)

type Handle struct {
	DB     *gorm.DB
	Driver string
	DSN    string
}

// Open łączy się z bazą strony według konfiguracji.
func Open(cfg conf.DBConfig) (*Handle, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	var dial gorm.Dialector
	switch cfg.Driver {
	case "postgres", "postgresql":
		dial = postgres.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	case "sqlite":
		// czyste Go, bez cgo (testy, lokalny dev)
		dial = glebarez.Open(dsn)
	case "sqlite3":
		dial = cgosqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("nieobsługiwany driver %q", cfg.Driver)
	}

	level := logger.Warn
	if cfg.LogSQL {
		level = logger.Info
	}
	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	return &Handle{DB: gdb, Driver: cfg.Driver, DSN: dsn}, nil
}

// Close zwalnia pulę połączeń.
func (h *Handle) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
