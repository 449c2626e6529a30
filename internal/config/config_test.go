package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartek5186/tourops/internal/i18n"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "DB_AUTOMIGRATE", "DB_LOG_SQL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM", "SMTP_TEST_TO", "LOG_FILE", "CONTENT_LANG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_USER", "tours")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tours")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("DB_AUTOMIGRATE", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal port=6432 user=tours password=secret dbname=tours sslmode=disable", dsn)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"db": {"driver": "mysql", "host": "file-host", "port": 3306, "user": "u", "password": "p", "name": "tours"},
		"smtp": {"host": "file-smtp", "port": 25},
		"log_file": "/tmp/tourops.log"
	}`), 0o644))

	t.Setenv("DB_HOST", "env-host")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "env-host", cfg.DB.Host)
	assert.Equal(t, "file-smtp", cfg.SMTP.Host)
	assert.Equal(t, 25, cfg.SMTP.Port)
	assert.Equal(t, "/tmp/tourops.log", cfg.LogFile)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(env-host:3306)/tours?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("DB_PORT", "five")
		_, err := Load("")
		assert.ErrorContains(t, err, "DB_PORT")
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("DB_AUTOMIGRATE", "maybe")
		_, err := Load("")
		assert.ErrorContains(t, err, "DB_AUTOMIGRATE")
	})
}

func TestDBConfig_DSN(t *testing.T) {
	t.Run("postgres url wins", func(t *testing.T) {
		d := DBConfig{Driver: "postgres", URL: "postgresql://u:p@h:5432/tours", Host: "ignored"}
		dsn, err := d.DSN()
		require.NoError(t, err)
		assert.Equal(t, "postgresql://u:p@h:5432/tours", dsn)
	})

	t.Run("mysql url is converted", func(t *testing.T) {
		d := DBConfig{Driver: "mysql", URL: "mysql://root:pw@localhost/tours"}
		dsn, err := d.DSN()
		require.NoError(t, err)
		assert.Equal(t, "root:pw@tcp(localhost:3306)/tours?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
	})

	t.Run("sqlite", func(t *testing.T) {
		d := DBConfig{Driver: "sqlite", URL: "file:./dev.db"}
		dsn, err := d.DSN()
		require.NoError(t, err)
		assert.Equal(t, "./dev.db", dsn)
	})

	t.Run("default port per driver", func(t *testing.T) {
		dsn, err := DBConfig{Driver: "postgres", Host: "db", Name: "tours", SSLMode: "disable"}.DSN()
		require.NoError(t, err)
		assert.Contains(t, dsn, "port=5432")

		dsn, err = DBConfig{Driver: "mysql", Host: "db", Name: "tours"}.DSN()
		require.NoError(t, err)
		assert.Contains(t, dsn, "tcp(db:3306)")
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := DBConfig{Driver: "postgres"}.DSN()
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := DBConfig{Driver: "oracle", URL: "x"}.DSN()
		assert.ErrorContains(t, err, "oracle")
	})
}

func TestContentLang(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, i18n.RU, cfg.ContentLang())

	t.Setenv("CONTENT_LANG", "en-US")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, i18n.EN, cfg.ContentLang())
}
