package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bartek5186/tourops/internal/jobs"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{ConfigEnv, "LOG_FILE", "SMTP_HOST", "SMTP_FROM", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_NAME", "DB_PORT"} {
		t.Setenv(k, "")
	}
}

func TestAllJobsRegistered(t *testing.T) {
	names := jobs.Names()
	for _, n := range []string{"reconcile-bookings", "migrate-locations", "seed-tour-blocks", "test-email"} {
		assert.Contains(t, names, n)
		assert.NotEmpty(t, NewJobCommand(n).Short, n)
	}
}

func TestExecute_ExitCodes(t *testing.T) {
	isolateEnv(t)

	t.Run("extra arguments rejected", func(t *testing.T) {
		assert.Equal(t, 1, Execute("test-email", []string{"unexpected"}))
	})

	t.Run("job failure gives exit 1", func(t *testing.T) {
		// brak SMTP_HOST/SMTP_FROM
		assert.Equal(t, 1, Execute("test-email", nil))
	})

	t.Run("missing database config gives exit 1", func(t *testing.T) {
		assert.Equal(t, 1, Execute("migrate-locations", nil))
	})

	t.Run("help exits 0", func(t *testing.T) {
		assert.Equal(t, 0, Execute("seed-tour-blocks", []string{"--help"}))
	})
}

func TestExecute_SQLiteEndToEnd(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", t.TempDir()+"/e2e.db")
	t.Setenv("DB_AUTOMIGRATE", "true")

	assert.Equal(t, 0, Execute("migrate-locations", nil))
	assert.Equal(t, 0, Execute("reconcile-bookings", nil))
	assert.Equal(t, 0, Execute("seed-tour-blocks", nil))
}
