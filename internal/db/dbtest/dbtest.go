// Package dbtest daje świeżą bazę sqlite (czyste Go) ze schematem do testów jobów.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	conf "github.com/bartek5186/tourops/internal/config"
	"github.com/bartek5186/tourops/internal/db"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()
	return NewHandle(t).DB
}

func NewHandle(t *testing.T) *db.Handle {
	t.Helper()
	h, err := db.Open(conf.DBConfig{
		Driver: "sqlite",
		Name:   filepath.Join(t.TempDir(), "tourops_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	require.NoError(t, h.Migrate())
	return h
}

func Ptr[T any](v T) *T { return &v }
