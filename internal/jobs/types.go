// internal/jobs/types.go
package jobs

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	conf "github.com/bartek5186/tourops/internal/config"
)

// Job: jednorazowa procedura uruchamiana z linii poleceń.
type Job interface {
	Name() string
	Run(ctx context.Context) error // blokuje do końca przebiegu
}

// Deps: wszystko, czego job potrzebuje; nic globalnego.
type Deps struct {
	Log    zerolog.Logger
	DB     *gorm.DB // nil dla jobów z NeedsDB=false
	Config *conf.Config
}

type Factory func(d Deps) (Job, error)

// Spec opisuje zarejestrowany job.
type Spec struct {
	Name    string
	Short   string
	NeedsDB bool
	New     Factory
}
