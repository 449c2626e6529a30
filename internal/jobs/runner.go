// internal/jobs/runner.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	conf "github.com/bartek5186/tourops/internal/config"
	"github.com/bartek5186/tourops/internal/db"
)

// Runner trzyma cykl życia procesu: połącz, uruchom, rozłącz.
type Runner struct {
	log  zerolog.Logger
	cfg  *conf.Config
	open func(conf.DBConfig) (*db.Handle, error)
}

func NewRunner(log zerolog.Logger, cfg *conf.Config) *Runner {
	return &Runner{log: log, cfg: cfg, open: db.Open}
}

// WithOpener podmienia otwieranie bazy (testy).
func (r *Runner) WithOpener(open func(conf.DBConfig) (*db.Handle, error)) *Runner {
	r.open = open
	return r
}

func (r *Runner) Run(ctx context.Context, name string) error {
	spec, ok := Get(name)
	if !ok {
		return fmt.Errorf("nieznany job %q (dostępne: %v)", name, Names())
	}

	log := r.log.With().Str("job", name).Logger()
	deps := Deps{Log: log, Config: r.cfg}

	if spec.NeedsDB {
		h, err := r.open(r.cfg.DB)
		if err != nil {
			log.Error().Err(err).Str("driver", r.cfg.DB.Driver).Msg("Не удалось подключиться к базе данных")
			return fmt.Errorf("db open: %w", err)
		}
		defer func() {
			if err := h.Close(); err != nil {
				log.Warn().Err(err).Msg("Ошибка при закрытии соединения с базой")
				return
			}
			log.Debug().Msg("Соединение с базой закрыто")
		}()

		if r.cfg.DB.AutoMigrate {
			if err := h.Migrate(); err != nil {
				log.Error().Err(err).Msg("DB migrate error")
				return err
			}
		}
		deps.DB = h.DB.WithContext(ctx)
	}

	job, err := spec.New(deps)
	if err != nil {
		log.Error().Err(err).Msg("błąd inicjalizacji joba")
		return err
	}

	started := time.Now()
	log.Info().Msg("start")
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Dur("took", time.Since(started)).Msg("Выполнение завершилось с ошибкой")
		return err
	}
	log.Info().Dur("took", time.Since(started)).Msg("Готово")
	return nil
}
