// internal/locations/locations.go
package locations

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bartek5186/tourops/internal/batch"
	"github.com/bartek5186/tourops/internal/db"
	"github.com/bartek5186/tourops/internal/i18n"
	"github.com/bartek5186/tourops/internal/jobs"
)

const JobName = "migrate-locations"

// Migrator przenosi legacy tours.country_id / tours.city_id do tabel M:N
// (tour_countries, tour_cities) z is_primary = true. Bezpieczny do ponownego uruchomienia.
type Migrator struct {
	log  zerolog.Logger
	db   *gorm.DB
	lang i18n.Lang
}

func New(log zerolog.Logger, gdb *gorm.DB) *Migrator {
	return &Migrator{log: log, db: gdb, lang: i18n.Default}
}

// WithLang ustawia język tytułów w logach.
func (m *Migrator) WithLang(lang i18n.Lang) *Migrator {
	m.lang = lang
	return m
}

func (m *Migrator) Name() string { return JobName }

type Report struct {
	Items            *batch.Report
	ToursProcessed   int
	CountriesCreated int
	CitiesCreated    int
	CountriesSkipped int
	CitiesSkipped    int
	TotalCountries   int64 // liczba wierszy tour_countries po przebiegu
	TotalCities      int64
}

func (m *Migrator) Run(ctx context.Context) error {
	_, err := m.Migrate(ctx)
	return err
}

// Migrate przerywa cały przebieg przy pierwszym błędzie; to, co już zapisane, zostaje.
func (m *Migrator) Migrate(ctx context.Context) (*Report, error) {
	tx := m.db.WithContext(ctx)
	rep := &Report{Items: batch.New("locations")}

	var tours []db.Tour
	if err := tx.
		Where("country_id IS NOT NULL OR city_id IS NOT NULL").
		Order("id").
		Find(&tours).Error; err != nil {
		return nil, fmt.Errorf("select tours: %w", err)
	}
	m.log.Info().Int("count", len(tours)).Msgf("Найдено туров для миграции: %d", len(tours))

	for _, t := range tours {
		log := m.log.With().Uint("tour_id", t.ID).Str("title", t.Title.Get(m.lang)).Logger()

		if t.CountryID != nil {
			created, err := ensureLink(tx,
				&db.TourCountry{TourID: t.ID, CountryID: *t.CountryID, IsPrimary: true},
				"tour_id = ? AND country_id = ?", t.ID, *t.CountryID)
			if err != nil {
				return rep, fmt.Errorf("tour %d country %d: %w", t.ID, *t.CountryID, err)
			}
			if created {
				rep.CountriesCreated++
				log.Info().Uint("country_id", *t.CountryID).Msg("Создана связь тур–страна")
			} else {
				rep.CountriesSkipped++
				log.Debug().Uint("country_id", *t.CountryID).Msg("Связь тур–страна уже существует")
			}
		}

		if t.CityID != nil {
			created, err := ensureLink(tx,
				&db.TourCity{TourID: t.ID, CityID: *t.CityID, IsPrimary: true},
				"tour_id = ? AND city_id = ?", t.ID, *t.CityID)
			if err != nil {
				return rep, fmt.Errorf("tour %d city %d: %w", t.ID, *t.CityID, err)
			}
			if created {
				rep.CitiesCreated++
				log.Info().Uint("city_id", *t.CityID).Msg("Создана связь тур–город")
			} else {
				rep.CitiesSkipped++
				log.Debug().Uint("city_id", *t.CityID).Msg("Связь тур–город уже существует")
			}
		}

		rep.ToursProcessed++
		rep.Items.Ok("tour", t.ID, batch.Updated)
	}

	if err := tx.Model(&db.TourCountry{}).Count(&rep.TotalCountries).Error; err != nil {
		return rep, fmt.Errorf("count tour_countries: %w", err)
	}
	if err := tx.Model(&db.TourCity{}).Count(&rep.TotalCities).Error; err != nil {
		return rep, fmt.Errorf("count tour_cities: %w", err)
	}

	m.log.Info().
		Int("tours", rep.ToursProcessed).
		Int("countries_created", rep.CountriesCreated).
		Int("cities_created", rep.CitiesCreated).
		Int("countries_skipped", rep.CountriesSkipped).
		Int("cities_skipped", rep.CitiesSkipped).
		Msgf("Миграция завершена: туров %d, связей со странами %d, с городами %d",
			rep.ToursProcessed, rep.CountriesCreated, rep.CitiesCreated)
	m.log.Info().
		Int64("tour_countries", rep.TotalCountries).
		Int64("tour_cities", rep.TotalCities).
		Msg("Всего связей в базе")
	return rep, nil
}

// ensureLink: sprawdza po kluczu złożonym, wstawia row tylko gdy brak.
// Klucz jako jawny warunek: w warunku-strukturze gorm pominąłby country_id = 0.
// OnConflict DoNothing pilnuje klucza, gdyby ktoś wstawił wiersz między SELECT a INSERT.
func ensureLink[T any](tx *gorm.DB, row *T, key string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where(key, args...).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func init() {
	jobs.Register(jobs.Spec{
		Name:    JobName,
		Short:   "Перенос country_id/city_id туров в связи многие-ко-многим",
		NeedsDB: true,
		New: func(d jobs.Deps) (jobs.Job, error) {
			m := New(d.Log, d.DB)
			if d.Config != nil {
				m.WithLang(d.Config.ContentLang())
			}
			return m, nil
		},
	})
}
