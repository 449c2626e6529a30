// internal/blocks/blocks.go
package blocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bartek5186/tourops/internal/batch"
	"github.com/bartek5186/tourops/internal/db"
	"github.com/bartek5186/tourops/internal/i18n"
	"github.com/bartek5186/tourops/internal/jobs"
)

const JobName = "seed-tour-blocks"

type Key string

const (
	Popular      Key = "popular"
	Combined     Key = "combined"
	Tajikistan   Key = "tajikistan"
	Uzbekistan   Key = "uzbekistan"
	Kyrgyzstan   Key = "kyrgyzstan"
	Kazakhstan   Key = "kazakhstan"
	Turkmenistan Key = "turkmenistan"
)

// Fallback: blok dla tourów spoza pięciu krajów.
const Fallback = Combined

type Definition struct {
	Key         Key
	Title       i18n.Text
	Description i18n.Text
}

// Definitions: stała taksonomia bloków; kolejność = sort_order (od 1).
var Definitions = []Definition{
	{Popular,
		i18n.Text{En: "Popular Tours", Ru: "Популярные туры"},
		i18n.Text{En: "Our most booked journeys across Central Asia", Ru: "Самые востребованные путешествия по Центральной Азии"}},
	{Combined,
		i18n.Text{En: "Combined Central Asia Tours", Ru: "Комбинированные туры по Центральной Азии"},
		i18n.Text{En: "Routes through several countries of the region", Ru: "Маршруты по нескольким странам региона"}},
	{Tajikistan,
		i18n.Text{En: "Tajikistan Tours", Ru: "Туры в Таджикистан"},
		i18n.Text{En: "Pamir, Fann Mountains and ancient Penjikent", Ru: "Памир, Фанские горы и древний Пенджикент"}},
	{Uzbekistan,
		i18n.Text{En: "Uzbekistan Tours", Ru: "Туры в Узбекистан"},
		i18n.Text{En: "Samarkand, Bukhara, Khiva and the Silk Road", Ru: "Самарканд, Бухара, Хива и Великий шёлковый путь"}},
	{Kyrgyzstan,
		i18n.Text{En: "Kyrgyzstan Tours", Ru: "Туры в Кыргызстан"},
		i18n.Text{En: "Issyk-Kul, Song-Kul and the Tian Shan", Ru: "Иссык-Куль, Сон-Куль и Тянь-Шань"}},
	{Kazakhstan,
		i18n.Text{En: "Kazakhstan Tours", Ru: "Туры в Казахстан"},
		i18n.Text{En: "Almaty, Charyn Canyon and the steppe", Ru: "Алматы, Чарынский каньон и степь"}},
	{Turkmenistan,
		i18n.Text{En: "Turkmenistan Tours", Ru: "Туры в Туркменистан"},
		i18n.Text{En: "Ashgabat, Merv and the Darvaza crater", Ru: "Ашхабад, Мерв и кратер Дарваза"}},
}

// countryToBlock: etykieta tours.country (po normalizacji) -> blok.
var countryToBlock = map[string]Key{
	"таджикистан":  Tajikistan,
	"tajikistan":   Tajikistan,
	"узбекистан":   Uzbekistan,
	"uzbekistan":   Uzbekistan,
	"кыргызстан":   Kyrgyzstan,
	"киргизия":     Kyrgyzstan,
	"kyrgyzstan":   Kyrgyzstan,
	"kirgizstan":   Kyrgyzstan,
	"казахстан":    Kazakhstan,
	"kazakhstan":   Kazakhstan,
	"туркменистан": Turkmenistan,
	"туркмения":    Turkmenistan,
	"turkmenistan": Turkmenistan,
}

// BlockFor zwraca blok dla etykiety kraju touru.
func BlockFor(country string) Key {
	if k, ok := countryToBlock[strings.ToLower(strings.TrimSpace(country))]; ok {
		return k
	}
	return Fallback
}

// SlugFor: slug bloku z angielskiego tytułu.
func SlugFor(d Definition) string {
	return slug.Make(d.Title.En)
}

type Seeder struct {
	log  zerolog.Logger
	db   *gorm.DB
	lang i18n.Lang
}

func New(log zerolog.Logger, gdb *gorm.DB) *Seeder {
	return &Seeder{log: log, db: gdb, lang: i18n.Default}
}

// WithLang ustawia język nazw bloków w logach.
func (s *Seeder) WithLang(lang i18n.Lang) *Seeder {
	s.lang = lang
	return s
}

func (s *Seeder) Name() string { return JobName }

type Report struct {
	Blocks   []db.TourBlock
	ByKey    map[Key]uint
	Assigned map[Key]int
	Items    *batch.Report
}

func (s *Seeder) Run(ctx context.Context) error {
	_, err := s.Seed(ctx)
	return err
}

// Seed tworzy bloki i przypisuje każdy tour do jednego z nich.
// Jednorazowy setup: nie sprawdza, co już jest w bazie. Przy powtórce pierwszy
// INSERT bloku wywraca się na unikalnym slugu.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
	tx := s.db.WithContext(ctx)
	rep := &Report{
		ByKey:    make(map[Key]uint, len(Definitions)),
		Assigned: make(map[Key]int, len(Definitions)),
		Items:    batch.New("tour-blocks"),
	}

	for i, d := range Definitions {
		b := db.TourBlock{
			Title:       d.Title,
			Description: d.Description,
			Slug:        SlugFor(d),
			SortOrder:   i + 1,
		}
		if err := tx.Create(&b).Error; err != nil {
			return rep, fmt.Errorf("create block %s: %w", d.Key, err)
		}
		rep.Blocks = append(rep.Blocks, b)
		rep.ByKey[d.Key] = b.ID
		s.log.Info().Uint("block_id", b.ID).Str("slug", b.Slug).Int("sort", b.SortOrder).
			Msgf("Создан блок: %s", d.Title.Get(s.lang))
	}

	var tours []db.Tour
	if err := tx.Select("id", "title", "country").Order("id").Find(&tours).Error; err != nil {
		return rep, fmt.Errorf("select tours: %w", err)
	}
	s.log.Info().Int("count", len(tours)).Msgf("Туров для распределения: %d", len(tours))

	for _, t := range tours {
		key := BlockFor(t.Country)
		a := db.TourBlockAssignment{TourID: t.ID, TourBlockID: rep.ByKey[key], IsPrimary: true}
		if err := tx.Create(&a).Error; err != nil {
			return rep, fmt.Errorf("assign tour %d: %w", t.ID, err)
		}
		rep.Assigned[key]++
		rep.Items.Ok("tour", t.ID, batch.Created)
		s.log.Debug().Uint("tour_id", t.ID).Str("country", t.Country).Str("block", string(key)).
			Msg("Тур назначен в блок")
	}

	ev := s.log.Info().Int("blocks", len(rep.Blocks)).Int("assignments", rep.Items.Total())
	for k, n := range rep.Assigned {
		ev = ev.Int(string(k), n)
	}
	ev.Msgf("Создано блоков: %d, назначений: %d", len(rep.Blocks), rep.Items.Total())
	return rep, nil
}

func init() {
	jobs.Register(jobs.Spec{
		Name:    JobName,
		Short:   "Создание блоков туров и распределение туров по странам",
		NeedsDB: true,
		New: func(d jobs.Deps) (jobs.Job, error) {
			s := New(d.Log, d.DB)
			if d.Config != nil {
				s.WithLang(d.Config.ContentLang())
			}
			return s, nil
		},
	})
}
