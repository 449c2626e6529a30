// internal/reconcile/reconcile.go
package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bartek5186/tourops/internal/batch"
	"github.com/bartek5186/tourops/internal/db"
	"github.com/bartek5186/tourops/internal/jobs"
)

const JobName = "reconcile-bookings"

// PlaceholderTourist: gdy lista turystów w zamówieniu jest nieczytelna.
const PlaceholderTourist = "Турист 1"

// Reconciler uzgadnia bookings z orders:
//  1. status rezerwacji = paid, gdy powiązane zamówienie jest opłacone,
//  2. opłacone zamówienia BT-* bez rezerwacji dostają istniejącą (dopasowaną) albo nową.
type Reconciler struct {
	log zerolog.Logger
	db  *gorm.DB
}

func New(log zerolog.Logger, gdb *gorm.DB) *Reconciler {
	return &Reconciler{log: log, db: gdb}
}

func (r *Reconciler) Name() string { return JobName }

// Report: wynik obu faz.
type Report struct {
	StatusSync *batch.Report
	Backfill   *batch.Report
}

func (r Report) Updated() int { return r.StatusSync.Count(batch.Updated) }
func (r Report) Linked() int  { return r.Backfill.Count(batch.Linked) }
func (r Report) Created() int { return r.Backfill.Count(batch.Created) }
func (r Report) Skipped() int { return r.Backfill.Count(batch.Skipped) }
func (r Report) Failed() int {
	return r.StatusSync.Count(batch.Failed) + r.Backfill.Count(batch.Failed)
}

func (r *Reconciler) Run(ctx context.Context) error {
	_, err := r.Reconcile(ctx)
	return err
}

// Reconcile uruchamia obie fazy po kolei. Błąd zwracany tylko, gdy faza nie mogła ruszyć
// (np. zapytanie wybierające); błędy pojedynczych rekordów lądują w raporcie.
func (r *Reconciler) Reconcile(ctx context.Context) (*Report, error) {
	phase1, err := r.SyncStatuses(ctx)
	if err != nil {
		return nil, err
	}
	phase2, err := r.BackfillBookings(ctx)
	if err != nil {
		return nil, err
	}
	phase1.Log(r.log)
	phase2.Log(r.log)

	rep := &Report{StatusSync: phase1, Backfill: phase2}
	r.log.Info().
		Int("updated", rep.Updated()).
		Int("linked", rep.Linked()).
		Int("created", rep.Created()).
		Int("skipped", rep.Skipped()).
		Int("failed", rep.Failed()).
		Msgf("Итого: обновлено %d, связано %d, создано %d", rep.Updated(), rep.Linked(), rep.Created())
	return rep, nil
}

// SyncStatuses — faza 1: bookings.status = paid tam, gdzie orders.payment_status = paid.
func (r *Reconciler) SyncStatuses(ctx context.Context) (*batch.Report, error) {
	tx := r.db.WithContext(ctx)
	rep := batch.New("status-sync")

	paidOrders := tx.Model(&db.Order{}).Select("id").Where("payment_status = ?", db.PaymentPaid)

	var bookings []db.Booking
	if err := tx.
		Where("order_id IS NOT NULL AND status <> ?", db.BookingPaid).
		Where("order_id IN (?)", paidOrders).
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("select bookings to sync: %w", err)
	}
	r.log.Info().Int("count", len(bookings)).Msgf("Найдено бронирований для обновления: %d", len(bookings))

	for _, b := range bookings {
		err := tx.Model(&db.Booking{}).
			Where("id = ?", b.ID).
			Update("status", db.BookingPaid).Error
		if err != nil {
			r.log.Error().Err(err).Uint("booking_id", b.ID).Msg("Ошибка обновления бронирования")
			rep.Fail("booking", b.ID, err)
			continue
		}
		r.log.Debug().Uint("booking_id", b.ID).Str("from", b.Status).Msg("Статус бронирования → paid")
		rep.Ok("booking", b.ID, batch.Updated)
	}

	r.log.Info().
		Int("updated", rep.Count(batch.Updated)).
		Int("total", len(bookings)).
		Msgf("Обновлено: %d из %d", rep.Count(batch.Updated), len(bookings))
	return rep, nil
}

// BackfillBookings — faza 2: opłacone zamówienia BT-* bez rezerwacji.
func (r *Reconciler) BackfillBookings(ctx context.Context) (*batch.Report, error) {
	tx := r.db.WithContext(ctx)
	rep := batch.New("backfill")

	var orders []db.Order
	if err := tx.
		Preload("Customer").
		Where("payment_status = ? AND order_number LIKE ?", db.PaymentPaid, db.BookingTourPrefix+"%").
		Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.order_id = orders.id)").
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("select paid orders without booking: %w", err)
	}
	r.log.Info().Int("count", len(orders)).Msgf("Найдено оплаченных заказов без бронирования: %d", len(orders))

	for i := range orders {
		o := &orders[i]
		// bez touru nie ma ani dopasowania, ani nowej rezerwacji
		if o.TourID == nil {
			r.log.Warn().Uint("order_id", o.ID).Str("order_number", o.OrderNumber).Msg("Пропуск: у заказа нет тура")
			rep.Skip("order", o.ID, "no tour id")
			continue
		}
		rep.Add(r.backfillOrder(tx, o))
	}

	r.log.Info().
		Int("linked", rep.Count(batch.Linked)).
		Int("created", rep.Count(batch.Created)).
		Int("skipped", rep.Count(batch.Skipped)).
		Int("failed", rep.Count(batch.Failed)).
		Msgf("Связано: %d, создано: %d, пропущено: %d", rep.Count(batch.Linked), rep.Count(batch.Created), rep.Count(batch.Skipped))
	return rep, nil
}

func (r *Reconciler) backfillOrder(tx *gorm.DB, o *db.Order) batch.Result {
	log := r.log.With().Uint("order_id", o.ID).Str("order_number", o.OrderNumber).Logger()
	res := batch.Result{Kind: "order", ID: o.ID, Ref: o.OrderNumber}

	match, err := r.findMatch(tx, log, o)
	if err != nil {
		log.Error().Err(err).Msg("Ошибка поиска бронирования")
		return failed(res, err)
	}

	if match != nil {
		upd := tx.Model(&db.Booking{}).
			Where("id = ? AND order_id IS NULL", match.ID).
			Updates(map[string]any{"order_id": o.ID, "status": db.BookingPaid})
		if upd.Error != nil {
			log.Error().Err(upd.Error).Uint("booking_id", match.ID).Msg("Ошибка связывания бронирования")
			return failed(res, upd.Error)
		}
		if upd.RowsAffected == 0 {
			err := fmt.Errorf("booking %d already linked", match.ID)
			log.Error().Err(err).Msg("Ошибка связывания бронирования")
			return failed(res, err)
		}
		log.Info().Uint("booking_id", match.ID).Msg("Бронирование связано с заказом")
		res.Outcome = batch.Linked
		return res
	}

	b := bookingFromOrder(log, o)
	if err := tx.Create(&b).Error; err != nil {
		log.Error().Err(err).Msg("Ошибка создания бронирования")
		return failed(res, err)
	}
	log.Info().Uint("booking_id", b.ID).Int("tourists", b.NumberOfTourists).Msg("Создано бронирование для заказа")
	res.Outcome = batch.Created
	return res
}

// findMatch: rezerwacja bez order_id, ten sam email kontaktowy, data i tour.
// Cena celowo pominięta: zaliczka != pełna cena. Przy kilku kandydatach bierzemy najstarszy.
func (r *Reconciler) findMatch(tx *gorm.DB, log zerolog.Logger, o *db.Order) (*db.Booking, error) {
	email := ""
	if o.Customer != nil {
		email = o.Customer.Email
	}
	if o.TourID == nil || email == "" {
		return nil, nil
	}

	var cands []db.Booking
	if err := tx.
		Where("order_id IS NULL AND contact_email = ? AND tour_date = ? AND tour_id = ?", email, o.TourDate, *o.TourID).
		Order("id").
		Find(&cands).Error; err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, nil
	}
	if len(cands) > 1 {
		ids := make([]uint, 0, len(cands))
		for _, c := range cands {
			ids = append(ids, c.ID)
		}
		log.Warn().Int("candidates", len(cands)).Interface("booking_ids", ids).
			Msg("Несколько подходящих бронирований, берём первое")
	}
	return &cands[0], nil
}

func bookingFromOrder(log zerolog.Logger, o *db.Order) db.Booking {
	tourists, err := db.ParseTourists(o.Tourists)
	if err != nil {
		log.Warn().Err(err).Msg("Не удалось разобрать список туристов, используем заглушку")
		tourists = db.TouristList{{Name: PlaceholderTourist, BirthDate: ""}}
	}
	n := len(tourists)
	if n == 0 {
		n = 1
	}

	orderID := o.ID
	b := db.Booking{
		OrderID:          &orderID,
		TourID:           *o.TourID,
		HotelID:          o.HotelID,
		Tourists:         tourists,
		TotalPrice:       o.TotalAmount,
		TourDate:         o.TourDate,
		NumberOfTourists: n,
		Status:           db.BookingPaid,
		PaymentMethod:    o.PaymentMethod,
		PaymentOption:    db.PaymentOptionFull,
		ExecutionStatus:  db.ExecutionPending,
		SpecialRequests:  o.Wishes,
	}
	if c := o.Customer; c != nil {
		b.ContactName = c.FullName
		b.ContactPhone = c.Phone
		b.ContactEmail = c.Email
	}
	return b
}

func failed(res batch.Result, err error) batch.Result {
	res.Outcome = batch.Failed
	res.Reason = err.Error()
	res.Err = err
	return res
}

func init() {
	jobs.Register(jobs.Spec{
		Name:    JobName,
		Short:   "Синхронизация статусов бронирований с оплаченными заказами",
		NeedsDB: true,
		New: func(d jobs.Deps) (jobs.Job, error) {
			return New(d.Log, d.DB), nil
		},
	})
}
