package db

import (
	"fmt"
)

// Models: tabele, których dotykają joby (kolejność ma znaczenie dla FK).
func Models() []any {
	return []any{
		&Customer{},
		&Country{},
		&City{},
		&Tour{},
		&Order{},
		&Booking{},
		&TourCountry{},
		&TourCity{},
		&TourBlock{},
		&TourBlockAssignment{},
	}
}

// Migrate tworzy/aktualizuje schemat. Na produkcji schemat trzyma aplikacja webowa,
// tu używane tylko lokalnie i w testach (DB_AUTOMIGRATE=true).
func (h *Handle) Migrate() error {
	gdb := h.DB

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}

	return nil
}
