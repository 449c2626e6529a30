// internal/db/models.go
package db

import (
	"time"

	"github.com/bartek5186/tourops/internal/i18n"
)

// Statusy płatności zamówienia (orders.payment_status)
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Statusy rezerwacji (bookings.status)
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingPaid      = "paid"
	BookingCancelled = "cancelled"
)

const (
	PaymentOptionFull    = "full"
	PaymentOptionDeposit = "deposit"

	ExecutionPending    = "pending"
	ExecutionInProgress = "in_progress"
	ExecutionCompleted  = "completed"
)

// BookingTourPrefix: zamówienia z formularza rezerwacji wycieczki.
const BookingTourPrefix = "BT-"

// customers
type Customer struct {
	ID       uint   `gorm:"primaryKey"`
	FullName string `gorm:"size:255"`
	Email    string `gorm:"size:255;index"`
	Phone    string `gorm:"size:64"`
}

// countries
type Country struct {
	ID   uint `gorm:"primaryKey"`
	Name i18n.Text
}

// cities
type City struct {
	ID        uint `gorm:"primaryKey"`
	CountryID uint `gorm:"index"`
	Name      i18n.Text
}

// orders
type Order struct {
	ID            uint      `gorm:"primaryKey"`
	OrderNumber   string    `gorm:"size:64;uniqueIndex"`
	PaymentStatus string    `gorm:"size:32;index;default:pending"`
	CustomerID    *uint     `gorm:"index"`
	Customer      *Customer `gorm:"foreignKey:CustomerID"`
	TourID        *uint     `gorm:"index"`
	HotelID       *uint
	TourDate      time.Time
	TotalAmount   float64
	PaymentMethod string `gorm:"size:32"`
	Wishes        string `gorm:"type:text"`
	Tourists      string `gorm:"type:text"` // surowy JSON z formularza, bywa uszkodzony
	CreatedAt     time.Time
}

// bookings
type Booking struct {
	ID               uint  `gorm:"primaryKey"`
	OrderID          *uint `gorm:"uniqueIndex"` // 1:1 z orders
	TourID           uint  `gorm:"index"`
	HotelID          *uint
	Tourists         TouristList `gorm:"type:text"`
	ContactName      string      `gorm:"size:255"`
	ContactPhone     string      `gorm:"size:64"`
	ContactEmail     string      `gorm:"size:255;index"`
	TotalPrice       float64
	TourDate         time.Time
	NumberOfTourists int
	Status           string `gorm:"size:32;index;default:pending"`
	PaymentMethod    string `gorm:"size:32"`
	PaymentOption    string `gorm:"size:32"`
	ExecutionStatus  string `gorm:"size:32;default:pending"`
	SpecialRequests  string `gorm:"type:text"`
	CreatedAt        time.Time
}

// tours
type Tour struct {
	ID        uint      `gorm:"primaryKey"`
	Title     i18n.Text
	CountryID *uint  // legacy, zastąpione przez tour_countries
	CityID    *uint  // legacy, zastąpione przez tour_cities
	Country   string `gorm:"size:128"` // etykieta tekstowa, używana do bloków
}

// tour_countries
type TourCountry struct {
	TourID    uint `gorm:"primaryKey;autoIncrement:false"`
	CountryID uint `gorm:"primaryKey;autoIncrement:false"`
	IsPrimary bool `gorm:"default:false"`
}

// tour_cities
type TourCity struct {
	TourID    uint `gorm:"primaryKey;autoIncrement:false"`
	CityID    uint `gorm:"primaryKey;autoIncrement:false"`
	IsPrimary bool `gorm:"default:false"`
}

// tour_blocks
type TourBlock struct {
	ID          uint `gorm:"primaryKey"`
	Title       i18n.Text
	Description i18n.Text
	Slug        string `gorm:"size:128;uniqueIndex"`
	SortOrder   int
}

// tour_block_assignments
type TourBlockAssignment struct {
	ID          uint `gorm:"primaryKey"`
	TourID      uint `gorm:"index:idx_tba_tour_block"`
	TourBlockID uint `gorm:"index:idx_tba_tour_block"`
	IsPrimary   bool `gorm:"default:false"`
}
