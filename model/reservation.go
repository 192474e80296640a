package model

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

const (
	DefaultPartySize       = 2
	DefaultReservationTime = "18:00"
)

type TableReservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	CustomerName    string            `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail   string            `gorm:"size:100" json:"customerEmail"`
	CustomerPhone   string            `gorm:"size:20" json:"customerPhone"`
	TableNumber     string            `gorm:"size:10;not null;index:idx_reservation_slot" json:"tableNumber"`
	PartySize       int               `gorm:"not null" json:"partySize"`
	ReservationDate CustomDate        `gorm:"not null;index:idx_reservation_slot" json:"reservationDate"`
	ReservationTime string            `gorm:"size:5;not null;index:idx_reservation_slot" json:"reservationTime"` // HH:MM
	SpecialRequests string            `gorm:"size:500" json:"specialRequests,omitempty"`
	Status          ReservationStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	AccountID       uint              `gorm:"index" json:"accountId"`
}

type ReservationRequest struct {
	TableNumber     string     `json:"tableNumber" validate:"omitempty,max=10"`
	PartySize       int        `json:"partySize" validate:"omitempty,min=1,max=20"`
	Date            CustomDate `json:"date"`
	Time            string     `json:"time" validate:"omitempty,timeofday"`
	SpecialRequests string     `json:"specialRequests" validate:"omitempty,max=500"`
	CustomerName    string     `json:"customerName" validate:"omitempty,max=100"`
	CustomerEmail   string     `json:"customerEmail" validate:"omitempty,email,max=100"`
	CustomerPhone   string     `json:"customerPhone" validate:"omitempty,max=20"`
}
