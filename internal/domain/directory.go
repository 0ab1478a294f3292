package domain

import (
	"context"
	"time"
)

type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}

type Staff struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	JobTitle  string   `json:"jobTitle,omitempty"`
	Active    bool     `json:"active"`
	Locations []string `json:"locations"`
}

type Appointment struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"clientId"`
	StaffID    string    `json:"staffId"`
	LocationID string    `json:"locationId"`
	Service    string    `json:"service"`
	Status     string    `json:"status"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

type Transaction struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"clientId"`
	LocationID string    `json:"locationId"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	Kind       string    `json:"kind,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DirectoryRepository interface {
	ListLocations(ctx context.Context) ([]Location, error)
	ListStaff(ctx context.Context) ([]Staff, error)
	ListAppointments(ctx context.Context) ([]Appointment, error)
	StaffLocations(ctx context.Context, userID string) ([]string, error)
}
