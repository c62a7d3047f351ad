// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered person, either a rider or a captain.
// Email is the unique login identifier across both roles.
type Account struct {
	ID           uuid.UUID       `json:"id"`
	Role         Role            `json:"role"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName,omitempty"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"` // Only populated by WithSecret reads.
	Captain      *CaptainProfile `json:"captain,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CaptainProfile holds the opaque driver data attached to a captain account.
type CaptainProfile struct {
	Status  CaptainStatus `json:"status"`
	Vehicle Vehicle       `json:"vehicle"`
}

// Vehicle describes the vehicle a captain drives.
type Vehicle struct {
	Color       string      `json:"color"`
	Plate       string      `json:"plate"`
	Capacity    int         `json:"capacity"`
	VehicleType VehicleType `json:"vehicleType"`
}

// VehicleType enumerates the supported vehicle kinds.
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeAuto VehicleType = "auto"
)

// IsValid checks if the VehicleType is a known value.
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeAuto:
		return true
	default:
		return false
	}
}

// CaptainStatus is the availability of a captain.
type CaptainStatus string

const (
	CaptainStatusActive   CaptainStatus = "active"
	CaptainStatusInactive CaptainStatus = "inactive"
)

// WithoutSecret returns a copy of the account with the password hash cleared.
func (a *Account) WithoutSecret() *Account {
	if a == nil {
		return nil
	}

	clone := *a
	clone.PasswordHash = ""
	if a.Captain != nil {
		captain := *a.Captain
		clone.Captain = &captain
	}

	return &clone
}
