package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	GoogleID     string
	Avatar       string
	Provider     string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
