package internal

import (
	"time"

	"github.com/gofrs/uuid"
)

// Base defines the base model for domain objects
type Base struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"index;not null;default:current_timestamp" validate:"required"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"index;default:null"`
}

// BaseSoftDelete defines the base model with soft delete functionality for domain objects.
//
// DeletedAt is a plain nullable timestamp rather than a driver-managed
// column so that both soft delete strategies share the same column and
// active-record scoping stays explicit in repository queries.
type BaseSoftDelete struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"index;not null;default:current_timestamp" validate:"required"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"index;default:null"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index;default:null"`
}
