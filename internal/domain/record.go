package domain

import "time"

// Base carries the fields every record shares. Concrete records embed it.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
}

// Record is implemented by every pointer to a type embedding Base.
type Record interface {
	RecordBase() *Base
}

func (b *Base) RecordBase() *Base {
	return b
}

// NewBase returns the defaults for a freshly submitted record.
func NewBase() Base {
	return Base{IsActive: true}
}

// Stamp sets both timestamps for an insert.
func (b *Base) Stamp(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}
