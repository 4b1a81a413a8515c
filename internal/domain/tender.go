package domain

import "time"

const (
	TenderCategoryGoods       = "goods"
	TenderCategoryWorks       = "works"
	TenderCategoryServices    = "services"
	TenderCategoryConsultancy = "consultancy"
)

// Tender is a bid announcement.
type Tender struct {
	Base
	Title           string    `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description     string    `gorm:"type:text;not null" json:"description" validate:"required"`
	ReferenceNumber string    `gorm:"size:50;not null;uniqueIndex" json:"reference_number" validate:"required,max=50"`
	Deadline        time.Time `gorm:"not null;index" json:"deadline" validate:"required"`
	DocumentURL     *string   `gorm:"size:200" json:"document_url" validate:"omitempty,url,max=200"`
	Category        string    `gorm:"size:100;not null" json:"category" validate:"required,oneof=goods works services consultancy"`
}

func NewTender() *Tender {
	return &Tender{Base: NewBase()}
}
