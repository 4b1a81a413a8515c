package domain

type SustainabilityStat struct {
	Base
	Label string  `gorm:"size:100;not null" json:"label" validate:"required,max=100"`
	Value string  `gorm:"size:50;not null" json:"value" validate:"required,max=50"`
	Trend *string `gorm:"size:50" json:"trend" validate:"omitempty,max=50"`
	Icon  *string `gorm:"size:10" json:"icon" validate:"omitempty,max=10"`
	Order int     `gorm:"column:display_order;not null;index" json:"order" validate:"gte=0"`
}

func NewSustainabilityStat() *SustainabilityStat {
	return &SustainabilityStat{Base: NewBase()}
}
