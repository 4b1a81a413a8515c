package domain

type Milestone struct {
	Base
	Year        string `gorm:"size:4;not null" json:"year" validate:"required,len=4,numeric"`
	Title       string `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required"`
	Order       int    `gorm:"column:display_order;not null;index" json:"order" validate:"gte=0"`
}

func NewMilestone() *Milestone {
	return &Milestone{Base: NewBase()}
}
