package domain

// News is an article or announcement.
type News struct {
	Base
	Title      string  `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Content    string  `gorm:"type:text;not null" json:"content" validate:"required"`
	Summary    string  `gorm:"size:500;not null" json:"summary" validate:"required,max=500"`
	ImageURL   *string `gorm:"size:200" json:"image_url" validate:"omitempty,url,max=200"`
	IsFeatured bool    `gorm:"not null;index" json:"is_featured"`
}

func (News) TableName() string {
	return "news"
}

func NewNews() *News {
	return &News{Base: NewBase()}
}
