package domain

type BoardMember struct {
	Base
	Name       string  `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Title      string  `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Bio        string  `gorm:"type:text" json:"bio"`
	ImageURL   *string `gorm:"size:200" json:"image_url" validate:"omitempty,url,max=200"`
	IsChairman bool    `gorm:"not null" json:"is_chairman"`
	Order      int     `gorm:"column:display_order;not null;index" json:"order" validate:"gte=0"`
}

func NewBoardMember() *BoardMember {
	return &BoardMember{Base: NewBase()}
}
