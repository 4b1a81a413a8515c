package domain

// ProjectStat is a headline figure shown on the home page.
type ProjectStat struct {
	Base
	Label  string `gorm:"size:50;not null" json:"label" validate:"required,max=50"`
	Value  int    `gorm:"not null" json:"value"`
	Suffix string `gorm:"size:20" json:"suffix" validate:"max=20"`
	Icon   string `gorm:"size:10" json:"icon" validate:"max=10"`
	Order  int    `gorm:"column:display_order;not null;index" json:"order" validate:"gte=0"`
}

func NewProjectStat() *ProjectStat {
	return &ProjectStat{Base: NewBase(), Icon: "📊"}
}
