package domain

// CSRInitiative is a corporate social responsibility programme.
type CSRInitiative struct {
	Base
	Title        string  `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description  string  `gorm:"type:text;not null" json:"description" validate:"required"`
	Category     string  `gorm:"size:20;not null;index" json:"category" validate:"required,oneof=education health environment livelihood infrastructure"`
	ImpactMetric *string `gorm:"size:200" json:"impact_metric" validate:"omitempty,max=200"`
	ImageURL     *string `gorm:"size:200" json:"image_url" validate:"omitempty,url,max=200"`
}

func (CSRInitiative) TableName() string {
	return "csr_initiatives"
}

func NewCSRInitiative() *CSRInitiative {
	return &CSRInitiative{Base: NewBase()}
}
