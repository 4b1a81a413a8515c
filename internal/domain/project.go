package domain

const (
	ProjectStatusOperational  = "operational"
	ProjectStatusConstruction = "construction"
	ProjectStatusPlanning     = "planning"
	ProjectStatusMaintenance  = "maintenance"
)

// Project is a generation or transmission asset.
type Project struct {
	Base
	Name        string  `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Location    string  `gorm:"size:200;not null" json:"location" validate:"required,max=200"`
	Description string  `gorm:"type:text;not null" json:"description" validate:"required"`
	Capacity    string  `gorm:"size:50" json:"capacity" validate:"max=50"`
	Status      string  `gorm:"size:20;not null;index" json:"status" validate:"required,oneof=operational construction planning maintenance"`
	Category    string  `gorm:"size:20;not null;index" json:"category" validate:"required,oneof=coal solar wind hydro transmission"`
	ImageURL    *string `gorm:"size:200" json:"image_url" validate:"omitempty,url,max=200"`
	Efficiency  string  `gorm:"size:50" json:"efficiency" validate:"max=50"`
	IsFeatured  bool    `gorm:"not null;index" json:"is_featured"`
}

func NewProject() *Project {
	return &Project{Base: NewBase(), Status: ProjectStatusOperational}
}
