package domain

const DefaultCareerLocation = "Rampal, Bagerhat"

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// Career is a job posting that applications reference.
type Career struct {
	Base
	Title        string `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Department   string `gorm:"size:100;not null;index" json:"department" validate:"required,max=100"`
	Location     string `gorm:"size:100;not null" json:"location" validate:"required,max=100"`
	Description  string `gorm:"type:text;not null" json:"description" validate:"required"`
	Requirements string `gorm:"type:text;not null" json:"requirements" validate:"required"`
	JobType      string `gorm:"size:50;not null" json:"job_type" validate:"required,oneof=full_time part_time contract internship"`
	Deadline     Date   `gorm:"not null" json:"deadline" validate:"required"`
	Vacancies    int    `gorm:"not null" json:"vacancies" validate:"gte=0"`
}

func NewCareer() *Career {
	return &Career{
		Base:      NewBase(),
		Location:  DefaultCareerLocation,
		Vacancies: 1,
	}
}
