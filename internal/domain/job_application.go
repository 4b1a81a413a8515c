package domain

import "gorm.io/gorm"

// JobApplication is a public submission against a Career. Deleting the
// career deletes its applications.
type JobApplication struct {
	Base
	CareerID        uint    `gorm:"not null;index" json:"career" validate:"required"`
	Career          *Career `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CareerTitle     string  `gorm:"-" json:"career_title"`
	Name            string  `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email           string  `gorm:"size:254;not null" json:"email" validate:"required,email,max=254"`
	Phone           string  `gorm:"size:20;not null" json:"phone" validate:"required,max=20"`
	CoverLetter     string  `gorm:"type:text" json:"cover_letter"`
	ResumeURL       *string `gorm:"size:200" json:"resume_url" validate:"omitempty,url,max=200"`
	ExperienceYears int     `gorm:"not null" json:"experience_years" validate:"gte=0"`
	CurrentPosition string  `gorm:"size:200" json:"current_position" validate:"max=200"`
	IsReviewed      bool    `gorm:"not null;index" json:"is_reviewed"`
}

func NewJobApplication() *JobApplication {
	return &JobApplication{Base: NewBase()}
}

func (a *JobApplication) AfterFind(tx *gorm.DB) error {
	if a.Career != nil {
		a.CareerTitle = a.Career.Title
	}
	return nil
}
