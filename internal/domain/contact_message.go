package domain

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Base
	Name    string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email   string `gorm:"size:254;not null" json:"email" validate:"required,email,max=254"`
	Phone   string `gorm:"size:20" json:"phone" validate:"max=20"`
	Subject string `gorm:"size:200;not null" json:"subject" validate:"required,max=200"`
	Message string `gorm:"type:text;not null" json:"message" validate:"required"`
	IsRead  bool   `gorm:"not null;index" json:"is_read"`
}

func NewContactMessage() *ContactMessage {
	return &ContactMessage{Base: NewBase()}
}
