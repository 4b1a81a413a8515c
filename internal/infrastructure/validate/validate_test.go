package validate

import (
	"testing"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string      `json:"title" validate:"required,max=5"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Category string      `json:"category" validate:"oneof=goods works"`
	Years    int         `json:"experience_years" validate:"gte=0"`
	Deadline domain.Date `json:"deadline" validate:"required"`
}

func TestStructMessages(t *testing.T) {
	err := Default().Struct(sample{
		Title:    "too long",
		Email:    "not-an-email",
		Category: "food",
		Years:    -1,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string][]string{
		"title":            {"Ensure this field has no more than 5 characters."},
		"email":            {"Enter a valid email address."},
		"category":         {"Select one of [goods works]."},
		"experience_years": {"Ensure this value is greater than or equal to 0."},
		"deadline":         {"This field is required."},
	}, verr.Fields)
}

func TestStructValid(t *testing.T) {
	err := Default().Struct(sample{
		Title:    "ok",
		Category: "works",
		Deadline: domain.NewDate(2026, 1, 1),
	})
	assert.NoError(t, err)
}
