package auth

// tokenRequest carries staff credentials.
type tokenRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type meResponse struct {
	Subject       string `json:"subject"`
	Authenticated bool   `json:"authenticated"`
	Staff         bool   `json:"staff"`
}
