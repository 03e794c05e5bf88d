package api

// MessageResponse is the body used by every non-2xx outcome, and by the
// login failure quirk.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

// LoginResponse represents a successful login. Roles carries the raw
// stored role string, delimited the same way the usuario table stores it.
type LoginResponse struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Nome  string `json:"nome"`
	Roles string `json:"roles"`
	Token string `json:"token"`
}
