package dto

// LoginResponse is the JSON shape of a token, used by the Google login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
