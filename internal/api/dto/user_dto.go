package dto

// UserUpdateRequest payload for PUT /users/:id.
type UserUpdateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
