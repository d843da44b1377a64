package dto

type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}
