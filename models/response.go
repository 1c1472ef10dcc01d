package models

type LoginResponse struct {
	Token string          `json:"token"`
	User  UserWithProfile `json:"user"`
}
