package response

import "mecanica_os/internal/domain/entities"

type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Document     string   `json:"document"`
	Email        string   `json:"email,omitempty"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Document:     u.Document,
		Email:        u.Email,
		Role:         string(u.Role),
		Capabilities: u.Capabilities,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func FromLogin(token string, u entities.User) LoginResponse {
	return LoginResponse{Token: token, User: FromUser(u)}
}
