package request

type LoginRequest struct {
	Document string `json:"document" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name         string   `json:"name" binding:"required"`
	Document     string   `json:"document" binding:"required"`
	Email        string   `json:"email"`
	Password     string   `json:"password" binding:"required"`
	Role         string   `json:"role" binding:"required"`
	Capabilities []string `json:"capabilities"`
}
