package entities

import "time"

// User is a registered principal (cliente, mecânico or admin) able to
// authenticate. PasswordHash is a bcrypt hash; the plain senha never leaves
// the auth usecase.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Document     string    `json:"document"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Capabilities []string  `json:"capabilities,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor builds the request principal for this user.
func (u User) Actor() *Actor {
	return &Actor{
		ID:           u.ID,
		Name:         u.Name,
		Document:     u.Document,
		Role:         u.Role,
		Capabilities: u.Capabilities,
	}
}
