package interfaces

import "mecanica_os/internal/domain/entities"

// ITokenService abstracts signed authentication tokens.
//
// Generate issues a token carrying identity, document and perfil claims;
// Parse verifies a token and rebuilds the request Actor. Role claims are
// trusted verbatim after verification.
type ITokenService interface {
	Generate(user entities.User) (string, error)
	Parse(token string) (*entities.Actor, error)
}
