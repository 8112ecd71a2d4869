package middleware

import (
	"net/http"
	"strings"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"
	"mecanica_os/pkg"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding the authenticated *entities.Actor.
const ActorKey = "actor"

var errMissingToken = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)

// RequireAuth verifies the Authorization bearer token and stores the
// resulting actor in the context. Handlers behind it can assume ActorFrom
// returns a non-nil actor.
func RequireAuth(tokens interfaces.ITokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		actor, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor placed by RequireAuth, or nil on open routes.
// Usecases treat nil as unauthenticated, so handlers may pass it through.
func ActorFrom(c *gin.Context) *entities.Actor {
	v, ok := c.Get(ActorKey)
	if !ok {
		return nil
	}
	actor, ok := v.(*entities.Actor)
	if !ok {
		return nil
	}
	return actor
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
