package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/model"
	"portfolio-backend/internal/pkg/jwtutil"
	"portfolio-backend/internal/transport/http/response"
)

const ContextUserKey = "auth_user"

// Authenticate gates a route behind a bearer token. The pipeline is
// extract -> verify -> resolve: pull the token from the Authorization
// header, check signature and expiry, then load the account the subject
// names. The handler only runs once a live user is in the context, so no
// gated side effect can precede an auth rejection.
func Authenticate(secret, algorithm string, authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		subject, err := jwtutil.ParseToken(secret, algorithm, token)
		if err != nil {
			message := "token is invalid"
			if errors.Is(err, jwtutil.ErrTokenExpired) {
				message = "token is expired"
			}
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, message)
			c.Abort()
			return
		}

		// The token may outlive the account it names; state must be fresh.
		user, err := authService.GetUserByEmail(subject)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "resolve token subject failed")
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, http.StatusNotFound, response.CodeUserNotFound, "user not found")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the principal stored by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
