package middleware

import (
	"errors"
	"net/http"

	"postboard/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key the resolved session is attached under.
const SessionKey = "session"

var ErrNoSession = errors.New("no session in request context")

// SessionAuth gates protected routes. The Authorization header carries the
// raw opaque token, no Bearer prefix. On success the resolved session is
// attached to the context; otherwise the chain is aborted with 401 and the
// downstream handler never runs.
func SessionAuth(sessions session.SessionServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		sess, err := sessions.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session attached by SessionAuth.
func SessionFromContext(c *gin.Context) (*session.Session, error) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, ErrNoSession
	}

	sess, ok := v.(*session.Session)
	if !ok {
		return nil, ErrNoSession
	}

	return sess, nil
}
