package middleware

import (
	"net/http"
	"strings"
	"time"

	"amazonia/internal/models"
	"amazonia/internal/policy"
	"amazonia/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Guard protects the CMS and admin route groups. It authenticates the
// bearer token, waits for the usuario document to resolve (bounded by
// Timeout) and checks the role against the requested capability.
// Unauthenticated requests are redirected to the login entry point,
// authenticated-but-unauthorized ones to the home route.
type Guard struct {
	Resolver  *session.Resolver
	Timeout   time.Duration
	LoginPath string
	HomePath  string
}

func NewGuard(resolver *session.Resolver) *Guard {
	return &Guard{
		Resolver:  resolver,
		Timeout:   session.DefaultTimeout,
		LoginPath: "/login",
		HomePath:  "/",
	}
}

// Require returns the middleware enforcing the capability. On success the
// resolved usuario is stored in the context under ContextUserKey.
func (g *Guard) Require(capability policy.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, email, ok := bearerIdentity(c)
		if !ok {
			c.Redirect(http.StatusFound, g.LoginPath)
			c.Abort()
			return
		}

		// Identity resolution may still be in flight right after login;
		// wait for the single completion signal instead of deciding on a
		// missing document immediately. Timeout means unauthenticated.
		user, err := g.Resolver.Await(c.Request.Context(), uid, g.Timeout)
		if err != nil {
			zap.S().Infof("Guard: identity %s unresolved (%v), redirecting to login", uid, err)
			c.Redirect(http.StatusFound, g.LoginPath)
			c.Abort()
			return
		}

		if !policy.Allowed(user.Role, capability) {
			zap.S().Infof("Guard: %s (%s) denied %s", uid, user.Role, capability)
			c.Redirect(http.StatusFound, g.HomePath)
			c.Abort()
			return
		}

		c.Set(ContextUIDKey, uid)
		c.Set(ContextEmailKey, email)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the usuario resolved by Guard.Require.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func bearerIdentity(c *gin.Context) (uid, email string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", "", false
	}
	uid, email, err := ParseToken(parts[1])
	if err != nil {
		return "", "", false
	}
	return uid, email, true
}
