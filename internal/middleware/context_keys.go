package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key under which the authenticated actor's ID is stored.
// The core performs no authorization; the actor ID is used only for audit
// attribution (createdBy, postedBy, closedBy).
const actorIDKey = contextKey("actorID")

// GetActorIDFromContext retrieves the authenticated actor ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(actorIDKey)); exists {
		if id, ok := v.(string); ok {
			return id, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there.
	if v := c.Request.Context().Value(actorIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}
