package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
// Attribution only (audit fields); authentication lives outside this service.
const actorIDKey = contextKey("actorID")

// ActorHeader is the request header carrying the acting user's ID.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware copies the acting user's ID from the request header into the
// Gin context. Missing header falls back to "system".
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			actorID = "system"
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) string {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "system"
	}

	actorID, ok := actorIDVal.(string)
	if !ok {
		return "system"
	}

	return actorID
}
