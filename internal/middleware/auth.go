package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorhouse/booking-api/internal/models"
	"github.com/doctorhouse/booking-api/internal/utils"
)

const emailKey = "verifiedEmail"

// ErrUnknownUser is returned by a RoleLookup when no user document
// matches the email.
var ErrUnknownUser = errors.New("unknown user")

// RoleLookup resolves a verified email to the role stored for that
// user. It returns ErrUnknownUser when the account does not exist.
type RoleLookup func(ctx context.Context, email string) (string, error)

// VerifiedEmail returns the identity AuthMiddleware attached to the
// request, or "" if the verifier has not run.
func VerifiedEmail(c *gin.Context) string {
	email, _ := c.Get(emailKey)
	s, _ := email.(string)
	return s
}

// AuthMiddleware is the token verifier gate. It fails closed: a
// missing, malformed, or expired Bearer credential aborts with 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Malformed token"})
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// RequireRole is the role authorizer gate. It must be chained after
// AuthMiddleware. The stored role is looked up on every request so the
// gate always reflects the latest value.
func RequireRole(role string, lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := VerifiedEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token missing"})
			return
		}

		got, err := lookup(c.Request.Context(), email)
		if errors.Is(err, ErrUnknownUser) || (err == nil && got != role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": role + " privileges required"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.Next()
	}
}

// MongoRoleLookup builds the production RoleLookup against the users
// collection.
func MongoRoleLookup(db *mongo.Database) RoleLookup {
	return func(ctx context.Context, email string) (string, error) {
		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUnknownUser
		}
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
}
