package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenChecker reports whether an issued token is still live; sign-out
// removes the row, revoking the token ahead of its JWT expiry.
type TokenChecker interface {
	Exists(ctx context.Context, token string) (bool, error)
}

type AuthConfig struct {
	Secret string
	Tokens TokenChecker
}

// ContextToken is the gin context key holding the raw bearer token, so the
// sign-out handler can revoke exactly the token that authenticated it.
const ContextToken = "api_token"

func JWTAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "missing token")
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenStr, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(*services.Claims)
		if !ok {
			unauthorized(c, "invalid token")
			return
		}

		live, err := cfg.Tokens.Exists(c.Request.Context(), tokenStr)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}
		if !live {
			unauthorized(c, "revoked token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set(ContextToken, tokenStr)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	utils.RespondError(c, utils.NewBadRequest(http.StatusUnauthorized, message))
	c.Abort()
}
