package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/pkg/jwthelper"
)

// CtxKeyUserID holds the authenticated user's id in the gin context.
const CtxKeyUserID = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := a.parseBearer(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})

			return
		}

		ctx.Set(CtxKeyUserID, userID)
		ctx.Next()
	}
}

// OptionalJWT attaches the user id when a valid token is present but lets
// anonymous requests through. Used on routes that degrade to the public
// visitor view.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID, ok := a.parseBearer(ctx); ok {
			ctx.Set(CtxKeyUserID, userID)
		}

		ctx.Next()
	}
}

func (a *Authenticator) parseBearer(ctx *gin.Context) (uint, bool) {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return 0, false
	}

	userID, err := jwthelper.ParseToken(a.signingKey, token)
	if err != nil {
		return 0, false
	}

	return userID, true
}
