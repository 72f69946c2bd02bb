package v1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/middleware"
	"github.com/move-academia/academy-api/internal/domain"
)

// IdentityResolver turns an authenticated user id into an identity with
// its role set attached.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID uint) domain.Identity
}

// callerIdentity resolves the caller set by the JWT middleware. Requests
// without a (valid) token resolve to the anonymous visitor identity.
func callerIdentity(ctx *gin.Context, resolver IdentityResolver) domain.Identity {
	v, ok := ctx.Get(middleware.CtxKeyUserID)
	if !ok {
		return domain.Anonymous
	}

	userID, ok := v.(uint)
	if !ok {
		return domain.Anonymous
	}

	return resolver.Resolve(ctx.Request.Context(), userID)
}

// paramUint parses a numeric path parameter.
func paramUint(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v (%v)", name, raw)
	}

	return uint(id), nil
}
