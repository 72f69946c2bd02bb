package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/request"
	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/config"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/pkg/jwthelper"
	"github.com/move-academia/academy-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, user domain.User, name string) (domain.User, domain.Profile, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	UpdatePassword(ctx context.Context, userID uint, current, next string) error
}

type RoleService interface {
	IdentityResolver

	GrantRole(ctx context.Context, userID uint, role domain.Role) error
	RevokeRole(ctx context.Context, userID uint, role domain.Role) error
	ListRoles(ctx context.Context, userID uint) ([]domain.Role, error)
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   AuthService
	roles RoleService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, roles RoleService) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		roles: roles,
	}
}

// HandleSignup godoc
// @Summary      Signup a new account with its member profile
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   response.SignupResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, profile, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Password: req.Password,
	}, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserEmailExists))

			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.SignupResponse{
		User:    user,
		Profile: profile,
	})
}

// HandleLogin godoc
// @Summary      Login with email and password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleUpdatePassword godoc
// @Summary      Change the caller's password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.UpdatePasswordRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/password [put]
func (h *AuthHandler) HandleUpdatePassword(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.roles)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	var req request.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.UpdatePassword(ctx.Request.Context(), identity.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdatePassword -> h.svc.UpdatePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGrantRole godoc
// @Summary      Grant a role to a user
// @Tags         roles
// @Produce      json
// @Param        userID    path       int true "user ID"
// @Param        request   body       request.GrantRoleRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/roles [post]
func (h *AuthHandler) HandleGrantRole(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.roles)
	if !identity.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("only admins manage roles")))

		return
	}

	userID, err := paramUint(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.GrantRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.roles.GrantRole(ctx.Request.Context(), userID, domain.Role(req.Role)); err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleGrantRole -> h.roles.GrantRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRevokeRole godoc
// @Summary      Revoke a role from a user
// @Tags         roles
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Param        role     path       string true "role"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/roles/{role} [delete]
func (h *AuthHandler) HandleRevokeRole(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.roles)
	if !identity.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("only admins manage roles")))

		return
	}

	userID, err := paramUint(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.roles.RevokeRole(ctx.Request.Context(), userID, domain.Role(ctx.Param("role"))); err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleRevokeRole -> h.roles.RevokeRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListRoles godoc
// @Summary      List a user's roles
// @Tags         roles
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Success      200      {array}    string
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/roles [get]
func (h *AuthHandler) HandleListRoles(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.roles)

	userID, err := paramUint(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// Users read their own roles, admins read anybody's.
	if userID != identity.UserID && !identity.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("cannot read another user's roles")))

		return
	}

	roles, err := h.roles.ListRoles(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRoles -> h.roles.ListRoles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, roles)
}
