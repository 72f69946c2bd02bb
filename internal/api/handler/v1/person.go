package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/request"
	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/service"
)

type PersonService interface {
	GetOwnProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, identity domain.Identity, profile domain.Profile) (domain.Profile, error)
	ListProfiles(ctx context.Context, identity domain.Identity) ([]domain.Profile, error)
	CreateAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete) (domain.Athlete, error)
	UpdateAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete) (domain.Athlete, error)
	DeleteAthlete(ctx context.Context, identity domain.Identity, id uint) error
	ListAthletes(ctx context.Context, identity domain.Identity) ([]domain.Athlete, error)
	AddOwnAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete, relationship domain.GuardianRelationship) (domain.Athlete, error)
	ListOwnAthletes(ctx context.Context, identity domain.Identity) ([]domain.Athlete, error)
	AddGuardian(ctx context.Context, identity domain.Identity, link domain.AthleteGuardian) (domain.AthleteGuardian, error)
	RemoveGuardian(ctx context.Context, identity domain.Identity, linkID uint) error
	ListGuardians(ctx context.Context, identity domain.Identity, athleteID uint) ([]domain.AthleteGuardian, error)
}

type PersonHandler struct {
	svc      PersonService
	resolver IdentityResolver
}

func NewPersonHandler(svc PersonService, resolver IdentityResolver) *PersonHandler {
	return &PersonHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleGetOwnProfile godoc
// @Summary      Get the caller's member profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /profiles/me [get]
func (h *PersonHandler) HandleGetOwnProfile(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	profile, err := h.svc.GetOwnProfile(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOwnProfile -> h.svc.GetOwnProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	// A missing profile renders as null, not as an error.
	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateProfile godoc
// @Summary      Update a member profile
// @Tags         profiles
// @Produce      json
// @Param        profileID  path      int true "profile ID"
// @Param        request    body      request.UpdateProfileRequest true "request body"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /profiles/{profileID} [put]
func (h *PersonHandler) HandleUpdateProfile(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	profileID, err := paramUint(ctx, "profileID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	profile, err := h.svc.UpdateProfile(ctx.Request.Context(), identity, domain.Profile{
		ID:                  profileID,
		Name:                req.Name,
		Phone:               req.Phone,
		BirthDate:           req.BirthDate,
		Notes:               req.Notes,
		Discipline:          req.Discipline,
		SubscriptionStatus:  req.SubscriptionStatus,
		SubscriptionEndDate: req.SubscriptionEndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrProfileNotFound):
			response.RenderErr(ctx, response.ErrNotFound("profile", "ID", profileID))
		default:
			err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleListProfiles godoc
// @Summary      List all member profiles
// @Tags         profiles
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /profiles [get]
func (h *PersonHandler) HandleListProfiles(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	profiles, err := h.svc.ListProfiles(ctx.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListProfiles -> h.svc.ListProfiles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, profiles)
}

// HandleListAthletes godoc
// @Summary      List all athlete records
// @Tags         athletes
// @Produce      json
// @Success      200  {array}   domain.Athlete
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes [get]
func (h *PersonHandler) HandleListAthletes(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	athletes, err := h.svc.ListAthletes(ctx.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListAthletes -> h.svc.ListAthletes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, athletes)
}

// HandleCreateAthlete godoc
// @Summary      Create an athlete record
// @Tags         athletes
// @Produce      json
// @Param        request  body      request.AthleteRequest true "request body"
// @Success      201  {object}  domain.Athlete
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes [post]
func (h *PersonHandler) HandleCreateAthlete(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.AthleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	athlete, err := h.svc.CreateAthlete(ctx.Request.Context(), identity, athleteFromRequest(req, 0))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateAthlete -> h.svc.CreateAthlete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, athlete)
}

// HandleUpdateAthlete godoc
// @Summary      Update an athlete record
// @Tags         athletes
// @Produce      json
// @Param        athleteID  path      int true "athlete ID"
// @Param        request    body      request.AthleteRequest true "request body"
// @Success      200  {object}  domain.Athlete
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/{athleteID} [put]
func (h *PersonHandler) HandleUpdateAthlete(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	athleteID, err := paramUint(ctx, "athleteID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AthleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	athlete, err := h.svc.UpdateAthlete(ctx.Request.Context(), identity, athleteFromRequest(req, athleteID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrAthleteNotFound):
			response.RenderErr(ctx, response.ErrNotFound("athlete", "ID", athleteID))
		default:
			err = fmt.Errorf("v1.HandleUpdateAthlete -> h.svc.UpdateAthlete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, athlete)
}

// HandleDeleteAthlete godoc
// @Summary      Delete an athlete record
// @Tags         athletes
// @Produce      json
// @Param        athleteID  path      int true "athlete ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/{athleteID} [delete]
func (h *PersonHandler) HandleDeleteAthlete(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	athleteID, err := paramUint(ctx, "athleteID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteAthlete(ctx.Request.Context(), identity, athleteID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteAthlete -> h.svc.DeleteAthlete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListOwnAthletes godoc
// @Summary      List the athletes guarded by the caller
// @Tags         athletes
// @Produce      json
// @Success      200  {array}   domain.Athlete
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/mine [get]
func (h *PersonHandler) HandleListOwnAthletes(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	athletes, err := h.svc.ListOwnAthletes(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleListOwnAthletes -> h.svc.ListOwnAthletes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, athletes)
}

// HandleAddOwnAthlete godoc
// @Summary      Register an athlete under the caller's guardianship
// @Tags         athletes
// @Produce      json
// @Param        request  body      request.AddOwnAthleteRequest true "request body"
// @Success      201  {object}  domain.Athlete
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/mine [post]
func (h *PersonHandler) HandleAddOwnAthlete(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	var req request.AddOwnAthleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	athlete, err := h.svc.AddOwnAthlete(ctx.Request.Context(), identity,
		athleteFromRequest(req.AthleteRequest, 0), domain.GuardianRelationship(req.Relationship))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("caller has no member profile")))

			return
		}

		err = fmt.Errorf("v1.HandleAddOwnAthlete -> h.svc.AddOwnAthlete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, athlete)
}

// HandleAddGuardian godoc
// @Summary      Link a guardian profile to an athlete
// @Tags         athletes
// @Produce      json
// @Param        athleteID  path      int true "athlete ID"
// @Param        request    body      request.AddGuardianRequest true "request body"
// @Success      201  {object}  domain.AthleteGuardian
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/{athleteID}/guardians [post]
func (h *PersonHandler) HandleAddGuardian(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	athleteID, err := paramUint(ctx, "athleteID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AddGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	link, err := h.svc.AddGuardian(ctx.Request.Context(), identity, domain.AthleteGuardian{
		GuardianID:   req.GuardianID,
		AthleteID:    athleteID,
		Relationship: domain.GuardianRelationship(req.Relationship),
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleAddGuardian -> h.svc.AddGuardian -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, link)
}

// HandleRemoveGuardian godoc
// @Summary      Unlink a guardian from an athlete
// @Tags         athletes
// @Produce      json
// @Param        linkID  path      int true "guardian link ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guardians/{linkID} [delete]
func (h *PersonHandler) HandleRemoveGuardian(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	linkID, err := paramUint(ctx, "linkID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.RemoveGuardian(ctx.Request.Context(), identity, linkID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleRemoveGuardian -> h.svc.RemoveGuardian -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListGuardians godoc
// @Summary      List an athlete's guardians
// @Tags         athletes
// @Produce      json
// @Param        athleteID  path      int true "athlete ID"
// @Success      200  {array}   domain.AthleteGuardian
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /athletes/{athleteID}/guardians [get]
func (h *PersonHandler) HandleListGuardians(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	athleteID, err := paramUint(ctx, "athleteID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	links, err := h.svc.ListGuardians(ctx.Request.Context(), identity, athleteID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListGuardians -> h.svc.ListGuardians -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, links)
}

func athleteFromRequest(req request.AthleteRequest, id uint) domain.Athlete {
	return domain.Athlete{
		ID:        id,
		ProfileID: req.ProfileID,
		Name:      req.Name,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Notes:     req.Notes,
	}
}
