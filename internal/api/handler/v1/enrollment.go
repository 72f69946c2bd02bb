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

type EnrollmentService interface {
	ListForCaller(ctx context.Context, identity domain.Identity) ([]domain.Enrollment, error)
	Add(ctx context.Context, identity domain.Identity, classID uint, target domain.EnrollmentTarget) (domain.Enrollment, error)
	ListByClass(ctx context.Context, identity domain.Identity, classID uint) ([]domain.Enrollment, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, id uint, status domain.EnrollmentStatus) (domain.Enrollment, error)
	Delete(ctx context.Context, identity domain.Identity, id uint) error
}

type EnrollmentHandler struct {
	svc      EnrollmentService
	resolver IdentityResolver
}

func NewEnrollmentHandler(svc EnrollmentService, resolver IdentityResolver) *EnrollmentHandler {
	return &EnrollmentHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleListOwnEnrollments godoc
// @Summary      List the caller's enrollments, own and guarded
// @Tags         enrollments
// @Produce      json
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/mine [get]
func (h *EnrollmentHandler) HandleListOwnEnrollments(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	enrollments, err := h.svc.ListForCaller(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleListOwnEnrollments -> h.svc.ListForCaller -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// HandleAddEnrollment godoc
// @Summary      Enroll a profile or an athlete into a class
// @Tags         enrollments
// @Produce      json
// @Param        request  body      request.AddEnrollmentRequest true "request body"
// @Success      201  {object}  domain.Enrollment
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments [post]
func (h *EnrollmentHandler) HandleAddEnrollment(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.AddEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	target, err := domain.NewEnrollmentTarget(req.ProfileID, req.AthleteID)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	enrollment, err := h.svc.Add(ctx.Request.Context(), identity, req.ClassID, target)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleAddEnrollment -> h.svc.Add -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// HandleListClassEnrollments godoc
// @Summary      List a class's active enrollments
// @Tags         enrollments
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Success      200  {array}   domain.Enrollment
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID}/enrollments [get]
func (h *EnrollmentHandler) HandleListClassEnrollments(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	enrollments, err := h.svc.ListByClass(ctx.Request.Context(), identity, classID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListClassEnrollments -> h.svc.ListByClass -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// HandleUpdateEnrollmentStatus godoc
// @Summary      Update an enrollment's status
// @Tags         enrollments
// @Produce      json
// @Param        enrollmentID  path      int true "enrollment ID"
// @Param        request       body      request.UpdateEnrollmentStatusRequest true "request body"
// @Success      200  {object}  domain.Enrollment
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID}/status [put]
func (h *EnrollmentHandler) HandleUpdateEnrollmentStatus(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	enrollmentID, err := paramUint(ctx, "enrollmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateEnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	enrollment, err := h.svc.UpdateStatus(ctx.Request.Context(), identity, enrollmentID, domain.EnrollmentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEnrollmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("enrollment", "ID", enrollmentID))
		default:
			err = fmt.Errorf("v1.HandleUpdateEnrollmentStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// HandleDeleteEnrollment godoc
// @Summary      Remove an enrollment
// @Tags         enrollments
// @Produce      json
// @Param        enrollmentID  path      int true "enrollment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /enrollments/{enrollmentID} [delete]
func (h *EnrollmentHandler) HandleDeleteEnrollment(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	enrollmentID, err := paramUint(ctx, "enrollmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), identity, enrollmentID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEnrollment -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
