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

type CatalogService interface {
	ListClasses(ctx context.Context) ([]domain.Class, error)
	GetClass(ctx context.Context, id uint) (domain.Class, error)
	AddClass(ctx context.Context, identity domain.Identity, class domain.Class) (domain.Class, error)
	UpdateClass(ctx context.Context, identity domain.Identity, class domain.Class) (domain.Class, error)
	DeleteClass(ctx context.Context, identity domain.Identity, id uint) (bool, error)
	AddSchedule(ctx context.Context, identity domain.Identity, schedule domain.ClassSchedule) (domain.ClassSchedule, error)
	DeleteSchedule(ctx context.Context, identity domain.Identity, id uint) error
}

type ClassHandler struct {
	svc      CatalogService
	resolver IdentityResolver
}

func NewClassHandler(svc CatalogService, resolver IdentityResolver) *ClassHandler {
	return &ClassHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleListClasses godoc
// @Summary      List the class catalog
// @Tags         classes
// @Produce      json
// @Success      200  {array}   domain.Class
// @Failure      500  {object}  response.Err
// @Router       /classes [get]
func (h *ClassHandler) HandleListClasses(ctx *gin.Context) {
	classes, err := h.svc.ListClasses(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListClasses -> h.svc.ListClasses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, classes)
}

// HandleGetClass godoc
// @Summary      Get one class with its schedules
// @Tags         classes
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Success      200  {object}  domain.Class
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID} [get]
func (h *ClassHandler) HandleGetClass(ctx *gin.Context) {
	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.GetClass(ctx.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("class", "ID", classID))

			return
		}

		err = fmt.Errorf("v1.HandleGetClass -> h.svc.GetClass -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, class)
}

// HandleCreateClass godoc
// @Summary      Create a class
// @Tags         classes
// @Produce      json
// @Param        request  body      request.ClassRequest true "request body"
// @Success      201  {object}  domain.Class
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes [post]
func (h *ClassHandler) HandleCreateClass(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.AddClass(ctx.Request.Context(), identity, classFromRequest(req, 0))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateClass -> h.svc.AddClass -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, class)
}

// HandleUpdateClass godoc
// @Summary      Update a class
// @Tags         classes
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Param        request  body      request.ClassRequest true "request body"
// @Success      200  {object}  domain.Class
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID} [put]
func (h *ClassHandler) HandleUpdateClass(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.UpdateClass(ctx.Request.Context(), identity, classFromRequest(req, classID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrClassNotFound):
			response.RenderErr(ctx, response.ErrNotFound("class", "ID", classID))
		default:
			err = fmt.Errorf("v1.HandleUpdateClass -> h.svc.UpdateClass -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, class)
}

// HandleDeleteClass godoc
// @Summary      Delete a class, deactivating instead when it has history
// @Tags         classes
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID} [delete]
func (h *ClassHandler) HandleDeleteClass(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	deactivated, err := h.svc.DeleteClass(ctx.Request.Context(), identity, classID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteClass -> h.svc.DeleteClass -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deactivated": deactivated})
}

// HandleAddSchedule godoc
// @Summary      Add a weekly schedule slot to a class
// @Tags         classes
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Param        request  body      request.AddScheduleRequest true "request body"
// @Success      201  {object}  domain.ClassSchedule
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID}/schedules [post]
func (h *ClassHandler) HandleAddSchedule(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AddScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	schedule, err := h.svc.AddSchedule(ctx.Request.Context(), identity, domain.ClassSchedule{
		ClassID:   classID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleAddSchedule -> h.svc.AddSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, schedule)
}

// HandleDeleteSchedule godoc
// @Summary      Remove a schedule slot
// @Tags         classes
// @Produce      json
// @Param        scheduleID  path      int true "schedule ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /schedules/{scheduleID} [delete]
func (h *ClassHandler) HandleDeleteSchedule(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	scheduleID, err := paramUint(ctx, "scheduleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteSchedule(ctx.Request.Context(), identity, scheduleID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteSchedule -> h.svc.DeleteSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func classFromRequest(req request.ClassRequest, id uint) domain.Class {
	class := domain.Class{
		ID:          id,
		Name:        req.Name,
		Discipline:  req.Discipline,
		Description: req.Description,
		TrainerID:   req.TrainerID,
		MaxCapacity: req.MaxCapacity,
		Active:      true,
	}
	if req.Active != nil {
		class.Active = *req.Active
	}

	return class
}
