package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/request"
	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/service"
)

type EventService interface {
	Create(ctx context.Context, identity domain.Identity, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, identity domain.Identity, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, identity domain.Identity, id uint) error
	ListVisible(ctx context.Context, identity domain.Identity, from, to time.Time) ([]domain.Event, error)
}

type EventHandler struct {
	svc      EventService
	resolver IdentityResolver
}

func NewEventHandler(svc EventService, resolver IdentityResolver) *EventHandler {
	return &EventHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleListEvents godoc
// @Summary      List calendar events visible to the caller
// @Description  Visibility is evaluated per event; anonymous callers only see public ones.
// @Tags         events
// @Produce      json
// @Param        from  query  string false "range start (YYYY-MM-DD)"
// @Param        to    query  string false "range end (YYYY-MM-DD)"
// @Success      200  {array}   domain.Event
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	from, to, err := parseDateRange(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	events, err := h.svc.ListVisible(ctx.Request.Context(), identity, from, to)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListVisible -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create a calendar event
// @Tags         events
// @Produce      json
// @Param        request  body      request.EventRequest true "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), identity, eventFromRequest(req, 0))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidEventType), errors.Is(err, service.ErrInvalidVisibility):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update a calendar event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        request  body      request.EventRequest true "request body"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	eventID, err := paramUint(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), identity, eventFromRequest(req, eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrInvalidEventType), errors.Is(err, service.ErrInvalidVisibility):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete a calendar event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	eventID, err := paramUint(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), identity, eventID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func eventFromRequest(req request.EventRequest, id uint) domain.Event {
	targetRoles := make([]domain.Role, 0, len(req.TargetRoles))
	for _, role := range req.TargetRoles {
		targetRoles = append(targetRoles, domain.Role(role))
	}

	return domain.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Type:        domain.EventType(req.Type),
		Visibility:  domain.EventVisibility(req.Visibility),
		TargetRoles: targetRoles,
	}
}
