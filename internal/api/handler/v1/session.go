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

const dateLayout = "2006-01-02"

type AttendanceService interface {
	CreateSession(ctx context.Context, identity domain.Identity, session domain.ClassSession) (domain.ClassSession, error)
	ListSessions(ctx context.Context, classID uint, from, to time.Time) ([]domain.ClassSession, error)
	UpdateSession(ctx context.Context, identity domain.Identity, session domain.ClassSession) (domain.ClassSession, error)
	DeleteSession(ctx context.Context, identity domain.Identity, id uint) error
	Roster(ctx context.Context, identity domain.Identity, sessionID uint) ([]domain.RosterEntry, error)
	Save(ctx context.Context, identity domain.Identity, sessionID uint, marks []service.AttendanceMark) ([]domain.AttendanceRecord, error)
}

type SessionHandler struct {
	svc      AttendanceService
	resolver IdentityResolver
}

func NewSessionHandler(svc AttendanceService, resolver IdentityResolver) *SessionHandler {
	return &SessionHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleCreateSession godoc
// @Summary      Create a class session
// @Tags         sessions
// @Produce      json
// @Param        request  body      request.SessionRequest true "request body"
// @Success      201  {object}  domain.ClassSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions [post]
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.CreateSession(ctx.Request.Context(), identity, sessionFromRequest(req, 0))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.CreateSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleListSessions godoc
// @Summary      List a class's sessions in a date range
// @Tags         sessions
// @Produce      json
// @Param        classID  path      int true "class ID"
// @Param        from     query     string false "range start (YYYY-MM-DD)"
// @Param        to       query     string false "range end (YYYY-MM-DD)"
// @Success      200  {array}   domain.ClassSession
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{classID}/sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	classID, err := paramUint(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	from, to, err := parseDateRange(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sessions, err := h.svc.ListSessions(ctx.Request.Context(), classID, from, to)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleUpdateSession godoc
// @Summary      Update a class session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int true "session ID"
// @Param        request    body      request.SessionRequest true "request body"
// @Success      200  {object}  domain.ClassSession
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID} [put]
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	sessionID, err := paramUint(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.UpdateSession(ctx.Request.Context(), identity, sessionFromRequest(req, sessionID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
		default:
			err = fmt.Errorf("v1.HandleUpdateSession -> h.svc.UpdateSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleDeleteSession godoc
// @Summary      Delete a class session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int true "session ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID} [delete]
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	sessionID, err := paramUint(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteSession(ctx.Request.Context(), identity, sessionID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.DeleteSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetRoster godoc
// @Summary      Get a session's attendance sheet
// @Description  Every active enrollee appears; unmarked ones default to present.
// @Tags         attendance
// @Produce      json
// @Param        sessionID  path      int true "session ID"
// @Success      200  {array}   domain.RosterEntry
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID}/attendance [get]
func (h *SessionHandler) HandleGetRoster(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	sessionID, err := paramUint(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	roster, err := h.svc.Roster(ctx.Request.Context(), identity, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
		default:
			err = fmt.Errorf("v1.HandleGetRoster -> h.svc.Roster -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, roster)
}

// HandleSaveAttendance godoc
// @Summary      Save a session's attendance sheet in one batch
// @Description  Upserts every mark atomically and returns the stored records.
// @Tags         attendance
// @Produce      json
// @Param        sessionID  path      int true "session ID"
// @Param        request    body      request.SaveAttendanceRequest true "request body"
// @Success      200  {array}   domain.AttendanceRecord
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID}/attendance [put]
func (h *SessionHandler) HandleSaveAttendance(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	sessionID, err := paramUint(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SaveAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	marks := make([]service.AttendanceMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		marks = append(marks, service.AttendanceMark{
			EnrollmentID: m.EnrollmentID,
			Status:       domain.AttendanceStatus(m.Status),
			Notes:        m.Notes,
		})
	}

	records, err := h.svc.Save(ctx.Request.Context(), identity, sessionID, marks)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrUnknownEnrollee):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSaveAttendance -> h.svc.Save -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, records)
}

func sessionFromRequest(req request.SessionRequest, id uint) domain.ClassSession {
	return domain.ClassSession{
		ID:         id,
		ClassID:    req.ClassID,
		ScheduleID: req.ScheduleID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     domain.SessionStatus(req.Status),
		Notes:      req.Notes,
	}
}

// parseDateRange reads the optional from/to query params, defaulting to
// the surrounding month.
func parseDateRange(ctx *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 1, 0)

	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date (%v)", raw)
		}
		from = parsed
	}

	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date (%v)", raw)
		}
		to = parsed
	}

	return from, to, nil
}
