package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/service"
)

type DashboardService interface {
	Compose(ctx context.Context, identity domain.Identity) (service.Dashboard, error)
	Agenda(ctx context.Context, identity domain.Identity) ([]domain.AgendaEntry, error)
}

type DashboardHandler struct {
	svc      DashboardService
	resolver IdentityResolver
}

func NewDashboardHandler(svc DashboardService, resolver IdentityResolver) *DashboardHandler {
	return &DashboardHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleGetDashboard godoc
// @Summary      Get the caller's role-resolved dashboard
// @Description  Resolves to exactly one view by role priority. Anonymous callers get the visitor view.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      500  {object}  response.Err
// @Router       /dashboard [get]
func (h *DashboardHandler) HandleGetDashboard(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	dashboard, err := h.svc.Compose(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.svc.Compose -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleGetAgenda godoc
// @Summary      Get the caller's weekly agenda
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.AgendaEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /agenda [get]
func (h *DashboardHandler) HandleGetAgenda(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)
	if !identity.Authenticated {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return
	}

	agenda, err := h.svc.Agenda(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAgenda -> h.svc.Agenda -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, agenda)
}
