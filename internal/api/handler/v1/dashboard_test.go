package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/move-academia/academy-api/internal/api/middleware"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/service"
)

type fakeResolver struct {
	identities map[uint]domain.Identity
}

func (f *fakeResolver) Resolve(_ context.Context, userID uint) domain.Identity {
	identity, ok := f.identities[userID]
	if !ok {
		return domain.Identity{UserID: userID, Authenticated: true}
	}
	return identity
}

type fakeDashboardService struct {
	dashboard service.Dashboard
	agenda    []domain.AgendaEntry
	err       error

	composedFor domain.Identity
}

func (f *fakeDashboardService) Compose(_ context.Context, identity domain.Identity) (service.Dashboard, error) {
	f.composedFor = identity
	return f.dashboard, f.err
}

func (f *fakeDashboardService) Agenda(_ context.Context, _ domain.Identity) ([]domain.AgendaEntry, error) {
	return f.agenda, f.err
}

func dashboardRequest(handler gin.HandlerFunc, userID *uint) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	if userID != nil {
		ctx.Set(middleware.CtxKeyUserID, *userID)
	}

	handler(ctx)
	return recorder
}

func TestHandleGetDashboard(t *testing.T) {
	t.Run("anonymous request composes for the anonymous identity", func(t *testing.T) {
		svc := &fakeDashboardService{dashboard: service.Dashboard{View: domain.ViewVisitor}}
		handler := NewDashboardHandler(svc, &fakeResolver{})

		recorder := dashboardRequest(handler.HandleGetDashboard, nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, domain.Anonymous, svc.composedFor)

		var body service.Dashboard
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, domain.ViewVisitor, body.View)
	})

	t.Run("authenticated request resolves the caller's roles", func(t *testing.T) {
		trainer := domain.Identity{UserID: 7, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}
		svc := &fakeDashboardService{dashboard: service.Dashboard{View: domain.ViewTrainer}}
		handler := NewDashboardHandler(svc, &fakeResolver{identities: map[uint]domain.Identity{7: trainer}})

		userID := uint(7)
		recorder := dashboardRequest(handler.HandleGetDashboard, &userID)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, trainer, svc.composedFor)
	})

	t.Run("service failure renders a sanitized 500", func(t *testing.T) {
		svc := &fakeDashboardService{err: errors.New("db down")}
		handler := NewDashboardHandler(svc, &fakeResolver{})

		recorder := dashboardRequest(handler.HandleGetDashboard, nil)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, recorder.Body.String())
	})
}

func TestHandleGetAgenda(t *testing.T) {
	t.Run("anonymous is rejected", func(t *testing.T) {
		handler := NewDashboardHandler(&fakeDashboardService{}, &fakeResolver{})

		recorder := dashboardRequest(handler.HandleGetAgenda, nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated caller gets their agenda", func(t *testing.T) {
		svc := &fakeDashboardService{agenda: []domain.AgendaEntry{
			{ClassID: 10, ClassName: "MOVE'KIDS", Weekday: 2, StartTime: "18:00", EndTime: "19:00", ParticipantLabel: "Ana"},
		}}
		handler := NewDashboardHandler(svc, &fakeResolver{})

		userID := uint(1)
		recorder := dashboardRequest(handler.HandleGetAgenda, &userID)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var body []domain.AgendaEntry
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Ana", body[0].ParticipantLabel)
	})
}
