package remove_blackout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type serviceStub struct{ err error }

func (s serviceStub) RemoveBlackout(context.Context, domain.Requester, domain.BlackoutID) error {
	return s.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		withUser   bool
		wantStatus int
	}{
		{name: "removed", withUser: true, wantStatus: http.StatusNoContent},
		{name: "not found", err: schedule.ErrBlackoutNotFound, withUser: true, wantStatus: http.StatusNotFound},
		{name: "not admin", err: schedule.ErrAccessDenied, withUser: true, wantStatus: http.StatusForbidden},
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/blackouts/{blackoutId}", NewHandler(serviceStub{err: tt.err}, logger.NewNop()).Handle)

			req := httptest.NewRequest(http.MethodDelete, "/blackouts/3", nil)
			if tt.withUser {
				req = req.WithContext(middleware.WithRequester(req.Context(), domain.Requester{UserID: 1, Role: domain.RoleAdmin}))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
