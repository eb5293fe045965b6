package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type serviceStub struct {
	gotID  domain.AppointmentID
	gotReq *models.CancelRequest
	err    error
}

func (s *serviceStub) Cancel(_ context.Context, _ domain.Requester, id domain.AppointmentID, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.gotID, s.gotReq = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: int64(id), Status: string(domain.StatusCanceled)}, nil
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/cancel", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/"+id+"/cancel", strings.NewReader(body))
	req = req.WithContext(middleware.WithRequester(req.Context(), domain.Requester{UserID: 1, Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WithoutBody(t *testing.T) {
	svc := &serviceStub{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, "5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AppointmentID(5), svc.gotID)
	require.NotNil(t, svc.gotReq)
	assert.Nil(t, svc.gotReq.Reason)
}

func TestHandle_WithReason(t *testing.T) {
	svc := &serviceStub{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, "5", `{"reason":"sick"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq.Reason)
	assert.Equal(t, "sick", *svc.gotReq.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "x", wantStatus: http.StatusBadRequest},
		{name: "bad body", id: "5", body: `{"reason":`, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "5", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", id: "5", err: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "transition", id: "5", err: domain.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "reason too long", id: "5", err: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&serviceStub{err: tt.err}, logger.NewNop())

			rec := serve(h, tt.id, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
