package list_appointments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ParseQuery разбирает фильтр списка записей из query:
// providerId, clientId, from, to, status, sort (asc|desc), page, limit.
// Даты без времени в from/to читаются в часовом поясе провайдера, to включает день целиком
func ParseQuery(r *http.Request, conv handlers.DateConverter) (*models.ListRequest, error) {
	var (
		req models.ListRequest
		err error
	)

	if req.ProviderID, err = handlers.QueryInt64Ptr(r, "providerId"); err != nil {
		return nil, err
	}
	if req.ClientID, err = handlers.QueryInt64Ptr(r, "clientId"); err != nil {
		return nil, err
	}
	if req.From, err = handlers.QueryBoundPtr(r, "from", conv, false); err != nil {
		return nil, err
	}
	if req.To, err = handlers.QueryBoundPtr(r, "to", conv, true); err != nil {
		return nil, err
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	switch strings.ToLower(r.URL.Query().Get("sort")) {
	case "", "asc":
	case "desc":
		req.SortDesc = true
	default:
		return nil, errors.New("sort must be asc or desc")
	}

	if req.Page, err = handlers.QueryInt(r, "page", 0); err != nil {
		return nil, err
	}
	if req.Limit, err = handlers.QueryInt(r, "limit", 0); err != nil {
		return nil, err
	}
	return &req, nil
}
