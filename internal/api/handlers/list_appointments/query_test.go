package list_appointments

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/localtime"
)

var conv = localtime.NewConverter(-180)

func TestParseQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/appointments?providerId=7&clientId=100&status=SCHEDULED&sort=desc&page=2&limit=5&from=2025-08-01", nil)

	req, err := ParseQuery(r, conv)

	require.NoError(t, err)
	require.NotNil(t, req.ProviderID)
	assert.Equal(t, int64(7), *req.ProviderID)
	require.NotNil(t, req.ClientID)
	assert.Equal(t, int64(100), *req.ClientID)
	require.NotNil(t, req.Status)
	assert.Equal(t, "SCHEDULED", *req.Status)
	assert.True(t, req.SortDesc)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 5, req.Limit)
	assert.NotNil(t, req.From)
	assert.Nil(t, req.To)
}

func TestParseQuery_Defaults(t *testing.T) {
	req, err := ParseQuery(httptest.NewRequest(http.MethodGet, "/appointments", nil), conv)

	require.NoError(t, err)
	assert.Nil(t, req.ProviderID)
	assert.Nil(t, req.Status)
	assert.False(t, req.SortDesc)
	assert.Zero(t, req.Page)
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, q := range []string{"sort=up", "providerId=-1", "page=x", "to=tomorrow"} {
		t.Run(q, func(t *testing.T) {
			_, err := ParseQuery(httptest.NewRequest(http.MethodGet, "/appointments?"+q, nil), conv)
			assert.Error(t, err)
		})
	}
}

func TestParseQuery_DateBoundsFollowProviderDay(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/appointments?from=2025-08-18&to=2025-08-18", nil)

	req, err := ParseQuery(r, conv)

	require.NoError(t, err)
	require.NotNil(t, req.From)
	require.NotNil(t, req.To)
	assert.Equal(t, time.Date(2025, 8, 18, 3, 0, 0, 0, time.UTC), req.From.UTC())

	// фильтр хранилища: start_at >= from AND start_at < to
	inRange := func(localDay, hour int) bool {
		start := conv.ToInstant(time.Date(2025, 8, localDay, 0, 0, 0, 0, time.UTC), hour*60)
		return !start.Before(*req.From) && start.Before(*req.To)
	}
	assert.False(t, inRange(17, 22), "22:00 local on the 17th is the previous day")
	assert.True(t, inRange(18, 0))
	assert.True(t, inRange(18, 22), "22:00 local on the 18th is still the 18th")
	assert.False(t, inRange(19, 0))
}

func TestParseQuery_InstantBoundsKeptAsIs(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/appointments?from=2025-08-18T10:00:00Z&to=2025-08-18T12:00:00Z", nil)

	req, err := ParseQuery(r, conv)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC), req.From.UTC())
	assert.Equal(t, time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC), req.To.UTC())
}
