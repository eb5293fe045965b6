package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/localtime"
)

func TestRespondConflict(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, CodeSlotJustTaken, "taken")

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Error: "taken", Code: CodeSlotJustTaken}, body)
}

func TestRespondError_CodeByStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec, "nope")

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeNotFound, body.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`)), &dst)
	require.NoError(t, err)
	assert.Equal(t, "x", dst.Name)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dst)
	assert.ErrorIs(t, err, ErrEmptyBody)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`)), &dst)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyBody)
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.raw})

			got, err := PathInt64(r, "id")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=2&skip=false&from=2025-08-18&to=2025-08-19T10:00:00Z&bad=x", nil)

	page, err := QueryInt(r, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	limit, err := QueryInt(r, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)

	skip, err := QueryBool(r, "skip", true)
	require.NoError(t, err)
	assert.False(t, skip)

	conv := localtime.NewConverter(0)

	from, err := QueryBoundPtr(r, "from", conv, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC), *from)

	to, err := QueryBoundPtr(r, "to", conv, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 19, 10, 0, 0, 0, time.UTC), to.UTC())

	missing, err := QueryInt64Ptr(r, "clientId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt(r, "bad", 0)
	assert.Error(t, err)
	_, err = QueryBoundPtr(r, "bad", conv, false)
	assert.Error(t, err)
}

func TestQueryBoundPtr_LocalDate(t *testing.T) {
	conv := localtime.NewConverter(-180)
	r := httptest.NewRequest(http.MethodGet, "/?from=2025-08-18&to=2025-08-18", nil)

	from, err := QueryBoundPtr(r, "from", conv, false)
	require.NoError(t, err)
	// полночь по UTC-03
	assert.Equal(t, time.Date(2025, 8, 18, 3, 0, 0, 0, time.UTC), from.UTC())

	to, err := QueryBoundPtr(r, "to", conv, true)
	require.NoError(t, err)
	// верхняя граница исключающая, 18-е входит до 23:59 местного
	assert.Equal(t, time.Date(2025, 8, 19, 3, 0, 0, 0, time.UTC), to.UTC())
}
