package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrDuplicateUsername, http.StatusBadRequest},
		{fmt.Errorf("%w: name", services.ErrInvalidInput), http.StatusBadRequest},
		{services.ErrInvalidTemplate, http.StatusBadRequest},
		{services.ErrPasswordTooShort, http.StatusBadRequest},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrEngineNotFound, http.StatusNotFound},
		{services.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: status 500", services.ErrUpstream), http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, zerolog.Nop(), tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}

	rec := httptest.NewRecorder()
	writeServiceError(rec, zerolog.Nop(), errors.New("secret detail"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestPathID(t *testing.T) {
	for raw, ok := range map[string]bool{"1": true, "42": true, "0": false, "-1": false, "x": false, "": false} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetPathValue("id", raw)
		rec := httptest.NewRecorder()
		_, got := pathID(rec, req)
		assert.Equal(t, ok, got, raw)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	}
}
