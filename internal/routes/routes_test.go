package routes

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"call-insights/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	router := mux.NewRouter()
	RegisterRoutes(router, &Handlers{
		Health:   handlers.NewHealthHandler(nil, logger),
		Home:     handlers.HomeHandler,
		Analysis: handlers.NewAnalysisHandler(nil, logger),
		Workers:  handlers.NewWorkersHandler(nil, logger),
	})

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/v1/analysis/keywords", `{"text": "wrong price"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/analysis/categorize", `{"text": "misheard the caller"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/analysis/keywords", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/workers/stats", "", http.StatusOK},
		// analytics handler not registered
		{http.MethodGet, "/api/v1/analytics/report", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
