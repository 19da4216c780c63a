package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"api error keeps embedded status",
			apierr.New(http.StatusNotFound, "historia_no_encontrada", errors.New("no row")),
			http.StatusNotFound,
			"historia_no_encontrada",
		},
		{
			"wrapped api error unwraps",
			fmt.Errorf("load: %w", apierr.New(http.StatusConflict, "transicion_invalida", errors.New("bad state"))),
			http.StatusConflict,
			"transicion_invalida",
		},
		{
			"plain error is internal",
			errors.New("boom"),
			http.StatusInternalServerError,
			"error_interno",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondServiceError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if env.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", env.Error.Code, tc.wantCode)
			}
		})
	}
}
