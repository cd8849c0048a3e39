package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postValidate(t *testing.T, body string) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{}
	r := gin.New()
	r.POST("/api/validate", h.ValidateInput)

	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	return w.Code, resp
}

func TestValidateInputAccepts(t *testing.T) {
	code, resp := postValidate(t, `{
		"first_day": "2026-01-05",
		"last_day": "2026-01-09",
		"users": [{"id": 1, "last_name": "Miller"}],
		"items": [{"id": 10, "assigned_user_id": 1, "due_date": "2026-01-08"}]
	}`)

	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if resp["valid"] != true {
		t.Errorf("Expected valid input, got %v", resp)
	}
}

func TestValidateInputRejectsDuplicateIDs(t *testing.T) {
	_, resp := postValidate(t, `{
		"users": [{"id": 1, "last_name": "Miller"}, {"id": 1, "last_name": "Smith"}]
	}`)

	if resp["valid"] != false {
		t.Errorf("Expected duplicate user IDs to be rejected, got %v", resp)
	}
}

func TestValidateInputRejectsBadDates(t *testing.T) {
	_, resp := postValidate(t, `{"first_day": "05.01.2026"}`)
	if resp["valid"] != false {
		t.Errorf("Expected a non-ISO date to be rejected, got %v", resp)
	}

	_, resp = postValidate(t, `{"first_day": "2026-01-09", "last_day": "2026-01-05"}`)
	if resp["valid"] != false {
		t.Errorf("Expected an inverted range to be rejected, got %v", resp)
	}
}
