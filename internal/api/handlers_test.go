package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/models/dtos"
	gormModels "ekklesia/registry/internal/models/gorm"
	"ekklesia/registry/internal/rules"
	"ekklesia/registry/internal/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlers(t *testing.T) *Handlers {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.Branch{}, &gormModels.Member{}, &gormModels.RAEpisode{}, &gormModels.DutyAssignment{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	branch := gormModels.Branch{
		ID:       "bulawayo-hq",
		Name:     "Bulawayo HQ",
		Location: "Bulawayo",
		Country:  "Zimbabwe",
		Status:   "active",
		IDPrefix: "bul",
	}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("Failed to seed branch: %v", err)
	}

	memberGorm := repositories.NewMemberRepositoryGORM(db)
	branchRepo := repositories.NewBranchRepository(db)

	deps := &Dependencies{
		Repo: &Repositories{
			MemberGorm: memberGorm,
			Branch:     branchRepo,
		},
		Services: &Services{
			Member: services.NewMemberService(memberGorm, branchRepo, nil),
			Stats:  services.NewStatsService(memberGorm, common.NewCacheService(300, 600), nil),
		},
		Catalog:  rules.DefaultCatalog(),
		Schedule: rules.DefaultSchedule(),
	}
	return NewHandlers(deps)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) dtos.APIResponse {
	var resp dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestCreateMemberHandler_Success(t *testing.T) {
	h := setupHandlers(t)

	body := map[string]any{
		"name":            "Thandiwe",
		"surname":         "Moyo",
		"gender":          "female",
		"date_of_birth":   "1995-04-20",
		"phone":           "+263771234567",
		"reason_of_entry": "baptized into the congregation",
		"address":         "12 Main Street, Bulawayo",
		"main_branch":     "bulawayo-hq",
		"next_of_kin": map[string]any{
			"name":         "Sipho",
			"surname":      "Moyo",
			"relationship": "sibling",
			"phone":        "+263772000000",
			"address":      "12 Main Street, Bulawayo",
		},
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/members", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.CreateMemberHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeEnvelope(t, rr)
	if resp.Status != "ok" {
		t.Errorf("Expected status ok, got %s", resp.Status)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected member object in data, got %T", resp.Data)
	}
	if data["id"] != "bul-001" {
		t.Errorf("Expected member id bul-001, got %v", data["id"])
	}
	if data["status"] != "active" {
		t.Errorf("Expected status active, got %v", data["status"])
	}
}

func TestCreateMemberHandler_ValidationErrors(t *testing.T) {
	h := setupHandlers(t)

	body := map[string]any{
		"name":   "Thandiwe",
		"phone":  "123",
		"gender": "female",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/members", bytes.NewReader(bodyBytes))
	rr := httptest.NewRecorder()
	h.CreateMemberHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}

	resp := decodeEnvelope(t, rr)
	if resp.Status != "error" {
		t.Errorf("Expected status error, got %s", resp.Status)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected errors in data, got %T", resp.Data)
	}
	errs, ok := data["errors"].([]any)
	if !ok || len(errs) == 0 {
		t.Errorf("Expected field errors, got %v", data["errors"])
	}
}

func TestCheckInHandler_ValidationErrors(t *testing.T) {
	h := setupHandlers(t)

	// No member_id, no date, and a service time outside the enum.
	body := map[string]any{
		"branch_id":    "bulawayo-hq",
		"service_time": "midnight",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/attendance/check-in", bytes.NewReader(bodyBytes))
	rr := httptest.NewRecorder()
	h.CheckInHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}

	resp := decodeEnvelope(t, rr)
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected errors in data, got %T", resp.Data)
	}
	errs, ok := data["errors"].([]any)
	if !ok || len(errs) == 0 {
		t.Fatalf("Expected field errors, got %v", data["errors"])
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		entry := e.(map[string]any)
		fields[entry["field"].(string)] = true
	}
	for _, want := range []string{"memberID", "serviceDate", "serviceTime"} {
		if !fields[want] {
			t.Errorf("Expected a validation error for %s, got %v", want, fields)
		}
	}
}

func TestGetMemberHandler_NotFound(t *testing.T) {
	h := setupHandlers(t)

	req := httptest.NewRequest("GET", "/api/v1/members/bul-999", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "bul-999")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.GetMemberHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestListDutiesHandler_ServiceTypeFilter(t *testing.T) {
	h := setupHandlers(t)

	req := httptest.NewRequest("GET", "/api/v1/duties?service_type=short", nil)
	rr := httptest.NewRecorder()
	h.ListDutiesHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	resp := decodeEnvelope(t, rr)
	data := resp.Data.(map[string]any)
	duties := data["duties"].([]any)
	full := len(h.deps.Catalog.Duties())
	if len(duties) == 0 || len(duties) >= full {
		t.Errorf("Expected a strict subset of %d duties for short services, got %d", full, len(duties))
	}
}

func TestListDutiesHandler_BadServiceType(t *testing.T) {
	h := setupHandlers(t)

	req := httptest.NewRequest("GET", "/api/v1/duties?service_type=extended", nil)
	rr := httptest.NewRecorder()
	h.ListDutiesHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestUpcomingServicesHandler(t *testing.T) {
	h := setupHandlers(t)

	req := httptest.NewRequest("GET", "/api/v1/services/upcoming?days=7", nil)
	rr := httptest.NewRecorder()
	h.UpcomingServicesHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	resp := decodeEnvelope(t, rr)
	data := resp.Data.(map[string]any)
	// 9 weekly slots, so a full week always yields 9 instances
	if int(data["count"].(float64)) != 9 {
		t.Errorf("Expected 9 upcoming services in a week, got %v", data["count"])
	}
}
