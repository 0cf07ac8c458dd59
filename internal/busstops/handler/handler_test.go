package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transit_console_backend/internal/busstops/service"
	"transit_console_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(service.New(), validator.New()).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestToDMSEndpoint(t *testing.T) {
	rec := do(newTestEngine(), http.MethodPost, "/api/v1/coordinates/to-dms", `{"value":-6.8123,"axis":"latitude"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		DMS string `json:"dms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DMS != `6° 48' 44.28" S` {
		t.Fatalf("unexpected dms %q", body.DMS)
	}
}

func TestToDMSEndpoint_ValidationDetails(t *testing.T) {
	rec := do(newTestEngine(), http.MethodPost, "/api/v1/coordinates/to-dms", `{"axis":"altitude"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Details["value"] != "is required" || body.Details["axis"] != "must be one of: latitude longitude" {
		t.Fatalf("unexpected details %v", body.Details)
	}
}

func TestToDecimalEndpoint_RejectsDecimalText(t *testing.T) {
	rec := do(newTestEngine(), http.MethodPost, "/api/v1/coordinates/to-decimal", `{"dms":"41.40339"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Details["dms"] != `must look like 6° 48' 44.40" S` {
		t.Fatalf("unexpected details %v", body.Details)
	}
}

func TestValidateEndpoint(t *testing.T) {
	rec := do(newTestEngine(), http.MethodGet, "/api/v1/coordinates/validate?value=41%C2%B0%2024%27%2012.2%22%20N&axis=latitude", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Valid   bool     `json:"valid"`
		IsDMS   bool     `json:"isDms"`
		Decimal *float64 `json:"decimal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Valid || !body.IsDMS || body.Decimal == nil || *body.Decimal != 41.403389 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestBusStopValidateEndpoint(t *testing.T) {
	engine := newTestEngine()

	rec := do(engine, http.MethodPost, "/api/v1/bus-stops/validate",
		`{"name":"Posta","code":"p-01","latitude":"-6.8123","longitude":"39.2801","mode":"decimal"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(engine, http.MethodPost, "/api/v1/bus-stops/validate",
		`{"name":"Posta","code":"p-01","latitude":"abc","longitude":"39.2801"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Details["latitude"] != "must be decimal degrees or DMS text" {
		t.Fatalf("expected latitude field error, got %s", rec.Body.String())
	}

	// DMS text passes the notation check when no mode is given.
	rec = do(engine, http.MethodPost, "/api/v1/bus-stops/validate",
		`{"name":"Posta","code":"p-01","latitude":"6° 48' 44.4\" S","longitude":"0x1p3"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body.Details = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, exists := body.Details["latitude"]; exists {
		t.Fatalf("expected DMS latitude to pass, got %v", body.Details)
	}
	if body.Details["longitude"] != "must be decimal degrees or DMS text" {
		t.Fatalf("expected longitude field error, got %v", body.Details)
	}
}

func TestDescribeEndpoint_NullCoordinates(t *testing.T) {
	rec := do(newTestEngine(), http.MethodPost, "/api/v1/bus-stops/describe", `{"name":"Posta","latitude":null,"longitude":"39.2801"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["latitudeFormatted"] != "N/A" || body["longitudeFormatted"] != "39.280100" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestLocationFormEndpoint(t *testing.T) {
	rec := do(newTestEngine(), http.MethodPost, "/api/v1/bus-stops/location-form",
		`{"form":{"mode":"dms"},"action":"setLongitude","value":"39° 16' 48.36\" E"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"longitude":39.2801`) {
		t.Fatalf("expected stored longitude, got %s", rec.Body.String())
	}
}

func TestQRCodeEndpoint(t *testing.T) {
	engine := newTestEngine()

	rec := do(engine, http.MethodGet, "/api/v1/bus-stops/qr?lat=-6.8123&lng=39.2801&size=128", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}

	rec = do(engine, http.MethodGet, "/api/v1/bus-stops/qr?lat=95&lng=39.2801", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range latitude, got %d", rec.Code)
	}
}
