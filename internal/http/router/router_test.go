package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightline/internal/http/handlers"
	"freightline/internal/http/middleware/ratelimit"
	"freightline/internal/http/router"
	"freightline/internal/logx"
	"freightline/internal/pricing"
	"freightline/internal/service/booking"
	"freightline/internal/shipid"
	"freightline/internal/store"
	"freightline/internal/tracking"
)

func newTestRouter(t *testing.T, trackingLimit func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	st := store.NewMemory()
	gen := shipid.New(st.Exists)
	machine := tracking.NewMachine(st, tracking.Strict)
	est := pricing.NewEstimator(nil)
	svc := booking.NewService(st, gen, machine, est, time.Second, logx.Nop())

	base := handlers.New(logx.Nop())
	bh := handlers.NewBookingHandler(logx.Nop(), handlers.NewBookingUsecase(svc))

	return router.New(base, bh, logx.Nop(), trackingLimit)
}

func TestRouter_PingAndHealthcheck(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rr.Body.String())
}

func TestRouter_MetricsExposed(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestRouter_BookingLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t, nil)

	createBody := `{
        "customer":{"name":"Maria Gonzalez","contact_details":"maria@example.com"},
        "pickup_address":{"street":"600 Congress Ave","city":"Austin","state":"TX","zip":"73301"},
        "delivery_address":{"street":"101 E 2nd St","city":"Tulsa","state":"OK","zip":"74103"},
        "weight_lbs":800,
        "service_type":"regional",
        "pickup_time":1775030400000000000
    }`

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(createBody)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		ShipmentID string `json:"shipment_id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.True(t, strings.HasPrefix(created.ShipmentID, "FRT-"))
	require.Equal(t, "/api/bookings/"+created.ShipmentID, rr.Header().Get("Location"))

	// booking is readable back
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings/"+created.ShipmentID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"current_status":"pickedUp"`)

	// move it forward
	update := `{"location":"Waco, TX","status":"inTransit"}`
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/bookings/"+created.ShipmentID+"/tracking", strings.NewReader(update)))
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	// public tracking lookup sees the movement
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tracking/"+created.ShipmentID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"current_status":"inTransit"`)
	assert.Contains(t, rr.Body.String(), `"Waco, TX"`)

	// regression is a conflict under the strict policy
	backward := `{"location":"Austin, TX","status":"pickedUp"}`
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/bookings/"+created.ShipmentID+"/tracking", strings.NewReader(backward)))
	require.Equal(t, http.StatusConflict, rr.Code)

	// filtered listing
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings?status=inTransit", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), created.ShipmentID)
}

func TestRouter_QuoteEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	body := `{
        "pickup_address":{"street":"600 Congress Ave","city":"Austin","state":"TX","zip":"73301"},
        "delivery_address":{"street":"101 E 2nd St","city":"Tulsa","state":"OK","zip":"74103"},
        "weight_lbs":1200,
        "service_type":"longHaul"
    }`

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		EstimatedCost float64 `json:"estimated_cost"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Greater(t, resp.EstimatedCost, 0.0)
}

func TestRouter_TrackingIsRateLimited(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(nil, ratelimit.Config{Rate: 0.001, Burst: 1})
	mw := ratelimit.New(logx.Nop(), nil, limiter)

	r := newTestRouter(t, mw.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/tracking/FRT-9GK2MW4QZT", nil)
	req.RemoteAddr = "9.9.9.9:1000"

	// first request consumes the only token; shipment does not exist
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	// other endpoints stay open
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
