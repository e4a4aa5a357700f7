package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/auth"
	"github.com/yourname/savecircle/internal/ledger"
	"github.com/yourname/savecircle/internal/storage"
)

const testToken = "DEVICE-TOKEN"

func setupRouter(t *testing.T, provider auth.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewNopLogger()
	app := NewApp(logger, ledger.New(storage.NewMemoryStorage(), logger))
	return NewRouter(app, provider)
}

type envelope struct {
	Data  map[string]any     `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestGetUser_ReturnsSeed(t *testing.T) {
	r := setupRouter(t, nil)
	w, env := do(t, r, "GET", "/api/user", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 6400.0, env.Data["totalSaved"])
	assert.Equal(t, "Aarav", env.Data["name"])
}

func TestVaultInvestAndWithdraw(t *testing.T) {
	r := setupRouter(t, nil)

	w, env := do(t, r, "POST", "/api/circles/vault/invest", `{"amount":1000,"planId":"plan_med"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, 1000.0, env.Data["investedAmount"])
	assert.Equal(t, 5400.0, env.Data["poolTotal"])
	assert.Equal(t, "plan_med", env.Data["investmentPlanId"])

	_, env = do(t, r, "GET", "/api/user", "")
	assert.Equal(t, 5400.0, env.Data["totalSaved"])

	w, env = do(t, r, "POST", "/api/circles/vault/investment/withdraw", `{"full":true}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, 6400.0, env.Data["poolTotal"])
	assert.Equal(t, 0.0, env.Data["investedAmount"])
	assert.NotContains(t, env.Data, "investmentPlanId")

	_, env = do(t, r, "GET", "/api/user", "")
	assert.Equal(t, 6400.0, env.Data["totalSaved"])
}

func TestLedgerErrorStatuses(t *testing.T) {
	r := setupRouter(t, nil)
	cases := []struct {
		name, method, path, body string
		status                   int
	}{
		{"over invest", "POST", "/api/circles/vault/invest", `{"amount":999999,"planId":"plan_low"}`, 409},
		{"over withdraw", "POST", "/api/circles/c2/withdraw", `{"amount":999999}`, 409},
		{"unknown circle", "PATCH", "/api/circles/nope", `{"name":"x"}`, 404},
		{"unknown circle read", "GET", "/api/circles/nope", "", 404},
		{"delete vault", "DELETE", "/api/circles/vault", "", 403},
		{"zero deposit", "POST", "/api/circles/c1/deposit", `{"amount":0}`, 400},
		{"bad plan", "POST", "/api/circles/c1/invest", `{"amount":10,"planId":"plan_x"}`, 400},
		{"empty message", "POST", "/api/circles/c1/messages", `{"text":""}`, 400},
		{"malformed json", "PATCH", "/api/user", `{`, 400},
		{"zero savings", "POST", "/api/user/savings", `{"amount":0}`, 400},
		{"malformed savings", "POST", "/api/user/savings", `{"amount":`, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.status, env.Error.Code)
		})
	}
}

func TestPostSavings(t *testing.T) {
	r := setupRouter(t, nil)
	w, env := do(t, r, "POST", "/api/user/savings", `{"amount":100}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, 6500.0, env.Data["totalSaved"])
	assert.Equal(t, 250.0, env.Data["savedToday"])
}

func TestCreateAndDeleteCircle(t *testing.T) {
	r := setupRouter(t, nil)

	w, _ := do(t, r, "POST", "/api/circles", `{"name":"Laptop","kind":"solo"}`)
	assert.Equal(t, 400, w.Code)

	w, env := do(t, r, "POST", "/api/circles", `{"name":"Laptop","kind":"solo","targetAmount":60000,"targetDate":"2025-09-01"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	id, _ := env.Data["id"].(string)
	require.NotEmpty(t, id)

	w, _ = do(t, r, "POST", "/api/circles/"+id+"/deposit", `{"amount":400}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	w, env = do(t, r, "DELETE", "/api/circles/"+id, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, 400.0, env.Meta["sweptToVault"])

	_, env = do(t, r, "GET", "/api/user", "")
	assert.Equal(t, 6400.0, env.Data["totalSaved"])
}

func TestGetCircles_VaultFirst(t *testing.T) {
	r := setupRouter(t, nil)
	req, _ := http.NewRequest("GET", "/api/circles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var body struct {
		Data []internal.Circle `json:"data"`
		Meta map[string]any    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)
	assert.Equal(t, internal.VaultID, body.Data[0].ID)
	assert.Equal(t, "6400", body.Data[0].PoolTotal.String())
	assert.Equal(t, float64(len(body.Data)), body.Meta["count"])
}

func TestAuthMiddleware(t *testing.T) {
	logger := internal.NewNopLogger()
	r := setupRouter(t, auth.NewDeviceTokenProvider(testToken, logger))

	req, _ := http.NewRequest("GET", "/api/user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	req, _ = http.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	w, _ = do(t, r, "GET", "/api/user", "")
	assert.Equal(t, 200, w.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	r := setupRouter(t, nil)
	req, _ := http.NewRequest("GET", "/api/hearts", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	req, _ = http.NewRequest("GET", "/api/hearts", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLessonRoutes(t *testing.T) {
	r := setupRouter(t, nil)

	w, env := do(t, r, "POST", "/api/lessons/u1-l1/complete", `{"xp":50,"gems":5}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, true, env.Meta["awarded"])
	assert.Equal(t, 1300.0, env.Data["xp"])

	w, env = do(t, r, "POST", "/api/lessons/u1-l1/complete", `{"xp":50,"gems":5}`)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, false, env.Meta["awarded"])

	w, _ = do(t, r, "GET", "/api/units/u1", "")
	assert.Equal(t, 404, w.Code)

	w, _ = do(t, r, "PUT", "/api/units/u1", `{"title":"Basics"}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	w, env = do(t, r, "GET", "/api/units/u1", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Basics", env.Data["title"])
}
