package endpoint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ariebrainware/healthassist/advice"
	"github.com/ariebrainware/healthassist/classifier"
	"github.com/ariebrainware/healthassist/config"
	"github.com/ariebrainware/healthassist/endpoint"
	"github.com/ariebrainware/healthassist/hospital"
	"github.com/ariebrainware/healthassist/media"
	"github.com/ariebrainware/healthassist/middleware"
	"github.com/ariebrainware/healthassist/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResp struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

type fakeAdvice struct {
	mu     sync.Mutex
	calls  int
	inputs []advice.Input
	result advice.Result
}

func (f *fakeAdvice) Generate(ctx context.Context, in advice.Input) advice.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.inputs = append(f.inputs, in)
	return f.result
}

type fakeLocator struct {
	mu        sync.Mutex
	locations []string
	result    hospital.Result
}

func (f *fakeLocator) Find(ctx context.Context, location string) hospital.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations = append(f.locations, location)
	return f.result
}

type fakeClassifier struct {
	calls  int
	result classifier.Result
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, img []byte) (classifier.Result, error) {
	f.calls++
	return f.result, f.err
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *media.Store
}

type serverDeps struct {
	consult    endpoint.ConsultDeps
	classifier endpoint.SkinClassifier
}

// setupTestServer migrates a fresh in-memory database and wires every route the
// way main does. Redis is disabled.
func setupTestServer(t *testing.T, deps serverDeps) testServer {
	t.Helper()
	config.ResetRedisClientForTest()

	db, err := config.ConnectMySQL()
	require.NoError(t, err, "failed to connect test DB")
	require.NoError(t, db.AutoMigrate(&model.UserProfile{}, &model.HealthRecord{}, &model.Session{}, &model.SecurityLog{}))

	if deps.consult.Advice == nil {
		deps.consult.Advice = &fakeAdvice{result: advice.Result{Text: "Drink water and rest."}}
	}
	if deps.consult.Hospitals == nil {
		deps.consult.Hospitals = &fakeLocator{result: hospital.Result{Hospitals: []hospital.Hospital{}}}
	}
	if deps.classifier == nil {
		deps.classifier = &fakeClassifier{}
	}

	store := media.NewStore(t.TempDir())

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.GET("/", endpoint.Welcome)
	r.POST("/register", endpoint.Register)
	r.POST("/login", endpoint.Login)
	r.POST("/bot", endpoint.Consult(deps.consult))
	r.POST("/skin", endpoint.ClassifySkin(deps.classifier, store))

	auth := r.Group("/")
	auth.Use(middleware.ValidateLoginToken())
	{
		auth.DELETE("/logout", endpoint.Logout)
		auth.GET("/me", endpoint.Me)
		auth.DELETE("/me", endpoint.DeleteAccount)
		auth.GET("/records", endpoint.ListRecords)
	}

	return testServer{router: r, db: db, store: store}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, apiResp) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResp
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

func registration(username string) map[string]interface{} {
	return map[string]interface{}{
		"username":    username,
		"email":       username + "@example.com",
		"password":    "s3cret-pass",
		"phone":       "9876543210",
		"address":     "Guntur",
		"age":         29,
		"gender":      "female",
		"blood_group": "O+",
		"height":      162.5,
		"weight":      58,
	}
}

// registerUser registers a profile and returns its ID.
func registerUser(t *testing.T, r http.Handler, payload map[string]interface{}) uint {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/register", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user model.UserProfile
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	require.NotZero(t, user.ID)
	return user.ID
}

// loginUser logs in and returns the session token.
func loginUser(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data endpoint.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func sessionHeader(token string) map[string]string {
	return map[string]string{middleware.SessionHeader: token}
}

func countRecords(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.HealthRecord{}).Count(&n).Error)
	return n
}
