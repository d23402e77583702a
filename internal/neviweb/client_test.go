package neviweb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nevihome/neviweb/internal/worker"
)

// Mock service responses
const (
	mockLoginResponse     = `{"session":"9f1acb0e","account":{"id":123456},"user":{"firstName":"Jane"}}`
	mockBadLoginResponse  = `{"error":{"code":"USRBADLOGIN"}}`
	mockLockedResponse    = `{"error":{"code":"ACCSESSEXC"}}`
	mockLocationsResponse = `[{"id":1001,"name":"Home"},{"id":1002,"name":"Cottage"}]`
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")

	if client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", client.BaseURL, DefaultBaseURL)
	}

	if client.HTTPClient == nil {
		t.Fatal("HTTPClient should not be nil")
	}

	if client.HTTPClient.Jar == nil {
		t.Error("HTTPClient should have a cookie jar")
	}

	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://staging.neviweb.com/")

	if client.BaseURL != "https://staging.neviweb.com" {
		t.Errorf("BaseURL = %s, want https://staging.neviweb.com", client.BaseURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("")
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Request method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/login" {
			t.Errorf("Request path = %s, want /api/login", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}

		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode login body: %v", err)
		}
		if body.Username != "jane@example.com" {
			t.Errorf("username = %s, want jane@example.com", body.Username)
		}
		if body.Password != "hunter2" {
			t.Errorf("password = %s, want hunter2", body.Password)
		}
		if body.Interface != "neviweb" {
			t.Errorf("interface = %s, want neviweb", body.Interface)
		}
		if body.StayConnected != 1 {
			t.Errorf("stayConnected = %d, want 1", body.StayConnected)
		}

		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "cookie-1"})
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockLoginResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}

	if session.ID != "9f1acb0e" {
		t.Errorf("Session.ID = %s, want 9f1acb0e", session.ID)
	}

	if session.AccountID != "123456" {
		t.Errorf("Session.AccountID = %s, want 123456", session.AccountID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockBadLoginResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "jane@example.com", "wrong")

	if err == nil {
		t.Fatal("Login() should return error for bad credentials")
	}

	// Bad credentials must surface as auth, never as a connect failure
	if !IsAuthError(err) {
		t.Errorf("Login() error should be auth error, got %T: %v", err, err)
	}

	if IsConnectError(err) {
		t.Error("Bad credentials should not classify as a connect error")
	}
}

func TestLogin_OtherErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockLockedResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Login() should return error for service error code")
	}

	if IsAuthError(err) {
		t.Error("Non-bad-login codes should not classify as auth errors")
	}

	if !IsServerError(err) {
		t.Errorf("Login() error should be server error, got %T: %v", err, err)
	}

	svcErr := err.(*ServiceError)
	if svcErr.Code != "ACCSESSEXC" {
		t.Errorf("Code = %s, want ACCSESSEXC", svcErr.Code)
	}
}

func TestLogin_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Login() should return error for non-200 status")
	}

	if IsAuthError(err) {
		t.Error("Non-200 status should not classify as an auth error")
	}

	if !IsConnectError(err) {
		t.Errorf("Login() error should be a connect error, got %T: %v", err, err)
	}
}

func TestLogin_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockLoginResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTimeout(50 * time.Millisecond)

	_, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Login() should return error on timeout")
	}

	if !IsNetworkError(err) {
		t.Errorf("Login() timeout should be a network error, got %T: %v", err, err)
	}

	if !IsConnectError(err) {
		t.Error("Login() timeout should classify as a connect error")
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Login() should return error for invalid JSON")
	}

	if !IsParseError(err) {
		t.Errorf("Login() error should be parse error, got %T: %v", err, err)
	}
}

func TestLogin_MissingSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"account":{"id":123456}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Login() should return error when session is missing")
	}

	if !IsParseError(err) {
		t.Errorf("Login() error should be parse error, got %T: %v", err, err)
	}
}

func TestLocations_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "cookie-1"})
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))

		case "/api/locations":
			// The query key carries a literal dollar sign
			if r.URL.RawQuery != "account$id=123456" {
				t.Errorf("RawQuery = %s, want account$id=123456", r.URL.RawQuery)
			}
			if got := r.Header.Get("Session-Id"); got != "9f1acb0e" {
				t.Errorf("Session-Id header = %s, want 9f1acb0e", got)
			}
			if _, err := r.Cookie("PHPSESSID"); err != nil {
				t.Error("locations request should carry the login cookie")
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLocationsResponse))

		default:
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	session, err := client.Login(context.Background(), "jane@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	locations, err := client.Locations(context.Background(), session)
	if err != nil {
		t.Fatalf("Locations() error = %v, want nil", err)
	}

	if len(locations) != 2 {
		t.Fatalf("len(locations) = %d, want 2", len(locations))
	}

	if locations[0].Name != "Home" {
		t.Errorf("locations[0].Name = %s, want Home", locations[0].Name)
	}

	if locations[1].Name != "Cottage" {
		t.Errorf("locations[1].Name = %s, want Cottage", locations[1].Name)
	}
}

func TestLocations_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session := &Session{ID: "9f1acb0e", AccountID: "123456"}

	_, err := client.Locations(context.Background(), session)

	if err == nil {
		t.Fatal("Locations() should return error for non-200 status")
	}

	if !IsConnectError(err) {
		t.Errorf("Locations() error should be a connect error, got %T: %v", err, err)
	}
}

func TestLocations_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"unexpected":"object"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session := &Session{ID: "9f1acb0e", AccountID: "123456"}

	_, err := client.Locations(context.Background(), session)

	if err == nil {
		t.Fatal("Locations() should return error when response is not a list")
	}

	if !IsParseError(err) {
		t.Errorf("Locations() error should be parse error, got %T: %v", err, err)
	}
}

func TestValidate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "cookie-1"})
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))
		case "/api/locations":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLocationsResponse))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Validate(context.Background(), nil, "Jane@Example.com", "hunter2")

	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	// Title is the username exactly as entered, not normalized
	if result.Title != "Jane@Example.com" {
		t.Errorf("Title = %s, want Jane@Example.com", result.Title)
	}

	// Network names verbatim, in service order
	if len(result.Networks) != 2 || result.Networks[0] != "Home" || result.Networks[1] != "Cottage" {
		t.Errorf("Networks = %v, want [Home Cottage]", result.Networks)
	}
}

func TestValidate_NoNetworks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))
		case "/api/locations":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Validate(context.Background(), nil, "jane@example.com", "hunter2")

	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	if len(result.Networks) != 0 {
		t.Errorf("Networks = %v, want empty", result.Networks)
	}
}

func TestValidate_LocationsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))
		case "/api/locations":
			time.Sleep(300 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTimeout(100 * time.Millisecond)

	_, err := client.Validate(context.Background(), nil, "jane@example.com", "hunter2")

	if err == nil {
		t.Fatal("Validate() should return error when locations times out")
	}

	// A timeout on either call classifies the same way
	if !IsConnectError(err) {
		t.Errorf("Validate() error should be a connect error, got %T: %v", err, err)
	}
}

func TestValidate_BadCredentialsStopsEarly(t *testing.T) {
	locationsCalled := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockBadLoginResponse))
		case "/api/locations":
			locationsCalled = true
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Validate(context.Background(), nil, "jane@example.com", "wrong")

	if !IsAuthError(err) {
		t.Errorf("Validate() error should be auth error, got %T: %v", err, err)
	}

	if locationsCalled {
		t.Error("Validate() should not query locations after a failed login")
	}
}

func TestValidate_WithPoolRunner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))
		case "/api/locations":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLocationsResponse))
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.New(1, 4)
	pool.Start(ctx)

	client := NewClient(server.URL)
	result, err := client.Validate(context.Background(), pool, "jane@example.com", "hunter2")

	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	if len(result.Networks) != 2 {
		t.Errorf("len(Networks) = %d, want 2", len(result.Networks))
	}

	cancel()
	pool.Stop()
}

// Benchmark tests
func BenchmarkValidate(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLoginResponse))
		case "/api/locations":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(mockLocationsResponse))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		client.Validate(context.Background(), nil, "jane@example.com", "hunter2")
	}
}
