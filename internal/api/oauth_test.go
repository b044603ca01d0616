package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/themobileprof/rantrack-be/internal/db"
)

// fakeGoogle serves the token and userinfo endpoints
func fakeGoogle(t *testing.T, tokenStatus int, profile GoogleUserInfo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "google-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer google-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newOAuthRouter(database *db.DB, google *httptest.Server) *gin.Engine {
	var cfg *oauth2.Config
	if google != nil {
		cfg = &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost/api/auth/google/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:   google.URL + "/auth",
				TokenURL:  google.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		}
	}

	h := NewOAuthHandler(database, testSecret, cfg)
	if google != nil {
		h.userInfoURL = google.URL + "/userinfo"
	}

	r := gin.New()
	r.GET("/google", h.GoogleLogin)
	r.GET("/google/callback", h.GoogleCallback)
	return r
}

func callback(r http.Handler, state, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/google/callback?code=auth-code&state="+url.QueryEscape(state), nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleOAuthConfig(t *testing.T) {
	if cfg := GoogleOAuthConfig("", "secret", ""); cfg != nil {
		t.Error("config without client ID should be nil")
	}
	cfg := GoogleOAuthConfig("id", "secret", "http://localhost/cb")
	if cfg == nil || cfg.ClientID != "id" || len(cfg.Scopes) != 2 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestGoogleLogin(t *testing.T) {
	database, _ := newMockDB(t)
	r := newOAuthRouter(database, fakeGoogle(t, http.StatusOK, GoogleUserInfo{}))

	w := doRequest(r, http.MethodGet, "/google", nil)
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}

	var state string
	for _, c := range w.Result().Cookies() {
		if c.Name == oauthStateCookie {
			state = c.Value
		}
	}
	if state == "" {
		t.Fatal("state cookie not set")
	}

	location, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if got := location.Query().Get("state"); got != state {
		t.Errorf("redirect state = %q, cookie state = %q", got, state)
	}
}

func TestGoogleNotConfigured(t *testing.T) {
	database, _ := newMockDB(t)
	r := newOAuthRouter(database, nil)

	for _, path := range []string{"/google", "/google/callback"} {
		if w := doRequest(r, http.MethodGet, path, nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, w.Code)
		}
	}
}

func TestGoogleCallback(t *testing.T) {
	verified := GoogleUserInfo{ID: "g1", Email: "Jane@Example.com", VerifiedEmail: true, Name: "Jane"}

	tests := []struct {
		name        string
		state       string
		cookie      string
		tokenStatus int
		profile     GoogleUserInfo
		setupMock   func(sqlmock.Sqlmock)
		wantStatus  int
	}{
		{
			name:        "first sign-in creates user",
			state:       "s1",
			cookie:      "s1",
			tokenStatus: http.StatusOK,
			profile:     verified,
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, email`).WithArgs("jane@example.com").WillReturnError(sql.ErrNoRows)
				m.ExpectQuery(`INSERT INTO users`).
					WithArgs("jane@example.com", "", "Jane").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow(testUserID, time.Now(), time.Now()))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "existing user",
			state:       "s1",
			cookie:      "s1",
			tokenStatus: http.StatusOK,
			profile:     verified,
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, email`).WithArgs("jane@example.com").
					WillReturnRows(sqlmock.NewRows(userColumns).
						AddRow(testUserID, "jane@example.com", "hash", nil, time.Now(), time.Now()))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "state mismatch",
			state:       "s1",
			cookie:      "s2",
			tokenStatus: http.StatusOK,
			profile:     verified,
			setupMock:   func(sqlmock.Sqlmock) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "missing state cookie",
			state:       "s1",
			tokenStatus: http.StatusOK,
			profile:     verified,
			setupMock:   func(sqlmock.Sqlmock) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "code exchange fails",
			state:       "s1",
			cookie:      "s1",
			tokenStatus: http.StatusBadRequest,
			profile:     verified,
			setupMock:   func(sqlmock.Sqlmock) {},
			wantStatus:  http.StatusBadGateway,
		},
		{
			name:        "unverified email",
			state:       "s1",
			cookie:      "s1",
			tokenStatus: http.StatusOK,
			profile:     GoogleUserInfo{ID: "g1", Email: "jane@example.com"},
			setupMock:   func(sqlmock.Sqlmock) {},
			wantStatus:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database, mock := newMockDB(t)
			tt.setupMock(mock)
			r := newOAuthRouter(database, fakeGoogle(t, tt.tokenStatus, tt.profile))

			w := callback(r, tt.state, tt.cookie)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				decodeBody(t, w, &resp)
				if resp.Token == "" || resp.User.ID != testUserID {
					t.Errorf("response = %+v", resp)
				}
			}
			checkExpectations(t, mock)
		})
	}
}
