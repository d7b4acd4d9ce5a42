package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eballetbo/LaserReady-sub000/internal/typeid"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewService("secret")
	res, err := s.NewSession()
	require.NoError(t, err)
	assert.Equal(t, typeid.PrefixSession, typeid.Prefix(res.SessionID))

	id, err := s.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, id)
}

func TestValidateRejects(t *testing.T) {
	s := NewService("secret")
	res, err := s.NewSession()
	require.NoError(t, err)

	_, err = NewService("other").ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = s.ValidateToken(res.Token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken, "tampered")

	later := NewService("secret")
	later.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = later.ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": res.SessionID, "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")

	foreign, _, err := s.IssueToken("user_01h455vb4pex5vsknk084sn02q")
	require.NoError(t, err)
	_, err = s.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken, "not a session id")
}

func TestCreateSessionHandler(t *testing.T) {
	s := NewService("secret")
	rec := httptest.NewRecorder()
	NewHandler(s).CreateSession(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var res SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	id, err := s.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, id)
}

func TestSessionMiddleware(t *testing.T) {
	s := NewService("secret")
	res, err := s.NewSession()
	require.NoError(t, err)

	var seen string
	h := s.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		target string
		header string
		code   int
	}{
		{"bearer", "/ws/session", "Bearer " + res.Token, http.StatusOK},
		{"query", "/ws/session?token=" + res.Token, "", http.StatusOK},
		{"missing", "/ws/session", "", http.StatusUnauthorized},
		{"bad scheme", "/ws/session", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/ws/session?token=nope", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, res.SessionID, seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}
