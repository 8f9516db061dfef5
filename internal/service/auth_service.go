package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"homepanel/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookieName is the cookie that carries the signed session.
	SessionCookieName = "homepanel_session"
	// SessionTTL is the lifetime of a login session.
	SessionTTL = 31 * 24 * time.Hour

	tokenTTL    = time.Hour
	tokenIssuer = "homepanel"
	keyLength   = 32
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService checks the single shared credential pair and issues
// sessions and tokens for it. There is no user store.
type AuthService struct {
	username     string
	password     string
	passwordHash string

	signingKey []byte
	cookies    *securecookie.SecureCookie
}

type sessionData struct {
	Authenticated bool  `json:"authenticated"`
	IssuedAt      int64 `json:"iat"`
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
}

// NewAuthService builds the auth service. Without a configured secret a
// random one is generated, so sessions and tokens do not survive a restart.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	key := []byte(cfg.SecretKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(keyLength)
		if key == nil {
			return nil, errors.New("generate session key")
		}
	}

	cookies := securecookie.New(key, nil)
	cookies.MaxAge(int(SessionTTL / time.Second))
	cookies.SetSerializer(securecookie.JSONEncoder{})

	return &AuthService{
		username:     cfg.Username,
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
		signingKey:   key,
		cookies:      cookies,
	}, nil
}

// CheckCredentials reports whether the pair matches the configured one.
// It is false whenever a configured value is absent.
func (s *AuthService) CheckCredentials(username, password string) bool {
	if s.username == "" || (s.password == "" && s.passwordHash == "") {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if s.passwordHash != "" {
		passOK = verifyPassword(s.passwordHash, password) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}
	return userOK && passOK
}

// IssueSession returns an encoded session cookie value.
func (s *AuthService) IssueSession() (string, error) {
	return s.cookies.Encode(SessionCookieName, sessionData{
		Authenticated: true,
		IssuedAt:      time.Now().Unix(),
	})
}

// ValidSession reports whether value is a session this process signed and
// that has not expired.
func (s *AuthService) ValidSession(value string) bool {
	if value == "" {
		return false
	}
	var data sessionData
	if err := s.cookies.Decode(SessionCookieName, value, &data); err != nil {
		return false
	}
	return data.Authenticated
}

// GenerateToken validates credentials and returns a JWT
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	if !s.CheckCredentials(username, password) {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(username, time.Now())
}

// ParseToken parses a JWT and returns its subject
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *AuthService) issueToken(subject string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(s.signingKey)
}

// verifyPassword checks password against a bcrypt hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
