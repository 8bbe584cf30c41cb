package jwt

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Stream tokens travel in the query string, so they are short-lived.
const streamTokenTTL = 5 * time.Minute

type Service interface {
	GenerateAccessToken(username string, isAdmin bool) (token string, expiresAt int64, err error)
	GenerateStreamToken(username string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (username string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(username string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		auth.ClaimUsername: username,
		auth.ClaimIsAdmin:  isAdmin,
		auth.ClaimType:     auth.TokenTypeAccess,
		"exp":              expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateStreamToken generates a short-lived token for the invalidation stream
func (j *JWTService) GenerateStreamToken(username string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(streamTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		auth.ClaimUsername: username,
		auth.ClaimType:     auth.TokenTypeStream,
		"exp":              expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(streamTokenTTL.Seconds()), nil
}

// ValidateStreamToken verifies signature and expiry of a stream token and returns its username
func (j *JWTService) ValidateStreamToken(tokenString string) (username string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get(auth.ClaimType)
	if !ok || tokenType != auth.TokenTypeStream {
		return "", jwt.ErrInvalidJWT()
	}

	usernameVal, ok := token.Get(auth.ClaimUsername)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	username, ok = usernameVal.(string)
	if !ok || username == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return username, nil
}
