package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret   = []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me"))
	jwtIssuer   = getEnv("JWT_ISSUER", "crm-task-manager")
	jwtAudience = getEnv("JWT_AUDIENCE", "crm-task-manager-clients")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Token stages for the two-step login. A temp token only proves the password
// check passed and cannot be used as a session.
const (
	StageAwait2FA = "await-2fa"
	StageSession  = "session"
)

const (
	tempTokenTTL    = 5 * time.Minute
	sessionTokenTTL = 24 * time.Hour
)

// Claims represents the JWT claims
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Stage string `json:"stage"`
	jwt.RegisteredClaims
}

// GenerateTempToken issues the short-lived intermediate token returned by the
// password step, scoped to awaiting the second factor.
func GenerateTempToken(email string) (string, error) {
	return generate(Claims{Email: email, Stage: StageAwait2FA}, tempTokenTTL)
}

// GenerateSessionToken issues the session token delivered after a successful
// TOTP verification.
func GenerateSessionToken(email, name string) (string, error) {
	return generate(Claims{Email: email, Name: name, Stage: StageSession}, sessionTokenTTL)
}

func generate(claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Issuer:    jwtIssuer,
		Audience:  jwt.ClaimStrings{jwtAudience},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Issuer != jwtIssuer {
		return nil, errors.New("invalid token issuer")
	}
	audValid := false
	for _, aud := range claims.Audience {
		if aud == jwtAudience {
			audValid = true
			break
		}
	}
	if !audValid {
		return nil, errors.New("invalid token audience")
	}
	return claims, nil
}

// ValidateStage validates the token and additionally requires the given
// stage.
func ValidateStage(tokenString, stage string) (*Claims, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Stage != stage {
		return nil, errors.New("wrong token stage")
	}
	return claims, nil
}
