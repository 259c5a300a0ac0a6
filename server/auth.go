package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const tokenLifetime = 7 * 24 * time.Hour

// playerClaims binds a token to a stable player identity. The persistent id
// is what lets a player reclaim their seat after a dropped connection.
type playerClaims struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken mints a signed token for a player identity.
func IssueToken(secret []byte, playerID string, name string) (string, error) {
	claims := playerClaims{
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "Error signing player token")
	}
	return signed, nil
}

// VerifyToken validates a token and returns the player identity it carries.
func VerifyToken(secret []byte, tokenStr string) (playerID string, name string, err error) {
	claims := &playerClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", "", errors.Wrap(err, "Error parsing player token")
	}
	if !token.Valid || claims.PlayerID == "" {
		return "", "", errors.New("invalid player token")
	}
	return claims.PlayerID, claims.Name, nil
}
