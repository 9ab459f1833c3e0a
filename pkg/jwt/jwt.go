package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims enthält die Standard-JWT-Claims plus die anwendungsspezifischen Felder.
// Role erlaubt dem RBAC-Middleware Entscheidungen ohne DB-Zugriff.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	DojoID string `json:"dojo_id"`
	Role   string `json:"role"` // "admin" | "kassenwart" | "trainer"
}

// Generate erzeugt ein signiertes JWT mit userID, dojoID und role.
func Generate(secret, userID, dojoID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret ist leer")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		DojoID: dojoID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validiert das Token und liefert userID, dojoID und role.
// Fehler bei ungültigem, abgelaufenem oder falsch signiertem Token.
func Parse(secret, tokenString string) (userID, dojoID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret ist leer")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unerwartete Signaturmethode: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("ungültige Claims")
	}
	return claims.UserID, claims.DojoID, claims.Role, nil
}
