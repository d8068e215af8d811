package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

var ErrInvalidToken = errors.New("неверный токен")

// InitJWT загружает секрет подписи из окружения.
// Без секрета гостевые токены не выдаются и ws принимает голый player_id.
func InitJWT() {
	jwtSecret = []byte(os.Getenv("JWT_SECRET"))
}

// Enabled сообщает, настроена ли подпись токенов
func Enabled() bool {
	return len(jwtSecret) > 0
}

// IssueToken выдает гостевой токен сессии для игрока
func IssueToken(playerID string) (string, error) {
	if !Enabled() {
		return "", errors.New("JWT_SECRET не настроен")
	}

	claims := jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken проверяет токен и возвращает id игрока
func ParseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
