package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"railcare/models"
)

// GenerateJWT issues a token scoped to the given account. Role and
// department travel in the claims so handlers never consult session state.
func GenerateJWT(user *models.User, secret []byte, expiresInHours int) (string, error) {
	expiresAt := time.Now().Add(time.Duration(expiresInHours) * time.Hour)

	department := ""
	if user.Department.Valid {
		department = user.Department.String
	}

	claims := jwt.MapClaims{
		"login_id":   user.LoginID,
		"role":       string(user.Role),
		"department": department,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseJWT validates a token and reconstructs the actor carried in it.
func ParseJWT(tokenString string, secret []byte) (*models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	loginID, _ := claims["login_id"].(string)
	if loginID == "" {
		return nil, fmt.Errorf("invalid token: login_id not found")
	}
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	return &models.Actor{
		LoginID:    loginID,
		Role:       models.Role(role),
		Department: department,
	}, nil
}
