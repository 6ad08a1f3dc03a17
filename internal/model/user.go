package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Player Игрок за столом. Token - access токен внешнего сервиса авторизации,
// пробрасывается в удаленный кошелек
type Player struct {
	ID    int
	Token string
}

type UserClaims struct {
	jwt.RegisteredClaims
}
