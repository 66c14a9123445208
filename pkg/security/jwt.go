package security

import (
	"fmt"
	"strconv"
	"time"

	"ShortVideo.com/pkg/errno"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 只携带外部身份服务解析出的用户ID
type Claims struct {
	UserId int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager HS256签名和校验
type JWTManager struct {
	secret []byte
	issuer string
}

func NewJWTManager(secret, issuer string) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer}
}

// GenerateToken 签发token 本服务只在测试和运维脚本中使用
func (jm *JWTManager) GenerateToken(userId int64, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jm.issuer,
			Subject:   strconv.FormatInt(userId, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jm.secret)
}

// ParseToken 校验签名和有效期 失败统一返回TokenInvalidErr
func (jm *JWTManager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jm.secret, nil
	}, jwt.WithIssuer(jm.issuer))
	if err != nil || !token.Valid {
		return nil, errno.TokenInvalidErr
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserId <= 0 {
		return nil, errno.TokenInvalidErr
	}
	return claims, nil
}
