package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims 调用方 Token 声明
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// Service JWT 服务
type Service struct {
	secretKey    []byte
	issuer       string
	accessExpire time.Duration
}

// NewService 创建 JWT 服务
func NewService(secretKey, issuer string, accessExpire time.Duration) *Service {
	return &Service{
		secretKey:    []byte(secretKey),
		issuer:       issuer,
		accessExpire: accessExpire,
	}
}

// GenerateToken 为调用方签发 Access Token，返回 token 与过期时间戳
func (s *Service) GenerateToken(clientID string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessExpire)

	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

// ValidateToken 验证 Token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ClientID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
