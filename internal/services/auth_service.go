package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pricesmart/internal/domain"
	"pricesmart/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrBadToken   = errors.New("invalid or expired token")
)

const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

func (s *AuthService) Register(email, name, password string) (*domain.User, string, error) {
	if u, _ := s.Users.ByEmail(email); u != nil {
		return nil, "", ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(h), Active: true}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}
	tok, err := s.issue(u.ID)
	return &u, tok, err
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if err := s.Users.TouchLogin(u.ID); err != nil {
		return nil, "", err
	}
	tok, err := s.issue(u.ID)
	return u, tok, err
}

// UserFromToken resolves a bearer token to its user.
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBadToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadToken
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return nil, ErrBadToken
	}
	return s.Users.ByID(uid)
}

func (s *AuthService) issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
