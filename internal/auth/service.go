package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/dcontreras/workshop-management/internal"
)

type UserRepository interface {
	GetCredentialsByEmail(email string) (passwordHash string, user *User, err error)
	GetUserByID(userID int64) (*User, error)
}

// Service performs credential verification and token issuance.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// Authenticate validates credentials and returns a signed token with the
// user's role embedded. Unknown email and wrong password are deliberately
// indistinguishable to the caller.
func (s *Service) Authenticate(dto LoginDTO) (LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return LoginResult{}, err
	}

	storedHash, user, err := s.userRepo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return LoginResult{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return LoginResult{}, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return LoginResult{}, internal.NewInternalError("failed to sign token", err)
	}

	return LoginResult{Token: token, Role: user.Role}, nil
}

// ValidateAccessToken validates a token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUser loads the principal referenced by validated claims.
func (s *Service) GetUser(userID int64) (*User, error) {
	return s.userRepo.GetUserByID(userID)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken creates a signed token carrying subject id, email and role.
func (j *JWTTokenGenerator) GenerateToken(userID int64, email, role string) (string, error) {
	expiresAt := time.Now().Add(j.TokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims. Expired tokens are
// reported distinctly from malformed or badly signed ones.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
