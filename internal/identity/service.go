package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired access token")
	ErrAccountNotFound    = errors.New("account not found")
)

// Service is the identity store: one authoritative record per account, plus access
// token issue and resolution. Application-level profile data lives elsewhere; the
// metadata bag on an account is only a write-once snapshot taken at signup.
type Service struct {
	db           *gorm.DB
	secret       []byte
	accessExpiry time.Duration
}

func NewService(db *gorm.DB, secret string, accessExpiry time.Duration) *Service {
	return &Service{db: db, secret: []byte(secret), accessExpiry: accessExpiry}
}

// AccountByToken resolves a bearer token to its account.
func (s *Service) AccountByToken(ctx context.Context, token string) (*models.Account, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var acct models.Account
	if err := s.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &acct, nil
}

// ListAccounts returns every account in creation order.
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount registers a new account with a metadata snapshot of the signup
// submission.
func (s *Service) CreateAccount(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.Account, error) {
	if len(email) == 0 || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := models.Account{
		Email:    email,
		Password: string(hash),
		Metadata: datatypes.JSONMap(metadata),
	}
	if err := s.db.WithContext(ctx).Create(&acct).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &acct, nil
}

// DeleteAccount removes the identity record. Dependent application rows are not
// touched here; cascading is the caller's concern.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SignIn verifies credentials, stamps last_sign_in_at and issues an access token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Account, string, error) {
	var acct models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&acct).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&acct).Update("last_sign_in_at", now).Error; err != nil {
		return nil, "", fmt.Errorf("update last sign-in: %w", err)
	}
	acct.LastSignInAt = &now

	token, err := s.IssueToken(&acct)
	if err != nil {
		return nil, "", err
	}
	return &acct, token, nil
}

// IssueToken signs a short-lived HS256 access token for the account.
func (s *Service) IssueToken(acct *models.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   acct.ID.String(),
		"email": acct.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
