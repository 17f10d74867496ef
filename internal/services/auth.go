package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
)

// AuthService covers both authentication models: legacy per-user JWT and
// OAuth2 client credentials with opaque, hashed access tokens.
type AuthService interface {
	RegisterUser(req *models.RegisterRequest) (*models.User, error)
	AuthenticateUser(username, password string) (*models.User, error)
	CreateUserTokens(username string) (access string, refresh string, err error)
	VerifyUserToken(token, tokenType string) (username string, err error)

	CreateClient(name, description string, scopes []string, rateLimit int, createdBy uuid.UUID) (*models.APIClient, string, error)
	VerifyClientCredentials(clientID, clientSecret string) (*models.APIClient, error)
	IssueClientToken(client *models.APIClient, scopes []string) (string, *models.AccessToken, error)
	VerifyAccessToken(token string) (*models.AccessToken, *models.APIClient, error)
	RevokeToken(token string) (bool, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	clientRepo repositories.ClientRepository
	tokenRepo  repositories.TokenRepository
	cfg        config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	tokenRepo repositories.TokenRepository,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		tokenRepo:  tokenRepo,
		cfg:        cfg,
	}
}

// RegisterUser implements AuthService.
func (s *authService) RegisterUser(req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", models.ErrValidation)
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: string(hashed),
		IsActive:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// AuthenticateUser implements AuthService.
func (s *authService) AuthenticateUser(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("user is inactive: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	return user, nil
}

// CreateUserTokens implements AuthService. Issues the legacy JWT pair.
func (s *authService) CreateUserTokens(username string) (string, string, error) {
	access, err := s.signJWT(username, "access", s.cfg.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}

	refresh, err := s.signJWT(username, "refresh", s.cfg.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (s *authService) signJWT(username, tokenType string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"type": tokenType,
		"exp":  time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyUserToken implements AuthService. Returns the subject username
// when the token is valid and of the expected type.
func (s *authService) VerifyUserToken(tokenStr, tokenType string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims: %w", models.ErrUnauthorized)
	}

	if claimedType, _ := claims["type"].(string); claimedType != tokenType {
		return "", fmt.Errorf("wrong token type: %w", models.ErrUnauthorized)
	}

	username, _ := claims["sub"].(string)
	if username == "" {
		return "", fmt.Errorf("missing subject: %w", models.ErrUnauthorized)
	}

	return username, nil
}

// CreateClient implements AuthService. The plain secret is returned once;
// only its bcrypt hash is persisted.
func (s *authService) CreateClient(name, description string, scopes []string, rateLimit int, createdBy uuid.UUID) (*models.APIClient, string, error) {
	clientID := "hm_" + randomToken(24)
	clientSecret := randomToken(48)

	secretHash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash client secret: %w", err)
	}

	if rateLimit <= 0 {
		rateLimit = s.cfg.DefaultRateLimitPerHr
	}
	if len(scopes) == 0 {
		scopes = []string{models.ScopeRead, models.ScopeWrite}
	}

	client := &models.APIClient{
		ID:               uuid.New(),
		ClientID:         clientID,
		SecretHash:       string(secretHash),
		Name:             name,
		Description:      description,
		Scopes:           scopes,
		IsActive:         true,
		RateLimitPerHour: rateLimit,
		CreatedBy:        createdBy,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, "", err
	}

	return client, clientSecret, nil
}

// VerifyClientCredentials implements AuthService.
func (s *authService) VerifyClientCredentials(clientID, clientSecret string) (*models.APIClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing client credentials: %w", models.ErrUnauthorized)
	}

	client, err := s.clientRepo.FindByClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client credentials: %w", models.ErrUnauthorized)
	}

	if !client.IsActive {
		return nil, fmt.Errorf("client is inactive: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(clientSecret)); err != nil {
		return nil, fmt.Errorf("invalid client credentials: %w", models.ErrUnauthorized)
	}

	if err := s.clientRepo.TouchLastUsed(clientID); err != nil {
		return nil, err
	}

	return client, nil
}

// IssueClientToken implements AuthService. The opaque token never touches
// the database; only its SHA-256 hash is stored.
func (s *authService) IssueClientToken(client *models.APIClient, scopes []string) (string, *models.AccessToken, error) {
	if len(scopes) == 0 {
		scopes = client.Scopes
	}
	if len(scopes) == 0 {
		scopes = []string{models.ScopeRead, models.ScopeWrite}
	}

	plain := "hm_access_" + randomToken(32)

	accessToken := &models.AccessToken{
		ID:        uuid.New(),
		TokenHash: HashToken(plain),
		ClientID:  client.ClientID,
		Scopes:    scopes,
		IsActive:  true,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.ClientTokenExpirySecs) * time.Second),
	}

	if err := s.tokenRepo.Create(accessToken); err != nil {
		return "", nil, err
	}

	return plain, accessToken, nil
}

// VerifyAccessToken implements AuthService. Resolves an opaque bearer
// token to its AccessToken row and owning client.
func (s *authService) VerifyAccessToken(token string) (*models.AccessToken, *models.APIClient, error) {
	dbToken, err := s.tokenRepo.FindActiveByHash(HashToken(token))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid or expired access token: %w", models.ErrUnauthorized)
		}
		return nil, nil, err
	}

	client, err := s.clientRepo.FindByClientID(dbToken.ClientID)
	if err != nil || !client.IsActive {
		return nil, nil, fmt.Errorf("invalid or expired access token: %w", models.ErrUnauthorized)
	}

	if err := s.tokenRepo.TouchLastUsed(dbToken.TokenHash); err != nil {
		return nil, nil, err
	}

	return dbToken, client, nil
}

// RevokeToken implements AuthService.
func (s *authService) RevokeToken(token string) (bool, error) {
	return s.tokenRepo.Revoke(HashToken(token))
}

// HashToken hashes an opaque token for storage and lookup.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken(nbytes int) string {
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the process cannot mint credentials at all.
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
