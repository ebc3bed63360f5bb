package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nojast/nojast-api/internal/domain/user"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
	"github.com/nojast/nojast-api/internal/pkg/password"
)

const resetTokenTTL = time.Hour

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
	refreshTTL time.Duration

	// In-process refresh token store used when Redis is disabled. A restart
	// signs everyone out, which is fine for local development.
	memMu     sync.Mutex
	memTokens map[string]memToken
}

type memToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, redisClient *redis.Client, refreshTTL time.Duration) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redisClient,
		refreshTTL: refreshTTL,
		memTokens:  make(map[string]memToken),
	}
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Username:     req.Username,
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if err == user.ErrUsernameTaken {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.generateTokens(ctx, u)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if u.IsBanned {
		return nil, ErrUserBanned
	}

	return s.generateTokens(ctx, u)
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// The stored hash must still exist: revoked or rotated tokens are gone.
	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.getRefreshToken(ctx, refreshHash)
	if err != nil || userID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if u.IsBanned {
		return nil, ErrUserBanned
	}

	// Token rotation
	_ = s.deleteRefreshToken(ctx, refreshHash)

	return s.generateTokens(ctx, u)
}

// Logout invalidates a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.deleteRefreshToken(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the caller's own account
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u)
	return &resp, nil
}

// RequestPasswordReset stores a single-use reset token for the account.
// Returns the raw token; the caller is responsible for delivering it.
// Unknown emails return an empty token without an error so the endpoint
// does not leak which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	exp := sql.NullTime{Time: time.Now().Add(resetTokenTTL), Valid: true}
	if err := s.userRepo.SetResetToken(ctx, u.ID, token, exp); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword consumes a reset token and replaces the password
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, u.ID, hash)
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.IsBanned)
	if err != nil {
		return nil, err
	}

	refreshToken, _, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.storeRefreshToken(ctx, refreshHash, u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.AccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

// Refresh token store: Redis when configured, process memory otherwise.
func (s *Service) storeRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID) error {
	if s.redis == nil {
		s.memMu.Lock()
		s.memTokens[tokenHash] = memToken{userID: userID, expiresAt: time.Now().Add(s.refreshTTL)}
		s.memMu.Unlock()
		return nil
	}
	return s.redis.Set(ctx, "refresh:"+tokenHash, userID.String(), s.refreshTTL).Err()
}

func (s *Service) getRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		s.memMu.Lock()
		defer s.memMu.Unlock()
		t, ok := s.memTokens[tokenHash]
		if !ok {
			return uuid.Nil, ErrInvalidRefreshToken
		}
		if time.Now().After(t.expiresAt) {
			delete(s.memTokens, tokenHash)
			return uuid.Nil, ErrInvalidRefreshToken
		}
		return t.userID, nil
	}
	val, err := s.redis.Get(ctx, "refresh:"+tokenHash).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *Service) deleteRefreshToken(ctx context.Context, tokenHash string) error {
	if s.redis == nil {
		s.memMu.Lock()
		delete(s.memTokens, tokenHash)
		s.memMu.Unlock()
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+tokenHash).Err()
}
