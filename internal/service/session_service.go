package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"reef_backend/internal/domain"
	"reef_backend/internal/logger"
	"reef_backend/internal/repository"
)

// время жизни кеша пользователя в redis
const userCacheTTL = 30 * time.Second

// регистрация, вход и разрешение текущего пользователя по bearer-токену.
// Токен - JWT с кодом пользователя, сам пользователь кешируется в redis
type SessionService struct {
	store  repository.Store
	rdb    *redis.Client
	audit  *AuditService
	secret []byte
	ttl    time.Duration
}

func NewSessionService(store repository.Store, rdb *redis.Client, audit *AuditService, secret string, ttlMin int) *SessionService {
	return &SessionService{
		store:  store,
		rdb:    rdb,
		audit:  audit,
		secret: []byte(secret),
		ttl:    time.Duration(ttlMin) * time.Minute,
	}
}

// Register создает пользователя. Пароль сохраняется как есть - так делала
// исходная система, здесь это только фиксируется, не чинится
func (s *SessionService) Register(ctx context.Context, username, email, password string, referrerCode *string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	existing, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	if referrerCode != nil {
		referrer, err := s.store.Users().GetByCode(ctx, *referrerCode)
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			return nil, ErrValidation
		}
	}

	user := &domain.User{
		Code:         uuid.NewString(),
		Username:     username,
		Email:        email,
		Password:     password,
		Role:         domain.RolePlayer,
		WaterDrops:   decimal.Zero,
		Pearls:       decimal.Zero,
		Level:        1,
		ReefItems:    map[string]interface{}{},
		ReferrerCode: referrerCode,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login сверяет пароль и выдает токен сессии
func (s *SessionService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	// сравнение открытым текстом - унаследованное поведение
	if user == nil || user.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Code)
	if err != nil {
		return "", nil, err
	}

	if err := s.store.Users().SetSessionToken(ctx, user.Code, token); err != nil {
		return "", nil, err
	}
	_ = s.store.Users().TouchLastAccess(ctx, user.Code)
	s.cacheUser(ctx, user)

	s.audit.Log(ctx, user.Code, domain.AuditActionLogin, domain.AuditCategoryAuth, nil)
	return token, user, nil
}

// Authenticate разрешает пользователя по bearer-токену
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	code, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user := s.cachedUser(ctx, code); user != nil {
		return user, nil
	}

	user, err := s.store.Users().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	_ = s.store.Users().TouchLastAccess(ctx, user.Code)
	s.cacheUser(ctx, user)
	return user, nil
}

// GetUser возвращает пользователя по коду
func (s *SessionService) GetUser(ctx context.Context, code string) (*domain.User, error) {
	user, err := s.store.Users().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *SessionService) issueToken(userCode string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userCode,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SessionService) parseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	code, _ := claims["sub"].(string)
	if code == "" {
		return "", ErrInvalidToken
	}
	return code, nil
}

// --- redis-кеш пользователя, балансы могут отставать не дольше TTL ---

func (s *SessionService) cacheUser(ctx context.Context, user *domain.User) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, "session:user:"+user.Code, data, userCacheTTL).Err(); err != nil {
		logger.Debug("не удалось закешировать пользователя", "error", err)
	}
}

func (s *SessionService) cachedUser(ctx context.Context, code string) *domain.User {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, "session:user:"+code).Bytes()
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}
