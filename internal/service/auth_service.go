package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/gallery-backend/internal/logger"
	"github.com/ignatzorin/gallery-backend/internal/models"
	"github.com/ignatzorin/gallery-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gallery-backend/internal/validation"
)

// SessionPersistence описывает контракт хранения сессии администратора.
// GetSession возвращает (nil, nil), если сохранённой сессии нет.
type SessionPersistence interface {
	GetSession(ctx context.Context) (*models.StoredSession, error)
	SetSession(ctx context.Context, session models.StoredSession) error
	ClearSession(ctx context.Context) error
}

// AuthService владеет состоянием сессии администратора.
// Вход возможен двумя путями за одним интерфейсом: прямой login
// (опционально ограниченный allow-list) и одноразовая magic-link.
// Allow-list проверяется внутри Login, поэтому действует на оба пути.
type AuthService struct {
	mu         sync.Mutex
	state      models.AuthState
	sessions   SessionPersistence
	tokens     *TokenManager
	allowList  map[string]struct{}
	sessionTTL time.Duration
	linkTTL    time.Duration
	pending    *models.PendingMagicLink
}

// LoginResult возвращает итог успешного входа.
type LoginResult struct {
	State       models.AuthState `json:"state"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// NewAuthService создаёт сервис аутентификации.
// Пустой allowList отключает проверку allow-list.
func NewAuthService(sessions SessionPersistence, tokens *TokenManager, allowList []string, sessionTTL, linkTTL time.Duration) *AuthService {
	var allowed map[string]struct{}
	if len(allowList) > 0 {
		allowed = make(map[string]struct{}, len(allowList))
		for _, email := range allowList {
			allowed[normalizeEmail(email)] = struct{}{}
		}
	}

	return &AuthService{
		state:      models.AuthState{Status: models.AuthStatusLoading},
		sessions:   sessions,
		tokens:     tokens,
		allowList:  allowed,
		sessionTTL: sessionTTL,
		linkTTL:    linkTTL,
	}
}

// Resolve восстанавливает сессию из хранилища при старте.
// Единственный выход из состояния Loading: либо валидная сессия,
// либо Unauthenticated с очисткой устаревших данных.
func (s *AuthService) Resolve(ctx context.Context) models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.sessions.GetSession(ctx)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).
				Warn("auth service: не удалось прочитать сессию, сбрасываем")
		}
		s.state = models.AuthState{Status: models.AuthStatusUnauthenticated}
		return s.state
	}

	if stored == nil {
		s.state = models.AuthState{Status: models.AuthStatusUnauthenticated}
		return s.state
	}

	if time.Since(stored.IssuedAt) >= s.sessionTTL {
		// Сессия просрочена: чистим ключи и остаёмся неавторизованными.
		if err := s.sessions.ClearSession(ctx); err != nil && logger.Log != nil {
			logger.Log.WithField("error", err.Error()).
				Warn("auth service: не удалось очистить просроченную сессию")
		}
		s.state = models.AuthState{Status: models.AuthStatusUnauthenticated}
		return s.state
	}

	s.state = models.AuthState{
		Status: models.AuthStatusAuthenticated,
		Email:  stored.Email,
	}
	return s.state
}

// State возвращает текущее состояние сессии.
func (s *AuthService) State() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login авторизует email и выпускает токен для API.
// Email вне allow-list отклоняется без смены состояния.
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allowList != nil {
		if _, ok := s.allowList[email]; !ok {
			return nil, apperror.Denied(apperror.DenyReasonUnauthorized,
				"этот email не входит в список администраторов")
		}
	}

	return s.loginLocked(ctx, email)
}

// loginLocked завершает вход. Вызывается с захваченным mutex.
func (s *AuthService) loginLocked(ctx context.Context, email string) (*LoginResult, error) {
	issuedAt := time.Now()

	// Состояние в памяти — источник истины: сбой записи сессии
	// логируется, но вход не прерывает.
	if err := s.sessions.SetSession(ctx, models.StoredSession{Email: email, IssuedAt: issuedAt}); err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).
				Warn("auth service: не удалось сохранить сессию")
		}
	}

	s.state = models.AuthState{
		Status: models.AuthStatusAuthenticated,
		Email:  email,
	}

	token, exp, err := s.tokens.Issue(email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		State:       s.state,
		AccessToken: token,
		ExpiresAt:   exp,
	}, nil
}

// Logout очищает сессию и переводит состояние в Unauthenticated.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.ClearSession(ctx); err != nil && logger.Log != nil {
		logger.Log.WithField("error", err.Error()).
			Warn("auth service: не удалось очистить сессию")
	}

	s.state = models.AuthState{Status: models.AuthStatusUnauthenticated}
}

// RequestLink создаёт одноразовый токен входа для email.
// Токен живёт ограниченное время и хранится только в виде bcrypt-хеша.
// Доставка письма — внешний коллаборатор, здесь ссылка пишется в лог.
func (s *AuthService) RequestLink(ctx context.Context, email string) (string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	email = normalizeEmail(email)

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal,
			"не удалось подготовить ссылку для входа")
	}

	s.mu.Lock()
	// Новый запрос вытесняет предыдущий: активна только последняя ссылка.
	s.pending = &models.PendingMagicLink{
		Email:     email,
		TokenHash: string(hash),
		ExpiresAt: time.Now().Add(s.linkTTL),
	}
	s.mu.Unlock()

	if logger.Log != nil {
		logger.Log.WithField("email", email).
			Info("auth service: ссылка для входа подготовлена к отправке")
	}

	return token, nil
}

// VerifyLink проверяет токен против последнего запроса RequestLink.
// Ссылка одноразовая: успешная проверка потребляет запрос.
func (s *AuthService) VerifyLink(ctx context.Context, token, email string) (*LoginResult, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.pending
	if pending == nil {
		return nil, apperror.Denied(apperror.DenyReasonInvalid,
			"ссылка для входа недействительна, запросите новую")
	}

	if time.Now().After(pending.ExpiresAt) {
		s.pending = nil
		return nil, apperror.Denied(apperror.DenyReasonExpired,
			"ссылка для входа просрочена, запросите новую")
	}

	if pending.Email != email ||
		bcrypt.CompareHashAndPassword([]byte(pending.TokenHash), []byte(token)) != nil {
		return nil, apperror.Denied(apperror.DenyReasonInvalid,
			"ссылка для входа недействительна, запросите новую")
	}

	s.pending = nil

	if s.allowList != nil {
		if _, ok := s.allowList[email]; !ok {
			return nil, apperror.Denied(apperror.DenyReasonUnauthorized,
				"этот email не входит в список администраторов")
		}
	}

	return s.loginLocked(ctx, email)
}

// normalizeEmail приводит email к каноничному виду для сравнения.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
