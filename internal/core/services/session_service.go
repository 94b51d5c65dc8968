package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/ports"
)

type RegisterCaptainRequest struct {
	FullName    domain.FullName    `json:"fullname"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Camera      CameraRequest      `json:"camera"`
	Skills      []domain.ShootType `json:"skills"`
	SocialLinks domain.SocialLinks `json:"socialLinks"`
	Location    domain.Location    `json:"location"`
}

type CameraRequest struct {
	CameraType []domain.CameraType `json:"cameraType"`
}

type RegisterUserRequest struct {
	FullName domain.FullName `json:"fullname"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
}

type UpdateCaptainProfileRequest struct {
	FullName    *domain.FullName    `json:"fullname"`
	Camera      *CameraRequest      `json:"camera"`
	Skills      []domain.ShootType  `json:"skills"`
	SocialLinks *domain.SocialLinks `json:"socialLinks"`
	Location    *domain.Location    `json:"location"`
}

type CaptainSession struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Captain   *domain.Captain `json:"captain"`
}

type UserSession struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

const minPasswordLength = 6

type SessionService struct {
	captainRepo ports.CaptainRepository
	userRepo    ports.UserRepository
	blacklist   ports.TokenBlacklist
	tokens      ports.TokenIssuer
	hasher      ports.PasswordHasher
	log         zerolog.Logger
	now         func() time.Time
}

func NewSessionService(
	captainRepo ports.CaptainRepository,
	userRepo ports.UserRepository,
	blacklist ports.TokenBlacklist,
	tokens ports.TokenIssuer,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		captainRepo: captainRepo,
		userRepo:    userRepo,
		blacklist:   blacklist,
		tokens:      tokens,
		hasher:      hasher,
		log:         log.With().Str("component", "session").Logger(),
		now:         time.Now,
	}
}

func (s *SessionService) RegisterCaptain(ctx context.Context, req RegisterCaptainRequest) (out *CaptainSession, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.RegisterCaptain")
	defer func() { endSpan(span, err) }()

	if err := validateCredentials(req.FullName, req.Email, req.Password); err != nil {
		return nil, err
	}
	if err := domain.ValidateEquipment(req.Camera.CameraType); err != nil {
		return nil, err
	}
	if err := domain.ValidateSkills(req.Skills); err != nil {
		return nil, err
	}
	if err := validateLocation(req.Location); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domain.NewDependencyError("failed to register captain", err)
	}

	now := s.now().UTC()
	captain := &domain.Captain{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Equipment:    req.Camera.CameraType,
		Skills:       req.Skills,
		SocialLinks:  req.SocialLinks,
		Location:     req.Location,
		Status:       domain.PresenceActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, claims, err := s.tokens.Issue(captain.ID, domain.RoleCaptain)
	if err != nil {
		return nil, domain.NewDependencyError("failed to issue token", err)
	}
	captain.SessionExpiresAt = &claims.ExpiresAt

	if err := s.captainRepo.Create(ctx, captain); err != nil {
		return nil, asDependency("failed to register captain", err)
	}

	s.log.Info().Str("captain_id", captain.ID.String()).Msg("captain registered")

	return &CaptainSession{Token: token, ExpiresAt: claims.ExpiresAt, Captain: captain}, nil
}

// LoginCaptain verifies credentials, marks the captain active and opens a session.
func (s *SessionService) LoginCaptain(ctx context.Context, email, password string) (out *CaptainSession, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.LoginCaptain")
	defer func() { endSpan(span, err) }()

	captain, err := s.captainRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password", nil)
		}
		return nil, asDependency("failed to login", err)
	}

	if err := s.hasher.Compare(captain.PasswordHash, password); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password", nil)
	}

	token, claims, err := s.tokens.Issue(captain.ID, domain.RoleCaptain)
	if err != nil {
		return nil, domain.NewDependencyError("failed to issue token", err)
	}

	if err := s.captainRepo.StartSession(ctx, captain.ID, claims.ExpiresAt); err != nil {
		return nil, asDependency("failed to login", err)
	}
	captain.Status = domain.PresenceActive
	captain.SessionExpiresAt = &claims.ExpiresAt

	return &CaptainSession{Token: token, ExpiresAt: claims.ExpiresAt, Captain: captain}, nil
}

func (s *SessionService) RegisterUser(ctx context.Context, req RegisterUserRequest) (out *UserSession, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.RegisterUser")
	defer func() { endSpan(span, err) }()

	if err := validateCredentials(req.FullName, req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domain.NewDependencyError("failed to register user", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, asDependency("failed to register user", err)
	}

	token, claims, err := s.tokens.Issue(user.ID, domain.RoleUser)
	if err != nil {
		return nil, domain.NewDependencyError("failed to issue token", err)
	}

	return &UserSession{Token: token, ExpiresAt: claims.ExpiresAt, User: user}, nil
}

func (s *SessionService) LoginUser(ctx context.Context, email, password string) (out *UserSession, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.LoginUser")
	defer func() { endSpan(span, err) }()

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password", nil)
		}
		return nil, asDependency("failed to login", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password", nil)
	}

	token, claims, err := s.tokens.Issue(user.ID, domain.RoleUser)
	if err != nil {
		return nil, domain.NewDependencyError("failed to issue token", err)
	}

	return &UserSession{Token: token, ExpiresAt: claims.ExpiresAt, User: user}, nil
}

// Authenticate resolves token to a principal of the given role. The token
// must verify, must not be revoked, and its subject must still exist.
func (s *SessionService) Authenticate(ctx context.Context, token string, role domain.Role) (p domain.Principal, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.Authenticate")
	defer func() { endSpan(span, err) }()

	if token == "" {
		return domain.Principal{}, domain.NewUnauthorizedError("no token provided", nil)
	}

	p, err = s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, domain.NewUnauthorizedError("invalid token", err)
	}
	if p.Role != role {
		return domain.Principal{}, domain.NewUnauthorizedError("invalid token", nil)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, p.TokenID)
	if err != nil {
		return domain.Principal{}, domain.NewUnauthorizedError("invalid token", err)
	}
	if revoked {
		return domain.Principal{}, domain.NewUnauthorizedError("token is blacklisted", nil)
	}

	switch role {
	case domain.RoleCaptain:
		_, err = s.captainRepo.GetByID(ctx, p.ID)
	case domain.RoleUser:
		_, err = s.userRepo.GetByID(ctx, p.ID)
	}
	if err != nil {
		return domain.Principal{}, domain.NewUnauthorizedError(string(role)+" not found", err)
	}

	return p, nil
}

// Logout revokes the session token. Captains also go inactive.
func (s *SessionService) Logout(ctx context.Context, p domain.Principal) (err error) {
	ctx, span := tracer.Start(ctx, "SessionService.Logout")
	defer func() { endSpan(span, err) }()

	if ttl := p.ExpiresAt.Sub(s.now()); ttl > 0 {
		if err := s.blacklist.Revoke(ctx, p.TokenID, ttl); err != nil {
			return domain.NewDependencyError("failed to logout", err)
		}
	}

	if p.Role == domain.RoleCaptain {
		if err := s.captainRepo.SetStatus(ctx, p.ID, domain.PresenceInactive); err != nil {
			return asDependency("failed to logout", err)
		}
	}
	return nil
}

func (s *SessionService) SetCaptainStatus(ctx context.Context, captainID uuid.UUID, status domain.PresenceStatus) (out *domain.Captain, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.SetCaptainStatus")
	defer func() { endSpan(span, err) }()

	if !status.Valid() {
		return nil, domain.NewValidationError("status must be active or inactive")
	}
	if err := s.captainRepo.SetStatus(ctx, captainID, status); err != nil {
		return nil, asDependency("failed to update status", err)
	}
	return s.CaptainProfile(ctx, captainID)
}

func (s *SessionService) CaptainProfile(ctx context.Context, captainID uuid.UUID) (out *domain.Captain, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.CaptainProfile")
	defer func() { endSpan(span, err) }()

	captain, err := s.captainRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, asDependency("failed to load captain", err)
	}
	return captain, nil
}

func (s *SessionService) UpdateCaptainProfile(ctx context.Context, captainID uuid.UUID, req UpdateCaptainProfileRequest) (out *domain.Captain, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.UpdateCaptainProfile")
	defer func() { endSpan(span, err) }()

	update := domain.CaptainProfileUpdate{
		FullName:    req.FullName,
		Skills:      req.Skills,
		SocialLinks: req.SocialLinks,
		Location:    req.Location,
	}
	if req.FullName != nil && len(strings.TrimSpace(req.FullName.FirstName)) < 3 {
		return nil, domain.NewValidationError("first name must be at least 3 characters long")
	}
	if req.Camera != nil {
		if err := domain.ValidateEquipment(req.Camera.CameraType); err != nil {
			return nil, err
		}
		update.Equipment = req.Camera.CameraType
	}
	if req.Skills != nil {
		if err := domain.ValidateSkills(req.Skills); err != nil {
			return nil, err
		}
	}
	if req.Location != nil {
		if err := validateLocation(*req.Location); err != nil {
			return nil, err
		}
	}

	captain, err := s.captainRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, asDependency("failed to load captain", err)
	}
	update.Apply(captain)
	captain.UpdatedAt = s.now().UTC()

	if err := s.captainRepo.UpdateProfile(ctx, captain); err != nil {
		return nil, asDependency("failed to update captain", err)
	}
	return captain, nil
}

func (s *SessionService) UserProfile(ctx context.Context, userID uuid.UUID) (out *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "SessionService.UserProfile")
	defer func() { endSpan(span, err) }()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, asDependency("failed to load user", err)
	}
	return user, nil
}

// RunPresenceSweep periodically marks captains whose session expired as inactive.
func (s *SessionService) RunPresenceSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", interval).Msg("presence sweep started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("presence sweep stopped")
			return
		case <-ticker.C:
			s.sweepExpiredSessions(ctx)
		}
	}
}

func (s *SessionService) sweepExpiredSessions(ctx context.Context) {
	ids, err := s.captainRepo.DeactivateExpiredSessions(ctx, s.now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("error deactivating expired sessions")
		return
	}

	if len(ids) == 0 {
		return
	}

	for _, id := range ids {
		s.log.Info().Str("captain_id", id.String()).Msg("captain session expired, marked inactive")
	}
}

func validateCredentials(name domain.FullName, email, password string) error {
	if len(strings.TrimSpace(name.FirstName)) < 3 {
		return domain.NewValidationError("first name must be at least 3 characters long")
	}
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at < 1 || !strings.Contains(email[at:], ".") {
		return domain.NewValidationError("please enter a valid email")
	}
	if len(password) < minPasswordLength {
		return domain.NewValidationError("password must be at least 6 characters long")
	}
	return nil
}

func validateLocation(loc domain.Location) error {
	if strings.TrimSpace(loc.City) == "" {
		return domain.NewValidationError("city is required")
	}
	if strings.TrimSpace(loc.Country) == "" {
		return domain.NewValidationError("country is required")
	}
	return nil
}
