package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

// captainProfileColumns is the public part of a captain row, aliased with a
// c_ prefix so it can be joined next to booking columns.
type captainProfileColumns struct {
	FirstName string          `db:"c_first_name"`
	LastName  string          `db:"c_last_name"`
	Email     string          `db:"c_email"`
	Equipment pq.StringArray  `db:"c_equipment"`
	Skills    pq.StringArray  `db:"c_skills"`
	Instagram string          `db:"c_instagram"`
	VSCO      string          `db:"c_vsco"`
	Portfolio string          `db:"c_portfolio"`
	City      string          `db:"c_city"`
	State     string          `db:"c_state"`
	Country   string          `db:"c_country"`
	Lat       sql.NullFloat64 `db:"c_lat"`
	Lng       sql.NullFloat64 `db:"c_lng"`
}

const captainProfileSelect = `
	c.first_name AS c_first_name, c.last_name AS c_last_name, c.email AS c_email,
	c.equipment AS c_equipment, c.skills AS c_skills,
	c.instagram AS c_instagram, c.vsco AS c_vsco, c.portfolio AS c_portfolio,
	c.city AS c_city, c.state AS c_state, c.country AS c_country, c.lat AS c_lat, c.lng AS c_lng`

func (p captainProfileColumns) fullName() domain.FullName {
	return domain.FullName{FirstName: p.FirstName, LastName: p.LastName}
}

func (p captainProfileColumns) location() domain.Location {
	loc := domain.Location{City: p.City, State: p.State, Country: p.Country}
	if p.Lat.Valid {
		loc.Lat = &p.Lat.Float64
	}
	if p.Lng.Valid {
		loc.Lng = &p.Lng.Float64
	}
	return loc
}

func (p captainProfileColumns) socialLinks() domain.SocialLinks {
	return domain.SocialLinks{Instagram: p.Instagram, VSCO: p.VSCO, Portfolio: p.Portfolio}
}

func (p captainProfileColumns) summary(id uuid.UUID) domain.CaptainSummary {
	return domain.CaptainSummary{
		ID:          id,
		FullName:    p.fullName(),
		Email:       p.Email,
		Equipment:   toCameraTypes(p.Equipment),
		Skills:      toShootTypes(p.Skills),
		Location:    p.location(),
		SocialLinks: p.socialLinks(),
	}
}

type captainRow struct {
	ID uuid.UUID `db:"id"`
	captainProfileColumns
	PasswordHash     string       `db:"password_hash"`
	Status           string       `db:"status"`
	SessionExpiresAt sql.NullTime `db:"session_expires_at"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

func (row captainRow) toDomain() *domain.Captain {
	c := &domain.Captain{
		ID:           row.ID,
		FullName:     row.fullName(),
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Equipment:    toCameraTypes(row.Equipment),
		Skills:       toShootTypes(row.Skills),
		SocialLinks:  row.socialLinks(),
		Location:     row.location(),
		Status:       domain.PresenceStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.SessionExpiresAt.Valid {
		c.SessionExpiresAt = &row.SessionExpiresAt.Time
	}
	return c
}

const captainSelect = `SELECT c.id,` + captainProfileSelect + `,
	c.password_hash, c.status, c.session_expires_at, c.created_at, c.updated_at
	FROM captains c`

type CaptainRepository struct {
	db *sqlx.DB
}

func NewCaptainRepository(db *sqlx.DB) *CaptainRepository {
	return &CaptainRepository{db: db}
}

func (r *CaptainRepository) Create(ctx context.Context, c *domain.Captain) error {
	query := `
	INSERT INTO captains (
		id, first_name, last_name, email, password_hash, equipment, skills,
		instagram, vsco, portfolio, city, state, country, lat, lng,
		status, session_expires_at, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.FullName.FirstName, c.FullName.LastName, c.Email, c.PasswordHash,
		pq.Array(fromCameraTypes(c.Equipment)), pq.Array(fromShootTypes(c.Skills)),
		c.SocialLinks.Instagram, c.SocialLinks.VSCO, c.SocialLinks.Portfolio,
		c.Location.City, c.Location.State, c.Location.Country, c.Location.Lat, c.Location.Lng,
		c.Status, c.SessionExpiresAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert captain: %w", err)
	}
	return nil
}

func (r *CaptainRepository) GetByID(ctx context.Context, captainID uuid.UUID) (*domain.Captain, error) {
	return r.getOne(ctx, captainSelect+` WHERE c.id = $1`, captainID)
}

func (r *CaptainRepository) GetByEmail(ctx context.Context, email string) (*domain.Captain, error) {
	return r.getOne(ctx, captainSelect+` WHERE c.email = $1`, email)
}

func (r *CaptainRepository) getOne(ctx context.Context, query string, arg any) (*domain.Captain, error) {
	var row captainRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("captain not found")
		}
		return nil, fmt.Errorf("failed to get captain: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CaptainRepository) UpdateProfile(ctx context.Context, c *domain.Captain) error {
	query := `
	UPDATE captains
	SET first_name = $1, last_name = $2, equipment = $3, skills = $4,
		instagram = $5, vsco = $6, portfolio = $7,
		city = $8, state = $9, country = $10, lat = $11, lng = $12,
		updated_at = $13
	WHERE id = $14
	`

	result, err := r.db.ExecContext(ctx, query,
		c.FullName.FirstName, c.FullName.LastName,
		pq.Array(fromCameraTypes(c.Equipment)), pq.Array(fromShootTypes(c.Skills)),
		c.SocialLinks.Instagram, c.SocialLinks.VSCO, c.SocialLinks.Portfolio,
		c.Location.City, c.Location.State, c.Location.Country, c.Location.Lat, c.Location.Lng,
		c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update captain: %w", err)
	}
	return expectOneRow(result, "captain not found")
}

// SetStatus flips presence without touching any other profile field.
func (r *CaptainRepository) SetStatus(ctx context.Context, captainID uuid.UUID, status domain.PresenceStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE captains SET status = $1, updated_at = NOW() WHERE id = $2`, status, captainID)
	if err != nil {
		return fmt.Errorf("failed to set captain status: %w", err)
	}
	return expectOneRow(result, "captain not found")
}

func (r *CaptainRepository) StartSession(ctx context.Context, captainID uuid.UUID, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE captains
	SET status = $1, session_expires_at = $2, updated_at = NOW()
	WHERE id = $3
	`, domain.PresenceActive, expiresAt, captainID)
	if err != nil {
		return fmt.Errorf("failed to start captain session: %w", err)
	}
	return expectOneRow(result, "captain not found")
}

type availableCaptainRow struct {
	ID uuid.UUID `db:"id"`
	captainProfileColumns
}

// FindAvailable matches city and skill as case-insensitive substrings among
// active captains.
func (r *CaptainRepository) FindAvailable(ctx context.Context, location, skill string) ([]domain.AvailableCaptain, error) {
	query := `SELECT c.id,` + captainProfileSelect + `
	FROM captains c
	WHERE c.status = $1
		AND c.city ILIKE $2 ESCAPE '\'
		AND EXISTS (SELECT 1 FROM unnest(c.skills) AS s(skill) WHERE s.skill ILIKE $3 ESCAPE '\')
	ORDER BY c.first_name, c.last_name, c.id
	`

	var rows []availableCaptainRow
	err := r.db.SelectContext(ctx, &rows, query,
		domain.PresenceActive, containsPattern(location), containsPattern(skill))
	if err != nil {
		return nil, fmt.Errorf("failed to find available captains: %w", err)
	}

	out := make([]domain.AvailableCaptain, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AvailableCaptain{
			ID:          row.ID,
			FullName:    row.fullName(),
			Skills:      toShootTypes(row.Skills),
			Equipment:   toCameraTypes(row.Equipment),
			Location:    row.location(),
			SocialLinks: row.socialLinks(),
		})
	}
	return out, nil
}

func (r *CaptainRepository) DeactivateExpiredSessions(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
	UPDATE captains
	SET status = $1, updated_at = NOW()
	WHERE status = $2 AND session_expires_at IS NOT NULL AND session_expires_at < $3
	RETURNING id
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, domain.PresenceInactive, domain.PresenceActive, now); err != nil {
		return nil, fmt.Errorf("failed to deactivate expired sessions: %w", err)
	}
	return ids, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func toShootTypes(in []string) []domain.ShootType {
	out := make([]domain.ShootType, 0, len(in))
	for _, s := range in {
		out = append(out, domain.ShootType(s))
	}
	return out
}

func fromShootTypes(in []domain.ShootType) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func toCameraTypes(in []string) []domain.CameraType {
	out := make([]domain.CameraType, 0, len(in))
	for _, s := range in {
		out = append(out, domain.CameraType(s))
	}
	return out
}

func fromCameraTypes(in []domain.CameraType) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
