package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PresenceStatus string

const (
	PresenceActive   PresenceStatus = "active"
	PresenceInactive PresenceStatus = "inactive"
)

func (s PresenceStatus) Valid() bool {
	return s == PresenceActive || s == PresenceInactive
}

type FullName struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func (n FullName) String() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

type Location struct {
	City    string   `json:"city"`
	State   string   `json:"state,omitempty"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	VSCO      string `json:"vsco,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Captain struct {
	ID               uuid.UUID      `json:"_id"`
	FullName         FullName       `json:"fullname"`
	Email            string         `json:"email"`
	PasswordHash     string         `json:"-"`
	Equipment        []CameraType   `json:"camera"`
	Skills           []ShootType    `json:"skills"`
	SocialLinks      SocialLinks    `json:"socialLinks"`
	Location         Location       `json:"location"`
	Status           PresenceStatus `json:"status"`
	SessionExpiresAt *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// AvailableCaptain is the public projection returned by availability search.
type AvailableCaptain struct {
	ID          uuid.UUID    `json:"_id"`
	FullName    FullName     `json:"fullname"`
	Skills      []ShootType  `json:"skills"`
	Equipment   []CameraType `json:"camera"`
	Location    Location     `json:"location"`
	SocialLinks SocialLinks  `json:"socialLinks"`
}

// CaptainProfileUpdate carries the mutable profile fields. Nil fields are left untouched.
type CaptainProfileUpdate struct {
	FullName    *FullName
	Equipment   []CameraType
	Skills      []ShootType
	SocialLinks *SocialLinks
	Location    *Location
}

func (u CaptainProfileUpdate) Apply(c *Captain) {
	if u.FullName != nil {
		c.FullName = *u.FullName
	}
	if u.Equipment != nil {
		c.Equipment = u.Equipment
	}
	if u.Skills != nil {
		c.Skills = u.Skills
	}
	if u.SocialLinks != nil {
		c.SocialLinks = *u.SocialLinks
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
}
