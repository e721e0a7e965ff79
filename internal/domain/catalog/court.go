package catalog

import (
	"errors"
	"strings"

	"badminton-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrInvalidRate    = errors.New("hourly rate cannot be negative")
	ErrUnknownCourtTy = errors.New("unknown court type")
)

type CourtType string

const (
	CourtTypeIndoor  CourtType = "indoor"
	CourtTypeOutdoor CourtType = "outdoor"
)

func ParseCourtType(s string) (CourtType, error) {
	switch CourtType(strings.ToLower(s)) {
	case CourtTypeIndoor:
		return CourtTypeIndoor, nil
	case CourtTypeOutdoor:
		return CourtTypeOutdoor, nil
	default:
		return "", ErrUnknownCourtTy
	}
}

func (t CourtType) String() string { return string(t) }

type Court struct {
	id         uuid.UUID
	name       string
	courtType  CourtType
	hourlyRate pricing.Money
	isActive   bool
}

func NewCourt(name string, courtType CourtType, hourlyRate pricing.Money) (*Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if hourlyRate.IsNegative() {
		return nil, ErrInvalidRate
	}
	return &Court{
		id:         uuid.New(),
		name:       name,
		courtType:  courtType,
		hourlyRate: hourlyRate,
		isActive:   true,
	}, nil
}

func ReconstructCourt(id uuid.UUID, name string, courtType CourtType, hourlyRate pricing.Money, isActive bool) *Court {
	return &Court{
		id:         id,
		name:       name,
		courtType:  courtType,
		hourlyRate: hourlyRate,
		isActive:   isActive,
	}
}

func (c *Court) ID() uuid.UUID             { return c.id }
func (c *Court) Name() string              { return c.name }
func (c *Court) Type() CourtType           { return c.courtType }
func (c *Court) HourlyRate() pricing.Money { return c.hourlyRate }
func (c *Court) IsActive() bool            { return c.isActive }
func (c *Court) IsIndoor() bool            { return c.courtType == CourtTypeIndoor }
