package catalog

import (
	"errors"
	"strings"

	"badminton-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var ErrNegativeQuantity = errors.New("total quantity cannot be negative")

// Equipment is a rentable pool of identical units (rackets, shoes).
// total_quantity is the fixed pool size; availability for a window is
// the pool minus confirmed overlapping reservations.
type Equipment struct {
	id            uuid.UUID
	name          string
	totalQuantity int32
	rentalPrice   pricing.Money
	isActive      bool
}

func NewEquipment(name string, totalQuantity int32, rentalPrice pricing.Money) (*Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if totalQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if rentalPrice.IsNegative() {
		return nil, ErrInvalidRate
	}
	return &Equipment{
		id:            uuid.New(),
		name:          name,
		totalQuantity: totalQuantity,
		rentalPrice:   rentalPrice,
		isActive:      true,
	}, nil
}

func ReconstructEquipment(id uuid.UUID, name string, totalQuantity int32, rentalPrice pricing.Money, isActive bool) *Equipment {
	return &Equipment{
		id:            id,
		name:          name,
		totalQuantity: totalQuantity,
		rentalPrice:   rentalPrice,
		isActive:      isActive,
	}
}

func (e *Equipment) ID() uuid.UUID              { return e.id }
func (e *Equipment) Name() string               { return e.name }
func (e *Equipment) TotalQuantity() int32       { return e.totalQuantity }
func (e *Equipment) RentalPrice() pricing.Money { return e.rentalPrice }
func (e *Equipment) IsActive() bool             { return e.isActive }
