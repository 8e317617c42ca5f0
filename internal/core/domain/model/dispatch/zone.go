package dispatch

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// minBoundaryPoints is the smallest ring that encloses any area.
const minBoundaryPoints = 3

var (
	// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone or RestoreZone constructor")
	// ErrDuplicateZoneName is returned when creating a zone whose name already
	// exists. Names match case-sensitively.
	ErrDuplicateZoneName = errors.New("dispatch zone with this name already exists")
	// ErrBoundaryTooSmall is returned when a boundary ring has fewer than three points.
	ErrBoundaryTooSmall = errs.NewValueIsInvalidErrorWithCause("boundary",
		errors.New("a zone boundary needs at least 3 points"))
)

// Zone is a named delivery service area with its own fee and time parameters.
// The boundary is an ordered ring of coordinates; Contains performs a
// ray-casting point-in-polygon test against it. Zone lookup during assignment
// is advisory: an order outside every active zone is still dispatched, it just
// carries no zone snapshot on its log.
type Zone struct {
	id                  kernel.UUID
	name                string
	boundary            []kernel.GeoPoint
	deliveryFee         float64
	minimumDeliveryTime int
	active              bool

	guard guard.ConstructorGuard
}

// NewZone creates an active Zone with the given name, boundary ring, flat
// delivery fee and minimum delivery time in minutes.
func NewZone(
	id kernel.UUID,
	name string,
	boundary []kernel.GeoPoint,
	deliveryFee float64,
	minimumDeliveryTime int,
) (*Zone, error) {
	z := &Zone{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setID(id),
		z.setName(name),
		z.setBoundary(boundary),
		z.setDeliveryFee(deliveryFee),
		z.setMinimumDeliveryTime(minimumDeliveryTime),
	); err != nil {
		return nil, err
	}

	return z, nil
}

// RestoreZone reconstructs a Zone from persistent storage, preserving its
// active flag.
func RestoreZone(
	id kernel.UUID,
	name string,
	boundary []kernel.GeoPoint,
	deliveryFee float64,
	minimumDeliveryTime int,
	active bool,
) (*Zone, error) {
	z, err := NewZone(id, name, boundary, deliveryFee, minimumDeliveryTime)
	if err != nil {
		return nil, err
	}

	z.active = active
	return z, nil
}

// Validate checks if the Zone was properly constructed.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Name returns the zone's unique name.
func (z *Zone) Name() string {
	return z.name
}

// Boundary returns a copy of the boundary ring.
func (z *Zone) Boundary() []kernel.GeoPoint {
	out := make([]kernel.GeoPoint, len(z.boundary))
	copy(out, z.boundary)
	return out
}

// DeliveryFee returns the flat delivery fee charged inside the zone.
func (z *Zone) DeliveryFee() float64 {
	return z.deliveryFee
}

// MinimumDeliveryTime returns the minimum promised delivery time in minutes.
func (z *Zone) MinimumDeliveryTime() int {
	return z.minimumDeliveryTime
}

// IsActive reports whether the zone currently serves orders.
func (z *Zone) IsActive() bool {
	return z.active
}

// Rename changes the zone's name. Uniqueness is enforced by the registry.
func (z *Zone) Rename(name string) error {
	return z.setName(name)
}

// SetBoundary replaces the boundary ring.
func (z *Zone) SetBoundary(boundary []kernel.GeoPoint) error {
	return z.setBoundary(boundary)
}

// SetDeliveryFee changes the flat delivery fee.
func (z *Zone) SetDeliveryFee(fee float64) error {
	return z.setDeliveryFee(fee)
}

// SetMinimumDeliveryTime changes the minimum delivery time in minutes.
func (z *Zone) SetMinimumDeliveryTime(minutes int) error {
	return z.setMinimumDeliveryTime(minutes)
}

// SetActive toggles whether the zone serves orders.
func (z *Zone) SetActive(active bool) {
	z.active = active
}

// Contains reports whether a point lies inside the zone boundary using the
// ray-casting algorithm on latitude/longitude treated as a planar polygon.
// Points exactly on an edge may fall on either side; zone membership is
// advisory, so the ambiguity is acceptable.
func (z *Zone) Contains(point kernel.GeoPoint) (bool, error) {
	if err := errors.Join(z.Validate(), point.Validate()); err != nil {
		return false, err
	}

	lat, lng := point.Latitude(), point.Longitude()
	inside := false

	for i, j := 0, len(z.boundary)-1; i < len(z.boundary); j, i = i, i+1 {
		latI, lngI := z.boundary[i].Latitude(), z.boundary[i].Longitude()
		latJ, lngJ := z.boundary[j].Latitude(), z.boundary[j].Longitude()

		if (latI > lat) != (latJ > lat) &&
			lng < (lngJ-lngI)*(lat-latI)/(latJ-latI)+lngI {
			inside = !inside
		}
	}

	return inside, nil
}

// Snapshot captures the zone parameters stamped onto a dispatch log.
func (z *Zone) Snapshot() ZoneSnapshot {
	return ZoneSnapshot{
		ZoneID:              z.id,
		DeliveryFee:         z.deliveryFee,
		MinimumDeliveryTime: z.minimumDeliveryTime,
	}
}

// ZoneSnapshot is the zone-derived parameters attached to a dispatch log at
// assignment time. Later fee or time edits to the zone do not rewrite history.
type ZoneSnapshot struct {
	ZoneID              kernel.UUID
	DeliveryFee         float64
	MinimumDeliveryTime int
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	z.name = name
	return nil
}

func (z *Zone) setBoundary(boundary []kernel.GeoPoint) error {
	if len(boundary) < minBoundaryPoints {
		return ErrBoundaryTooSmall
	}
	for _, p := range boundary {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	z.boundary = make([]kernel.GeoPoint, len(boundary))
	copy(z.boundary, boundary)
	return nil
}

func (z *Zone) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("deliveryFee")
	}
	z.deliveryFee = fee
	return nil
}

func (z *Zone) setMinimumDeliveryTime(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidError("minimumDeliveryTime")
	}
	z.minimumDeliveryTime = minutes
	return nil
}
