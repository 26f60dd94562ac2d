package model

import (
	"math"

	"github.com/google/uuid"
)

// OrientationLock constrains how an item may be rotated when placed.
type OrientationLock int

const (
	LockAny     OrientationLock = iota // Any vertical-axis rotation, flips allowed if CanFlip
	LockUpright                        // Must stay upright (height axis stays vertical)
	LockOnSide                         // Must lie on its side (height axis goes horizontal)
)

func (l OrientationLock) String() string {
	switch l {
	case LockUpright:
		return "Upright"
	case LockOnSide:
		return "OnSide"
	default:
		return "Any"
	}
}

// Shape is the physical shape class of an item, used for volume computation.
type Shape string

const (
	ShapeBox  Shape = "box"
	ShapeDrum Shape = "drum" // Cylinder standing on its round face
)

// Vec3 is a 3D point or offset in trailer-local inches. X runs along the
// trailer length, Y is vertical, Z is lateral with 0 at the centerline.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dims holds oriented box dimensions: L along X, W along Z, H along Y.
type Dims struct {
	L float64 `json:"l"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Volume returns the box volume in cubic inches.
func (d Dims) Volume() float64 {
	return d.L * d.W * d.H
}

// Transform is a position plus Euler rotation in degrees.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// Item is a cargo item definition (catalog entry).
type Item struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Length  float64         `json:"length"` // inches
	Width   float64         `json:"width"`  // inches
	Height  float64         `json:"height"` // inches
	Shape   Shape           `json:"shape"`
	Lock    OrientationLock `json:"orientation_lock"`
	CanFlip bool            `json:"can_flip"`
}

// NewItem creates an item definition with a generated short ID.
func NewItem(label string, l, w, h float64) Item {
	return Item{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Length: l,
		Width:  w,
		Height: h,
		Shape:  ShapeBox,
		Lock:   LockAny,
	}
}

// Volume returns the item volume in cubic inches. Drums use the inscribed
// cylinder of the bounding box: r = min(width, height)/2 along the length.
func (it Item) Volume() float64 {
	if it.Shape == ShapeDrum {
		r := math.Min(it.Width, it.Height) / 2
		return math.Pi * r * r * it.Length
	}
	return it.Length * it.Width * it.Height
}

// ItemInstance is one physical unit of an item placed in (or staged next to)
// a trailer.
type ItemInstance struct {
	InstanceID string    `json:"instance_id"`
	ItemID     string    `json:"item_id"`
	Transform  Transform `json:"transform"`
	Hidden     bool      `json:"hidden"`
}

// NewItemInstance creates an instance of the given item definition.
func NewItemInstance(itemID string) ItemInstance {
	return ItemInstance{
		InstanceID: uuid.New().String()[:8],
		ItemID:     itemID,
	}
}

// ShapeMode selects the usable-volume geometry of a trailer.
type ShapeMode string

const (
	ShapeRect       ShapeMode = "rect"       // Plain box
	ShapeWheelWells ShapeMode = "wheelWells" // Intruding wheel wells on both walls
	ShapeFrontBonus ShapeMode = "frontBonus" // Extra volume at the front (loaded first)
)

// WheelWellConfig describes the wheel-well intrusions of a wheelWells
// trailer. Zero values resolve to defaults derived from the trailer dims.
type WheelWellConfig struct {
	WellHeight         float64 `json:"well_height"`
	WellWidth          float64 `json:"well_width"`
	WellLength         float64 `json:"well_length"`
	WellOffsetFromRear float64 `json:"well_offset_from_rear"`
}

// Resolve fills defaults (0.35H, min(0.15W, W/2), 0.35L, 0.25L) and clamps
// every field to the trailer's extents.
func (c WheelWellConfig) Resolve(length, width, height float64) WheelWellConfig {
	if c.WellHeight <= 0 {
		c.WellHeight = 0.35 * height
	}
	if c.WellWidth <= 0 {
		c.WellWidth = math.Min(0.15*width, width/2)
	}
	if c.WellLength <= 0 {
		c.WellLength = 0.35 * length
	}
	if c.WellOffsetFromRear <= 0 {
		c.WellOffsetFromRear = 0.25 * length
	}
	c.WellHeight = clamp(c.WellHeight, 0, height)
	c.WellWidth = clamp(c.WellWidth, 0, width/2)
	c.WellLength = clamp(c.WellLength, 0, length)
	c.WellOffsetFromRear = clamp(c.WellOffsetFromRear, 0, length)
	return c
}

// FrontBonusConfig describes the bonus nose volume of a frontBonus trailer.
// Zero values resolve to defaults derived from the trailer dims.
type FrontBonusConfig struct {
	BonusLength float64 `json:"bonus_length"`
	BonusWidth  float64 `json:"bonus_width"`
	BonusHeight float64 `json:"bonus_height"`
}

// Resolve fills defaults (0.12L, full width, full height) and clamps every
// field to the trailer's extents.
func (c FrontBonusConfig) Resolve(length, width, height float64) FrontBonusConfig {
	if c.BonusLength <= 0 {
		c.BonusLength = 0.12 * length
	}
	if c.BonusWidth <= 0 {
		c.BonusWidth = width
	}
	if c.BonusHeight <= 0 {
		c.BonusHeight = height
	}
	c.BonusLength = clamp(c.BonusLength, 0, length)
	c.BonusWidth = clamp(c.BonusWidth, 0, width)
	c.BonusHeight = clamp(c.BonusHeight, 0, height)
	return c
}

// Trailer is the container being loaded. Dimensions are inches.
type Trailer struct {
	Label      string           `json:"label"`
	Length     float64          `json:"length"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	ShapeMode  ShapeMode        `json:"shape_mode"`
	WheelWells WheelWellConfig  `json:"wheel_wells,omitempty"`
	FrontBonus FrontBonusConfig `json:"front_bonus,omitempty"`
}

// NewTrailer creates a plain rectangular trailer.
func NewTrailer(label string, l, w, h float64) Trailer {
	return Trailer{
		Label:     label,
		Length:    l,
		Width:     w,
		Height:    h,
		ShapeMode: ShapeRect,
	}
}

// Normalized returns a copy with dimensions clamped to non-negative and an
// unknown shape mode defaulted to rect.
func (t Trailer) Normalized() Trailer {
	t.Length = math.Max(0, t.Length)
	t.Width = math.Max(0, t.Width)
	t.Height = math.Max(0, t.Height)
	switch t.ShapeMode {
	case ShapeRect, ShapeWheelWells, ShapeFrontBonus:
	default:
		t.ShapeMode = ShapeRect
	}
	return t
}

// LoadFrontFirst reports whether loading proceeds from the front wall
// backwards. Only frontBonus trailers load front-first: the nose volume must
// be filled before it is walled off by cargo behind it.
func (t Trailer) LoadFrontFirst() bool {
	return t.ShapeMode == ShapeFrontBonus
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
