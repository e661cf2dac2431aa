package domain

import "github.com/DRSN-tech/match-backend/pkg/e"

// EntityType — сторона матчинга, владеющая профилем и эмбеддингом.
type EntityType string

const (
	EntitySeeker   EntityType = "Seeker"
	EntityPosition EntityType = "Position"
)

// ParseEntityType валидирует строковое значение типа сущности.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntitySeeker:
		return EntitySeeker, nil
	case EntityPosition:
		return EntityPosition, nil
	default:
		return "", e.Wrap(s, e.ErrUnknownEntityType)
	}
}

// Counterpart возвращает противоположную сторону матчинга.
func (t EntityType) Counterpart() EntityType {
	if t == EntitySeeker {
		return EntityPosition
	}
	return EntitySeeker
}
