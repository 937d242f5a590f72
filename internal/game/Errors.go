package game

import (
	"errors"
	"fmt"
)

var (
	ErrMapNotFound      = errors.New("map not found")
	ErrResourceNotFound = errors.New("map resource not found")
	ErrMalformedHeader  = errors.New("malformed map header")
	ErrEmptyMap         = errors.New("map has no grid rows")
	ErrNoPlayerSpawn    = errors.New("map has no player spawn")
	ErrMalformedGrid    = errors.New("malformed map grid")
	ErrSceneNotFound    = errors.New("scene not found")
	ErrDuplicateScene   = errors.New("scene already registered")
)

// MapError ties a map failure to the stage it came from.
type MapError struct {
	Name string
	Err  error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("map %q: %v", e.Name, e.Err)
}

func (e *MapError) Unwrap() error {
	return e.Err
}
