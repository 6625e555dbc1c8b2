package poster

import "errors"

var (
	ErrInvalidRange     = errors.New("invalid range")
	ErrUngriddable      = errors.New("unable to compute grid")
	ErrNoTracks         = errors.New("no tracks to draw")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidColor     = errors.New("invalid color")
)
