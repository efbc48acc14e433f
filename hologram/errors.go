package hologram

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("hologram: invalid argument")
	ErrIndexOutOfRange = errors.New("hologram: index out of range")
	ErrLineNotFound    = fmt.Errorf("%w: line is not part of this hologram", ErrInvalidArgument)
)
