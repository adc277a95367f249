package validators

import "errors"

var (
	ErrUnsupportedResource = errors.New("unsupported resource for validation")
	ErrInvalidSnapshot     = errors.New("invalid entity snapshot")
)
