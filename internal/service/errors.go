package service

import (
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
)

// authorize fails with ErrUnauthenticated for an unresolved caller and
// ErrForbidden when the role is insufficient.
func authorize(role, required models.Role) error {
	if role == "" || role == models.RoleNone {
		if required == models.RoleNone {
			return nil
		}
		return ErrUnauthenticated
	}
	if !role.Satisfies(required) {
		return fmt.Errorf("%w: %s role required", ErrForbidden, required)
	}
	return nil
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
