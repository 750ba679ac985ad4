package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned for missing rows and for rows owned by someone else.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
