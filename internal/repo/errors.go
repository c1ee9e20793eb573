package repo

import (
	"errors"

	"gorm.io/gorm"
)

// Normalized persistence error kinds. Handlers branch with errors.Is instead
// of matching message text.
var (
	ErrDuplicate       = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
	ErrRelatedNotFound = errors.New("related record not found")
)

// translate maps gorm's translated driver errors onto the tagged kinds.
// Anything else propagates unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrRelatedNotFound
	default:
		return err
	}
}
