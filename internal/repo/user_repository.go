package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"abyos-admin/internal/user"
)

// UpdateUserData is a partial update; nil fields are left untouched.
type UpdateUserData struct {
	Name     *string
	Email    *string
	Password *string
	Admin    *bool
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return translate(r.db.Create(u).Error)
}

// FindByID returns nil without error when no user matches.
func (r *UserRepository) FindByID(id uint) (*user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(p ListParams) ([]user.User, error) {
	p = p.clamp()
	tx := r.db.Model(&user.User{})
	if q := strings.TrimSpace(p.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	var users []user.User
	if err := tx.Order("id").Offset(p.Skip).Limit(p.Take).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(id uint, data UpdateUserData) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	if data.Name != nil {
		u.Name = *data.Name
	}
	if data.Email != nil {
		u.Email = *data.Email
	}
	if data.Password != nil {
		u.Password = *data.Password
	}
	if data.Admin != nil {
		u.Admin = *data.Admin
	}
	if err := r.db.Save(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// Delete reports false, not an error, for a missing target.
func (r *UserRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&user.User{}, id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
