package repo

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"abyos-admin/internal/resource"
	"abyos-admin/internal/user"
)

// UpdateResourceData is a partial update; nil fields are left untouched.
type UpdateResourceData struct {
	Name *string
	Meta datatypes.JSON
}

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(res *resource.Resource) error {
	return translate(r.db.Create(res).Error)
}

// FindByID returns nil without error when no resource matches.
func (r *ResourceRepository) FindByID(id uint) (*resource.Resource, error) {
	var res resource.Resource
	err := r.db.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) FindByName(name string) (*resource.Resource, error) {
	var res resource.Resource
	err := r.db.Where("name = ?", name).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) List(p ListParams) ([]resource.Resource, error) {
	p = p.clamp()
	tx := r.db.Model(&resource.Resource{})
	if q := strings.TrimSpace(p.Query); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	var resources []resource.Resource
	if err := tx.Order("id").Offset(p.Skip).Limit(p.Take).Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) Update(id uint, data UpdateResourceData) (*resource.Resource, error) {
	var res resource.Resource
	if err := r.db.First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	if data.Name != nil {
		res.Name = *data.Name
	}
	if data.Meta != nil {
		res.Meta = data.Meta
	}
	if err := r.db.Save(&res).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

// Delete reports false, not an error, for a missing target. Assignment rows
// for the resource go with it.
func (r *ResourceRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&resource.Resource{}, id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := r.db.Where("resource_id = ?", id).Delete(&resource.UserResource{}).Error; err != nil {
		return true, translate(err)
	}
	return true, nil
}

// AssignUser creates the join row. Both sides must exist; the same pair can
// only be assigned once.
func (r *ResourceRepository) AssignUser(resourceID, userID uint) error {
	var count int64
	if err := r.db.Model(&resource.Resource{}).Where("id = ?", resourceID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRelatedNotFound
	}
	if err := r.db.Model(&user.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRelatedNotFound
	}
	join := resource.UserResource{UserID: userID, ResourceID: resourceID}
	return translate(r.db.Create(&join).Error)
}

// UnassignUser reports true iff a join row was removed.
func (r *ResourceRepository) UnassignUser(resourceID, userID uint) (bool, error) {
	res := r.db.Where("resource_id = ? AND user_id = ?", resourceID, userID).
		Delete(&resource.UserResource{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListUsers returns the users assigned to a resource.
func (r *ResourceRepository) ListUsers(resourceID uint) ([]user.User, error) {
	var users []user.User
	err := r.db.
		Joins("JOIN user_resources ON user_resources.user_id = users.id").
		Where("user_resources.resource_id = ?", resourceID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListForUser returns the resources a user is assigned to.
func (r *ResourceRepository) ListForUser(userID uint) ([]resource.Resource, error) {
	var resources []resource.Resource
	err := r.db.
		Joins("JOIN user_resources ON user_resources.resource_id = resources.id").
		Where("user_resources.user_id = ?", userID).
		Order("resources.id").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}
