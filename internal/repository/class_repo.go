package repository

import (
	"context"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"gorm.io/gorm"
)

type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	FindByID(ctx context.Context, id uint) (*model.Class, error)
	FindAll(ctx context.Context, skip, limit int) ([]*model.Class, error)
	// FindAllForUser restricts the listing to classes the user is associated
	// with. The join applies before pagination.
	FindAllForUser(ctx context.Context, userID uint, skip, limit int) ([]*model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, association *model.UserClassAssociation) error
	FindMember(ctx context.Context, classID, userID uint) (*model.UserClassAssociation, error)
	RemoveMember(ctx context.Context, classID, userID uint) error
	CountMemberships(ctx context.Context, userID uint) (int64, error)
	IsMember(ctx context.Context, classID, userID uint) (bool, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) FindByID(ctx context.Context, id uint) (*model.Class, error) {
	var class model.Class
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Users.User").
		Preload("Users.User.Role").
		First(&class, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) FindAll(ctx context.Context, skip, limit int) ([]*model.Class, error) {
	var classes []*model.Class
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) FindAllForUser(ctx context.Context, userID uint, skip, limit int) ([]*model.Class, error) {
	var classes []*model.Class
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_class_associations ON user_class_associations.class_id = classes.id").
		Where("user_class_associations.user_id = ?", userID).
		Order("classes.id").
		Offset(skip).
		Limit(limit).
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

// Delete removes the class together with its exams and member associations
// in one transaction.
func (r *classRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&model.Exam{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&model.UserClassAssociation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Class{}, "id = ?", id).Error
	})
}

func (r *classRepository) AddMember(ctx context.Context, association *model.UserClassAssociation) error {
	return r.db.WithContext(ctx).Create(association).Error
}

func (r *classRepository) FindMember(ctx context.Context, classID, userID uint) (*model.UserClassAssociation, error) {
	var association model.UserClassAssociation
	if err := r.db.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		First(&association).Error; err != nil {
		return nil, err
	}
	return &association, nil
}

func (r *classRepository) RemoveMember(ctx context.Context, classID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&model.UserClassAssociation{}).Error
}

func (r *classRepository) CountMemberships(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserClassAssociation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *classRepository) IsMember(ctx context.Context, classID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserClassAssociation{}).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
