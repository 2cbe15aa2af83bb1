package repository

import (
	"context"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	FindAll(ctx context.Context, skip, limit int) ([]*model.Exam, error)
	// FindAllForUser restricts the listing to exams of classes the user is
	// associated with. The join applies before pagination.
	FindAllForUser(ctx context.Context, userID uint, skip, limit int) ([]*model.Exam, error)
	FindByClass(ctx context.Context, classID uint, skip, limit int) ([]*model.Exam, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).First(&exam, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAll(ctx context.Context, skip, limit int) ([]*model.Exam, error) {
	var exams []*model.Exam
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindAllForUser(ctx context.Context, userID uint, skip, limit int) ([]*model.Exam, error) {
	var exams []*model.Exam
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_class_associations ON user_class_associations.class_id = exams.class_id").
		Where("user_class_associations.user_id = ?", userID).
		Order("exams.id").
		Offset(skip).
		Limit(limit).
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindByClass(ctx context.Context, classID uint, skip, limit int) ([]*model.Exam, error) {
	var exams []*model.Exam
	if err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Exam{}, "id = ?", id).Error
}
