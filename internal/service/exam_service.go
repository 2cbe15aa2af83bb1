package service

import (
	"context"
	"errors"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/repository"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"gorm.io/gorm"
)

type ExamService interface {
	Create(ctx context.Context, input dto.CreateExamInput) (*model.Exam, error)
	Get(ctx context.Context, actor *model.User, id uint) (*model.Exam, error)
	List(ctx context.Context, actor *model.User, params dto.ListParams) ([]*model.Exam, error)
	ListByClass(ctx context.Context, actor *model.User, classID uint, params dto.ListParams) ([]*model.Exam, error)
	Update(ctx context.Context, id uint, input dto.UpdateExamInput) (*model.Exam, error)
	Delete(ctx context.Context, id uint) error
}

type examService struct {
	exams   repository.ExamRepository
	classes repository.ClassRepository
}

func NewExamService(exams repository.ExamRepository, classes repository.ClassRepository) ExamService {
	return &examService{
		exams:   exams,
		classes: classes,
	}
}

func (s *examService) Create(ctx context.Context, input dto.CreateExamInput) (*model.Exam, error) {
	if _, err := s.classes.FindByID(ctx, input.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}

	status := model.ExamUpcoming
	if input.Status != nil {
		status = *input.Status
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("invalid exam status")
	}

	exam := &model.Exam{
		Name:     input.Name,
		ExamDate: input.ExamDate,
		Status:   status,
		ClassID:  input.ClassID,
	}

	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}

	return exam, nil
}

func (s *examService) Get(ctx context.Context, actor *model.User, id uint) (*model.Exam, error) {
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}

	if actor.RoleID == model.RoleSupervisor {
		member, err := s.classes.IsMember(ctx, exam.ClassID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.NotFound("exam not found")
		}
	}

	return exam, nil
}

func (s *examService) List(ctx context.Context, actor *model.User, params dto.ListParams) ([]*model.Exam, error) {
	params.Normalize()
	if actor.RoleID == model.RoleSupervisor {
		return s.exams.FindAllForUser(ctx, actor.ID, params.Skip, params.Limit)
	}
	return s.exams.FindAll(ctx, params.Skip, params.Limit)
}

func (s *examService) ListByClass(ctx context.Context, actor *model.User, classID uint, params dto.ListParams) ([]*model.Exam, error) {
	params.Normalize()

	if actor.RoleID == model.RoleSupervisor {
		member, err := s.classes.IsMember(ctx, classID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.NotFound("class not found")
		}
	}

	return s.exams.FindByClass(ctx, classID, params.Skip, params.Limit)
}

func (s *examService) Update(ctx context.Context, id uint, input dto.UpdateExamInput) (*model.Exam, error) {
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}

	if input.Name != nil {
		exam.Name = *input.Name
	}
	if input.ExamDate != nil {
		exam.ExamDate = *input.ExamDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.BadRequest("invalid exam status")
		}
		exam.Status = *input.Status
	}
	// Fraud fields are opaque payloads written by the external analysis
	// workflow; they pass through unvalidated.
	if input.FraudStatus != nil {
		exam.FraudStatus = input.FraudStatus
	}
	if input.FraudEvidence != nil {
		exam.FraudEvidence = input.FraudEvidence
	}

	if err := s.exams.Update(ctx, exam); err != nil {
		return nil, err
	}

	return exam, nil
}

func (s *examService) Delete(ctx context.Context, id uint) error {
	if _, err := s.exams.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("exam not found")
		}
		return err
	}
	return s.exams.Delete(ctx, id)
}
