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

type ClassService interface {
	Create(ctx context.Context, input dto.CreateClassInput) (*model.Class, error)
	// Get and List scope results to the actor: supervisors only see classes
	// they are associated with, admins see everything.
	Get(ctx context.Context, actor *model.User, id uint) (*model.Class, error)
	List(ctx context.Context, actor *model.User, params dto.ListParams) ([]*model.Class, error)
	Update(ctx context.Context, id uint, input dto.UpdateClassInput) (*model.Class, error)
	Delete(ctx context.Context, id uint) error
	AddUser(ctx context.Context, classID, userID uint, isProfessor bool) (*model.UserClassAssociation, error)
	RemoveUser(ctx context.Context, classID, userID uint) error
}

type classService struct {
	classes repository.ClassRepository
	users   repository.UserRepository
}

func NewClassService(classes repository.ClassRepository, users repository.UserRepository) ClassService {
	return &classService{
		classes: classes,
		users:   users,
	}
}

func (s *classService) Create(ctx context.Context, input dto.CreateClassInput) (*model.Class, error) {
	class := &model.Class{
		Name:            input.Name,
		StudyingProgram: input.StudyingProgram,
		Year:            input.Year,
		Capacity:        30,
		Description:     input.Description,
		IsActive:        true,
	}
	if input.Capacity != nil {
		class.Capacity = *input.Capacity
	}

	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

func (s *classService) Get(ctx context.Context, actor *model.User, id uint) (*model.Class, error) {
	if actor.RoleID == model.RoleSupervisor {
		member, err := s.classes.IsMember(ctx, id, actor.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.NotFound("class not found")
		}
	}

	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}
	return class, nil
}

func (s *classService) List(ctx context.Context, actor *model.User, params dto.ListParams) ([]*model.Class, error) {
	params.Normalize()
	if actor.RoleID == model.RoleSupervisor {
		return s.classes.FindAllForUser(ctx, actor.ID, params.Skip, params.Limit)
	}
	return s.classes.FindAll(ctx, params.Skip, params.Limit)
}

func (s *classService) Update(ctx context.Context, id uint, input dto.UpdateClassInput) (*model.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}

	if input.Name != nil {
		class.Name = *input.Name
	}
	if input.StudyingProgram != nil {
		class.StudyingProgram = *input.StudyingProgram
	}
	if input.Year != nil {
		class.Year = *input.Year
	}
	if input.Capacity != nil {
		class.Capacity = *input.Capacity
	}
	if input.Description != nil {
		class.Description = input.Description
	}
	if input.IsActive != nil {
		class.IsActive = *input.IsActive
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.classes.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("class not found")
		}
		return err
	}
	return s.classes.Delete(ctx, id)
}

func (s *classService) AddUser(ctx context.Context, classID, userID uint, isProfessor bool) (*model.UserClassAssociation, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if _, err := s.classes.FindMember(ctx, classID, userID); err == nil {
		return nil, apperror.Conflict("user is already assigned to this class")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user.RoleID == model.RoleStudent {
		count, err := s.classes.CountMemberships(ctx, userID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperror.Conflict("student is already assigned to a class")
		}
	}

	association := &model.UserClassAssociation{
		UserID:      userID,
		ClassID:     classID,
		IsProfessor: isProfessor,
	}
	if err := s.classes.AddMember(ctx, association); err != nil {
		return nil, err
	}

	return association, nil
}

func (s *classService) RemoveUser(ctx context.Context, classID, userID uint) error {
	if _, err := s.classes.FindMember(ctx, classID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found in class")
		}
		return err
	}
	return s.classes.RemoveMember(ctx, classID, userID)
}
