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

type UserService interface {
	Create(ctx context.Context, input dto.CreateUserInput) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, params dto.ListParams) ([]*model.User, error)
	Update(ctx context.Context, id uint, input dto.UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	AssignClass(ctx context.Context, userID uint, input dto.AssignClassInput) (*model.UserClassAssociation, error)
	RemoveClass(ctx context.Context, userID, classID uint) error
	BulkAssign(ctx context.Context, input dto.BulkAssignInput) (*dto.BulkAssignResult, error)
}

type userService struct {
	users   repository.UserRepository
	roles   repository.RoleRepository
	classes repository.ClassRepository
}

func NewUserService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	classes repository.ClassRepository,
) UserService {
	return &userService{
		users:   users,
		roles:   roles,
		classes: classes,
	}
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserInput) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.InstitutionalID != nil && *input.InstitutionalID != "" {
		if _, err := s.users.FindByInstitutionalID(ctx, *input.InstitutionalID); err == nil {
			return nil, apperror.Conflict("institutional id already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	roleID := model.RoleStudent
	if input.RoleID != nil {
		roleID = *input.RoleID
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.BadRequest("role does not exist")
		}
		return nil, err
	}

	// Only students may be created without a credential.
	var passwordHash *string
	if input.Password != nil && *input.Password != "" {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	} else if roleID != model.RoleStudent {
		return nil, apperror.BadRequest("a password is required for non-student accounts")
	}

	user := &model.User{
		Email:           input.Email,
		PasswordHash:    passwordHash,
		FullName:        input.FullName,
		InstitutionalID: normalizeOptional(input.InstitutionalID),
		IsActive:        true,
		RoleID:          roleID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, user.ID)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params dto.ListParams) ([]*model.User, error) {
	params.Normalize()
	return s.users.FindAll(ctx, params.Skip, params.Limit)
}

func (s *userService) Update(ctx context.Context, id uint, input dto.UpdateUserInput) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperror.Conflict("email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.InstitutionalID != nil {
		user.InstitutionalID = normalizeOptional(input.InstitutionalID)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if input.RoleID != nil {
		if _, err := s.roles.FindByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("role does not exist")
			}
			return nil, err
		}
		user.RoleID = *input.RoleID
	}

	// An empty or absent password leaves the stored hash untouched.
	if input.Password != nil && *input.Password != "" {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) AssignClass(ctx context.Context, userID uint, input dto.AssignClassInput) (*model.UserClassAssociation, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.classes.FindByID(ctx, input.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}

	if err := s.checkAssignable(ctx, user, input.ClassID); err != nil {
		return nil, err
	}

	association := &model.UserClassAssociation{
		UserID:      userID,
		ClassID:     input.ClassID,
		IsProfessor: input.IsProfessor,
	}

	if err := s.classes.AddMember(ctx, association); err != nil {
		return nil, err
	}

	return association, nil
}

// checkAssignable enforces the membership rules: no duplicate (user, class)
// pair, and a student belongs to at most one class. Supervisors may hold any
// number of associations.
func (s *userService) checkAssignable(ctx context.Context, user *model.User, classID uint) error {
	if _, err := s.classes.FindMember(ctx, classID, user.ID); err == nil {
		return apperror.Conflict("user is already assigned to this class")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.RoleID == model.RoleStudent {
		count, err := s.classes.CountMemberships(ctx, user.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("student is already assigned to a class")
		}
	}

	return nil
}

func (s *userService) RemoveClass(ctx context.Context, userID, classID uint) error {
	if _, err := s.classes.FindMember(ctx, classID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user is not assigned to this class")
		}
		return err
	}
	return s.classes.RemoveMember(ctx, classID, userID)
}

// BulkAssign is best-effort: not-found users, already-assigned students
// and duplicate pairs are skipped without aborting the batch.
func (s *userService) BulkAssign(ctx context.Context, input dto.BulkAssignInput) (*dto.BulkAssignResult, error) {
	if _, err := s.classes.FindByID(ctx, input.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("class not found")
		}
		return nil, err
	}

	result := &dto.BulkAssignResult{}
	for _, userID := range input.UserIDs {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		if err := s.checkAssignable(ctx, user, input.ClassID); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		association := &model.UserClassAssociation{
			UserID:  userID,
			ClassID: input.ClassID,
		}
		if err := s.classes.AddMember(ctx, association); err != nil {
			return nil, err
		}
		result.Assigned++
	}

	return result, nil
}

func normalizeOptional(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
