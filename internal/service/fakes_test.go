package service_test

import (
	"context"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/ml"
	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces so the services can be
// exercised without a database.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) withRole(user *model.User) *model.User {
	clone := *user
	clone.Role = model.Role{ID: clone.RoleID, Name: clone.RoleID.String()}
	return &clone
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withRole(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return r.withRole(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByInstitutionalID(_ context.Context, institutionalID string) (*model.User, error) {
	for _, user := range r.users {
		if user.InstitutionalID != nil && *user.InstitutionalID == institutionalID {
			return r.withRole(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context, skip, limit int) ([]*model.User, error) {
	var users []*model.User
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, r.withRole(user))
		}
	}
	if skip > len(users) {
		skip = len(users)
	}
	users = users[skip:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) FindByID(_ context.Context, id model.RoleID) (*model.Role, error) {
	if !id.Valid() {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Role{ID: id, Name: id.String()}, nil
}

func (fakeRoleRepo) FindAll(_ context.Context) ([]*model.Role, error) {
	return []*model.Role{
		{ID: model.RoleStudent, Name: "student"},
		{ID: model.RoleSupervisor, Name: "supervisor"},
		{ID: model.RoleAdmin, Name: "admin"},
	}, nil
}

type fakeClassRepo struct {
	nextID       uint
	classes      map[uint]*model.Class
	nextAssocID  uint
	associations []*model.UserClassAssociation

	findAllCalls        int
	findAllForUserCalls int
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{nextID: 1, nextAssocID: 1, classes: map[uint]*model.Class{}}
}

func (r *fakeClassRepo) Create(_ context.Context, class *model.Class) error {
	class.ID = r.nextID
	class.CreatedAt = time.Now()
	r.nextID++
	clone := *class
	r.classes[class.ID] = &clone
	return nil
}

func (r *fakeClassRepo) FindByID(_ context.Context, id uint) (*model.Class, error) {
	class, ok := r.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *class
	return &clone, nil
}

func (r *fakeClassRepo) FindAll(_ context.Context, skip, limit int) ([]*model.Class, error) {
	r.findAllCalls++
	var classes []*model.Class
	for id := uint(1); id < r.nextID; id++ {
		if class, ok := r.classes[id]; ok {
			clone := *class
			classes = append(classes, &clone)
		}
	}
	return paginate(classes, skip, limit), nil
}

func (r *fakeClassRepo) FindAllForUser(_ context.Context, userID uint, skip, limit int) ([]*model.Class, error) {
	r.findAllForUserCalls++
	var classes []*model.Class
	for _, assoc := range r.associations {
		if assoc.UserID != userID {
			continue
		}
		if class, ok := r.classes[assoc.ClassID]; ok {
			clone := *class
			classes = append(classes, &clone)
		}
	}
	return paginate(classes, skip, limit), nil
}

func (r *fakeClassRepo) Update(_ context.Context, class *model.Class) error {
	if _, ok := r.classes[class.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *class
	r.classes[class.ID] = &clone
	return nil
}

func (r *fakeClassRepo) Delete(_ context.Context, id uint) error {
	delete(r.classes, id)
	kept := r.associations[:0]
	for _, assoc := range r.associations {
		if assoc.ClassID != id {
			kept = append(kept, assoc)
		}
	}
	r.associations = kept
	return nil
}

func (r *fakeClassRepo) AddMember(_ context.Context, association *model.UserClassAssociation) error {
	association.ID = r.nextAssocID
	association.JoinedAt = time.Now()
	r.nextAssocID++
	clone := *association
	r.associations = append(r.associations, &clone)
	return nil
}

func (r *fakeClassRepo) FindMember(_ context.Context, classID, userID uint) (*model.UserClassAssociation, error) {
	for _, assoc := range r.associations {
		if assoc.ClassID == classID && assoc.UserID == userID {
			clone := *assoc
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClassRepo) RemoveMember(_ context.Context, classID, userID uint) error {
	kept := r.associations[:0]
	for _, assoc := range r.associations {
		if assoc.ClassID != classID || assoc.UserID != userID {
			kept = append(kept, assoc)
		}
	}
	r.associations = kept
	return nil
}

func (r *fakeClassRepo) CountMemberships(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, assoc := range r.associations {
		if assoc.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeClassRepo) IsMember(_ context.Context, classID, userID uint) (bool, error) {
	for _, assoc := range r.associations {
		if assoc.ClassID == classID && assoc.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip > len(items) {
		skip = len(items)
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeExamRepo struct {
	nextID  uint
	exams   map[uint]*model.Exam
	classes *fakeClassRepo

	findAllCalls        int
	findAllForUserCalls int
}

func newFakeExamRepo(classes *fakeClassRepo) *fakeExamRepo {
	return &fakeExamRepo{nextID: 1, exams: map[uint]*model.Exam{}, classes: classes}
}

func (r *fakeExamRepo) Create(_ context.Context, exam *model.Exam) error {
	exam.ID = r.nextID
	exam.CreatedAt = time.Now()
	r.nextID++
	clone := *exam
	r.exams[exam.ID] = &clone
	return nil
}

func (r *fakeExamRepo) FindByID(_ context.Context, id uint) (*model.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *exam
	return &clone, nil
}

func (r *fakeExamRepo) all() []*model.Exam {
	var exams []*model.Exam
	for id := uint(1); id < r.nextID; id++ {
		if exam, ok := r.exams[id]; ok {
			clone := *exam
			exams = append(exams, &clone)
		}
	}
	return exams
}

func (r *fakeExamRepo) FindAll(_ context.Context, skip, limit int) ([]*model.Exam, error) {
	r.findAllCalls++
	return paginate(r.all(), skip, limit), nil
}

func (r *fakeExamRepo) FindAllForUser(ctx context.Context, userID uint, skip, limit int) ([]*model.Exam, error) {
	r.findAllForUserCalls++
	var exams []*model.Exam
	for _, exam := range r.all() {
		member, err := r.classes.IsMember(ctx, exam.ClassID, userID)
		if err != nil {
			return nil, err
		}
		if member {
			exams = append(exams, exam)
		}
	}
	return paginate(exams, skip, limit), nil
}

func (r *fakeExamRepo) FindByClass(_ context.Context, classID uint, skip, limit int) ([]*model.Exam, error) {
	var exams []*model.Exam
	for _, exam := range r.all() {
		if exam.ClassID == classID {
			exams = append(exams, exam)
		}
	}
	return paginate(exams, skip, limit), nil
}

func (r *fakeExamRepo) Update(_ context.Context, exam *model.Exam) error {
	if _, ok := r.exams[exam.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *exam
	r.exams[exam.ID] = &clone
	return nil
}

func (r *fakeExamRepo) Delete(_ context.Context, id uint) error {
	delete(r.exams, id)
	return nil
}

type fakeTokenRepo struct {
	nextID uint
	tokens map[string]*model.PasswordResetToken
	users  *fakeUserRepo
}

func newFakeTokenRepo(users *fakeUserRepo) *fakeTokenRepo {
	return &fakeTokenRepo{nextID: 1, tokens: map[string]*model.PasswordResetToken{}, users: users}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *model.PasswordResetToken) error {
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	r.nextID++
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeTokenRepo) DeleteByUser(_ context.Context, userID uint) error {
	for key, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *fakeTokenRepo) FindValid(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error) {
	stored, ok := r.tokens[token]
	if !ok || stored.IsUsed || stored.ExpiresAt.Before(now) {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *stored
	user, err := r.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	clone.User = *user
	return &clone, nil
}

func (r *fakeTokenRepo) MarkUsed(_ context.Context, token string) error {
	if stored, ok := r.tokens[token]; ok {
		stored.IsUsed = true
	}
	return nil
}

func (r *fakeTokenRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for key, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, key)
			count++
		}
	}
	return count, nil
}

type recordingMailer struct {
	sent []sentMail
}

type sentMail struct {
	email string
	token string
}

func (m *recordingMailer) SendPasswordReset(email, token string) error {
	m.sent = append(m.sent, sentMail{email: email, token: token})
	return nil
}

type fakeModel struct {
	boxes []ml.Box
	err   error
}

func (m *fakeModel) Predict(_ context.Context, _ []byte) ([]ml.Box, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.boxes, nil
}
