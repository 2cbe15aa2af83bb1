package bootstrap

import (
	"log"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Class{},
		&model.UserClassAssociation{},
		&model.Exam{},
		&model.PasswordResetToken{},
	)
}

// SeedRoles inserts the three authorization tiers with their fixed ids.
// Business logic references these ids through the RoleID constants.
func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{ID: model.RoleStudent, Name: "student"},
		{ID: model.RoleSupervisor, Name: "supervisor"},
		{ID: model.RoleAdmin, Name: "admin"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("id = ?", role.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates a development admin account when none exists.
func SeedAdminUser(db *gorm.DB) error {
	email := "admin@example.com"

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashBytes)

	admin := model.User{
		Email:        email,
		PasswordHash: &hash,
		FullName:     "Administrator",
		IsActive:     true,
		RoleID:       model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded")
	log.Printf("   Email: %s", email)
	log.Println("   Password: admin123")

	return nil
}
