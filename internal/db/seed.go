package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// SeedStaff creates the staff account once. An existing user with that
// email is promoted to staff and keeps its password.
func SeedStaff(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role == models.RoleStaff {
			return nil
		}
		return db.Model(&user).Update("role", models.RoleStaff).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:         "Clinic staff",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleStaff,
	}).Error
}
