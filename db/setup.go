package db

import (
	"errors"
	"os"

	"github.com/sigma-matching/sigma/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

const DefaultAdminEmail = "admin@sigmamatching.com"

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Lead{},
		&models.BienPropose{},
		&models.HistoriqueAction{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// EnsureDefaultAdmin seeds the bootstrap admin account on first startup.
func EnsureDefaultAdmin() error {
	var admin models.User

	err := DB.Where("email = ?", DefaultAdminEmail).First(&admin).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")

	if password == "" {
		password = "admin123"
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	admin = models.User{
		Email:        DefaultAdminEmail,
		PasswordHash: string(passwordHash),
		FirstName:    "Admin",
		LastName:     "Sigma",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	return DB.Create(&admin).Error
}
