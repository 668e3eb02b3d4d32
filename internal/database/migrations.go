package database

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rosterhq/roster/internal/models"
	"github.com/rosterhq/roster/pkg/crypto"
	"github.com/rosterhq/roster/pkg/logger"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Member{},
		&models.Invitation{},
	)
}

// SeedInput describes the initial administrator created on a fresh database.
type SeedInput struct {
	AdminEmail    string
	AdminPassword string
	TeamName      string
}

// AutoMigrateAndSeed convenience helper used during application start-up.
func AutoMigrateAndSeed(db *gorm.DB, seed SeedInput) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := SeedData(db, seed); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	return nil
}

// SeedData creates the first team with an admin membership so a fresh install
// has a principal capable of inviting. Idempotent: a database that already
// has any user is left untouched.
func SeedData(db *gorm.DB, seed SeedInput) error {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" {
		return nil
	}

	var existing int64
	if err := db.Model(&models.User{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	password := seed.AdminPassword
	if password == "" {
		generated, err := crypto.GenerateToken(18)
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		password = generated
		logger.Warn("generated admin password; change it after first login",
			zap.String("email", email),
			zap.String("password", password))
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Email: email, Password: hashed}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		team := models.Team{}
		if name := strings.TrimSpace(seed.TeamName); name != "" {
			team.Name = &name
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		member := models.Member{
			TeamID: team.ID,
			UserID: user.ID,
			Email:  user.Email,
			Roles:  []models.Role{models.RoleAdmin},
		}
		return tx.Create(&member).Error
	})
}
