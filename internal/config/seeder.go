package config

import (
	"log"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedMasterData seeds the initial locations and the default admin account.
// Safe to run on every startup.
func SeedMasterData(db *gorm.DB) error {
	if err := seedLocations(db); err != nil {
		return err
	}

	if err := seedAdminUser(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedLocations(db *gorm.DB) error {
	locations := []models.Location{
		{
			Name:     "Rajahmundry Ghat",
			Address:  "Pushkar Ghat Road, Rajahmundry, Andhra Pradesh",
			Capacity: 500,
		},
		{
			Name:     "Kovvur Ghat",
			Address:  "Goshpada Ghat, Kovvur, Andhra Pradesh",
			Capacity: 300,
		},
	}

	for _, loc := range locations {
		if err := db.Where(models.Location{Name: loc.Name}).
			FirstOrCreate(&loc).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(getEnv("ADMIN_PASSWORD", "changeme-admin"))
	if err != nil {
		return err
	}

	admin := models.User{
		Name:       "System Admin",
		Email:      getEnv("ADMIN_EMAIL", "admin@godavari-scm.in"),
		Password:   hashed,
		Role:       models.RoleAdmin,
		IsApproved: true,
		IsActive:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin user created [%s]", admin.Email)
	return nil
}
