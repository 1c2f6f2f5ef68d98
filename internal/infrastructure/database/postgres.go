package database

import (
	"fmt"
	"log"

	"github.com/bpims/pos-api/internal/config"
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Store entities
		&entity.Branch{},
		&entity.User{},

		// Catalog entities
		&entity.Item{},
		&entity.BranchItem{},

		// Cart entities
		&entity.Cart{},
		&entity.CartItem{},

		// Sale entities
		&entity.Transaction{},
		&entity.TransactionItem{},

		// Loyalty entities
		&entity.Customer{},
		&entity.ItemReward{},
		&entity.LoyaltyStage{},
		&entity.LoyaltyCustomer{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a first branch, default users
// and the loyalty ladder
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Main branch
	var branch entity.Branch
	if err := db.First(&branch, "code = ?", 1).Error; err != nil {
		branch = entity.Branch{Code: 1, Name: "Main Branch"}
		if err := db.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to seed branch: %w", err)
		}
	}

	// Headquarters user
	if err := seedUser(db, "HQ Admin", "hq@bpims.local", "hqadmin123", entity.RoleHQ, nil); err != nil {
		return err
	}

	// Default cashier for the main branch
	if err := seedUser(db, "Cashier One", "cashier@bpims.local", "cashier123", entity.RoleCashier, &branch.ID); err != nil {
		return err
	}

	// Loyalty rewards: code 1 is the physical item reward by convention
	rewards := []entity.ItemReward{
		{Code: 1, Name: "Free Item"},
		{Code: 2, Name: "Discount Voucher"},
	}
	for i := range rewards {
		var existing entity.ItemReward
		if err := db.First(&existing, "code = ?", rewards[i].Code).Error; err != nil {
			if err := db.Create(&rewards[i]).Error; err != nil {
				log.Printf("Warning: failed to create reward %s: %v", rewards[i].Name, err)
			}
		} else {
			rewards[i] = existing
		}
	}

	// Loyalty ladder: reward at stages 3 and 5
	stageRewards := map[int]*uuid.UUID{
		3: &rewards[1].ID,
		5: &rewards[0].ID,
	}
	for order := 1; order <= 5; order++ {
		var existing entity.LoyaltyStage
		if err := db.First(&existing, "stage_order = ?", order).Error; err != nil {
			stage := entity.LoyaltyStage{StageOrder: order, ItemRewardID: stageRewards[order]}
			if err := db.Create(&stage).Error; err != nil {
				log.Printf("Warning: failed to create loyalty stage %d: %v", order, err)
			}
		}
	}

	log.Println("Default data seeded successfully")
	return nil
}

func seedUser(db *gorm.DB, name, email, password, role string, branchID *uuid.UUID) error {
	var existing entity.User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", email, err)
	}

	user := entity.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		BranchID: branchID,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return nil
}
