package main

import (
	"log/slog"
	"os"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/internal/handlers"
	"github.com/iamram3sh/2ndshift-sub002/internal/routes"
	"github.com/iamram3sh/2ndshift-sub002/models"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	config.InitJWT()
	config.ConnectDB()
	config.ConnectRedis()
	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Gemini integration disabled", "error", err)
	}

	if err := migrate(); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	seedRolesAndPermissions()
	seedShiftPackages()

	go handlers.GlobalHub.Run()

	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func migrate() error {
	return config.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Project{},
		&models.Bid{},
		&models.Contract{},
		&models.Escrow{},
		&models.PaymentRelease{},
		&models.Review{},
		&models.TrustScore{},
		&models.ShiftWallet{},
		&models.ShiftTransaction{},
		&models.ShiftPackage{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.ChatMessage{},
	)
}

// seedRolesAndPermissions makes sure the built-in roles and the permissions
// the routes gate on exist. Idempotent; existing rows are left alone.
func seedRolesAndPermissions() {
	permissions := []models.Permission{
		{Name: "projects_create", Description: "Post new projects", Category: "Marketplace"},
		{Name: "bids_place", Description: "Bid on open projects", Category: "Marketplace"},
		{Name: "users_manage", Description: "Administer user accounts", Category: "Administration"},
		{Name: "roles_manage", Description: "Administer roles and permissions", Category: "Administration"},
		{Name: "escrow_view_all", Description: "View and export every escrow", Category: "Finance"},
		{Name: "payments_view_all", Description: "View and export every payment", Category: "Finance"},
		{Name: "disputes_manage", Description: "Review and resolve disputes", Category: "Support"},
	}
	for i := range permissions {
		config.DB.Where(models.Permission{Name: permissions[i].Name}).FirstOrCreate(&permissions[i])
	}

	byName := func(names ...string) []models.Permission {
		var out []models.Permission
		config.DB.Where("name IN ?", names).Find(&out)
		return out
	}

	roles := []struct {
		name, description string
		permissions       []models.Permission
	}{
		{"admin", "Platform staff with full access", permissions},
		{"client", "Hires professionals and funds escrows", byName("projects_create")},
		{"worker", "Bids on projects and delivers work", byName("bids_place")},
	}
	for _, r := range roles {
		var role models.Role
		config.DB.Where(models.Role{Name: r.name}).
			Attrs(models.Role{Description: r.description}).
			FirstOrCreate(&role)
		if len(r.permissions) > 0 {
			config.DB.Model(&role).Association("Permissions").Replace(r.permissions)
		}
	}

	slog.Info("Roles and permissions seeded")
}

func seedShiftPackages() {
	var count int64
	config.DB.Model(&models.ShiftPackage{}).Count(&count)
	if count > 0 {
		return
	}

	packages := []models.ShiftPackage{
		{Name: "Starter", Shifts: 10, Price: 99, Active: true},
		{Name: "Regular", Shifts: 25, Price: 199, BonusFormula: "shifts >= 20 ? 5 : 0", Active: true},
		{Name: "Pro", Shifts: 60, Price: 399, BonusFormula: "shifts / 4", Active: true},
	}
	for i := range packages {
		config.DB.Create(&packages[i])
	}

	slog.Info("Shift packages seeded", "count", len(packages))
}
