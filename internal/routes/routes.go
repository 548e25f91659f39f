// Package routes wires repositories, services and handlers onto the app.
package routes

import (
	"skybank/internal/handlers"
	"skybank/internal/middleware"
	"skybank/internal/repositories"
	"skybank/internal/services/auth"
	"skybank/internal/services/ledger"
	"skybank/internal/services/transfer"
	"skybank/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes builds the production wiring on top of the shared database
// and cache handles.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	accountRepo := repositories.NewAccountRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var cache repositories.CacheRepository = repositories.NoopCache{}
	if repositories.CacheService != nil {
		cache = repositories.CacheService
	}

	Wire(app, userRepo, accountRepo, cache)
}

// Wire mounts every route with the given dependencies. Tests call it with
// in-memory repositories.
func Wire(app *fiber.App, userRepo repositories.UserRepository, accountRepo repositories.AccountRepository, cache repositories.CacheRepository) {
	// One guard and one locker, shared by the ledger and the transfer
	// coordinator: account locks must come from a single registry.
	guard := ledger.NewGuard()
	locker := ledger.NewAccountLocker()

	ledgerService := ledger.NewService(accountRepo, cache, guard, locker)
	transferService := transfer.NewService(accountRepo, cache, guard, locker)
	userService := user.NewService(userRepo, accountRepo)
	authService := auth.NewService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(ledgerService)
	transferHandler := handlers.NewTransferHandler(transferService)
	userHandler := handlers.NewUserHandler(userService)

	app.Post("/login", authHandler.Login)

	authed := app.Group("", middleware.Auth)
	authed.Get("/account/:id", accountHandler.GetAccount)
	authed.Post("/account/deposit/:id", accountHandler.Deposit)
	authed.Post("/account/withdraw/:id", accountHandler.Withdraw)
	authed.Post("/transfer", transferHandler.Transfer)
	authed.Post("/user/", userHandler.CreateUser)
	authed.Get("/user/list", userHandler.ListUsers)
	authed.Get("/user/me", userHandler.Me)
}
