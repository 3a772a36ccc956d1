package router

import (
	authapp "github.com/docuchat/auth-service/internal/application"
	"github.com/docuchat/auth-service/internal/container"
	mongoinfra "github.com/docuchat/auth-service/internal/infrastructure/mongodb"
	handlers "github.com/docuchat/auth-service/internal/interface/http"
	"github.com/docuchat/auth-service/internal/router/modules"
)

// InitModules initializes all application modules and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry) {
	repo := mongoinfra.NewUserRepository(container.GetMongoDB())
	svc := authapp.NewService(repo, container.GetJWT(), container.GetLogger())

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger())
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
}
