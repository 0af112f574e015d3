package handler

import (
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/internal/service"
	"github.com/deppfellow/drinks/static"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Drinks  *DrinkHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.Files),
		Drinks:  NewDrinkHandler(s, services.Drinks),
	}
}
