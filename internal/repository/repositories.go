package repository

import (
	"github.com/deppfellow/drinks/internal/server"
)

// Repositories groups every repository the services depend on.
type Repositories struct {
	Drinks DrinkRepository
}

// NewRepositories picks the PostgreSQL store when the server has a
// database pool and falls back to memory otherwise.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB != nil {
		s.Logger.Info().Str("store", "postgres").Msg("using drinks repository")
		return &Repositories{Drinks: NewPostgresDrinkRepository(s.DB.Pool)}
	}

	s.Logger.Warn().Str("store", "memory").Msg("using drinks repository, data is lost on restart")
	return &Repositories{Drinks: NewMemoryDrinkRepository()}
}
