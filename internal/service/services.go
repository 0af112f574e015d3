package service

import (
	"github.com/deppfellow/drinks/internal/lib/job"
	"github.com/deppfellow/drinks/internal/repository"
	"github.com/deppfellow/drinks/internal/server"
)

// Services groups the business services the handlers call.
type Services struct {
	Drinks *DrinkService
	Job    *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Drinks: NewDrinkService(repos.Drinks, s.Logger, s.Metrics, notifier).
			WithCaseInsensitiveLetters(s.Config.CaseInsensitiveLetters()),
		Job:    s.Job,
	}, nil
}
