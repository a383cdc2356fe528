package api

import (
	"database/sql"

	"github.com/lbraga/millionaire/internal/jobs"
	"github.com/lbraga/millionaire/internal/services"
)

// Server bundles the HTTP dependencies. Handlers talk to services only;
// the DB handle is kept for the readiness probe.
type Server struct {
	GameService     services.GameService
	PlayerService   services.PlayerService
	QuestionService services.QuestionService
	StatsService    services.StatsService
	JobQueue        jobs.JobQueue
	DB              *sql.DB
}
