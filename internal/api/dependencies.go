package api

import (
	"os"

	"ekklesia/registry/internal/common"
	"ekklesia/registry/internal/db"
	"ekklesia/registry/internal/db/repositories"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/rules"
	"ekklesia/registry/internal/services"
)

type Repositories struct {
	Member     *repositories.MemberRepository
	MemberGorm *repositories.MemberRepositoryGORM
	Keys       repositories.KeysRepo
	Guest      *repositories.GuestAttendanceRepository
	Assignment *repositories.AssignmentRepository
	Branch     *repositories.BranchRepository
}

type Services struct {
	Cache      *common.CacheService
	Session    *common.SessionService
	URLSigner  *common.URLSignerService
	Member     *services.MemberService
	Attendance *services.AttendanceService
	Assignment *services.AssignmentService
	Stats      *services.StatsService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Catalog  *rules.Catalog
	Schedule *rules.Schedule
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Member:     repositories.NewMemberRepository(db.DB),
		MemberGorm: repositories.NewMemberRepositoryGORM(db.PgDB),
		Keys:       *repositories.NewApiKeysRepo(db.DB),
		Guest:      repositories.NewGuestAttendanceRepository(db.DB),
		Assignment: repositories.NewAssignmentRepository(db.PgDB),
		Branch:     repositories.NewBranchRepository(db.PgDB),
	}

	catalog := rules.DefaultCatalog()
	schedule := rules.DefaultSchedule()

	cacheSvc := common.NewCacheService(300, 600)
	redisClient := common.NewRedisClient()
	sessionSvc := common.NewSessionService(redisClient)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	urlSigner := common.NewURLSignerService([]byte(secret), redisClient)

	memberSvc := services.NewMemberService(repos.MemberGorm, repos.Branch, metricsReg)
	attendanceSvc := services.NewAttendanceService(repos.MemberGorm, repos.Member, repos.Guest, repos.Branch, metricsReg)
	assignmentSvc := services.NewAssignmentService(catalog, schedule, repos.Member, repos.MemberGorm, repos.Assignment, metricsReg)
	statsSvc := services.NewStatsService(repos.MemberGorm, cacheSvc, metricsReg)

	svcs := &Services{
		Cache:      cacheSvc,
		Session:    sessionSvc,
		URLSigner:  urlSigner,
		Member:     memberSvc,
		Attendance: attendanceSvc,
		Assignment: assignmentSvc,
		Stats:      statsSvc,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Catalog:  catalog,
		Schedule: schedule,
	}, nil

}
