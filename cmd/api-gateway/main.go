package main

import (
	"fmt"
	"log"
	"net/http/pprof"

	"github.com/gin-gonic/gin"

	internalhandler "github.com/kelaskita/timetable/internal/handler"
	internalmiddleware "github.com/kelaskita/timetable/internal/middleware"
	"github.com/kelaskita/timetable/internal/repository"
	"github.com/kelaskita/timetable/internal/service"
	"github.com/kelaskita/timetable/internal/solver"
	"github.com/kelaskita/timetable/pkg/cache"
	"github.com/kelaskita/timetable/pkg/config"
	"github.com/kelaskita/timetable/pkg/database"
	"github.com/kelaskita/timetable/pkg/logger"
	corsmiddleware "github.com/kelaskita/timetable/pkg/middleware/cors"
	reqidmiddleware "github.com/kelaskita/timetable/pkg/middleware/requestid"
)

// @title Timetable Generator API
// @version 0.1.0
// @description Weekly school timetable constraint solver: CRUD over the
// @description domain inputs, a solve/persist pipeline for the CP-SAT
// @description backed generator, and read-only schedule queries.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)
	if cfg.Env != config.EnvProduction {
		registerPprof(r)
	}

	api := r.Group(cfg.APIPrefix)

	courseRepo := repository.NewCourseRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	subjectGroupRepo := repository.NewSubjectGroupRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	teacherSubjectRepo := repository.NewTeacherSubjectRepository(db)
	teacherPreferenceRepo := repository.NewTeacherPreferenceRepository(db)
	weekConfigRepo := repository.NewWeekConfigRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	scheduleRunRepo := repository.NewScheduleRunRepository(db)
	configurationRepo := repository.NewConfigurationRepository(db)

	courseSvc := service.NewCourseService(courseRepo, nil, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, nil, logr)
	subjectGroupSvc := service.NewSubjectGroupService(subjectGroupRepo, nil, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, nil, logr)
	teacherSubjectSvc := service.NewTeacherSubjectService(teacherRepo, subjectRepo, teacherSubjectRepo, nil, logr)
	teacherPreferenceSvc := service.NewTeacherPreferenceService(teacherRepo, teacherPreferenceRepo, nil, logr)
	weekConfigSvc := service.NewWeekConfigService(weekConfigRepo, nil, logr)

	configurationSvc := service.NewConfigurationService(
		configurationRepo,
		nil,
		logr,
		service.ConfigurationServiceConfig{Defaults: configurationDefaults(cfg)},
	)

	var redisClient interface{ Close() error }
	var cacheRepo service.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("pending-run cache disabled", "error", err)
	} else {
		redisClient = client
		cacheRepo = repository.NewCacheRepository(client, logr)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Configuration.CacheTTL, logr, cacheRepo != nil)

	scheduleWriter := solver.NewWriter(db, timeslotRepo, assignmentRepo, scheduleRunRepo, metricsSvc)
	scheduleGeneratorSvc := service.NewScheduleGeneratorService(
		courseRepo,
		subjectRepo,
		subjectGroupRepo,
		teacherRepo,
		teacherSubjectRepo,
		teacherPreferenceRepo,
		weekConfigRepo,
		configurationSvc,
		scheduleWriter,
		cacheSvc,
		logr,
	)
	scheduleQuerySvc := service.NewScheduleQueryService(timeslotRepo, logr)

	courseHandler := internalhandler.NewCourseHandler(courseSvc)
	subjectHandler := internalhandler.NewSubjectHandler(subjectSvc)
	subjectGroupHandler := internalhandler.NewSubjectGroupHandler(subjectGroupSvc)
	teacherHandler := internalhandler.NewTeacherHandler(teacherSvc, teacherSubjectSvc, teacherPreferenceSvc)
	weekConfigHandler := internalhandler.NewWeekConfigHandler(weekConfigSvc)
	configurationHandler := internalhandler.NewConfigurationHandler(configurationSvc)
	scheduleGeneratorHandler := internalhandler.NewScheduleGeneratorHandler(scheduleGeneratorSvc)
	scheduleHandler := internalhandler.NewScheduleHandler(scheduleQuerySvc)

	coursesGroup := api.Group("/courses")
	coursesGroup.GET("", courseHandler.List)
	coursesGroup.POST("", courseHandler.Create)
	coursesGroup.GET("/:id", courseHandler.Get)
	coursesGroup.PUT("/:id", courseHandler.Update)
	coursesGroup.DELETE("/:id", courseHandler.Delete)
	coursesGroup.GET("/:courseId/groups/:line/schedule", scheduleHandler.ListByGroup)

	subjectsGroup := api.Group("/subjects")
	subjectsGroup.GET("", subjectHandler.List)
	subjectsGroup.POST("", subjectHandler.Create)
	subjectsGroup.GET("/:id", subjectHandler.Get)
	subjectsGroup.PUT("/:id", subjectHandler.Update)
	subjectsGroup.DELETE("/:id", subjectHandler.Delete)

	subjectGroupsGroup := api.Group("/subject-groups")
	subjectGroupsGroup.GET("", subjectGroupHandler.List)
	subjectGroupsGroup.POST("", subjectGroupHandler.Create)
	subjectGroupsGroup.GET("/:id", subjectGroupHandler.Get)
	subjectGroupsGroup.PUT("/:id", subjectGroupHandler.Update)
	subjectGroupsGroup.DELETE("/:id", subjectGroupHandler.Delete)

	teachersGroup := api.Group("/teachers")
	teachersGroup.GET("", teacherHandler.List)
	teachersGroup.POST("", teacherHandler.Create)
	teachersGroup.GET("/:id", teacherHandler.Get)
	teachersGroup.PUT("/:id", teacherHandler.Update)
	teachersGroup.DELETE("/:id", teacherHandler.Delete)
	teachersGroup.GET("/:id/subjects", teacherHandler.ListSubjects)
	teachersGroup.POST("/:id/subjects", teacherHandler.GrantSubject)
	teachersGroup.DELETE("/:id/subjects/:sid", teacherHandler.RevokeSubject)
	teachersGroup.GET("/:id/preferences", teacherHandler.ListPreferences)
	teachersGroup.PUT("/:id/preferences", teacherHandler.UpsertPreferences)
	teachersGroup.DELETE("/:id/preferences", teacherHandler.DeletePreference)
	teachersGroup.GET("/:id/schedule", scheduleHandler.ListByTeacher)

	weekConfigGroup := api.Group("/week-config")
	weekConfigGroup.GET("", weekConfigHandler.Get)
	weekConfigGroup.PUT("", weekConfigHandler.Upsert)

	configGroup := api.Group("/configuration")
	configGroup.GET("", configurationHandler.List)
	configGroup.GET("/:key", configurationHandler.Get)
	configGroup.PUT("/:key", configurationHandler.Update)
	configGroup.PUT("/bulk", configurationHandler.BulkUpdate)

	schedulesGroup := api.Group("/schedules")
	schedulesGroup.GET("", scheduleHandler.List)
	schedulesGroup.POST("/solve", scheduleGeneratorHandler.Solve)
	schedulesGroup.POST("/solve/:runId/persist", scheduleGeneratorHandler.Persist)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func configurationDefaults(cfg *config.Config) map[string]string {
	defaults := map[string]string{}
	if cfg.Configuration.SolverTimeBudget != "" {
		defaults["solver_time_budget_seconds"] = cfg.Configuration.SolverTimeBudget
	}
	if cfg.Configuration.SolverWeightPreferred != "" {
		defaults["solver_weight_preferred"] = cfg.Configuration.SolverWeightPreferred
	}
	if cfg.Configuration.SolverWeightTutor != "" {
		defaults["solver_weight_tutor"] = cfg.Configuration.SolverWeightTutor
	}
	if cfg.Configuration.SolverNodeLimit != "" {
		defaults["solver_node_limit"] = cfg.Configuration.SolverNodeLimit
	}
	if cfg.Configuration.SchoolDisplayName != "" {
		defaults["school_display_name"] = cfg.Configuration.SchoolDisplayName
	}
	return defaults
}

func registerPprof(r *gin.Engine) {
	group := r.Group("/debug/pprof")
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.POST("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
	group.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
	group.GET("/block", gin.WrapH(pprof.Handler("block")))
	group.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	group.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	group.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
	group.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
}
