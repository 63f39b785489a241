package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/worklog/api"
	"example.com/worklog/internal/cache"
	"example.com/worklog/internal/database"
	"example.com/worklog/internal/search"
	"example.com/worklog/internal/service"
	"example.com/worklog/models"
	"example.com/worklog/repository"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Run:   runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting server")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if cfg.EnableMigrations {
		if err := db.AutoMigrate(models.All()...); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	// Calendar cache (no-op when redis is disabled)
	calendarCache, err := cache.NewCalendarCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	esClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Elasticsearch")
	}

	hooks := repository.NewHookRunner()
	hooks.Register(cache.NewCalendarInvalidator(calendarCache))
	if esClient != nil {
		hooks.Register(search.NewWorkLogIndexer(esClient, cfg))
	}

	entries := repository.NewWorkLogEntryRepository(db, hooks)
	absences := repository.NewAbsenceRepository(db, hooks)
	approvals := repository.NewMonthlyApprovalRepository(db, hooks)
	tenants := repository.NewTenantRepository(db, hooks)
	orgs := repository.NewOrganizationRepository(db, hooks)
	members := repository.NewMemberRepository(db, hooks)
	patterns := repository.NewMonthlyPeriodPatternRepository(db, hooks)

	worklogSvc := service.NewWorkLogService(entries, absences, approvals, patterns, calendarCache)
	approvalSvc := service.NewApprovalService(approvals, entries, patterns)
	adminSvc := service.NewAdminService(tenants, orgs, members, patterns)

	server := api.NewServer(cfg, worklogSvc, approvalSvc, adminSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return server.Start()
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
