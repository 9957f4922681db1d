// Command api runs the stub dashboard backend: the REST API the dashboard consumes,
// served from in-memory fixture data, plus the /dashboard shell page.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/trezcool/masomo-dashboard/apps/api/echo"
	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/user"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
	inmemdb "github.com/trezcool/masomo-dashboard/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up DB
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening in-memory database: %v", err), err)
	}
	schoolID := conf.API.SchoolID
	if schoolID == "" {
		schoolID = "demo"
	}
	if err = inmemdb.Seed(db, schoolID, time.Now()); err != nil {
		logger.Fatal(fmt.Sprintf("seeding fixtures: %v", err), err)
	}

	// set up services
	recorder := audit.NewRecorder(inmemdb.NewAuditRepository(db))
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))
	evtSvc := event.NewService(inmemdb.NewEventRepository(db), recorder, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	logger.Info(fmt.Sprintf("Fixture school %q, users %q and %q", schoolID, inmemdb.FixtureAdminUsername, inmemdb.FixtureTeacherUsername))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		EventSvc:      evtSvc,
		SchoolRepo:    inmemdb.NewSchoolRepository(db),
		AnalyticsRepo: inmemdb.NewAnalyticsRepository(db),
		Audit:         recorder,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
	logger.Wait()
}
