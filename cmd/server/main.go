package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ekklesia/registry/internal/db"
	"ekklesia/registry/internal/logging"
	gormModels "ekklesia/registry/internal/models/gorm"
	"ekklesia/registry/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Registry starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect with sqlx (roster hot path, check-ins, kiosk keys)
	if err := db.InitSQL(); err != nil {
		logging.Error("Failed to connect to database (sqlx)", "error", err.Error())
		log.Fatalf("failed to connect to database (sqlx): %v", err)
	}
	logging.Info("Connected to database (sqlx)")

	// Connect with GORM (full member records)
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	gdb, err := db.InitORM(dsn)
	if err != nil {
		logging.Error("Failed to connect to database (GORM)", "error", err.Error())
		log.Fatalf("failed to connect to database (GORM): %v", err)
	}
	logging.Info("Connected to database (GORM)")

	// sqlite development mode manages its own schema
	if os.Getenv("DB_DRIVER") == "sqlite" {
		err := gdb.AutoMigrate(
			&gormModels.Branch{},
			&gormModels.Member{},
			&gormModels.RAEpisode{},
			&gormModels.DutyAssignment{},
			&gormModels.GuestAttendance{},
			&gormModels.ApiKey{},
		)
		if err != nil {
			log.Fatalf("failed to migrate sqlite schema: %v", err)
		}
		logging.Info("SQLite schema migrated")
	}

	upSince := time.Now()

	// Initialize router with Chi
	router := routes.RegisterRoutes(upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logging.Info("Server starting",
		"addr", addr,
		"environment", appEnv,
	)

	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
