// Command migrate applies, rolls back or inspects the MongoDB index migrations.
//
//	migrate -command up
//	migrate -command down
//	migrate -command force -version 1
//	migrate -command version
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"marina-server/pkg/migration"
	"marina-server/shared/database"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	initLogger()

	command := flag.String("command", "up", "Migration command: up, down, force, version")
	version := flag.Uint("version", 0, "Target version for the force command")
	mongoURI := flag.String("uri", os.Getenv("MONGODB_URI"), "MongoDB connection string")
	dbName := flag.String("db", envOr("MONGODB_DATABASE", "port_russell"), "Database name")
	flag.Parse()

	if *mongoURI == "" {
		log.Fatal().Msg("MongoDB URI is required (-uri or MONGODB_URI)")
	}

	migrator := migration.NewMigrator(migration.Config{
		MongoURI:       *mongoURI,
		DatabaseName:   *dbName,
		MigrationsPath: database.MigrationsPath,
		MigrationsFS:   database.MigrationsFS,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch *command {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx)
	case "force":
		err = migrator.ForceVersion(ctx, *version)
	case "version":
		var (
			current uint
			dirty   bool
		)
		current, dirty, err = migrator.Version(ctx)
		if err == nil {
			log.Info().Uint("version", current).Bool("dirty", dirty).Msg("current migration version")
		}
	default:
		log.Fatal().Str("command", *command).Msg("unknown migration command")
	}
	if err != nil {
		cancel()
		log.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
}

// initLogger configures the global zerolog logger.
func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Logger()

	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()
	}

	logLevel := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logLevel = lvl
	}
	zerolog.SetGlobalLevel(logLevel)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
