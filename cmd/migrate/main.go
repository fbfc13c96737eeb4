package main

import (
	"database/sql"

	"shopfloor/cmd"
	"shopfloor/internal/pkg/logger"

	"github.com/alecthomas/kong"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

var cli struct {
	Dir     string   `help:"Directory with migration files." default:"./migrations" type:"path"`
	Command string   `arg:"" optional:"" default:"up" help:"goose command: up, down, status, redo, version..."`
	Args    []string `arg:"" optional:"" help:"Extra arguments for the command."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Applies the shopfloor database migrations."),
	)

	cfg, err := cmd.LoadConfig()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("goose: failed to open DB")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("goose: failed to close DB")
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("goose: dialect")
	}

	if err := goose.Run(cli.Command, db, cli.Dir, cli.Args...); err != nil {
		log.Fatal().Err(err).Str("command", cli.Command).Msg("goose failed")
	}
	log.Info().Str("command", cli.Command).Msg("goose success")
}
