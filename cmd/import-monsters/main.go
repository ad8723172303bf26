// Command import-monsters populates the official monster catalog from
// the D&D 5e API. It is safe to re-run: existing monsters are updated
// in place.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"lorekeep/internal/importer"
	"lorekeep/internal/logging"
	"lorekeep/internal/store/sqlstore"
)

func main() {
	var (
		baseURL  = flag.String("base-url", importer.DefaultBaseURL, "5e API base URL")
		dbDriver = flag.String("db-driver", "sqlite3", "database driver (sqlite3 or postgres)")
		dbConn   = flag.String("db-conn", "./lorekeep.db", "database connection string")
		pause    = flag.Duration("pause", 100*time.Millisecond, "delay between detail fetches")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logging.New(*logLevel, "console")

	st, err := sqlstore.New(*dbDriver, *dbConn)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", *dbDriver).Msg("failed to initialize database")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	imp := importer.Importer{
		Store:   st,
		Log:     logger,
		BaseURL: *baseURL,
		Pause:   *pause,
	}
	summary, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).
			Int("imported", summary.Imported).
			Int("updated", summary.Updated).
			Msg("import aborted")
	}
}
