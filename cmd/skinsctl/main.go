// Command skinsctl prints the skins board of a round. The round comes from a
// running server, from a snapshot file evaluated locally, or from a snapshot
// file imported into the server database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/pterm/pterm"

	"github.com/mmynk/skinsgame/internal/config"
	"github.com/mmynk/skinsgame/internal/service"
	"github.com/mmynk/skinsgame/internal/skins"
	"github.com/mmynk/skinsgame/internal/storage/sqlstore"
	"github.com/mmynk/skinsgame/pkg/skinsrpc"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	token := flag.String("token", os.Getenv("SKINS_TOKEN"), "session token (default $SKINS_TOKEN)")
	roundID := flag.String("round", "", "round ID")
	snapshotPath := flag.String("snapshot", "", "evaluate a round snapshot file instead of calling the server")
	userID := flag.Int64("user", 0, "user ID to evaluate the snapshot as")
	importPath := flag.String("import", "", "write a round snapshot file into the server database")
	dbURL := flag.String("db", config.DefaultDatabaseURL, "database URL or SQLite path for -import")
	dbType := flag.String("db-type", config.DefaultDatabaseType, "database type for -import (sqlite or postgres)")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	if *debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		resp *skinsrpc.CalculateSkinsResponse
		err  error
	)
	switch {
	case *importPath != "":
		resp, err = importFile(ctx, *dbType, *dbURL, *importPath)
	case *snapshotPath != "":
		resp, err = evaluateSnapshot(ctx, *snapshotPath, *userID)
	default:
		resp, err = fetchRemote(ctx, *addr, *token, *roundID)
	}
	if err != nil {
		logger.Error("Could not compute skins", "error", err)
		os.Exit(1)
	}

	if err := renderBoard(resp); err != nil {
		logger.Error("Failed to render board", "error", err)
		os.Exit(1)
	}
}

func fetchRemote(ctx context.Context, addr, token, roundID string) (*skinsrpc.CalculateSkinsResponse, error) {
	if roundID == "" {
		return nil, fmt.Errorf("-round is required")
	}
	client := skinsrpc.NewSkinsServiceClient(http.DefaultClient, addr,
		connect.WithInterceptors(skinsrpc.BearerToken(token)))

	slog.Debug("Calling server", "addr", addr, "round_id", roundID)
	resp, err := client.CalculateSkins(ctx, connect.NewRequest(&skinsrpc.CalculateSkinsRequest{RoundID: roundID}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// importFile stores a snapshot and reads the round back through the store as
// its creator.
func importFile(ctx context.Context, dbType, dsn, path string) (*skinsrpc.CalculateSkinsResponse, error) {
	src, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.Open(dbType, dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	round, err := importSnapshot(ctx, store, src)
	if err != nil {
		return nil, err
	}
	pterm.Success.Printfln("Imported round %s", round.ID)

	result, err := skins.NewCalculator(store).Calculate(ctx, round.ID, round.CreatedByID)
	if err != nil {
		return nil, err
	}
	return service.NewCalculateSkinsResponse(result), nil
}

func openSnapshot(path string) (*skins.MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSnapshot(f)
}

func evaluateSnapshot(ctx context.Context, path string, userID int64) (*skinsrpc.CalculateSkinsResponse, error) {
	src, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		userID = src.Round.CreatedByID
	}

	slog.Debug("Evaluating snapshot", "path", path, "round_id", src.Round.ID, "user_id", userID)
	result, err := skins.NewCalculator(src).Calculate(ctx, src.Round.ID, userID)
	if err != nil {
		return nil, err
	}
	return service.NewCalculateSkinsResponse(result), nil
}
