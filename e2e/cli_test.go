package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "gamehorizon-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gamehorizon")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes the CLI with JSON output and returns stdout and stderr separately
func (r *cliRunner) run(args ...string) (string, string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real record store backed by a JSON document
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T, dbPath string) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{
		Logger:      logger,
		StorageType: factory.StorageTypeJSONFile,
		StoragePath: dbPath,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		CollectionService: app.CollectionService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Platforms   []string `json:"platforms"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Completed   bool     `json:"completed"`
	Multiplayer bool     `json:"multiplayer"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), "output: %s", out)
	return v
}

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
}

func TestCLI_Health(t *testing.T) {
	skipIfShort(t)

	server := startTestServer(t, filepath.Join(t.TempDir(), "db.json"))
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	out, _, err := cli.run("health")
	require.NoError(t, err)
	assert.Equal(t, "ok", decode[healthResponse](t, out).Status)
}

func TestCLI_GameLifecycle(t *testing.T) {
	skipIfShort(t)

	server := startTestServer(t, filepath.Join(t.TempDir(), "db.json"))
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	out, _, err := cli.run("games", "list")
	require.NoError(t, err)
	assert.Empty(t, decode[[]gameResponse](t, out))

	out, _, err = cli.run("games", "add",
		"--title", "Hades",
		"--genre", "RPG",
		"--platform", "PC",
		"--year", "2020",
		"--rating", "4.5",
		"--completed")
	require.NoError(t, err)
	created := decode[gameResponse](t, out)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Hades", created.Title)
	assert.Equal(t, []string{"PC"}, created.Platforms)
	assert.True(t, created.Completed)
	assert.False(t, created.Multiplayer)

	out, _, err = cli.run("games", "update", "1", "--rating", "3.5", "--multiplayer")
	require.NoError(t, err)
	updated := decode[gameResponse](t, out)
	assert.Equal(t, "Hades", updated.Title)
	assert.Equal(t, 3.5, updated.Rating)
	assert.True(t, updated.Multiplayer)
	assert.True(t, updated.Completed)

	out, _, err = cli.run("games", "get", "1")
	require.NoError(t, err)
	assert.Equal(t, updated, decode[gameResponse](t, out))

	out, _, err = cli.run("games", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, decode[messageResponse](t, out).Message, "Deleted game 1")

	out, _, err = cli.run("games", "list")
	require.NoError(t, err)
	assert.Empty(t, decode[[]gameResponse](t, out))
}

func TestCLI_AddRejectsInvalidGame(t *testing.T) {
	skipIfShort(t)

	server := startTestServer(t, filepath.Join(t.TempDir(), "db.json"))
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	_, stderr, err := cli.run("games", "add", "--title", "   ")
	require.Error(t, err)
	assert.Contains(t, stderr, "Title is required")

	out, _, err := cli.run("games", "list")
	require.NoError(t, err)
	assert.Empty(t, decode[[]gameResponse](t, out))
}

func TestCLI_DeleteMissingGame(t *testing.T) {
	skipIfShort(t)

	server := startTestServer(t, filepath.Join(t.TempDir(), "db.json"))
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	_, stderr, err := cli.run("games", "delete", "42")
	require.Error(t, err)
	assert.Contains(t, stderr, "game 42 not found")
}

func TestCLI_SeedSurvivesRestart(t *testing.T) {
	skipIfShort(t)

	dbPath := filepath.Join(t.TempDir(), "db.json")
	server := startTestServer(t, dbPath)
	cli := newCLIRunner(t, server.addr)

	out, _, err := cli.run("seed")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 8 games", decode[messageResponse](t, out).Message)

	out, _, err = cli.run("seed")
	require.NoError(t, err)
	assert.Contains(t, decode[messageResponse](t, out).Message, "nothing seeded")

	server.shutdown()

	// The document on disk holds the whole collection
	data, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	var doc struct {
		Games []gameResponse `json:"games"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Games, 8)

	restarted := startTestServer(t, dbPath)
	defer restarted.shutdown()
	cli.serverURL = restarted.addr

	out, _, err = cli.run("games", "list")
	require.NoError(t, err)
	games := decode[[]gameResponse](t, out)
	require.Len(t, games, 8)
	assert.Equal(t, "The Legend of Zelda: Breath of the Wild", games[0].Title)

	// Ids continue after the largest stored id
	out, _, err = cli.run("games", "add", "--title", "Tetris", "--genre", "Puzzle", "--platform", "Mobile")
	require.NoError(t, err)
	assert.Equal(t, int64(9), decode[gameResponse](t, out).ID)
}
