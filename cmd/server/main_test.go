package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/skinsgame/internal/auth"
	"github.com/mmynk/skinsgame/internal/models"
	"github.com/mmynk/skinsgame/internal/storage/sqlstore"
	"github.com/mmynk/skinsgame/pkg/skinsrpc"
)

func TestMuxRoutes(t *testing.T) {
	store, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(newMux(store, auth.NewPasswordAuthenticator(store), jwtManager, logger))
	defer server.Close()

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/skins.v1.SkinsService/Unknown", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}
		})
	}
}

func TestRPCLogsAuthenticatedUser(t *testing.T) {
	store, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	server := httptest.NewServer(newMux(store, auth.NewPasswordAuthenticator(store), jwtManager, logger))
	defer server.Close()

	token, err := jwtManager.Generate(&models.User{ID: 42, Email: "ace@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	client := skinsrpc.NewSkinsServiceClient(http.DefaultClient, server.URL,
		connect.WithInterceptors(skinsrpc.BearerToken(token)))

	_, err = client.CalculateSkins(context.Background(), connect.NewRequest(&skinsrpc.CalculateSkinsRequest{
		RoundID: "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
	}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("code = %v, want not_found", connect.CodeOf(err))
	}

	out := logs.String()
	if !strings.Contains(out, "procedure=/skins.v1.SkinsService/CalculateSkins") {
		t.Fatalf("no RPC log line in %q", out)
	}
	if !strings.Contains(out, "user_id=42") {
		t.Errorf("expected user_id=42 in RPC log, got %q", out)
	}
}
