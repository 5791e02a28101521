package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/skinsgame/internal/auth"
	"github.com/mmynk/skinsgame/internal/middleware"
	"github.com/mmynk/skinsgame/internal/models"
	"github.com/mmynk/skinsgame/internal/storage/sqlstore"
	"github.com/mmynk/skinsgame/pkg/skinsrpc"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	url   string
	store *sqlstore.Store
	jwt   *auth.JWTManager
}

// setupTestServer starts both services over a temp SQLite database, wired the
// way cmd/server wires them.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		middleware.RequireAuth(jwtManager,
			skinsrpc.AuthServiceRegisterProcedure,
			skinsrpc.AuthServiceLoginProcedure,
		),
	)

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, logger)
	authPath, authHandler := skinsrpc.NewAuthServiceHandler(authSvc, interceptors)
	skinsPath, skinsHandler := skinsrpc.NewSkinsServiceHandler(NewSkinsService(store), interceptors)

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(skinsPath, skinsHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{url: server.URL, store: store, jwt: jwtManager}
}

func (ts *testServer) skinsClient(token string) *skinsrpc.SkinsServiceClient {
	return skinsrpc.NewSkinsServiceClient(http.DefaultClient, ts.url,
		connect.WithInterceptors(skinsrpc.BearerToken(token)))
}

func (ts *testServer) authClient(token string) *skinsrpc.AuthServiceClient {
	return skinsrpc.NewAuthServiceClient(http.DefaultClient, ts.url,
		connect.WithInterceptors(skinsrpc.BearerToken(token)))
}

// user creates an account directly in the store and returns it with a token.
func (ts *testServer) user(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	u := models.NewUser(email, email, "unused")
	if err := ts.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	token, err := ts.jwt.Generate(u)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return u, token
}

// round seeds a nine-hole round created by creator with the given stake.
func (ts *testServer) round(t *testing.T, creator *models.User, stake string, enabled bool) (*models.Round, *models.Player) {
	t.Helper()
	ctx := context.Background()

	course := &models.Course{Name: "Maple Hill", HoleCount: 9}
	if err := ts.store.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	round := &models.Round{
		CourseID:     course.ID,
		CreatedByID:  creator.ID,
		SkinsEnabled: enabled,
		SkinsValue:   stake,
		StartingHole: 1,
	}
	player, err := ts.store.CreateRound(ctx, round)
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	return round, player
}

func (ts *testServer) join(t *testing.T, roundID string, user *models.User, guestName string) *models.Player {
	t.Helper()
	p := &models.Player{RoundID: roundID, GuestName: guestName}
	if user != nil {
		p.UserID = user.ID
	}
	if err := ts.store.AddPlayer(context.Background(), p); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	return p
}

func (ts *testServer) score(t *testing.T, roundID string, p *models.Player, hole, strokes int) {
	t.Helper()
	err := ts.store.RecordScore(context.Background(), roundID, models.Score{PlayerID: p.ID, HoleNumber: hole, Strokes: strokes})
	if err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}
}

func calculate(t *testing.T, client *skinsrpc.SkinsServiceClient, roundID string) (*skinsrpc.CalculateSkinsResponse, error) {
	t.Helper()
	resp, err := client.CalculateSkins(context.Background(), connect.NewRequest(&skinsrpc.CalculateSkinsRequest{RoundID: roundID}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestCalculateSkins_SplitHoles(t *testing.T) {
	ts := setupTestServer(t)
	alice, aliceToken := ts.user(t, "alice@example.com")
	bob, _ := ts.user(t, "bob@example.com")

	round, a := ts.round(t, alice, "5.00", true)
	b := ts.join(t, round.ID, bob, "")
	ts.score(t, round.ID, a, 1, 3)
	ts.score(t, round.ID, b, 1, 4)
	ts.score(t, round.ID, a, 2, 4)
	ts.score(t, round.ID, b, 2, 3)

	resp, err := calculate(t, ts.skinsClient(aliceToken), round.ID)
	if err != nil {
		t.Fatalf("CalculateSkins failed: %v", err)
	}

	if resp.RoundID != round.ID || !resp.SkinsEnabled || resp.SkinsValue != "5.00" {
		t.Errorf("unexpected header %+v", resp)
	}
	if len(resp.Holes) != 2 {
		t.Fatalf("expected 2 holes, got %d", len(resp.Holes))
	}

	h1 := resp.Holes[1]
	if h1.Winner == nil || *h1.Winner != a.ID || h1.WinnerScore == nil || *h1.WinnerScore != 3 || h1.SkinsValue != "5.00" {
		t.Errorf("hole 1 = %+v", h1)
	}
	h2 := resp.Holes[2]
	if h2.Winner == nil || *h2.Winner != b.ID || h2.CarriedOver != 0 {
		t.Errorf("hole 2 = %+v", h2)
	}

	for _, id := range []string{a.ID, b.ID} {
		got := resp.PlayerSummary[id]
		want := skinsrpc.PlayerSummary{SkinsWon: 1, TotalValue: "5.00", MoneyIn: 5, MoneyOut: -5, Total: 0}
		if got != want {
			t.Errorf("summary[%s] = %+v, want %+v", id, got, want)
		}
	}
	if resp.TotalCarryOver != 0 {
		t.Errorf("TotalCarryOver = %d, want 0", resp.TotalCarryOver)
	}
	if len(resp.Players) != 2 || resp.Players[0].ID != a.ID {
		t.Errorf("unexpected players %+v", resp.Players)
	}
}

func TestCalculateSkins_CarryAndSettlement(t *testing.T) {
	ts := setupTestServer(t)
	alice, aliceToken := ts.user(t, "alice@example.com")

	round, a := ts.round(t, alice, "5.00", true)
	guest := ts.join(t, round.ID, nil, "Sam")
	ts.score(t, round.ID, a, 1, 3)
	ts.score(t, round.ID, guest, 1, 3)
	ts.score(t, round.ID, a, 2, 2)
	ts.score(t, round.ID, guest, 2, 4)
	ts.score(t, round.ID, a, 3, 3)
	ts.score(t, round.ID, guest, 3, 3)

	resp, err := calculate(t, ts.skinsClient(aliceToken), round.ID)
	if err != nil {
		t.Fatalf("CalculateSkins failed: %v", err)
	}

	h1 := resp.Holes[1]
	if h1.Winner != nil || !h1.Tied || h1.TiedScore == nil || *h1.TiedScore != 3 || h1.SkinsValue != "5.00" {
		t.Errorf("hole 1 = %+v", h1)
	}
	h2 := resp.Holes[2]
	if h2.SkinsValue != "10.00" || h2.CarriedOver != 1 {
		t.Errorf("hole 2 = %+v", h2)
	}

	// Hole 3 ties; the open skin goes to the leader without payment.
	sa := resp.PlayerSummary[a.ID]
	if sa.SkinsWon != 3 || sa.TotalValue != "15.00" || sa.MoneyIn != 10 || sa.MoneyOut != 0 || sa.Total != 10 {
		t.Errorf("alice summary = %+v", sa)
	}
	sg := resp.PlayerSummary[guest.ID]
	if sg.SkinsWon != 0 || sg.MoneyOut != -10 || sg.Total != -10 {
		t.Errorf("guest summary = %+v", sg)
	}
	if resp.TotalCarryOver != 0 {
		t.Errorf("TotalCarryOver = %d, want 0", resp.TotalCarryOver)
	}
}

func TestCalculateSkins_NoScores(t *testing.T) {
	ts := setupTestServer(t)
	alice, aliceToken := ts.user(t, "alice@example.com")
	round, a := ts.round(t, alice, "2.50", true)

	resp, err := calculate(t, ts.skinsClient(aliceToken), round.ID)
	if err != nil {
		t.Fatalf("CalculateSkins failed: %v", err)
	}
	if len(resp.Holes) != 0 {
		t.Errorf("expected no holes, got %+v", resp.Holes)
	}
	got := resp.PlayerSummary[a.ID]
	if got.SkinsWon != 0 || got.TotalValue != "0.00" || got.Total != 0 {
		t.Errorf("summary = %+v", got)
	}
}

func TestCalculateSkins_Errors(t *testing.T) {
	ts := setupTestServer(t)
	alice, aliceToken := ts.user(t, "alice@example.com")
	bob, bobToken := ts.user(t, "bob@example.com")
	_, outsiderToken := ts.user(t, "outsider@example.com")

	round, _ := ts.round(t, alice, "5.00", true)
	ts.join(t, round.ID, bob, "")
	disabled, _ := ts.round(t, alice, "5.00", false)

	tests := []struct {
		name    string
		token   string
		roundID string
		want    connect.Code
	}{
		{"no token", "", round.ID, connect.CodeUnauthenticated},
		{"bad token", "garbage", round.ID, connect.CodeUnauthenticated},
		{"empty round id", aliceToken, "", connect.CodeInvalidArgument},
		{"malformed round id", aliceToken, "round-1", connect.CodeInvalidArgument},
		{"unknown round", aliceToken, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", connect.CodeNotFound},
		{"not a participant", outsiderToken, round.ID, connect.CodePermissionDenied},
		{"skins disabled", aliceToken, disabled.ID, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calculate(t, ts.skinsClient(tt.token), tt.roundID)
			if connect.CodeOf(err) != tt.want {
				t.Errorf("code = %v (%v), want %v", connect.CodeOf(err), err, tt.want)
			}
		})
	}

	t.Run("participant who is not the creator", func(t *testing.T) {
		if _, err := calculate(t, ts.skinsClient(bobToken), round.ID); err != nil {
			t.Errorf("CalculateSkins failed: %v", err)
		}
	})

	t.Run("authorization message is user facing", func(t *testing.T) {
		_, err := calculate(t, ts.skinsClient(outsiderToken), round.ID)
		var connectErr *connect.Error
		if !errors.As(err, &connectErr) || connectErr.Message() != "You must be a participant in this round to view skins" {
			t.Errorf("unexpected error %v", err)
		}
	})
}

func TestAuthService_RegisterLoginCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.authClient("")
	ctx := context.Background()

	reg, err := client.Register(ctx, connect.NewRequest(&skinsrpc.RegisterRequest{
		Email:    "ace@example.com",
		Username: "ace",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.ID <= 0 || reg.Msg.User.Username != "ace" {
		t.Errorf("unexpected register response %+v", reg.Msg)
	}

	_, err = client.Register(ctx, connect.NewRequest(&skinsrpc.RegisterRequest{
		Email:    "ace@example.com",
		Username: "again",
		Password: "password123",
	}))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("duplicate register code = %v", connect.CodeOf(err))
	}

	_, err = client.Register(ctx, connect.NewRequest(&skinsrpc.RegisterRequest{
		Email:    "short@example.com",
		Username: "short",
		Password: "short",
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("weak password code = %v", connect.CodeOf(err))
	}

	_, err = client.Login(ctx, connect.NewRequest(&skinsrpc.LoginRequest{Email: "ace@example.com", Password: "nope-nope"}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("bad login code = %v", connect.CodeOf(err))
	}

	login, err := client.Login(ctx, connect.NewRequest(&skinsrpc.LoginRequest{Email: "ace@example.com", Password: "password123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	me, err := ts.authClient(login.Msg.Token).GetCurrentUser(ctx, connect.NewRequest(&skinsrpc.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.ID != reg.Msg.User.ID || me.Msg.User.Email != "ace@example.com" {
		t.Errorf("unexpected current user %+v", me.Msg.User)
	}

	_, err = client.GetCurrentUser(ctx, connect.NewRequest(&skinsrpc.GetCurrentUserRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("anonymous GetCurrentUser code = %v", connect.CodeOf(err))
	}
}
