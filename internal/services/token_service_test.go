package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"stravadash/internal/models/db_models"
	"stravadash/pkg/utils"
)

func connectedUser(now time.Time, expiresIn time.Duration) *db_models.User {
	expiry := now.Add(expiresIn)
	return &db_models.User{
		BaseModel:            db_models.BaseModel{ID: uuid.New()},
		StravaID:             i64Ptr(42),
		StravaAccessToken:    strPtr("stored-access"),
		StravaRefreshToken:   strPtr("stored-refresh"),
		StravaTokenExpiresAt: &expiry,
	}
}

func TestGetValidAccessTokenFreshTokenSkipsNetwork(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := connectedUser(now, time.Hour)
	strava := &fakeStravaAPI{}
	svc := NewTokenService(newFakeUserRepo(user), strava, utils.FixedClock{Instant: now})

	token, err := svc.GetValidAccessToken(context.Background(), user)
	if err != nil {
		t.Fatalf("GetValidAccessToken error: %v", err)
	}
	if token != "stored-access" {
		t.Fatalf("expected stored token, got %q", token)
	}
	if strava.refreshCalls != 0 {
		t.Fatalf("expected no refresh calls, got %d", strava.refreshCalls)
	}
}

func TestGetValidAccessTokenRefreshesInsideMargin(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	// Expires in 4 minutes: inside the 5-minute margin, so still "expiring".
	user := connectedUser(now, 4*time.Minute)
	repo := newFakeUserRepo(user)
	strava := &fakeStravaAPI{
		refreshResponse: &TokenExchangeResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    21600,
		},
	}
	svc := NewTokenService(repo, strava, utils.FixedClock{Instant: now})

	token, err := svc.GetValidAccessToken(context.Background(), user)
	if err != nil {
		t.Fatalf("GetValidAccessToken error: %v", err)
	}
	if token != "new-access" {
		t.Fatalf("expected refreshed token, got %q", token)
	}
	if repo.updateCredsCalls != 1 {
		t.Fatalf("expected one credential write, got %d", repo.updateCredsCalls)
	}
	if user.StravaRefreshToken == nil || *user.StravaRefreshToken != "new-refresh" {
		t.Fatalf("rotated refresh token not kept in memory: %v", user.StravaRefreshToken)
	}
	want := now.Add(21600 * time.Second)
	if user.StravaTokenExpiresAt == nil || !user.StravaTokenExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, user.StravaTokenExpiresAt)
	}
}

func TestGetValidAccessTokenRefreshFailureClearsCredentials(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := connectedUser(now, -time.Hour)
	repo := newFakeUserRepo(user)
	strava := &fakeStravaAPI{refreshErr: utils.ErrProviderUnavailable}
	svc := NewTokenService(repo, strava, utils.FixedClock{Instant: now})

	_, err := svc.GetValidAccessToken(context.Background(), user)
	if !errors.Is(err, utils.ErrReauthorizationRequired) {
		t.Fatalf("expected ErrReauthorizationRequired, got %v", err)
	}
	if repo.clearCredsCalls != 1 {
		t.Fatalf("expected one credential clear, got %d", repo.clearCredsCalls)
	}
	if user.StravaAccessToken != nil || user.StravaRefreshToken != nil || user.StravaTokenExpiresAt != nil {
		t.Fatalf("expected all credential fields cleared, got %+v", user)
	}
}

func TestGetValidAccessTokenNotConnected(t *testing.T) {
	user := &db_models.User{BaseModel: db_models.BaseModel{ID: uuid.New()}}
	svc := NewTokenService(newFakeUserRepo(user), &fakeStravaAPI{}, utils.FixedClock{Instant: time.Now()})

	_, err := svc.GetValidAccessToken(context.Background(), user)
	if !errors.Is(err, utils.ErrStravaNotConnected) {
		t.Fatalf("expected ErrStravaNotConnected, got %v", err)
	}
}
