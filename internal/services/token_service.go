package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stravadash/internal/models/db_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

// Refresh this long before the stored expiry instead of waiting for Strava
// to reject the token mid-sync.
const tokenExpiryMargin = 5 * time.Minute

type TokenServiceInterface interface {
	// GetValidAccessToken returns a usable access token for the user,
	// refreshing it first when the stored one expires within the margin.
	// Returns utils.ErrStravaNotConnected when no credentials are stored, and
	// utils.ErrReauthorizationRequired when the refresh exchange fails — in
	// that case all three credential fields have been cleared and the caller
	// must not retry.
	GetValidAccessToken(ctx context.Context, user *db_models.User) (string, error)
}

type TokenService struct {
	userRepo repositories.UserRepository
	strava   StravaAPI
	clock    utils.Clock
}

func NewTokenService(userRepo repositories.UserRepository, strava StravaAPI, clock utils.Clock) TokenServiceInterface {
	return &TokenService{
		userRepo: userRepo,
		strava:   strava,
		clock:    clock,
	}
}

func (t *TokenService) GetValidAccessToken(ctx context.Context, user *db_models.User) (string, error) {
	if user.StravaAccessToken == nil || user.StravaRefreshToken == nil {
		return "", utils.ErrStravaNotConnected
	}

	now := t.clock.Now()
	if user.StravaTokenExpiresAt != nil && user.StravaTokenExpiresAt.After(now.Add(tokenExpiryMargin)) {
		return *user.StravaAccessToken, nil
	}

	tokens, err := t.strava.RefreshToken(ctx, *user.StravaRefreshToken)
	if err != nil {
		// The refresh token is no longer trustworthy. Wipe the credentials so
		// the user is routed back through the authorization flow.
		if clearErr := t.userRepo.ClearCredentials(ctx, user.ID); clearErr != nil {
			log.Printf("Failed to clear Strava credentials for user %s: %v", user.ID, clearErr)
		}
		user.StravaAccessToken = nil
		user.StravaRefreshToken = nil
		user.StravaTokenExpiresAt = nil
		return "", fmt.Errorf("%w: %v", utils.ErrReauthorizationRequired, err)
	}

	expiresAt := now.Add(time.Duration(tokens.ExpiresIn) * time.Second)
	if err := t.userRepo.UpdateCredentials(ctx, user.ID, tokens.AccessToken, tokens.RefreshToken, expiresAt); err != nil {
		return "", fmt.Errorf("%w: persisting refreshed tokens: %v", utils.ErrDatabaseError, err)
	}

	user.StravaAccessToken = &tokens.AccessToken
	user.StravaRefreshToken = &tokens.RefreshToken
	user.StravaTokenExpiresAt = &expiresAt

	return tokens.AccessToken, nil
}
