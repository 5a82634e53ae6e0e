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

type StravaAuthServiceInterface interface {
	// AuthorizeURL builds the Strava consent redirect; the state is echoed
	// back on the callback and checked against the caller's session.
	AuthorizeURL(redirectURI, state string) string

	// HandleCallback exchanges the authorization code, then links the Strava
	// athlete to an existing account or creates a fresh one, and returns a
	// session JWT.
	HandleCallback(ctx context.Context, code, redirectURI string) (token string, created bool, err error)

	// ConnectExisting links the Strava athlete from the code exchange to an
	// already-authenticated account.
	ConnectExisting(ctx context.Context, userID, code, redirectURI string) error
}

type StravaAuthService struct {
	userRepo repositories.UserRepository
	strava   *StravaClient
	clock    utils.Clock
}

func NewStravaAuthService(userRepo repositories.UserRepository, strava *StravaClient, clock utils.Clock) StravaAuthServiceInterface {
	return &StravaAuthService{
		userRepo: userRepo,
		strava:   strava,
		clock:    clock,
	}
}

func (s *StravaAuthService) AuthorizeURL(redirectURI, state string) string {
	return s.strava.BuildAuthorizeURL(redirectURI, state)
}

func (s *StravaAuthService) exchange(ctx context.Context, code, redirectURI string) (*TokenExchangeResponse, *AthleteSummary, error) {
	tokens, err := s.strava.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, nil, err
	}

	athlete := tokens.Athlete
	if athlete == nil {
		athlete, err = s.strava.GetAthlete(ctx, tokens.AccessToken)
		if err != nil {
			return nil, nil, err
		}
	}
	return tokens, athlete, nil
}

func (s *StravaAuthService) HandleCallback(ctx context.Context, code, redirectURI string) (string, bool, error) {
	tokens, athlete, err := s.exchange(ctx, code, redirectURI)
	if err != nil {
		return "", false, err
	}

	expiresAt := s.clock.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)

	user, err := s.userRepo.FindByStravaID(ctx, athlete.ID)
	if err != nil {
		return "", false, utils.ErrDatabaseError
	}

	created := false
	if user == nil {
		name := athlete.FirstName
		if name == "" {
			name = fmt.Sprintf("Strava User %d", athlete.ID)
		}
		var gender *string
		if athlete.Sex == "M" || athlete.Sex == "F" {
			gender = &athlete.Sex
		}
		user = &db_models.User{
			Name: name,
			// Placeholder until the user completes registration with a real
			// address; unique per athlete.
			Email:                fmt.Sprintf("strava_%d@users.stravadash.local", athlete.ID),
			Role:                 "user",
			UseMetric:            true,
			Gender:               gender,
			StravaID:             &athlete.ID,
			StravaAccessToken:    &tokens.AccessToken,
			StravaRefreshToken:   &tokens.RefreshToken,
			StravaTokenExpiresAt: &expiresAt,
		}
		if err := s.userRepo.Insert(ctx, user); err != nil {
			return "", false, utils.ErrDatabaseError
		}
		created = true
		log.Printf("Created account for Strava athlete %d", athlete.ID)
	} else {
		if err := s.userRepo.UpdateCredentials(ctx, user.ID, tokens.AccessToken, tokens.RefreshToken, expiresAt); err != nil {
			return "", false, utils.ErrDatabaseError
		}
	}

	sessionToken, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", created, utils.ErrInvalidCredentials
	}
	return sessionToken, created, nil
}

func (s *StravaAuthService) ConnectExisting(ctx context.Context, userID, code, redirectURI string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	tokens, athlete, err := s.exchange(ctx, code, redirectURI)
	if err != nil {
		return err
	}

	expiresAt := s.clock.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	if err := s.userRepo.LinkStrava(ctx, user.ID, athlete.ID, tokens.AccessToken, tokens.RefreshToken, expiresAt); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
