package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"stravadash/internal/models/db_models"
	"stravadash/internal/repositories"
)

// fakeStravaAPI answers from canned data and records what was asked of it.
type fakeStravaAPI struct {
	refreshResponse *TokenExchangeResponse
	refreshErr      error
	refreshCalls    int

	stats    *AthleteStats
	statsErr error

	// pages[i] is returned for page i+1; pageErrs[i] overrides it.
	pages      [][]ActivitySummary
	pageErrs   []error
	listCalls  int
	afterSeen  []*int64
	exchange   *TokenExchangeResponse
	exchangeEr error
}

func (f *fakeStravaAPI) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenExchangeResponse, error) {
	return f.exchange, f.exchangeEr
}

func (f *fakeStravaAPI) RefreshToken(ctx context.Context, refreshToken string) (*TokenExchangeResponse, error) {
	f.refreshCalls++
	return f.refreshResponse, f.refreshErr
}

func (f *fakeStravaAPI) GetAthlete(ctx context.Context, accessToken string) (*AthleteSummary, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStravaAPI) GetAthleteStats(ctx context.Context, accessToken string, stravaID int64) (*AthleteStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeStravaAPI) ListActivities(ctx context.Context, accessToken, activityType string, page, perPage int, after *int64) ([]ActivitySummary, error) {
	f.listCalls++
	f.afterSeen = append(f.afterSeen, after)
	if page-1 < len(f.pageErrs) && f.pageErrs[page-1] != nil {
		return nil, f.pageErrs[page-1]
	}
	if page-1 >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page-1], nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*db_models.User

	updateCredsCalls int
	clearCredsCalls  int
	stampedAt        *time.Time
	candidates       []db_models.User
}

func newFakeUserRepo(users ...*db_models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uuid.UUID]*db_models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *db_models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return f.users[parsed], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByStravaID(ctx context.Context, stravaID int64) (*db_models.User, error) {
	for _, u := range f.users {
		if u.StravaID != nil && *u.StravaID == stravaID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *db_models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateCredentials(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error {
	f.updateCredsCalls++
	if u, ok := f.users[userID]; ok {
		u.StravaAccessToken = &accessToken
		u.StravaRefreshToken = &refreshToken
		u.StravaTokenExpiresAt = &expiresAt
	}
	return nil
}

func (f *fakeUserRepo) ClearCredentials(ctx context.Context, userID uuid.UUID) error {
	f.clearCredsCalls++
	if u, ok := f.users[userID]; ok {
		u.StravaAccessToken = nil
		u.StravaRefreshToken = nil
		u.StravaTokenExpiresAt = nil
	}
	return nil
}

func (f *fakeUserRepo) LinkStrava(ctx context.Context, userID uuid.UUID, stravaID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	if u, ok := f.users[userID]; ok {
		u.StravaID = &stravaID
		u.StravaAccessToken = &accessToken
		u.StravaRefreshToken = &refreshToken
		u.StravaTokenExpiresAt = &expiresAt
	}
	return nil
}

func (f *fakeUserRepo) StampLastSync(ctx context.Context, userID uuid.UUID, at time.Time) error {
	f.stampedAt = &at
	if u, ok := f.users[userID]; ok {
		u.LastStravaSync = &at
	}
	return nil
}

func (f *fakeUserRepo) ListSyncCandidates(ctx context.Context, olderThan time.Time) ([]db_models.User, error) {
	return f.candidates, nil
}

// fakeActivityRepo keeps upserted activities keyed by (user, strava id).
type fakeActivityRepo struct {
	byKey     map[string]*db_models.Activity
	upserts   int
	upsertErr error
	runs      []db_models.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{byKey: map[string]*db_models.Activity{}}
}

func activityKey(userID uuid.UUID, stravaID int64) string {
	return fmt.Sprintf("%s/%d", userID, stravaID)
}

func (f *fakeActivityRepo) Upsert(ctx context.Context, activity *db_models.Activity) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	stored := *activity
	f.byKey[activityKey(activity.UserID, activity.StravaID)] = &stored
	return nil
}

// ListRunsSince sees both pre-seeded runs and anything upserted during the
// test, so the aggregator path works end to end.
func (f *fakeActivityRepo) ListRunsSince(ctx context.Context, userID uuid.UUID, activityType string, since time.Time) ([]db_models.Activity, error) {
	var out []db_models.Activity
	for _, a := range f.runs {
		if a.UserID == userID && a.ActivityType == activityType && !a.StartDateLocal.Before(since) {
			out = append(out, a)
		}
	}
	for _, a := range f.byKey {
		if a.UserID == userID && a.ActivityType == activityType && !a.StartDateLocal.Before(since) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Activity, int64, error) {
	return nil, 0, nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id string) (*db_models.Activity, error) {
	return nil, nil
}

func (f *fakeActivityRepo) UpdateEditable(ctx context.Context, activity *db_models.Activity) error {
	return nil
}

func (f *fakeActivityRepo) stored(userID uuid.UUID, stravaID int64) *db_models.Activity {
	return f.byKey[activityKey(userID, stravaID)]
}

type rollingWrite struct {
	weekly      db_models.RunStats
	recentAvgHR float64
	recentMaxHR float64
}

type fakeStatsRepo struct {
	providerTotals map[string]db_models.RunStats
	providerCalls  int
	providerErr    error

	rolling      *rollingWrite
	rollingCalls int
}

func (f *fakeStatsRepo) ReplaceProviderTotals(ctx context.Context, userID uuid.UUID, totals map[string]db_models.RunStats) error {
	if f.providerErr != nil {
		return f.providerErr
	}
	f.providerCalls++
	f.providerTotals = totals
	return nil
}

func (f *fakeStatsRepo) WriteRollingAggregates(ctx context.Context, userID uuid.UUID, weekly db_models.RunStats, recentAvgHR, recentMaxHR float64) error {
	f.rollingCalls++
	f.rolling = &rollingWrite{weekly: weekly, recentAvgHR: recentAvgHR, recentMaxHR: recentMaxHR}
	return nil
}

func (f *fakeStatsRepo) GetByUser(ctx context.Context, userID uuid.UUID) (map[string]db_models.RunStats, error) {
	return f.providerTotals, nil
}

func (f *fakeStatsRepo) Leaderboard(ctx context.Context, groupID uuid.UUID, window, gender string, minBirthYear, maxBirthYear *int, orderExpr string) ([]repositories.LeaderboardRow, error) {
	return nil, nil
}

type noWait struct{}

func (noWait) Wait() {}

func strPtr(s string) *string    { return &s }
func f64Ptr(v float64) *float64  { return &v }
func intPtr(v int) *int          { return &v }
func i64Ptr(v int64) *int64      { return &v }
func timePtr(t time.Time) *time.Time { return &t }
