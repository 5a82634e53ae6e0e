package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"stravadash/pkg/utils"
)

// StravaAPI is the provider boundary: token exchange, athlete lookup,
// aggregate stats and activity listing. Implementations classify failures
// with utils.ErrProviderUnavailable (network / non-2xx) and
// utils.ErrMalformedResponse (undecodable payload) so callers can decide
// continue-vs-abort per error kind.
type StravaAPI interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenExchangeResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenExchangeResponse, error)
	GetAthlete(ctx context.Context, accessToken string) (*AthleteSummary, error)
	GetAthleteStats(ctx context.Context, accessToken string, stravaID int64) (*AthleteStats, error)
	ListActivities(ctx context.Context, accessToken, activityType string, page, perPage int, after *int64) ([]ActivitySummary, error)
}

type TokenExchangeResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	Athlete      *AthleteSummary `json:"athlete,omitempty"`
}

type AthleteSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Sex       string `json:"sex"`
}

type RunTotals struct {
	Distance      float64 `json:"distance"`
	Count         int     `json:"count"`
	MovingTime    int     `json:"moving_time"`
	ElapsedTime   int     `json:"elapsed_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

type AthleteStats struct {
	RecentRunTotals RunTotals `json:"recent_run_totals"`
	YTDRunTotals    RunTotals `json:"ytd_run_totals"`
	AllRunTotals    RunTotals `json:"all_run_totals"`
}

type ActivitySummary struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	WorkoutType      *int      `json:"workout_type"`
	Distance         float64   `json:"distance"`
	MovingTime       int       `json:"moving_time"`
	ElapsedTime      int       `json:"elapsed_time"`
	TotalElevation   float64   `json:"total_elevation_gain"`
	StartDate        time.Time `json:"start_date"`
	StartDateLocal   time.Time `json:"start_date_local"`
	Timezone         string    `json:"timezone"`
	AverageSpeed     *float64  `json:"average_speed"`
	MaxSpeed         *float64  `json:"max_speed"`
	AverageHeartrate *float64  `json:"average_heartrate"`
	MaxHeartrate     *float64  `json:"max_heartrate"`
	AverageCadence   *float64  `json:"average_cadence"`
	HasHeartrate     bool      `json:"has_heartrate"`
	HasPower         bool      `json:"has_power"`
}

type StravaClient struct {
	HTTP         *http.Client
	ClientID     string
	ClientSecret string
	TokenURL     string
	AuthorizeURL string
	APIBaseURL   string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewStravaClient() *StravaClient {
	return &StravaClient{
		HTTP:         &http.Client{Timeout: 15 * time.Second},
		ClientID:     os.Getenv("STRAVA_CLIENT_ID"),
		ClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
		TokenURL:     envOr("STRAVA_TOKEN_URL", "https://www.strava.com/oauth/token"),
		AuthorizeURL: envOr("STRAVA_AUTHORIZE_URL", "https://www.strava.com/oauth/authorize"),
		APIBaseURL:   envOr("STRAVA_API_BASE_URL", "https://www.strava.com/api/v3"),
	}
}

// BuildAuthorizeURL is the redirect target for the OAuth connect flow.
func (c *StravaClient) BuildAuthorizeURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", "activity:read_all,profile:read_all")
	q.Set("approval_prompt", "force")
	q.Set("state", state)
	return c.AuthorizeURL + "?" + q.Encode()
}

func (c *StravaClient) postTokenForm(ctx context.Context, form url.Values) (*TokenExchangeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", utils.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: token exchange status %s", utils.ErrProviderUnavailable, resp.Status)
	}

	var payload TokenExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", utils.ErrMalformedResponse, err)
	}
	if payload.AccessToken == "" || payload.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token exchange missing tokens", utils.ErrMalformedResponse)
	}
	return &payload, nil
}

func (c *StravaClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenExchangeResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	return c.postTokenForm(ctx, form)
}

func (c *StravaClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenExchangeResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.postTokenForm(ctx, form)
}

func (c *StravaClient) getJSON(ctx context.Context, accessToken, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: status %s", utils.ErrProviderUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMalformedResponse, err)
	}
	return nil
}

func (c *StravaClient) GetAthlete(ctx context.Context, accessToken string) (*AthleteSummary, error) {
	var athlete AthleteSummary
	if err := c.getJSON(ctx, accessToken, c.APIBaseURL+"/athlete", &athlete); err != nil {
		return nil, fmt.Errorf("get athlete: %w", err)
	}
	return &athlete, nil
}

func (c *StravaClient) GetAthleteStats(ctx context.Context, accessToken string, stravaID int64) (*AthleteStats, error) {
	var stats AthleteStats
	statsURL := fmt.Sprintf("%s/athletes/%d/stats", c.APIBaseURL, stravaID)
	if err := c.getJSON(ctx, accessToken, statsURL, &stats); err != nil {
		return nil, fmt.Errorf("get athlete stats: %w", err)
	}
	return &stats, nil
}

func (c *StravaClient) ListActivities(ctx context.Context, accessToken, activityType string, page, perPage int, after *int64) ([]ActivitySummary, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("type", activityType)
	q.Set("page", strconv.Itoa(page))
	if after != nil {
		q.Set("after", strconv.FormatInt(*after, 10))
	}

	var activities []ActivitySummary
	listURL := c.APIBaseURL + "/athlete/activities?" + q.Encode()
	if err := c.getJSON(ctx, accessToken, listURL, &activities); err != nil {
		return nil, fmt.Errorf("list activities page %d: %w", page, err)
	}
	return activities, nil
}
