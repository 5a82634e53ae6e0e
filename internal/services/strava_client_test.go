package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stravadash/pkg/utils"
)

func testClient(server *httptest.Server) *StravaClient {
	return &StravaClient{
		HTTP:         &http.Client{Timeout: 5 * time.Second},
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL + "/oauth/token",
		AuthorizeURL: server.URL + "/oauth/authorize",
		APIBaseURL:   server.URL + "/api/v3",
	}
}

func TestRefreshTokenSendsGrantForm(t *testing.T) {
	var gotGrant, gotRefresh string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotGrant = r.PostFormValue("grant_type")
		gotRefresh = r.PostFormValue("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":21600}`))
	}))
	defer server.Close()

	tokens, err := testClient(server).RefreshToken(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if gotGrant != "refresh_token" || gotRefresh != "old-refresh" {
		t.Fatalf("unexpected form: grant=%q refresh=%q", gotGrant, gotRefresh)
	}
	if tokens.AccessToken != "at" || tokens.RefreshToken != "rt" || tokens.ExpiresIn != 21600 {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestTokenExchangeClassifiesFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Bad Request"}`, utils.ErrProviderUnavailable},
		{"server error", http.StatusBadGateway, "", utils.ErrProviderUnavailable},
		{"garbage body", http.StatusOK, "<html>", utils.ErrMalformedResponse},
		{"missing tokens", http.StatusOK, `{"expires_in":100}`, utils.ErrMalformedResponse},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))
		_, err := testClient(server).RefreshToken(context.Background(), "r")
		server.Close()
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestListActivitiesQueryAndAuth(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":123,"name":"Morning Run","type":"Run","distance":10000,"moving_time":3000}]`))
	}))
	defer server.Close()

	after := int64(1700000000)
	activities, err := testClient(server).ListActivities(context.Background(), "token-abc", "Run", 2, 200, &after)
	if err != nil {
		t.Fatalf("ListActivities error: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotQuery["per_page"][0] != "200" || gotQuery["type"][0] != "Run" || gotQuery["page"][0] != "2" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if gotQuery["after"][0] != "1700000000" {
		t.Fatalf("expected after passed through, got %v", gotQuery["after"])
	}
	if len(activities) != 1 || activities[0].ID != 123 {
		t.Fatalf("unexpected activities: %+v", activities)
	}
}

func TestListActivitiesOmitsAfterWhenNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("after") {
			t.Error("after must be omitted for full-history imports")
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	activities, err := testClient(server).ListActivities(context.Background(), "t", "Run", 1, 200, nil)
	if err != nil {
		t.Fatalf("ListActivities error: %v", err)
	}
	if len(activities) != 0 {
		t.Fatalf("expected empty page, got %d", len(activities))
	}
}

func TestGetAthleteStatsDecodesTotals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/athletes/42/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"recent_run_totals":{"distance":120000,"count":12,"moving_time":36000,"elapsed_time":37000,"elevation_gain":800},
			"ytd_run_totals":{"distance":500000,"count":50,"moving_time":150000,"elapsed_time":155000,"elevation_gain":3200},
			"all_run_totals":{"distance":2000000,"count":200,"moving_time":600000,"elapsed_time":620000,"elevation_gain":12000}
		}`))
	}))
	defer server.Close()

	stats, err := testClient(server).GetAthleteStats(context.Background(), "t", 42)
	if err != nil {
		t.Fatalf("GetAthleteStats error: %v", err)
	}
	if stats.RecentRunTotals.Count != 12 || stats.AllRunTotals.Distance != 2000000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBuildAuthorizeURL(t *testing.T) {
	c := &StravaClient{ClientID: "123", AuthorizeURL: "https://example.test/oauth/authorize"}
	u := c.BuildAuthorizeURL("https://app.test/strava/callback", "state-xyz")
	for _, want := range []string{"client_id=123", "state=state-xyz", "response_type=code", "scope=activity%3Aread_all"} {
		if !strings.Contains(u, want) {
			t.Errorf("authorize URL missing %q: %s", want, u)
		}
	}
}
