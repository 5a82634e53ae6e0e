package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"stravadash/internal/models/request_models"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

const oauthStateCookie = "strava_oauth_state"

type StravaController struct {
	authService services.StravaAuthServiceInterface
	syncService services.SyncServiceInterface
}

func NewStravaController(authService services.StravaAuthServiceInterface, syncService services.SyncServiceInterface) *StravaController {
	return &StravaController{
		authService: authService,
		syncService: syncService,
	}
}

func (s *StravaController) redirectURI(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + c.Request.Host + "/strava/callback"
}

// Login redirects the browser to Strava's consent page. The random state is
// kept in a short-lived cookie and checked on the callback.
func (s *StravaController) Login(c *gin.Context) {
	state, err := utils.GenerateSecureToken(16)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, s.authService.AuthorizeURL(s.redirectURI(c), state))
}

func (s *StravaController) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		utils.RespondError(c, http.StatusBadRequest, "Strava authorization failed: "+errParam)
		return
	}

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		utils.RespondError(c, http.StatusBadRequest, "CSRF validation failed")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Strava auth code not received")
		return
	}

	token, created, err := s.authService.HandleCallback(c.Request.Context(), code, s.redirectURI(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Welcome back!"
	if created {
		message = "Welcome to Strava Dash! Please complete your registration."
	}
	utils.RespondSuccess(c, gin.H{"token": token, "created": created}, message)
}

// Connect links a Strava athlete to the already-authenticated account.
func (s *StravaController) Connect(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Strava auth code not received")
		return
	}

	if err := s.authService.ConnectExisting(c.Request.Context(), c.GetString("user_id"), code, s.redirectURI(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Strava account connected")
}

// Sync triggers the pull pipeline for the authenticated user.
func (s *StravaController) Sync(c *gin.Context) {
	var req request_models.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := s.syncService.SyncUserByID(c.Request.Context(), c.GetString("user_id"), req.Days, req.Force); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Strava data synced")
}
