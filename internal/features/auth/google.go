package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

const (
	userinfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateCookieName = "oauth_state"
)

// googleUserInfo is the subset of the userinfo payload we consume.
type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (h *Handler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.config.GoogleClientID,
		ClientSecret: h.config.GoogleClientSecret,
		RedirectURL:  h.config.GoogleCallbackURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLogin redirects the browser to the Google consent screen
// @Summary Start Google OAuth login
// @Tags auth
// @Success 307
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/google [get]
func (h *Handler) GoogleLogin(c *gin.Context) {
	if !h.config.GoogleOAuthEnabled() {
		response.BadRequest(c, "Google OAuth not configured", "OAUTH_DISABLED")
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		response.InternalServerError(c, "Failed to start login", "INTERNAL_ERROR")
		return
	}
	state := hex.EncodeToString(buf)

	c.SetCookie(stateCookieName, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig().AuthCodeURL(state))
}

// GoogleCallback handles the OAuth redirect: it exchanges the code, looks
// up or creates the account, and bounces back to the frontend with a JWT.
// Failures redirect to the frontend login page rather than rendering JSON,
// since the caller here is a browser mid-flow.
// @Summary Google OAuth callback
// @Tags auth
// @Success 307
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(c *gin.Context) {
	loginURL := h.config.FrontendURL + "/login"

	if !h.config.GoogleOAuthEnabled() {
		response.BadRequest(c, "Google OAuth not configured", "OAUTH_DISABLED")
		return
	}

	wantState, err := c.Cookie(stateCookieName)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_failed")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_failed")
		return
	}

	ctx := c.Request.Context()
	tok, err := h.oauthConfig().Exchange(ctx, code)
	if err != nil {
		logger.Warn("google oauth exchange failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_error")
		return
	}

	info, err := fetchGoogleUserInfo(ctx, h.oauthConfig(), tok)
	if err != nil {
		logger.Warn("google userinfo fetch failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_error")
		return
	}

	user, err := h.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		logger.Error("google login: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_error")
		return
	}

	signed, err := h.issueToken(user)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, loginURL+"?error=oauth_error")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendURL+"/auth/callback?token="+signed)
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) (*googleUserInfo, error) {
	resp, err := cfg.Client(ctx, tok).Get(userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("userinfo response missing id or email")
	}
	return &info, nil
}

// findOrCreateGoogleUser resolves a Google identity to an account:
// by googleId first, then by linking to an existing email, else by
// creating a fresh verified account.
func (h *Handler) findOrCreateGoogleUser(ctx context.Context, info *googleUserInfo) (*User, error) {
	user, err := h.repo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = h.repo.GetUserByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		// link the Google identity to the existing local account
		update := map[string]interface{}{"googleId": info.ID}
		if user.Avatar == "" {
			update["avatar"] = info.Picture
		}
		if err := h.repo.UpdateUser(ctx, user.ID, update); err != nil {
			return nil, err
		}
		user.GoogleID = info.ID
		return user, nil
	}

	user = &User{
		Username:   generateUsername(info.Name),
		Email:      info.Email,
		GoogleID:   info.ID,
		Avatar:     info.Picture,
		IsVerified: true,
		Profile: Profile{
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
		},
	}
	if err := h.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// generateUsername derives a unique-enough username from a display name by
// appending a random suffix. The unique index still backstops collisions.
func generateUsername(displayName string) string {
	base := strings.ToLower(strings.ReplaceAll(displayName, " ", ""))
	if base == "" {
		base = "user"
	}
	// Truncate on runes so a multi-byte display name can't leave an
	// invalid UTF-8 username behind.
	if runes := []rune(base); len(runes) > 20 {
		base = string(runes[:20])
	}

	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return base + hex.EncodeToString(buf)
}
