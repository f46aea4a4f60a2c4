package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/domain/user"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"
	ucauth "jobpath/internal/usecase/auth"
	ucuser "jobpath/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute

	googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type AuthHandler struct {
	uc          usecase.AuthUsecase
	users       ucuser.Usecase
	oauth       *oauth2.Config
	frontendURL string
}

func NewAuthHandler(uc usecase.AuthUsecase, users ucuser.Usecase, cfg config.Config) *AuthHandler {
	h := &AuthHandler{
		uc:          uc,
		users:       users,
		frontendURL: cfg.App.FrontendURL,
	}
	if cfg.GoogleConfigured() {
		h.oauth = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.CallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return h
}

func (h *AuthHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	if public != nil {
		public.Post("/register", h.Register)
		public.Post("/login", h.Login)
		public.Post("/logout", h.Logout)
		public.Post("/refresh", h.Refresh)
		public.Get("/google", h.GoogleLogin)
		public.Get("/google/callback", h.GoogleCallback)
	}
	if protected != nil {
		protected.Get("/me", h.Me)
		protected.Put("/profile", h.UpdateProfile)
		protected.Delete("/account", h.DeleteAccount)
	}
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if errs := dto.Check(req); errs.HasErrors() {
		return middleware.NewValidationError(errs)
	}

	usr, pair, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusCreated, "User registered successfully", authPayload(usr, pair))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if errs := dto.Check(req); errs.HasErrors() {
		return middleware.NewValidationError(errs)
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "Login successful", authPayload(usr, pair))
}

// Logout is stateless: tokens are bearer-only, so the server has nothing to
// revoke. The endpoint exists so clients have a uniform place to end a session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	pair, err := h.uc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "Token refreshed successfully", fiber.Map{
		"token":        pair.Access,
		"refreshToken": pair.Refresh,
	})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	usr, err := h.users.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserError(err)
	}

	return response.Success(c, fiber.StatusOK, "", fiber.Map{"user": dto.NewUserResponse(usr)})
}

func (h *AuthHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.users.UpdateProfile(c.Context(), userID, ucuser.UpdateProfileInput{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		return mapUserError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile updated successfully", fiber.Map{"user": dto.NewUserResponse(usr)})
}

func (h *AuthHandler) DeleteAccount(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	if err := h.users.DeleteAccount(c.Context(), userID); err != nil {
		return mapUserError(err)
	}

	return response.Success(c, fiber.StatusOK, "Account deleted successfully", nil)
}

// GoogleLogin starts the OAuth dance: set a one-shot state cookie and hand
// the browser to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c fiber.Ctx) error {
	if h.oauth == nil {
		return middleware.NewAppError(fiber.StatusNotImplemented, "Google login is not configured", nil, nil)
	}

	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(oauthStateTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect().To(h.oauth.AuthCodeURL(state))
}

// GoogleCallback finishes the flow. Failures never render JSON here: the
// browser is mid-redirect, so both outcomes land back on the frontend.
func (h *AuthHandler) GoogleCallback(c fiber.Ctx) error {
	if h.oauth == nil {
		return middleware.NewAppError(fiber.StatusNotImplemented, "Google login is not configured", nil, nil)
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return h.redirectLoginError(c)
	}
	c.ClearCookie(oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		return h.redirectLoginError(c)
	}

	token, err := h.oauth.Exchange(c.Context(), code)
	if err != nil {
		return h.redirectLoginError(c)
	}

	profile, err := fetchGoogleProfile(c.Context(), h.oauth, token)
	if err != nil {
		return h.redirectLoginError(c)
	}

	_, pair, err := h.uc.LoginWithGoogle(c.Context(), profile)
	if err != nil {
		return h.redirectLoginError(c)
	}

	redirect := h.frontendURL + "/auth/success?token=" + url.QueryEscape(pair.Access) +
		"&refresh=" + url.QueryEscape(pair.Refresh)
	return c.Redirect().To(redirect)
}

func (h *AuthHandler) redirectLoginError(c fiber.Ctx) error {
	return c.Redirect().To(h.frontendURL + "/login?error=auth_failed")
}

func fetchGoogleProfile(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (ucauth.GoogleProfile, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return ucauth.GoogleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ucauth.GoogleProfile{}, errors.New("userinfo request failed")
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ucauth.GoogleProfile{}, err
	}

	return ucauth.GoogleProfile{
		ID:     info.ID,
		Email:  info.Email,
		Name:   info.Name,
		Avatar: info.Picture,
	}, nil
}

func authPayload(usr user.User, pair usecase.TokenPair) fiber.Map {
	return fiber.Map{
		"user":         dto.NewUserResponse(usr),
		"token":        pair.Access,
		"refreshToken": pair.Refresh,
	}
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "User with this email already exists", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrAccountDeactivated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Account has been deactivated.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token has expired.", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token.", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
