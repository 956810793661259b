package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/signin/internal/auth/service"
	"github.com/aussiebroadwan/signin/pkg/authsdk"
	"github.com/aussiebroadwan/signin/pkg/httpx"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// AccountHandler serves the endpoints that need a session.
type AccountHandler struct {
	AccountService *service.AccountService
	SessionService *service.SessionService
	Cookie         httpx.CookieConfig
}

// HandleUserData returns the signed-in account.
//
//	@Summary		Get the signed-in user
//	@Tags			Account
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.UserPayload		"Account details"
//	@Failure		401	{object}	authsdk.MessageResponse	"Not signed in"
//	@Failure		404	{object}	authsdk.MessageResponse	"User not found"
//	@Router			/api/auth/userdata [get].
func (h *AccountHandler) HandleUserData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	user, err := h.AccountService.GetUserData(ctx, userID)
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load user", "err", err)
		writeUnexpected(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userPayload(&user))
}

// HandleToggleTwoFactor sets the master two-factor switch.
//
//	@Summary		Turn two-factor authentication on or off
//	@Description	Turning it off withdraws any outstanding email code.
//	@Tags			Account
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ToggleRequest					true	"New value"
//	@Success		200		{object}	authsdk.ToggleTwoFactorResponse	"Updated"
//	@Failure		400		{object}	authsdk.MessageResponse			"Invalid body or update failed"
//	@Failure		401		{object}	authsdk.MessageResponse			"Not signed in"
//	@Failure		404		{object}	authsdk.MessageResponse			"User not found"
//	@Router			/api/auth/toggle-2fa [post].
func (h *AccountHandler) HandleToggleTwoFactor(w http.ResponseWriter, r *http.Request) {
	enabled, ok := h.toggle(w, r, h.AccountService.SetTwoFactorEnabled)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.ToggleTwoFactorResponse{
		Message:          fmt.Sprintf("Two-factor authentication %s.", enabledWord(enabled)),
		TwoFactorEnabled: enabled,
	})
}

// HandleToggleEmailTwoFactor sets the email two-factor switch.
//
//	@Summary		Turn email codes on or off
//	@Description	Sign-in asks for an emailed code only when this and the master switch are both on.
//	@Tags			Account
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ToggleRequest						true	"New value"
//	@Success		200		{object}	authsdk.ToggleEmailTwoFactorResponse	"Updated"
//	@Failure		400		{object}	authsdk.MessageResponse				"Invalid body or update failed"
//	@Failure		401		{object}	authsdk.MessageResponse				"Not signed in"
//	@Failure		404		{object}	authsdk.MessageResponse				"User not found"
//	@Router			/api/auth/toggle-email-2fa [post].
func (h *AccountHandler) HandleToggleEmailTwoFactor(w http.ResponseWriter, r *http.Request) {
	enabled, ok := h.toggle(w, r, h.AccountService.SetEmailTwoFactorEnabled)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.ToggleEmailTwoFactorResponse{
		Message:               fmt.Sprintf("Email two-factor authentication %s.", enabledWord(enabled)),
		EmailTwoFactorEnabled: enabled,
	})
}

type toggleFunc func(ctx context.Context, userID string, enable bool) (bool, error)

// toggle decodes the request and applies set. It writes the failure response
// itself and reports false when it did.
func (h *AccountHandler) toggle(w http.ResponseWriter, r *http.Request, set toggleFunc) (bool, bool) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	var req authsdk.ToggleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false, false
	}

	enabled, err := set(ctx, userID, req.Enable)
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteMessage(w, http.StatusNotFound, msgUserNotFound)
		return false, false
	}
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to update two-factor setting", "err", err)
		httpx.WriteMessage(w, http.StatusBadRequest, msgUpdateFailed)
		return false, false
	}
	return enabled, true
}

// HandleLogout ends the current session.
//
//	@Summary		Sign out
//	@Tags			Account
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"Signed out"
//	@Failure		401	{object}	authsdk.MessageResponse	"Not signed in"
//	@Router			/api/auth/logout [post].
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := httpx.SessionIDFromContext(ctx)

	if err := h.SessionService.SignOut(ctx, sessionID); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke session", "session_id", sessionID, "err", err)
		writeUnexpected(w)
		return
	}

	httpx.ClearSessionCookie(w, h.Cookie)
	slogx.FromContext(ctx).Info("user logged out")
	httpx.WriteMessage(w, http.StatusOK, msgLoggedOut)
}
