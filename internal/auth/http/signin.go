package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/service"
	"github.com/aussiebroadwan/signin/pkg/authsdk"
	"github.com/aussiebroadwan/signin/pkg/httpx"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// SignInHandler serves the unauthenticated half of the flow: password login,
// email code verification and code resend.
type SignInHandler struct {
	LoginService *service.LoginService
	Cookie       httpx.CookieConfig
}

// HandleLogin checks a password and either signs the user in or starts an
// email code challenge.
//
//	@Summary		Sign in with email and password
//	@Description	Accounts with both two-factor switches on receive an emailed 6-digit code and must call verify-email-2fa.
//	@Description	All other accounts are signed in immediately and receive the session cookie.
//	@Tags			Sign-in
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"Challenge issued, or signed in"
//	@Failure		400		{object}	authsdk.MessageResponse	"Invalid body or credentials"
//	@Failure		429		{object}	authsdk.MessageResponse	"Rate limited"
//	@Failure		500		{object}	authsdk.MessageResponse	"Code could not be sent"
//	@Router			/api/auth/login [post].
func (h *SignInHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.LoginService.Login(ctx, req.Email, req.Password, req.RememberMe)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		slogx.FromContext(ctx).Info("login rejected")
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	case errors.Is(err, service.ErrCodeDelivery):
		httpx.WriteMessage(w, http.StatusInternalServerError, msgCodeDelivery)
		return
	default:
		slogx.FromContext(ctx).Error("login failed", "err", err)
		writeUnexpected(w)
		return
	}

	if result.Challenged() {
		httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
			RequiresEmailTwoFactor: true,
			Email:                  result.Challenge.Email,
		})
		return
	}

	h.setCookie(w, result.Session)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Success: true,
		User:    userPayload(result.User),
	})
}

// HandleVerify completes an email challenge.
//
//	@Summary		Verify an emailed sign-in code
//	@Description	A code is accepted once. Wrong codes may be retried until the code expires.
//	@Tags			Sign-in
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyEmail2FARequest	true	"Email and code"
//	@Success		200		{object}	authsdk.SignInResponse			"Signed in"
//	@Failure		400		{object}	authsdk.MessageResponse			"Invalid body, or invalid or expired code"
//	@Failure		429		{object}	authsdk.MessageResponse			"Rate limited"
//	@Failure		500		{object}	authsdk.MessageResponse			"Internal server error"
//	@Router			/api/auth/verify-email-2fa [post].
func (h *SignInHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.VerifyEmail2FARequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	signedIn, err := h.LoginService.Verify(ctx, req.Email, req.Code, req.RememberMe)
	if errors.Is(err, service.ErrInvalidCode) {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidCode)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("code verification failed", "err", err)
		writeUnexpected(w)
		return
	}

	h.setCookie(w, signedIn.Session)
	httpx.WriteJSON(w, http.StatusOK, authsdk.SignInResponse{
		Success: true,
		User:    userPayload(signedIn.User),
	})
}

// HandleResend issues a replacement code.
//
//	@Summary		Resend the sign-in code
//	@Description	Issues and emails a new code. Any earlier code for the account stops working.
//	@Tags			Sign-in
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResendEmail2FARequest	true	"Email"
//	@Success		200		{object}	authsdk.MessageResponse			"Code sent"
//	@Failure		400		{object}	authsdk.MessageResponse			"Email two-factor not enabled"
//	@Failure		429		{object}	authsdk.MessageResponse			"Rate limited"
//	@Failure		500		{object}	authsdk.MessageResponse			"Code could not be sent"
//	@Router			/api/auth/resend-email-2fa [post].
func (h *SignInHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.ResendEmail2FARequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.LoginService.Resend(ctx, req.Email)
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, msgCodeResent)
	case errors.Is(err, service.ErrTwoFactorNotApplicable):
		httpx.WriteMessage(w, http.StatusBadRequest, msgNotApplicable)
	case errors.Is(err, service.ErrCodeDelivery):
		httpx.WriteMessage(w, http.StatusInternalServerError, msgCodeDelivery)
	default:
		slogx.FromContext(ctx).Error("code resend failed", "err", err)
		writeUnexpected(w)
	}
}

func (h *SignInHandler) setCookie(w http.ResponseWriter, s *domain.IssuedSession) {
	httpx.SetSessionCookie(w, h.Cookie, s.Token, s.ExpiresAt, s.Persistent)
}
