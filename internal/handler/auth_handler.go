/*
Package handler provides HTTP handler functions for authentication and account management.
*/
package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"letteram/internal/app/attachment"
	"letteram/internal/app/db"
	"letteram/internal/app/user"
	"letteram/internal/pkg/auth/jwt"
	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/logx"
	"letteram/internal/pkg/req"
	"letteram/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// HandleChallenge issues a Proof-of-Work nonce that must be solved before signup.
func HandleChallenge(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"nonce":      deps.Pow.GenerateNonce(),
			"difficulty": deps.Pow.Difficulty(),
		})
	}
}

type VerifyChallengeInput struct {
	Nonce   string `json:"nonce"`
	Counter string `json:"counter"`
}

// HandleVerifyChallenge validates a solved challenge and issues the short-lived
// proof token that authorizes one signup attempt.
func HandleVerifyChallenge(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VerifyChallengeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		token, err := deps.Pow.ValidateProof(input.Nonce, input.Counter)
		if err != nil {
			logx.Warn("PoW proof rejected", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrPowChallengeInvalid))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"powToken": token,
		})
	}
}

type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup creates a new account. The request must carry a valid PoW proof
// token; the password is stored as a bcrypt hash.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		if !deps.Pow.CheckProofToken(r) {
			resp.RespondError(w, r, errs.NewError(errs.ErrPowChallengeRequired))
			return
		}

		var input SignupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		nameLen := utf8.RuneCountInString(input.FullName)
		if nameLen < 1 || nameLen > 100 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidFullName))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < 6 || passwordLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		account, err := deps.Users.Create(r.Context(), input.Email, input.FullName, string(hashedPassword))
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("signup conflict: email already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.UpdateLastLogin(r.Context(), account.ID); err != nil {
			logx.Error(err, "signup: failed to update last_login_at", "user_id", account.ID)
		}

		token, err := issueToken(deps, account)
		if err != nil {
			logx.Error(err, "failed to generate token after signup")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  account,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies user credentials and issues a JWT token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity := jwt.GetPayloadFromContext(r); identity != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		account, hash, err := deps.Users.GetByEmail(r.Context(), input.Email)
		if err != nil {
			logx.Warn("login: user fetch failed", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "user_id", account.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := deps.Users.UpdateLastLogin(r.Context(), account.ID); err != nil {
			logx.Error(err, "login: failed to update last_login_at", "user_id", account.ID)
		}

		token, err := issueToken(deps, account)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  account,
		})
	}
}

// HandleCheck returns the authenticated caller's current profile.
func HandleCheck(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		account, err := deps.Users.GetByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}
			logx.Error(err, "check: user fetch failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": account,
		})
	}
}

type UpdateProfileInput struct {
	ProfilePic string `json:"profilePic"`
}

// HandleUpdateProfile stores a new avatar image and updates the account. The
// previous avatar object is deleted from storage best-effort.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.ProfilePic == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		oldAccount, err := deps.Users.GetByID(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		url, err := deps.Uploads.Upload(r.Context(), input.ProfilePic, attachment.Options{Folder: "avatars"})
		if err != nil {
			resp.RespondServiceError(w, r, err)
			return
		}

		updated, err := deps.Users.UpdateProfilePic(r.Context(), identity.ID, url)
		if err != nil {
			logx.Error(err, "failed to update profile pic", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if oldKey := attachment.KeyFromURL(deps.Storage, oldAccount.ProfilePic); oldKey != "" && oldAccount.ProfilePic != url {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = deps.Storage.Delete(ctx, k)
			}(oldKey)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": updated,
		})
	}
}

// issueToken signs an identity token for the given account.
func issueToken(deps *AppDeps, account user.User) (string, error) {
	payload := &jwt.Payload{
		ID:       account.ID,
		FullName: account.FullName,
	}
	return jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
}
