package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
	"github.com/mathewar/apty/internal/server/middleware"
)

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		User        *domain.User      `json:"user"`
		Permissions []auth.Permission `json:"permissions"`
	}
}

type RegisterInput struct {
	Body struct {
		Email      string     `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password   string     `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
		ResidentID *uuid.UUID `json:"resident_id,omitempty" doc:"Linked resident profile"`
	}
}

type RegisterOutput struct {
	Body *domain.User
}

type LogoutInput struct {
	Token string `cookie:"apty_session" required:"false"`
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		LoggedOut bool `json:"logged_out"`
	}
}

type MeOutput struct {
	Body struct {
		UserID      uuid.UUID         `json:"user_id"`
		Email       string            `json:"email"`
		Role        string            `json:"role"`
		Permissions []auth.Permission `json:"permissions"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		user, token, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{SetCookie: sessionCookie(token, int(authSvc.SessionTTL().Seconds()))}
		out.Body.User = user
		out.Body.Permissions = auth.ResolvePrincipal(&auth.Session{
			UserID: user.ID, Email: user.Email, Role: user.Role,
		}).Permissions()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register a resident account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := authSvc.Register(ctx, input.Body.Email, input.Body.Password, input.Body.ResidentID, "")
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) || errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("user already exists")
			}
			return nil, huma.Error500InternalServerError("failed to register user", err)
		}

		return &RegisterOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/auth/logout",
		Summary:     "Logout and invalidate the session",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
		if input.Token != "" {
			if err := authSvc.Logout(ctx, input.Token); err != nil {
				return nil, huma.Error500InternalServerError("logout failed", err)
			}
		}

		out := &LogoutOutput{SetCookie: sessionCookie("", -1)}
		out.Body.LoggedOut = true
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Describe the current principal",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		p, err := requireAuthenticated(ctx)
		if err != nil {
			return nil, err
		}

		out := &MeOutput{}
		out.Body.UserID = p.UserID
		out.Body.Email = p.Email
		out.Body.Role = p.Role
		out.Body.Permissions = p.Permissions()
		return out, nil
	})
}

func sessionCookie(token string, maxAge int) http.Cookie {
	return http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
