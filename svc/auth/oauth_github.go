package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubOAuthConfig holds configuration for the GitHub OAuth provider.
type GitHubOAuthConfig struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"user:email"`
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGitHubAdapter creates a GitHub OAuth provider adapter.
func NewGitHubAdapter(cfg GitHubOAuthConfig) ProviderAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *githubAdapter) ProviderID() string {
	return ProviderGithub
}

// AuthURL builds the GitHub authorization URL with the given state token.
func (a *githubAdapter) AuthURL(state string) (string, error) {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// ResolveProfile exchanges the authorization code for profile information.
// GitHub's /user endpoint doesn't report verification, so emails always come
// from /user/emails where the verified flag is available.
func (a *githubAdapter) ResolveProfile(ctx context.Context, code string) (Profile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return Profile{}, ErrInvalidCode
	}

	u, err := a.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch github user: %w", err)
	}

	emails, err := a.fetchEmails(ctx, tok.AccessToken)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch github emails: %w", err)
	}

	var email string
	var verified bool

	for _, e := range emails {
		if e.Primary && e.Verified {
			email = e.Email
			verified = true
			break
		}
	}
	if email == "" {
		for _, e := range emails {
			if e.Verified {
				email = e.Email
				verified = true
				break
			}
		}
	}

	if email == "" {
		return Profile{}, ErrNoPrimaryEmail
	}

	return Profile{
		ProviderUserID: strconv.FormatInt(u.ID, 10),
		Email:          email,
		EmailVerified:  verified,
	}, nil
}

func (a *githubAdapter) fetchUser(ctx context.Context, accessToken string) (*ghUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var user ghUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *githubAdapter) fetchEmails(ctx context.Context, accessToken string) ([]ghEmail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user/emails", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var emails []ghEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return nil, err
	}
	return emails, nil
}

type ghUser struct {
	ID int64 `json:"id"`
}

type ghEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

var _ ProviderAdapter = (*githubAdapter)(nil)
