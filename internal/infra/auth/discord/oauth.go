// Package discord implements the OAuth2 authorization code flow and the
// resource fetches against the Discord API.
package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"voidbot/config"
	"voidbot/internal/domain/entity"
	"voidbot/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	authorizeURL   = "https://discord.com/oauth2/authorize"
	defaultAPIBase = "https://discord.com/api/v10"

	// Scopes the bot invite asks for on top of the permission bitfield.
	inviteScopes = "bot applications.commands"

	// Permission bitfield requested for the bot when no override is
	// configured.
	defaultBotPermissions int64 = 268446710

	requestTimeout = 15 * time.Second

	// Upstream error bodies are truncated to this many bytes before they
	// reach logs or wrapped errors.
	bodyPreviewLimit = 80
)

// OAuthService implements service.OAuthProvider against the Discord API.
type OAuthService struct {
	oauth          oauth2.Config
	clientID       string
	botPermissions int64
	apiBase        string
	client         *http.Client
}

// NewOAuthService creates a new Discord OAuth service
func NewOAuthService(cfg *config.Config) (service.OAuthProvider, error) {
	oc := cfg.DiscordOAuth
	if oc == nil || oc.ClientID == "" || oc.ClientSecret == "" || oc.RedirectURI == "" {
		return nil, errors.New("discord oauth client id, secret and redirect uri must be provided")
	}

	apiBase := oc.APIBaseURL
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	scopes := oc.Scopes
	if len(scopes) == 0 {
		scopes = []string{"identify", "email", "guilds"}
	}

	botPermissions := oc.BotPermissions
	if botPermissions <= 0 {
		botPermissions = defaultBotPermissions
	}

	return &OAuthService{
		oauth: oauth2.Config{
			ClientID:     oc.ClientID,
			ClientSecret: oc.ClientSecret,
			RedirectURL:  oc.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		clientID:       oc.ClientID,
		botPermissions: botPermissions,
		apiBase:        apiBase,
		client:         &http.Client{Timeout: requestTimeout},
	}, nil
}

// BuildAuthorizationURL constructs the Discord authorize URL carrying the
// given state token. prompt=consent forces the consent screen even for users
// who already authorized the application, so re-login always round-trips
// through Discord.
func (s *OAuthService) BuildAuthorizationURL(state string) (string, error) {
	if state == "" {
		return "", errors.New("state must not be empty")
	}

	return s.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// ExchangeCode redeems an authorization code for tokens. The redirectURI is
// sent verbatim in the exchange request; Discord rejects the redemption when
// it differs from the one used at authorization.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string, redirectURI string) (*service.OAuthToken, error) {
	conf := s.oauth
	if redirectURI != "" {
		conf.RedirectURL = redirectURI
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for token")
	}
	if token.AccessToken == "" {
		return nil, errors.New("token response carried no access token")
	}

	return &service.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}, nil
}

// FetchUser retrieves the identity of the token's owner.
func (s *OAuthService) FetchUser(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	var discordUser struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Avatar     string `json:"avatar"`
		Email      string `json:"email"`
		Verified   bool   `json:"verified"`
		Locale     string `json:"locale"`
	}

	if err := s.getJSON(ctx, "/users/@me", accessToken, &discordUser); err != nil {
		return nil, err
	}
	if discordUser.ID == "" {
		return nil, errors.New("user response carried no id")
	}

	return &service.OAuthUser{
		ID:          discordUser.ID,
		Username:    discordUser.Username,
		DisplayName: discordUser.GlobalName,
		AvatarHash:  discordUser.Avatar,
		Email:       discordUser.Email,
		Verified:    discordUser.Verified,
		Locale:      discordUser.Locale,
	}, nil
}

// FetchGuilds retrieves every guild the token's owner belongs to, unfiltered.
func (s *OAuthService) FetchGuilds(ctx context.Context, accessToken string) ([]*entity.Guild, error) {
	var discordGuilds []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Icon        string `json:"icon"`
		Owner       bool   `json:"owner"`
		Permissions string `json:"permissions"`
	}

	if err := s.getJSON(ctx, "/users/@me/guilds", accessToken, &discordGuilds); err != nil {
		return nil, err
	}

	guilds := make([]*entity.Guild, 0, len(discordGuilds))
	for _, g := range discordGuilds {
		// Discord serializes the permission bitfield as a decimal string
		// because it no longer fits in a JSON-safe integer.
		permissions, err := strconv.ParseInt(g.Permissions, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse permissions for guild %s", g.ID)
		}

		guilds = append(guilds, &entity.Guild{
			ID:          g.ID,
			Name:        g.Name,
			IconHash:    g.Icon,
			Owner:       g.Owner,
			Permissions: permissions,
		})
	}

	return guilds, nil
}

// BuildInviteURL constructs the bot invite URL, pre-selecting the guild and
// the permission set the bot needs.
func (s *OAuthService) BuildInviteURL(guildID string) string {
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("permissions", strconv.FormatInt(s.botPermissions, 10))
	params.Set("scope", inviteScopes)
	if guildID != "" {
		params.Set("guild_id", guildID)
		params.Set("disable_guild_select", "true")
	}

	return authorizeURL + "?" + params.Encode()
}

// getJSON performs an authenticated GET against the Discord API and decodes
// the response into out.
func (s *OAuthService) getJSON(ctx context.Context, path string, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+path, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to create request for %s", path)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.WithStack(service.ErrProviderTokenRevoked)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("request to %s failed with status %d: %s", path, resp.StatusCode, bodyPreview(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}

	return nil
}

// bodyPreview reads at most bodyPreviewLimit bytes of an error body so
// upstream HTML pages cannot flood the logs.
func bodyPreview(r io.Reader) string {
	preview, _ := io.ReadAll(io.LimitReader(r, bodyPreviewLimit))

	return string(preview)
}
