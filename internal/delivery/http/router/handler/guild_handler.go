package handler

import (
	"log/slog"
	"net/http"
	"time"

	"voidbot/internal/delivery/http/response"
	"voidbot/internal/domain/entity"
	"voidbot/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GuildHandler holds dependencies for guild-related handlers.
type GuildHandler struct {
	uc     usecase.GuildUsecase
	logger *slog.Logger
}

// NewGuildHandler is the constructor for GuildHandler, injected by Fx.
func NewGuildHandler(uc usecase.GuildUsecase, logger *slog.Logger) *GuildHandler {
	return &GuildHandler{
		uc:     uc,
		logger: logger,
	}
}

// guildResponse is the wire shape for a manageable guild.
type guildResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
	Owner   bool   `json:"owner"`
	Active  bool   `json:"active"`
}

// selectionResponse is the wire shape for the active guild selection.
type selectionResponse struct {
	GuildID   string    `json:"guild_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGuildResponses(guilds []*entity.Guild, activeGuildID string) []guildResponse {
	out := make([]guildResponse, 0, len(guilds))
	for _, g := range guilds {
		out = append(out, guildResponse{
			ID:      g.ID,
			Name:    g.Name,
			IconURL: g.IconURL(),
			Owner:   g.Owner,
			Active:  g.ID == activeGuildID,
		})
	}

	return out
}

// ListGuilds returns the guilds the caller can manage, with their current
// dashboard selection flagged.
func (h *GuildHandler) ListGuilds(c echo.Context) error {
	userID, sessionID, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.ListGuilds(c.Request().Context(), userID, sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"guilds":          newGuildResponses(out.Guilds, out.ActiveGuildID),
		"active_guild_id": out.ActiveGuildID,
	}, "Guilds retrieved successfully")
}

// SetActiveGuild replaces the caller's active guild selection.
func (h *GuildHandler) SetActiveGuild(c echo.Context) error {
	userID, sessionID, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input struct {
		GuildID string `json:"guild_id"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid guild selection input")
	}

	if err := h.uc.SetActiveGuild(c.Request().Context(), userID, sessionID, input.GuildID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"guild_id": input.GuildID}, "Active guild set successfully")
}

// GetActiveGuild returns the caller's current selection, or null when none.
func (h *GuildHandler) GetActiveGuild(c echo.Context) error {
	userID, _, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	selection, err := h.uc.GetActiveGuild(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	if selection == nil {
		return response.Success(c, http.StatusOK, nil, "No guild is currently selected")
	}

	return response.Success(c, http.StatusOK, selectionResponse{
		GuildID:   selection.GuildID,
		UpdatedAt: selection.UpdatedAt,
	}, "Active guild retrieved successfully")
}

// ClearActiveGuild drops the caller's selection.
func (h *GuildHandler) ClearActiveGuild(c echo.Context) error {
	userID, _, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ClearActiveGuild(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Active guild cleared successfully")
}

// BuildInvite returns the bot invite URL for the guild in the path.
func (h *GuildHandler) BuildInvite(c echo.Context) error {
	userID, _, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.BuildInvite(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"invite_url": out.URL}, "Invite URL generated successfully")
}

// BuildInviteQR returns the invite URL rendered as a PNG QR code.
func (h *GuildHandler) BuildInviteQR(c echo.Context) error {
	userID, _, err := identityFromContext(c)
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.uc.BuildInviteQR(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
