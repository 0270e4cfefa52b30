package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	mockUsecase "voidbot/internal/mocks/usecase"
	"voidbot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuildHandler(t *testing.T) (*GuildHandler, *mockUsecase.MockGuildUsecase) {
	t.Helper()

	uc := mockUsecase.NewMockGuildUsecase(t)

	return NewGuildHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil))), uc
}

func TestGuildHandler_ListGuilds(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/discord/guilds", "")

	userID := uuid.New()
	sessionID := uuid.New()
	setIdentity(c, userID, sessionID)

	uc.On("ListGuilds", c.Request().Context(), userID, sessionID).Return(&usecase.ListGuildsOutput{
		Guilds: []*entity.Guild{
			{ID: "1", Name: "owned", Owner: true},
			{ID: "2", Name: "managed", IconHash: "abc", Permissions: entity.PermissionManageGuild},
		},
		ActiveGuildID: "2",
	}, nil)

	require.NoError(t, h.ListGuilds(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Guilds        []guildResponse `json:"guilds"`
			ActiveGuildID string          `json:"active_guild_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Guilds, 2)
	assert.Equal(t, "2", body.Data.ActiveGuildID)
	assert.False(t, body.Data.Guilds[0].Active)
	assert.True(t, body.Data.Guilds[1].Active)
	assert.Contains(t, body.Data.Guilds[1].IconURL, "cdn.discordapp.com/icons/2/abc")
	assert.Empty(t, body.Data.Guilds[0].IconURL)
}

func TestGuildHandler_ListGuilds_NoIdentity(t *testing.T) {
	h, _ := newGuildHandler(t)
	c, _ := newEchoContext(t, http.MethodGet, "/api/discord/guilds", "")

	err := h.ListGuilds(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}

func TestGuildHandler_SetActiveGuild(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodPut, "/api/guilds/active", `{"guild_id":"42"}`)

	userID := uuid.New()
	sessionID := uuid.New()
	setIdentity(c, userID, sessionID)

	uc.On("SetActiveGuild", c.Request().Context(), userID, sessionID, "42").Return(nil)

	require.NoError(t, h.SetActiveGuild(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuildHandler_SetActiveGuild_Rejected(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, _ := newEchoContext(t, http.MethodPut, "/api/guilds/active", `{"guild_id":"43"}`)

	userID := uuid.New()
	sessionID := uuid.New()
	setIdentity(c, userID, sessionID)

	uc.On("SetActiveGuild", c.Request().Context(), userID, sessionID, "43").
		Return(domainerrors.ErrValidationFailed)

	err := h.SetActiveGuild(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestGuildHandler_GetActiveGuild(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/guilds/active", "")

	userID := uuid.New()
	setIdentity(c, userID, uuid.New())

	uc.On("GetActiveGuild", c.Request().Context(), userID).Return(&entity.GuildSelection{
		UserID:    userID,
		GuildID:   "42",
		UpdatedAt: time.Now(),
	}, nil)

	require.NoError(t, h.GetActiveGuild(c))

	var body struct {
		Data selectionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "42", body.Data.GuildID)
}

func TestGuildHandler_GetActiveGuild_NoSelection(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/guilds/active", "")

	userID := uuid.New()
	setIdentity(c, userID, uuid.New())

	uc.On("GetActiveGuild", c.Request().Context(), userID).Return(nil, nil)

	require.NoError(t, h.GetActiveGuild(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "null", string(body.Data))
}

func TestGuildHandler_ClearActiveGuild(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodDelete, "/api/guilds/active", "")

	userID := uuid.New()
	setIdentity(c, userID, uuid.New())

	uc.On("ClearActiveGuild", c.Request().Context(), userID).Return(nil)

	require.NoError(t, h.ClearActiveGuild(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuildHandler_BuildInvite(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/guilds/42/invite", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	userID := uuid.New()
	setIdentity(c, userID, uuid.New())

	uc.On("BuildInvite", c.Request().Context(), userID, "42").Return(&usecase.InviteOutput{
		URL: "https://discord.com/oauth2/authorize?guild_id=42",
	}, nil)

	require.NoError(t, h.BuildInvite(c))

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Data["invite_url"], "guild_id=42")
}

func TestGuildHandler_BuildInviteQR(t *testing.T) {
	h, uc := newGuildHandler(t)
	c, rec := newEchoContext(t, http.MethodGet, "/api/guilds/42/invite/qr", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	userID := uuid.New()
	setIdentity(c, userID, uuid.New())

	png := []byte{0x89, 'P', 'N', 'G'}
	uc.On("BuildInviteQR", c.Request().Context(), userID, "42").Return(png, nil)

	require.NoError(t, h.BuildInviteQR(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}
