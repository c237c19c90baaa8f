package mobile

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartServer(t *testing.T) {
	s, err := StartServer(t.TempDir(), "", "0")
	require.NoError(t, err)

	resp, err := http.Post("http://"+s.Addr()+"/api/new_game", "application/json", strings.NewReader(`{"depth":1}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		GameID string `json:"game_id"`
		Depth  int    `json:"depth"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	require.NotEmpty(t, body.GameID)
	require.Equal(t, 1, body.Depth)

	require.NoError(t, s.Stop())
	_, err = http.Get("http://" + s.Addr() + "/api/preferences")
	require.Error(t, err)
}
