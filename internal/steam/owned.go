package steam

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// OwnedGame is one row of GetOwnedGames: app id, display name and total
// playtime converted from minutes to hours (2 decimals).
type OwnedGame struct {
	AppID string
	Name  string
	Hours float64
}

// OwnedGames fetches the account's library with playtime. Requires an
// API key and steam id.
func (c *Client) OwnedGames(ctx context.Context) ([]OwnedGame, error) {
	if c.apiKey == "" || c.steamID == "" {
		return nil, errors.New("steam: STEAM_API_KEY and STEAM_ID are required for owned-games sync")
	}
	url := fmt.Sprintf("%s?key=%s&steamid=%s&include_appinfo=true&include_played_free_games=true", ownedAPIURL, c.apiKey, c.steamID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var out []OwnedGame
	for _, g := range gjson.GetBytes(body, "response.games").Array() {
		appID := g.Get("appid")
		if !appID.Exists() {
			continue
		}
		out = append(out, OwnedGame{
			AppID: appID.String(),
			Name:  g.Get("name").String(),
			Hours: math.Round(g.Get("playtime_forever").Float()/60*100) / 100,
		})
	}
	c.log.Info().Int("games", len(out)).Msg("owned games fetched")
	return out, nil
}
