// Package steam talks to the public Steam web APIs: store prices for
// bundle weighting and GetOwnedGames for playtime refresh. Both are
// external collaborators; nothing here affects matching correctness.
package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	storeAPIURL = "https://store.steampowered.com/api/appdetails"
	ownedAPIURL = "https://api.steampowered.com/IPlayerService/GetOwnedGames/v0001/"
)

var ErrNoPrice = errors.New("steam: no price available")

type Client struct {
	http    *retryablehttp.Client
	apiKey  string
	steamID string
	country string // store country code for price lookups
	log     zerolog.Logger
}

func NewClient(apiKey, steamID, country string, log zerolog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 20 * time.Second
	rc.Logger = nil // zerolog below instead of retryablehttp's own
	if country == "" {
		country = "us"
	}
	return &Client{http: rc, apiKey: apiKey, steamID: steamID, country: country, log: log}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam: %s returned %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
