package steam

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// PriceSource is the narrow pricing contract the import flow consumes.
type PriceSource interface {
	// PriceOf returns the current store price for an app id, in the
	// client's configured currency. ErrNoPrice when the store has none
	// (free games, delisted apps).
	PriceOf(ctx context.Context, appID string) (float64, error)
}

// PriceOf fetches appdetails for one app and extracts price_overview.
func (c *Client) PriceOf(ctx context.Context, appID string) (float64, error) {
	url := fmt.Sprintf("%s?appids=%s&filters=price_overview&cc=%s", storeAPIURL, appID, c.country)
	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	app := gjson.GetBytes(body, appID)
	if !app.Get("success").Bool() {
		return 0, ErrNoPrice
	}
	price := app.Get("data.price_overview.final")
	if !price.Exists() {
		return 0, ErrNoPrice
	}
	// price_overview.final is in cents
	v := price.Float() / 100
	c.log.Debug().Str("app_id", appID).Float64("price", v).Msg("store price")
	return v, nil
}

// BundlePrices fetches prices for every app id. Any failure fails the
// whole lookup: a partial price set must never feed a weighted split.
func BundlePrices(ctx context.Context, src PriceSource, appIDs []string) (map[string]float64, float64, error) {
	prices := make(map[string]float64, len(appIDs))
	total := 0.0
	for _, id := range appIDs {
		p, err := src.PriceOf(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		prices[id] = p
		total += p
	}
	return prices, total, nil
}
