package coingecko

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/coinfolio"
)

// Coin is a search result.
type Coin struct {
	ID     coinfolio.ProviderID
	Symbol string
	Name   string
	Rank   int // market cap rank, 0 when unranked
}

// Search looks coins up by name or symbol. It is meant to help extending the
// symbol map, not for pricing.
func (c *Client) Search(ctx context.Context, query string) ([]Coin, error) {
	addr := c.baseURL + "/search?" + url.Values{"query": {query}}.Encode()

	// the payload lists coins, exchanges, categories, nfts... only coins matters.
	var jobj any
	if _, err := c.getJSON(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", query, err)
	}
	path := "$.coins[*]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing search result: %q %w", path, err)
	}
	jlist, _ := jval.([]any)

	coins := make([]Coin, 0, len(jlist))
	for _, item := range jlist {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		if id == "" {
			continue
		}
		coin := Coin{ID: coinfolio.ProviderID(id)}
		coin.Symbol, _ = obj["symbol"].(string)
		coin.Symbol = coinfolio.NormalizeSymbol(coin.Symbol)
		coin.Name, _ = obj["name"].(string)
		// market_cap_rank is null for unranked coins.
		if rank, ok := obj["market_cap_rank"].(float64); ok {
			coin.Rank = int(rank)
		}
		coins = append(coins, coin)
	}
	return coins, nil
}
