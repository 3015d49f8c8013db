package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	md "github.com/nao1215/markdown"
)

// SymbolsMarkdown renders the symbol table, in alphabetical order.
func SymbolsMarkdown(m coinfolio.SymbolMap) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Known symbols")

	symbols := m.Symbols()
	rows := make([][]string, 0, len(symbols))
	for _, s := range symbols {
		id, _ := m.Resolve(s)
		rows = append(rows, []string{s, string(id)})
	}
	doc.Table(md.TableSet{Header: []string{"Symbol", "CoinGecko id"}, Rows: rows})
	return doc.String()
}

// CoinsMarkdown renders search results for query.
func CoinsMarkdown(query string, coins []coingecko.Coin) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Coins matching %q", query))
	if len(coins) == 0 {
		doc.PlainText("No match.")
		return doc.String()
	}

	rows := make([][]string, 0, len(coins))
	for _, c := range coins {
		rank := "-"
		if c.Rank > 0 {
			rank = strconv.Itoa(c.Rank)
		}
		rows = append(rows, []string{c.Symbol, string(c.ID), c.Name, rank})
	}
	doc.Table(md.TableSet{Header: []string{"Symbol", "Id", "Name", "Rank"}, Rows: rows})
	return doc.String()
}
