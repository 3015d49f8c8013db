package agent

import (
	"context"

	"google.golang.org/genai"
)

// Model is the Gemini model used by every chat.
const Model = "gemini-2.5-flash"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	e := NewExpert("Facilitator", "")
	e.Config = &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclaration(experts)},
		},
		SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user holds a crypto currency portfolio. He is here to understand it:
			its allocation, its return on investment, the news about the coins he holds.
			Devise a plan of questions to ask to each expert and come up with the best response.
			Always check the portfolio with the Accountant first, the user assumes you know his coins.
			Answer in markdown, short and factual. Never give investment advice.
		`),
	}
	e.Library = NewLibrary(experts)
	return e
}

// NewMarketAnalyst returns an expert grounded on Google Search for market news.
func NewMarketAnalyst() *Expert {
	e := NewExpert("MarketAnalyst", `This is an expert of the crypto currency markets,
		aware of the latest news about coins, tokens, exchanges and regulations.
		Ask the MarketAnalyst whenever you need recent or grounding information.`)
	e.Config = &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SystemInstruction: instruction(`
			You are an expert of crypto currency markets. You leverage Google Search to
			ground your assertions in a solid truth, and you know how to relate the latest
			news to the coins of the user's request.
		`),
	}
	return e
}

// ValuationFunc returns the current portfolio valuation as markdown.
type ValuationFunc func(ctx context.Context) (string, error)

// NewAccountant returns the expert in charge of the user's portfolio figures.
func NewAccountant(valuation ValuationFunc) *Expert {
	lib := []Function{NewValuation(valuation)}

	e := NewExpert("Accountant", `This is the Accountant. He knows the user's holdings and
		values them at current prices: cost basis, current value and return on investment
		of every coin and of the whole portfolio.`)
	e.Config = &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclaration(lib)},
		},
		SystemInstruction: instruction(`
			You are an accountant in charge of the user's crypto currency portfolio.
			Use the Valuation tool to get the holdings and their value at current prices.
			Prices are in USD. A coin without a current price counts as $0.
			You are part of a team of experts, they might ask you questions about the
			portfolio, pardon their approximative language and figure out what they meant.
		`),
	}
	e.Library = NewLibrary(lib)
	return e
}

// NewValuation returns the "Valuation" function, backed by valuation.
func NewValuation(valuation ValuationFunc) *Func {
	const name = "Valuation"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Valuation values the user's portfolio at current prices.

			It lists every holding with its amount, buy price, current price, cost basis,
			current value and ROI, followed by the portfolio totals.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document with the holdings table and the totals table.",
			},
		},
		Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			md, err := valuation(ctx)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, md)
		},
	}
}
