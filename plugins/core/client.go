package core

import (
	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/tools"
)

// Client manages the core set of local tools. These need no credentials and
// are always registered.
type Client struct {
	DateTool     *DateTool
	CurrencyTool *CurrencyTool
}

// NewClient initializes the core plugin and registers its tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry) *Client {
	return &Client{
		DateTool:     NewDateTool(gk, registry),
		CurrencyTool: NewCurrencyTool(gk, registry),
	}
}
