package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Execution is a completed buy or sell reported by the trading bot.
// The sell-only fields carry the realized result and are pointers so
// their absence can be told apart from zero.
type Execution struct {
	Side          Side            `json:"side"`
	Crypto        string          `json:"crypto"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	NetTotal      decimal.Decimal `json:"net_total"`
	OrderID       string          `json:"order_id"`

	ProfitLossPercentage *decimal.Decimal `json:"profit_loss_percentage,omitempty"`
	ProfitLossUSDT       *decimal.Decimal `json:"profit_loss_usdt,omitempty"`
	AvgBuyPrice          *decimal.Decimal `json:"avg_buy_price,omitempty"`
	SellPrice            *decimal.Decimal `json:"sell_price,omitempty"`
}

// ValidationError names the offending field so handlers can echo it
// back to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Execution) Validate() error {
	if !e.Side.Valid() {
		return &ValidationError{Field: "side", Reason: `must be "BUY" or "SELL"`}
	}
	if strings.TrimSpace(e.Crypto) == "" {
		return &ValidationError{Field: "crypto", Reason: "is required"}
	}

	positive := []struct {
		name  string
		value decimal.Decimal
	}{
		{"price", e.Price},
		{"quantity", e.Quantity},
		{"total_cost", e.TotalCost},
		{"fee_percentage", e.FeePercentage},
		{"fee_amount", e.FeeAmount},
		{"net_total", e.NetTotal},
	}
	for _, f := range positive {
		if !f.value.IsPositive() {
			return &ValidationError{Field: f.name, Reason: "must be a positive number"}
		}
	}

	if strings.TrimSpace(e.OrderID) == "" {
		return &ValidationError{Field: "order_id", Reason: "is required"}
	}

	if e.Side == SideSell {
		sellOnly := []struct {
			name  string
			value *decimal.Decimal
		}{
			{"profit_loss_percentage", e.ProfitLossPercentage},
			{"profit_loss_usdt", e.ProfitLossUSDT},
			{"avg_buy_price", e.AvgBuyPrice},
			{"sell_price", e.SellPrice},
		}
		for _, f := range sellOnly {
			if f.value == nil {
				return &ValidationError{Field: f.name, Reason: "is required for SELL executions"}
			}
		}
	}

	return nil
}
