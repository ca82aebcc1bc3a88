package ledger

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrentHoldings_WeightedAverageAndValue(t *testing.T) {
	trades := []TradeRecord{
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-01", "10", "100"),
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-10", "20", "130"),
		trade("C001", "Zerodha", "AAPL", Sell, "2024-02-01", "5", "140"),
	}
	holdings := CurrentHoldings(trades, "C001")
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	h := holdings[0]
	if !h.Quantity.Equal(dec("25")) {
		t.Errorf("Quantity = %s, want 25", h.Quantity)
	}
	if !h.AverageCost.Equal(dec("120")) {
		t.Errorf("AverageCost = %s, want 120", h.AverageCost)
	}
	// Last chronological trade's price is the market proxy.
	if !h.CurrentPrice.Equal(dec("140")) {
		t.Errorf("CurrentPrice = %s, want 140", h.CurrentPrice)
	}
	if !h.CurrentValue.Equal(dec("3500")) || !h.TotalInvested.Equal(dec("3000")) {
		t.Errorf("value/invested = %s/%s, want 3500/3000", h.CurrentValue, h.TotalInvested)
	}
	if !h.UnrealizedPnL.Equal(dec("500")) {
		t.Errorf("UnrealizedPnL = %s, want 500", h.UnrealizedPnL)
	}
	if h.AssetClass != AssetClassEquity {
		t.Errorf("AssetClass = %s", h.AssetClass)
	}
	// Only holding: full allocation.
	if !h.Allocation.Equal(dec("100")) {
		t.Errorf("Allocation = %s, want 100", h.Allocation)
	}
}

func TestCurrentHoldings_ClosedPositionExcluded(t *testing.T) {
	trades := []TradeRecord{
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-01", "10", "100"),
		trade("C001", "Zerodha", "AAPL", Sell, "2024-02-01", "10", "120"),
		trade("C001", "Zerodha", "MSFT", Buy, "2024-01-01", "5", "300"),
	}
	for _, holdings := range [][]Holding{
		CurrentHoldings(trades, "C001"),
		HoldingsByBroker(trades, "C001"),
	} {
		if len(holdings) != 1 || holdings[0].Symbol != "MSFT" {
			t.Errorf("holdings = %+v, want only MSFT (AAPL fully sold)", holdings)
		}
	}
}

func TestCurrentHoldings_PrimaryBrokerIsChronologicalFirst(t *testing.T) {
	trades := []TradeRecord{
		// Zerodha traded first even though Groww sorts first alphabetically.
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-01", "10", "100"),
		trade("C001", "Groww", "AAPL", Buy, "2024-03-01", "5", "110"),
	}
	holdings := CurrentHoldings(trades, "C001")
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if holdings[0].Platform != "Zerodha" {
		t.Errorf("Platform = %s, want Zerodha (first chronological)", holdings[0].Platform)
	}
	if !reflect.DeepEqual(holdings[0].AllPlatforms, []string{"Groww", "Zerodha"}) {
		t.Errorf("AllPlatforms = %v", holdings[0].AllPlatforms)
	}
}

func TestHoldings_QuantityConservationAcrossViews(t *testing.T) {
	trades := []TradeRecord{
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-01", "10", "100"),
		trade("C001", "Groww", "AAPL", Buy, "2024-01-05", "8", "105"),
		trade("C001", "Zerodha", "AAPL", Sell, "2024-02-01", "4", "110"),
		trade("C001", "Groww", "AAPL", Sell, "2024-02-05", "2", "112"),
	}
	netFromTrades := decimal.Zero
	for _, tr := range trades {
		if tr.Action == Buy {
			netFromTrades = netFromTrades.Add(tr.Qty)
		} else {
			netFromTrades = netFromTrades.Sub(tr.Qty)
		}
	}

	aggregated := CurrentHoldings(trades, "C001")
	if len(aggregated) != 1 || !aggregated[0].Quantity.Equal(netFromTrades) {
		t.Errorf("aggregated quantity = %+v, want %s", aggregated, netFromTrades)
	}

	perBroker := HoldingsByBroker(trades, "C001")
	if len(perBroker) != 2 {
		t.Fatalf("got %d per-broker holdings, want 2", len(perBroker))
	}
	sum := decimal.Zero
	for _, h := range perBroker {
		sum = sum.Add(h.Quantity)
	}
	if !sum.Equal(netFromTrades) {
		t.Errorf("per-broker sum = %s, want %s", sum, netFromTrades)
	}
}

func TestHoldings_TwoPassAllocation(t *testing.T) {
	trades := []TradeRecord{
		trade("C001", "Zerodha", "AAPL", Buy, "2024-01-01", "10", "100"), // value 1000
		trade("C001", "Zerodha", "MSFT", Buy, "2024-01-01", "10", "300"), // value 3000
	}
	holdings := CurrentHoldings(trades, "C001")
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(holdings))
	}
	byName := map[string]Holding{}
	for _, h := range holdings {
		byName[h.Symbol] = h
	}
	if !byName["AAPL"].Allocation.Equal(dec("25")) {
		t.Errorf("AAPL allocation = %s, want 25", byName["AAPL"].Allocation)
	}
	if !byName["MSFT"].Allocation.Equal(dec("75")) {
		t.Errorf("MSFT allocation = %s, want 75", byName["MSFT"].Allocation)
	}
}

func TestHoldings_AllocationFourPlaces(t *testing.T) {
	trades := []TradeRecord{
		trade("C001", "Z", "A", Buy, "2024-01-01", "1", "100"),
		trade("C001", "Z", "B", Buy, "2024-01-01", "2", "100"),
	}
	holdings := CurrentHoldings(trades, "C001")
	byName := map[string]Holding{}
	for _, h := range holdings {
		byName[h.Symbol] = h
	}
	if !byName["A"].Allocation.Equal(dec("33.3333")) {
		t.Errorf("A allocation = %s, want 33.3333", byName["A"].Allocation)
	}
	if !byName["B"].Allocation.Equal(dec("66.6667")) {
		t.Errorf("B allocation = %s, want 66.6667", byName["B"].Allocation)
	}
}
