package ledger

import (
	"fmt"
	"log"
	"strings"

	"github.com/rahulprajapat123/investment-manager/date"
	"github.com/shopspring/decimal"
)

// RowOutcome classifies what happened to one source row during
// normalization. Skips and malformed rows never abort a batch.
type RowOutcome int

const (
	// RowAccepted means the row produced a canonical record.
	RowAccepted RowOutcome = iota
	// RowSkipped means the row was silently excluded (blank trailer
	// rows, missing essential fields). Not an error.
	RowSkipped
	// RowMalformed means a conversion failed; the row is excluded and
	// the failure logged.
	RowMalformed
)

// RowResult is the per-row outcome of a normalization pass.
type RowResult struct {
	Row     int
	Outcome RowOutcome
	Reason  string // set when skipped
	Err     error  // set when malformed
}

// SourceFile is one classified, extracted broker export ready for
// normalization.
type SourceFile struct {
	Path        string
	ClientID    string
	Broker      string
	Category    FileCategory
	Metadata    map[string]string
	Header      []string
	Rows        RawGrid
	HeaderFound bool
}

// Account returns the account label captured from the file metadata.
func (s *SourceFile) Account() string { return s.Metadata["account"] }

// ReadSourceFile classifies a broker export, resolves its client and
// broker, extracts the raw grid and splits it into metadata, header and
// data rows.
func ReadSourceFile(path string) (*SourceFile, error) {
	category := Classify(path)
	if category == CategoryUnknown {
		return nil, fmt.Errorf("could not determine file category for %s", path)
	}
	clientID, broker, err := ResolveClientBroker(path)
	if err != nil {
		return nil, err
	}
	grid, err := Extract(path)
	if err != nil {
		return nil, err
	}
	src := &SourceFile{
		Path:     path,
		ClientID: clientID,
		Broker:   broker,
		Category: category,
		Metadata: ExtractMetadata(grid),
	}
	if grid.IsEmpty() {
		return src, nil
	}
	start, found := FindDataStart(grid, category)
	src.HeaderFound = found
	src.Header = grid[start]
	src.Rows = grid[start+1:]
	return src, nil
}

// --- Trade book schema ---

type tradeField int

const (
	tfDate tradeField = iota
	tfSymbol
	tfAction
	tfQty
	tfPrice
	tfTradeValue
	tfExchange
	tfCurrency
	tfISIN
)

// tradeSynonyms maps normalized header names to canonical trade fields.
var tradeSynonyms = map[string]tradeField{
	"date":         tfDate,
	"stock":        tfSymbol,
	"symbol":       tfSymbol,
	"stock symbol": tfSymbol,
	"action":       tfAction,
	"qty":          tfQty,
	"quantity":     tfQty,
	"price":        tfPrice,
	"trade value":  tfTradeValue,
	"tradevalue":   tfTradeValue,
	"exchange":     tfExchange,
	"currency":     tfCurrency,
	"isin":         tfISIN,
}

// tradeLayout is the synonym table resolved against one file's header.
type tradeLayout struct {
	cols    map[tradeField]int
	charges []int // every column containing "charges" or "brokerage" accumulates
}

func resolveTradeLayout(header []string) tradeLayout {
	layout := tradeLayout{cols: make(map[tradeField]int)}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if field, ok := tradeSynonyms[name]; ok {
			if _, taken := layout.cols[field]; !taken {
				layout.cols[field] = i
			}
			continue
		}
		if strings.Contains(name, "charges") || strings.Contains(name, "brokerage") {
			layout.charges = append(layout.charges, i)
		}
	}
	return layout
}

func cell(row []string, idx int, ok bool) string {
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (l tradeLayout) cell(row []string, f tradeField) string {
	idx, ok := l.cols[f]
	return cell(row, idx, ok)
}

// NormalizeTrades maps one trade-book source file onto the canonical
// trade schema. Rows missing symbol, action or quantity are skipped;
// rows whose numeric cells cannot be converted are malformed and
// logged; neither aborts the batch.
func NormalizeTrades(src *SourceFile) ([]TradeRecord, []RowResult) {
	layout := resolveTradeLayout(src.Header)
	account := src.Account()

	var records []TradeRecord
	results := make([]RowResult, 0, len(src.Rows))
	for i, row := range src.Rows {
		record, result := normalizeTradeRow(src, layout, account, i, row)
		results = append(results, result)
		if result.Outcome == RowAccepted {
			records = append(records, record)
		} else if result.Outcome == RowMalformed {
			log.Printf("warning: could not normalize trade row %d of %s: %v", i, src.Path, result.Err)
		}
	}
	return records, results
}

func normalizeTradeRow(src *SourceFile, layout tradeLayout, account string, i int, row []string) (TradeRecord, RowResult) {
	symbol := layout.cell(row, tfSymbol)
	action := layout.cell(row, tfAction)
	qtyRaw := layout.cell(row, tfQty)
	if symbol == "" || action == "" || qtyRaw == "" {
		return TradeRecord{}, RowResult{Row: i, Outcome: RowSkipped, Reason: "missing symbol, action or quantity"}
	}

	qty, err := ToDecimal(qtyRaw)
	if err != nil {
		return TradeRecord{}, RowResult{Row: i, Outcome: RowMalformed, Err: err}
	}
	price, err := ToDecimal(layout.cell(row, tfPrice))
	if err != nil {
		return TradeRecord{}, RowResult{Row: i, Outcome: RowMalformed, Err: err}
	}
	tradeValue, err := ToDecimal(layout.cell(row, tfTradeValue))
	if err != nil {
		return TradeRecord{}, RowResult{Row: i, Outcome: RowMalformed, Err: err}
	}
	charges := decimal.Zero
	for _, idx := range layout.charges {
		v, err := ToDecimal(cell(row, idx, true))
		if err != nil {
			return TradeRecord{}, RowResult{Row: i, Outcome: RowMalformed, Err: err}
		}
		charges = charges.Add(v)
	}

	// Unparsable dates are stored as absent, never dropped.
	var when date.Date
	if raw := layout.cell(row, tfDate); raw != "" {
		when, _ = date.Parse(raw)
	}

	currency := layout.cell(row, tfCurrency)
	if currency == "" {
		currency = "USD"
	}

	return TradeRecord{
		ClientID:     src.ClientID,
		Broker:       src.Broker,
		Account:      account,
		Date:         when,
		ISIN:         layout.cell(row, tfISIN),
		Symbol:       symbol,
		Action:       ParseAction(action),
		Qty:          qty,
		Price:        Round(price),
		TradeValue:   Round(tradeValue),
		TotalCharges: Round(charges),
		Exchange:     layout.cell(row, tfExchange),
		Currency:     currency,
	}, RowResult{Row: i, Outcome: RowAccepted}
}

// --- Capital gains schema ---

type gainField int

const (
	gfSymbol gainField = iota
	gfISIN
	gfQty
	gfSaleDate
	gfSaleRate
	gfSaleValue
	gfSaleExpenses
	gfPurchaseDate
	gfPurchaseRate
	gfPurchaseValue
	gfPurchaseExpenses
	gfPnL
	gfSection
)

var gainSynonyms = map[string]gainField{
	"stock symbol":             gfSymbol,
	"symbol":                   gfSymbol,
	"stock":                    gfSymbol,
	"isin":                     gfISIN,
	"qty":                      gfQty,
	"quantity":                 gfQty,
	"sale date":                gfSaleDate,
	"sale rate":                gfSaleRate,
	"sale value":               gfSaleValue,
	"sale expenses":            gfSaleExpenses,
	"purchase date":            gfPurchaseDate,
	"purchase rate considered": gfPurchaseRate,
	"purchase value":           gfPurchaseValue,
	"purchase expenses":        gfPurchaseExpenses,
	"st/lt":                    gfSection,
}

type gainLayout struct {
	cols map[gainField]int
}

func resolveGainLayout(header []string) gainLayout {
	layout := gainLayout{cols: make(map[gainField]int)}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if field, ok := gainSynonyms[name]; ok {
			if _, taken := layout.cols[field]; !taken {
				layout.cols[field] = i
			}
			continue
		}
		if strings.Contains(name, "profit/loss") {
			if _, taken := layout.cols[gfPnL]; !taken {
				layout.cols[gfPnL] = i
			}
		}
	}
	return layout
}

func (l gainLayout) cell(row []string, f gainField) string {
	idx, ok := l.cols[f]
	return cell(row, idx, ok)
}

// NormalizeCapitalGains maps one capital-gains source file onto the
// canonical capital-gain schema, with the same row tolerance as
// NormalizeTrades.
func NormalizeCapitalGains(src *SourceFile) ([]CapitalGain, []RowResult) {
	layout := resolveGainLayout(src.Header)
	account := src.Account()

	var records []CapitalGain
	results := make([]RowResult, 0, len(src.Rows))
	for i, row := range src.Rows {
		record, result := normalizeGainRow(src, layout, account, i, row)
		results = append(results, result)
		if result.Outcome == RowAccepted {
			records = append(records, record)
		} else if result.Outcome == RowMalformed {
			log.Printf("warning: could not normalize capital gains row %d of %s: %v", i, src.Path, result.Err)
		}
	}
	return records, results
}

func normalizeGainRow(src *SourceFile, layout gainLayout, account string, i int, row []string) (CapitalGain, RowResult) {
	symbol := layout.cell(row, gfSymbol)
	qtyRaw := layout.cell(row, gfQty)
	if symbol == "" || qtyRaw == "" {
		return CapitalGain{}, RowResult{Row: i, Outcome: RowSkipped, Reason: "missing symbol or quantity"}
	}

	fields := make(map[gainField]decimal.Decimal)
	for _, f := range []gainField{gfQty, gfSaleRate, gfSaleValue, gfSaleExpenses, gfPurchaseRate, gfPurchaseValue, gfPurchaseExpenses, gfPnL} {
		v, err := ToDecimal(layout.cell(row, f))
		if err != nil {
			return CapitalGain{}, RowResult{Row: i, Outcome: RowMalformed, Err: err}
		}
		fields[f] = v
	}

	var saleDate, purchaseDate date.Date
	if raw := layout.cell(row, gfSaleDate); raw != "" {
		saleDate, _ = date.Parse(raw)
	}
	if raw := layout.cell(row, gfPurchaseDate); raw != "" {
		purchaseDate, _ = date.Parse(raw)
	}

	return CapitalGain{
		ClientID:         src.ClientID,
		Broker:           src.Broker,
		Account:          account,
		Symbol:           symbol,
		ISIN:             layout.cell(row, gfISIN),
		Qty:              fields[gfQty],
		SaleDate:         saleDate,
		SaleRate:         Round(fields[gfSaleRate]),
		SaleValue:        Round(fields[gfSaleValue]),
		SaleExpenses:     Round(fields[gfSaleExpenses]),
		PurchaseDate:     purchaseDate,
		PurchaseRate:     Round(fields[gfPurchaseRate]),
		PurchaseValue:    Round(fields[gfPurchaseValue]),
		PurchaseExpenses: Round(fields[gfPurchaseExpenses]),
		PnL:              Round(fields[gfPnL]),
		Section:          ParseSection(layout.cell(row, gfSection)),
	}, RowResult{Row: i, Outcome: RowAccepted}
}
