package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const tradeBookCSV = `Account,ZD1234
Name,Jane Doe
Trade Book,Apr 2023 - Mar 2024
Date,Stock,Action,Qty,Price,Trade Value,Brokerage Charges,Exchange
2024-01-01,AAPL,Buy,10,100.00,1000.00,1.50,NASDAQ
2024-01-10,AAPL,Buy,20,130.00,2600.00,2.00,NASDAQ
2024-02-01,MSFT,Buy,5,300.00,1500.00,1.00,NASDAQ
,,,,,,,
`

const capitalGainsCSV = `Account,ZD1234
Capital Gain Statement,FY 2023-24
Stock Symbol,ISIN,Qty,Sale Date,Sale Rate,Sale Value,Sale Expenses,Purchase Date,Purchase Rate Considered,Purchase Value,Purchase Expenses,Profit/Loss (-),ST/LT
TSLA,US88160R1014,5,2024-02-01,200.00,1000.00,2.00,2023-06-01,150.00,750.00,3.00,245.00,ST
`

const otherBrokerCSV = `Date,Stock,Action,Qty,Price,Trade Value
2024-03-01,AAPL,Buy,5,110.00,550.00
`

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"C001/Zerodha/tradeBook_2024.csv":      tradeBookCSV,
		"C001/Zerodha/capital_gains_fy24.csv":  capitalGainsCSV,
		"C002/tradeBook_9876543210.csv":        otherBrokerCSV,
		"C001/Zerodha/statement.csv":           "some,notes\n",          // unknown category: skipped
		"shared/tradeBook_misc.csv":            otherBrokerCSV,          // no client segment: file error
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func TestRun(t *testing.T) {
	root := writeTree(t)
	summary, err := Run(context.Background(), Options{DataDir: root})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}

	if summary.FilesDiscovered != 5 {
		t.Errorf("FilesDiscovered = %d, want 5", summary.FilesDiscovered)
	}
	if summary.FilesIngested != 3 {
		t.Errorf("FilesIngested = %d, want 3", summary.FilesIngested)
	}
	if summary.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1", summary.FilesSkipped)
	}
	if len(summary.FileErrors) != 1 || !errors.Is(summary.FileErrors[0].Err, ErrUnresolvedClient) {
		t.Errorf("FileErrors = %+v, want one unresolved-client error", summary.FileErrors)
	}

	if len(summary.Trades) != 4 {
		t.Errorf("Trades = %d records, want 4", len(summary.Trades))
	}
	if len(summary.CapitalGains) != 1 {
		t.Errorf("CapitalGains = %d records, want 1", len(summary.CapitalGains))
	}
	if !reflect.DeepEqual(summary.Clients, []string{"C001", "C002"}) {
		t.Errorf("Clients = %v", summary.Clients)
	}
	if !summary.Validation.IsValid {
		t.Errorf("Validation = %+v, want valid", summary.Validation)
	}

	// Broker fallback chain on the C002 file.
	for _, tr := range summary.Trades {
		if tr.ClientID == "C002" && tr.Broker != "Account_987654" {
			t.Errorf("C002 broker = %s, want Account_987654", tr.Broker)
		}
	}

	// Aggregation over the merged set.
	holdings := CurrentHoldings(summary.Trades, "C001")
	if len(holdings) != 2 {
		t.Errorf("C001 holdings = %d, want 2", len(holdings))
	}
	gains := RealizedPnLByStock(summary.CapitalGains, "C001")
	if len(gains) != 1 || !gains[0].TotalPnL.Equal(dec("245")) {
		t.Errorf("gains = %+v", gains)
	}
}

func TestRun_Idempotent(t *testing.T) {
	root := writeTree(t)
	first, err := Run(context.Background(), Options{DataDir: root})
	if err != nil {
		t.Fatalf("first Run error = %v", err)
	}
	second, err := Run(context.Background(), Options{DataDir: root})
	if err != nil {
		t.Fatalf("second Run error = %v", err)
	}
	if !reflect.DeepEqual(first.Trades, second.Trades) {
		t.Error("normalized trades differ between identical runs")
	}
	if !reflect.DeepEqual(first.CapitalGains, second.CapitalGains) {
		t.Error("normalized capital gains differ between identical runs")
	}
	if !reflect.DeepEqual(CurrentHoldings(first.Trades, "C001"), CurrentHoldings(second.Trades, "C001")) {
		t.Error("holdings differ between identical runs")
	}
}

func TestRun_FailOnValidation(t *testing.T) {
	root := t.TempDir()
	bad := `Date,Stock,Action,Qty,Price,Trade Value
2024-01-01,AAPL,Buy,10,100.00,999.00
`
	dir := filepath.Join(root, "C001", "Zerodha")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tradeBook.csv"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	// Default: report but continue.
	summary, err := Run(context.Background(), Options{DataDir: root})
	if err != nil {
		t.Fatalf("Run error = %v, want annotated success", err)
	}
	if summary.Validation.IsValid {
		t.Error("validation should have failed")
	}

	// Fail-fast mode halts.
	_, err = Run(context.Background(), Options{DataDir: root, FailOnValidation: true})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("error = %v, want ErrValidationFailed", err)
	}
}

func TestRun_MissingDataDirIsFatal(t *testing.T) {
	_, err := Run(context.Background(), Options{DataDir: "/does/not/exist"})
	if err == nil {
		t.Fatal("expected error for missing data directory")
	}
}

func TestRun_NoIngestableFilesIsFatal(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Run(context.Background(), Options{DataDir: root})
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("error = %v, want ErrNoFiles", err)
	}
}
