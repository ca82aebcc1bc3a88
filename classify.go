package ledger

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FileCategory is the recognized intent of a broker export file.
type FileCategory string

const (
	CategoryTradeBook    FileCategory = "trade_book"
	CategoryCapitalGains FileCategory = "capital_gains"
	CategoryHoldings     FileCategory = "holdings"
	CategoryUnknown      FileCategory = "unknown"
)

// ErrUnresolvedClient reports a path with no recognizable client segment.
var ErrUnresolvedClient = errors.New("could not resolve client id from path")

// clientPattern matches client directory names: a fixed letter prefix
// followed by at least three digits (C001, C1024, ...).
var clientPattern = regexp.MustCompile(`^C\d{3,}$`)

// accountPattern matches a long digit run used as an account number hint.
var accountPattern = regexp.MustCompile(`\d{10,}`)

// genericFolders are upload folder names that never name a broker.
var genericFolders = map[string]bool{
	"uploaded_files": true,
	"uploads":        true,
	"files":          true,
	"data":           true,
}

// brokerKeywords are known broker names matched as substrings inside
// filename segments when no broker subdirectory exists.
var brokerKeywords = []string{"zerodha", "schwab", "fidelity", "hdfc", "icici", "groww"}

// Classify infers the category of a broker export from its file name.
// Unknown files are reported by the orchestrator as skipped, never fatal.
func Classify(path string) FileCategory {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "tradebook"),
		strings.Contains(name, "trade_book"),
		strings.Contains(name, "trade"):
		return CategoryTradeBook
	case strings.Contains(name, "capital") && strings.Contains(name, "gain"),
		strings.Contains(name, "capgain"),
		strings.Contains(name, "cg"):
		return CategoryCapitalGains
	case strings.Contains(name, "holding"):
		return CategoryHoldings
	}
	return CategoryUnknown
}

// ResolveClientBroker extracts the client id and broker id from a file
// path of the form .../C001/<broker>/file.xlsx. When no broker
// subdirectory exists it falls back, in order, to a known broker name in
// the filename, an account-number digit run, and finally a constant.
func ResolveClientBroker(path string) (clientID, broker string, err error) {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for i, part := range parts {
		if !clientPattern.MatchString(part) {
			continue
		}
		clientID = part
		// A subdirectory between the client segment and the file names
		// the broker, unless it is a generic upload folder.
		if i+2 < len(parts) {
			sub := parts[i+1]
			if !genericFolders[strings.ToLower(sub)] {
				broker = sub
			}
		}
		break
	}
	if clientID == "" {
		return "", "", fmt.Errorf("%w: %s", ErrUnresolvedClient, path)
	}
	if broker != "" {
		return clientID, broker, nil
	}

	// Fallback (a): known broker name inside an underscore-separated segment.
	for _, segment := range strings.Split(stem, "_") {
		lower := strings.ToLower(strings.TrimSpace(segment))
		for _, keyword := range brokerKeywords {
			if strings.Contains(lower, keyword) {
				return clientID, segment, nil
			}
		}
	}
	// Fallback (b): a long digit run interpreted as an account number.
	if digits := accountPattern.FindString(stem); digits != "" {
		return clientID, "Account_" + digits[:6], nil
	}
	// Fallback (c): constant.
	return clientID, "Platform_Unknown", nil
}
