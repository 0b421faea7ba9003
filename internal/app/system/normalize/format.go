package normalize

import (
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var (
	moneyMu sync.RWMutex
	money   = newMoney("$")
)

// SetCurrencySymbol changes the symbol used by Price. Call at startup.
func SetCurrencySymbol(symbol string) {
	moneyMu.Lock()
	defer moneyMu.Unlock()
	money = newMoney(symbol)
}

func newMoney(symbol string) accounting.Accounting {
	return accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
}

// Price formats a decimal string such as "12.5" as money ("$12.50").
// Unparseable input is returned as-is.
func Price(s string) string {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	moneyMu.RLock()
	defer moneyMu.RUnlock()
	return money.FormatMoneyDecimal(d)
}

// Count formats an integer with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// dateLayouts are the timestamp encodings seen in API payloads.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses an API timestamp.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders an API timestamp as "Jan 2, 2006", or the input unchanged
// when it cannot be parsed.
func Date(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// Since renders an API timestamp relative to now ("3 days ago").
func Since(s string, now time.Time) string {
	t, ok := ParseTime(s)
	if !ok {
		return s
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
