package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reAccount = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 64 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Account(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reAccount.MatchString(s)
}

// Password enforces a simple length window; composition is not policed for
// the temporary passwords the reset flow generates.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 64
}

// Qty clamps a line quantity: bad input becomes 1, abuse is capped at 99.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// QtyStrict refuses quantities below 1 instead of clamping; used where the
// request is rejected outright.
func QtyStrict(n int) (int, bool) {
	if n < 1 {
		return 0, false
	}
	if n > 99 {
		n = 99
	}
	return n, true
}

// ID validates opaque identifiers (tokens, product uuids, trade ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Price parses a positive decimal amount.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// Remaining parses a non-negative stock count.
func Remaining(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
