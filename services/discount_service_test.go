package services

import (
	"testing"
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/shopspring/decimal"
)

func window(pct string, start, end time.Time) DiscountWindow {
	return DiscountWindow{
		Enabled:    true,
		Percentage: decimal.RequireFromString(pct),
		StartDate:  &start,
		EndDate:    &end,
	}
}

func TestDiscountWindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := window("20", start, end)

	cases := []struct {
		name string
		ref  time.Time
		want bool
	}{
		{"day before start", start.AddDate(0, 0, -1), false},
		{"start date", start, true},
		{"inside window", start.AddDate(0, 0, 5), true},
		{"end date", end, true},
		{"day after end", end.AddDate(0, 0, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.ActiveOn(tc.ref); got != tc.want {
				t.Errorf("ActiveOn(%s) = %v, want %v", tc.ref.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestDiscountWindowMissingBoundsNeverActive(t *testing.T) {
	ref := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	w := DiscountWindow{Enabled: true, Percentage: decimal.RequireFromString("20")}
	if w.ActiveOn(ref) {
		t.Error("window without bounds should never be active")
	}

	start := ref.AddDate(0, 0, -1)
	w.StartDate = &start
	if w.ActiveOn(ref) {
		t.Error("window without end date should never be active")
	}

	disabled := window("20", ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1))
	disabled.Enabled = false
	if disabled.ActiveOn(ref) {
		t.Error("disabled window should never be active")
	}
}

func TestDateDiscountMatchesSingleDate(t *testing.T) {
	day := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	d := DateDiscount{Enabled: true, Percentage: decimal.RequireFromString("10"), Date: day}

	if !d.ActiveOn(day) {
		t.Error("discount should be active on its own date")
	}
	if d.ActiveOn(day.AddDate(0, 0, 1)) {
		t.Error("discount should not leak onto the next day")
	}
}

func TestEffectivePriceAppliesActiveDiscount(t *testing.T) {
	ref := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	base := decimal.RequireFromString("10000")

	w := window("25", ref.AddDate(0, 0, -2), ref.AddDate(0, 0, 2))
	price, pct := EffectivePrice(base, w, DateDiscount{}, ref)
	if !price.Equal(decimal.RequireFromString("7500")) {
		t.Errorf("price = %s, want 7500", price)
	}
	if !pct.Equal(decimal.RequireFromString("25")) {
		t.Errorf("applied pct = %s, want 25", pct)
	}

	// Window lapsed: full price, zero pct.
	price, pct = EffectivePrice(base, w, DateDiscount{}, ref.AddDate(0, 0, 10))
	if !price.Equal(base) || !pct.IsZero() {
		t.Errorf("lapsed discount applied: price=%s pct=%s", price, pct)
	}
}

func TestEffectivePriceClampsPercentage(t *testing.T) {
	ref := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	base := decimal.RequireFromString("8000")

	over := window("150", ref, ref)
	price, pct := EffectivePrice(base, over, DateDiscount{}, ref)
	if !price.IsZero() {
		t.Errorf("150%% discount should clamp to free, got %s", price)
	}
	if !pct.Equal(decimal.RequireFromString("100")) {
		t.Errorf("applied pct = %s, want 100", pct)
	}

	negative := window("-10", ref, ref)
	price, pct = EffectivePrice(base, negative, DateDiscount{}, ref)
	if !price.Equal(base) {
		t.Errorf("negative discount should clamp to no change, got %s", price)
	}
	if !pct.IsZero() {
		t.Errorf("applied pct = %s, want 0", pct)
	}
}

func TestEffectivePricePrecedenceIsConfigurable(t *testing.T) {
	ref := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	base := decimal.RequireFromString("10000")
	category := window("30", ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1))
	dateDiscount := DateDiscount{Enabled: true, Percentage: decimal.RequireFromString("10"), Date: ref}

	prev := config.Policy
	t.Cleanup(func() { config.Policy = prev })

	config.Policy.DiscountPrecedence = "category"
	price, pct := EffectivePrice(base, category, dateDiscount, ref)
	if !pct.Equal(decimal.RequireFromString("30")) {
		t.Errorf("category precedence: applied %s, want 30", pct)
	}
	if !price.Equal(decimal.RequireFromString("7000")) {
		t.Errorf("category precedence: price %s, want 7000", price)
	}

	config.Policy.DiscountPrecedence = "date"
	price, pct = EffectivePrice(base, category, dateDiscount, ref)
	if !pct.Equal(decimal.RequireFromString("10")) {
		t.Errorf("date precedence: applied %s, want 10", pct)
	}
	if !price.Equal(decimal.RequireFromString("9000")) {
		t.Errorf("date precedence: price %s, want 9000", price)
	}

	// Only one side active: the other wins regardless of precedence.
	config.Policy.DiscountPrecedence = "date"
	price, pct = EffectivePrice(base, category, DateDiscount{}, ref)
	if !pct.Equal(decimal.RequireFromString("30")) {
		t.Errorf("fallback to category: applied %s, want 30", pct)
	}
	if !price.Equal(decimal.RequireFromString("7000")) {
		t.Errorf("fallback to category: price %s, want 7000", price)
	}
}
