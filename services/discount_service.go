package services

import (
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/shopspring/decimal"
)

var (
	decimalHundred = decimal.NewFromInt(100)
	decimalOne     = decimal.NewFromInt(1)
)

// DiscountWindow is a percentage discount bounded by an inclusive date
// window. The stored has_discount flag is only corrected on the next write
// (lazy expiry), so activity is always decided from the window itself.
type DiscountWindow struct {
	Enabled    bool
	Percentage decimal.Decimal
	StartDate  *time.Time
	EndDate    *time.Time
}

// DateDiscount is a percentage discount scoped to a single calendar date.
type DateDiscount struct {
	Enabled    bool
	Percentage decimal.Decimal
	Date       time.Time
}

// ActiveOn reports whether the window covers ref. Both bounds are inclusive;
// a window with missing bounds is never active.
func (w DiscountWindow) ActiveOn(ref time.Time) bool {
	if !w.Enabled || w.StartDate == nil || w.EndDate == nil {
		return false
	}
	return !ref.Before(*w.StartDate) && !ref.After(*w.EndDate)
}

func (d DateDiscount) ActiveOn(ref time.Time) bool {
	return d.Enabled && sameDate(d.Date, ref)
}

// CategoryDiscount builds the resolver input from a category's stored
// descriptor.
func CategoryDiscount(rc *models.RoomCategory) DiscountWindow {
	w := DiscountWindow{
		Enabled:   rc.HasDiscount,
		StartDate: rc.DiscountStartDate,
		EndDate:   rc.DiscountEndDate,
	}
	if rc.DiscountPercentage != nil {
		w.Percentage = *rc.DiscountPercentage
	}
	return w
}

// DateDiscountFor builds the resolver input from a property's single-date
// calendar record, if one exists for ref.
func DateDiscountFor(pa *models.PropertyAvailability) DateDiscount {
	if pa == nil {
		return DateDiscount{}
	}
	d := DateDiscount{Enabled: pa.HasDiscount, Date: pa.Date}
	if pa.DiscountPercentage != nil {
		d.Percentage = *pa.DiscountPercentage
	}
	return d
}

// EffectivePrice applies whichever discount is active on refDate to the base
// nightly rate and returns the discounted rate along with the percentage that
// was applied (zero when none). Discounts never stack; precedence between a
// category discount and a date-level discount is a policy decision
// (category wins by default).
func EffectivePrice(base decimal.Decimal, category DiscountWindow, date DateDiscount, refDate time.Time) (decimal.Decimal, decimal.Decimal) {
	first, second := discountOrder(category, date, refDate)
	for _, pct := range []*decimal.Decimal{first, second} {
		if pct == nil {
			continue
		}
		applied := clampPercentage(*pct)
		factor := decimalOne.Sub(applied.Div(decimalHundred))
		return base.Mul(factor), applied
	}
	return base, decimal.Zero
}

func discountOrder(category DiscountWindow, date DateDiscount, refDate time.Time) (*decimal.Decimal, *decimal.Decimal) {
	var catPct, datePct *decimal.Decimal
	if category.ActiveOn(refDate) {
		p := category.Percentage
		catPct = &p
	}
	if date.ActiveOn(refDate) {
		p := date.Percentage
		datePct = &p
	}
	if config.Policy.DiscountPrecedence == "date" {
		return datePct, catPct
	}
	return catPct, datePct
}

func clampPercentage(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(decimalHundred) {
		return decimalHundred
	}
	return pct
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
