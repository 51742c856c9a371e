package transaction

import "github.com/shopspring/decimal"

// Display buckets for charting. BucketLabels fixes the order every
// analytics series is aligned to.
const (
	BucketRent       = "Rent"
	BucketFood       = "Food"
	BucketTransport  = "Transport"
	BucketSchoolFees = "School Fees"
	BucketSavings    = "Savings"
	BucketOther      = "Other"
)

// BucketLabels returns the fixed label order for chart series.
func BucketLabels() []string {
	return []string{BucketRent, BucketFood, BucketTransport, BucketSchoolFees, BucketSavings, BucketOther}
}

// categoryBuckets maps raw transaction categories to display buckets.
// This is the single source of truth shared by all analytics; the
// category pickers on the client mirror it.
var categoryBuckets = map[string]string{
	"rent":          BucketRent,
	"food":          BucketFood,
	"transport":     BucketTransport,
	"tuition":       BucketSchoolFees,
	"books":         BucketOther,
	"entertainment": BucketOther,
	"utilities":     BucketOther,
	"other-expense": BucketOther,
	"emergency":     BucketSavings,
	"investment":    BucketSavings,
	"goal":          BucketSavings,
	"retirement":    BucketSavings,
	"other-savings": BucketSavings,
}

// BucketFor maps a raw category to its display bucket. Unknown
// categories collapse to Other.
func BucketFor(category string) string {
	if bucket, ok := categoryBuckets[category]; ok {
		return bucket
	}
	return BucketOther
}

// FoldIntoBuckets folds per-category sums into the six display buckets,
// returned in BucketLabels order. Missing buckets report zero.
func FoldIntoBuckets(sums []CategorySum) []decimal.Decimal {
	totals := map[string]decimal.Decimal{}
	for _, s := range sums {
		bucket := BucketFor(s.Category)
		totals[bucket] = totals[bucket].Add(s.Total)
	}

	values := make([]decimal.Decimal, 0, len(BucketLabels()))
	for _, label := range BucketLabels() {
		values = append(values, totals[label])
	}
	return values
}
