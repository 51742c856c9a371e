package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bursar/internal/domain/budget"
	"bursar/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

// Service computes the chart-facing aggregates: the bucketed expense
// breakdown and the planned-vs-actual comparison.
type Service struct {
	transactionRepo transaction.Repository
	budgetRepo      budget.Repository
}

func NewService(transactionRepo transaction.Repository, budgetRepo budget.Repository) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

// Breakdown is a chart series aligned to its labels.
type Breakdown struct {
	Data   []decimal.Decimal `json:"data"`
	Labels []string          `json:"labels"`
}

// BudgetVsActual compares the planned caps against current-month
// spending, both in bucket label order.
type BudgetVsActual struct {
	Planned []decimal.Decimal `json:"planned"`
	Actual  []decimal.Decimal `json:"actual"`
	Labels  []string          `json:"labels"`
}

// ExpenseBreakdown sums expense transactions in the requested range and
// folds them into the six display buckets.
func (s *Service) ExpenseBreakdown(ctx context.Context, userID int64, timeRange transaction.TimeRange) (*Breakdown, error) {
	sums, err := s.transactionRepo.ExpenseSumsByCategory(ctx, userID, timeRange)
	if err != nil {
		return nil, err
	}

	return &Breakdown{
		Data:   transaction.FoldIntoBuckets(sums),
		Labels: transaction.BucketLabels(),
	}, nil
}

// BudgetVsActual loads the planned caps (all zero when the user has no
// budget row) and the current-month expense+savings sums, folded to
// buckets. The two reads are independent and run concurrently.
func (s *Service) BudgetVsActual(ctx context.Context, userID int64) (*BudgetVsActual, error) {
	var (
		settings *budget.Settings
		sums     []transaction.CategorySum
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = s.budgetRepo.Get(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		sums, err = s.transactionRepo.SpendingSumsByCategory(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if settings == nil {
		settings = budget.ZeroSettings(userID)
	}

	return &BudgetVsActual{
		Planned: settings.Caps(),
		Actual:  transaction.FoldIntoBuckets(sums),
		Labels:  transaction.BucketLabels(),
	}, nil
}

// Overview returns the current-month income/expense/savings totals and
// balance. Same aggregate as transaction stats, exposed on the
// analytics surface for the dashboard.
func (s *Service) Overview(ctx context.Context, userID int64) (*transaction.Stats, error) {
	return s.transactionRepo.MonthlyStats(ctx, userID)
}
