package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/capture"
	adaptershttp "github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/handler"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/repository/memory"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/repository/postgres"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/currency"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/usecase"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/worker"
)

// TestEnv wires the full ingestion pipeline against in-process dependencies:
// the capped fallback reservation store, a temp-dir capture sink, the real
// worker pool, and the in-memory expense store.
type TestEnv struct {
	Router    http.Handler
	Expenses  *ExpenseStore
	BronzeDir string
}

// NewTestEnv builds a test environment. The worker pool is drained on cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	logger := zerolog.Nop()

	bronzeDir := t.TempDir()
	captureStore, err := capture.NewFileStore(bronzeDir)
	if err != nil {
		t.Fatalf("failed to create capture store: %v", err)
	}

	pool, err := worker.NewPool(4, logger)
	if err != nil {
		t.Fatalf("failed to create worker pool: %v", err)
	}
	t.Cleanup(func() { pool.Shutdown(5 * time.Second) })

	reservations := memory.NewReservationStore(0)
	expenses := NewExpenseStore()
	converter := currency.NewConverter(currency.PolicyPassthrough)
	retrier := postgres.NewRetrier(logger)
	idGen := postgres.NewULIDGenerator()

	processorUC := usecase.NewProcessorUseCase(captureStore, expenses, reservations, converter, retrier, idGen, logger)
	ingestUC := usecase.NewIngestUseCase(reservations, processorUC, pool, time.Hour, logger)
	expenseUC := usecase.NewExpenseUseCase(expenses)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		IngestHandler:  handler.NewIngestHandler(ingestUC),
		ExpenseHandler: handler.NewExpenseHandler(expenseUC),
		ReportHandler:  handler.NewReportHandler(expenseUC),
		HealthHandler:  handler.NewHealthHandler(nil, nil),
		Logger:         logger,
	})

	return &TestEnv{
		Router:    router,
		Expenses:  expenses,
		BronzeDir: bronzeDir,
	}
}

// WaitFor polls cond until it returns true or the deadline passes.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("condition not met before deadline")
}
