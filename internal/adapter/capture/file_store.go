package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// timestampLayout names capture files by capture time; together with the
// idempotency key it makes file names unique and sortable.
const timestampLayout = "20060102150405"

// FileStore writes verbatim submission payloads as one JSON file per
// submission ("bronze" layer). Append-only: files are never updated or
// deleted by the pipeline, and exist regardless of whether downstream
// processing succeeds. Auditors and replayers read the directory directly.
type FileStore struct {
	dir string
}

// NewFileStore creates the capture directory if needed and returns a store
// writing into it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capture dir %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

type capturedLine struct {
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

type capturedPayload struct {
	IdempotencyKey string          `json:"idempotency_key"`
	UserID         string          `json:"user_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Vendor         string          `json:"vendor,omitempty"`
	Currency       string          `json:"currency"`
	Total          decimal.Decimal `json:"total"`
	Lines          []capturedLine  `json:"lines"`
	CapturedAt     time.Time       `json:"captured_at"`
}

// Write persists the submission under <capture-time>_<key>.json and returns
// the file path.
func (s *FileStore) Write(_ context.Context, sub domain.ReceiptSubmission, capturedAt time.Time) (string, error) {
	lines := make([]capturedLine, len(sub.Lines))
	for i, l := range sub.Lines {
		lines[i] = capturedLine{Description: l.Description, Amount: l.Amount, Currency: l.Currency}
	}

	payload := capturedPayload{
		IdempotencyKey: sub.IdempotencyKey,
		UserID:         sub.UserID,
		Timestamp:      sub.Timestamp,
		Vendor:         sub.Vendor,
		Currency:       sub.Currency,
		Total:          sub.Total,
		Lines:          lines,
		CapturedAt:     capturedAt.UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal capture payload: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", capturedAt.UTC().Format(timestampLayout), sub.IdempotencyKey)
	// Validation rejects keys with path separators before they get here, but
	// the sink must not trust its callers: a name resolving outside the
	// capture directory is refused.
	if filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidIdempotencyKey, sub.IdempotencyKey)
	}
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write capture file %s: %w", path, err)
	}

	return path, nil
}
