package postgrest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Wire rows mirror the hosted tables. They never leave this package.

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *userRow) toDomain() (*domain.User, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("user row without id")
	}

	return &domain.User{ID: r.ID, Email: r.Email, CreatedAt: r.CreatedAt}, nil
}

type newUser struct {
	Email string `json:"email"`
}

type uploadRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *uploadRow) toDomain() (*domain.Upload, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("upload row without id")
	}

	return &domain.Upload{ID: r.ID, UserID: r.UserID, Filename: r.Filename, CreatedAt: r.CreatedAt}, nil
}

type newUpload struct {
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
}

// quoteRow keeps the hosted column names: the link is stored in "source".
// Absent values are sent as JSON null.
type quoteRow struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	UploadID  *string   `json:"upload_id"`
	Content   string    `json:"content"`
	Author    *string   `json:"author"`
	Source    *string   `json:"source"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func newQuoteRow(q domain.StoredQuote) quoteRow {
	return quoteRow{
		UserID:   q.UserID,
		UploadID: nullable(q.UploadID),
		Content:  q.Content,
		Author:   nullable(q.Author),
		Source:   nullable(q.Link),
	}
}

func (r *quoteRow) toDomain() (*domain.StoredQuote, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("quote row without id")
	}

	return &domain.StoredQuote{
		ID:        r.ID,
		UserID:    r.UserID,
		UploadID:  deref(r.UploadID),
		Content:   r.Content,
		Author:    deref(r.Author),
		Link:      deref(r.Source),
		CreatedAt: r.CreatedAt,
	}, nil
}

type preferencesRow struct {
	UserID       string `json:"user_id"`
	DeliveryTime string `json:"delivery_time"`
	Timezone     string `json:"timezone"`
	Frequency    string `json:"frequency"`
	CustomDays   []int  `json:"custom_days"`
}

// decodeRows reads a JSON array of rows.
func decodeRows[T any](body io.Reader) ([]T, error) {
	var rows []T
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return rows, nil
}

// translateRows applies fn to every row, failing on the first bad row.
func translateRows[R any, D any](rows []R, fn func(*R) (*D, error)) ([]D, error) {
	out := make([]D, 0, len(rows))

	for i := range rows {
		d, err := fn(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("translating row %d: %w", i, err)
		}

		out = append(out, *d)
	}

	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
