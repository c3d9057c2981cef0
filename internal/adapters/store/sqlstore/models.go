package sqlstore

import (
	"time"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

type userRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"size:320;not null;uniqueIndex:idx_users_email"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Email: r.Email, CreatedAt: r.CreatedAt}
}

type uploadRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index"`
	Filename  string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (uploadRow) TableName() string { return "uploads" }

func (r uploadRow) toDomain() *domain.Upload {
	return &domain.Upload{ID: r.ID, UserID: r.UserID, Filename: r.Filename, CreatedAt: r.CreatedAt}
}

// quoteRow keeps the hosted schema's column names: the link lives in "source".
type quoteRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index"`
	UploadID  *string   `gorm:"size:36;index"`
	Content   string    `gorm:"type:text;not null"`
	Author    *string   `gorm:"size:512"`
	Source    *string   `gorm:"size:2048"`
	CreatedAt time.Time `gorm:"not null"`
}

func (quoteRow) TableName() string { return "quotes" }

func newQuoteRow(id string, q domain.StoredQuote) quoteRow {
	return quoteRow{
		ID:       id,
		UserID:   q.UserID,
		UploadID: nullable(q.UploadID),
		Content:  q.Content,
		Author:   nullable(q.Author),
		Source:   nullable(q.Link),
	}
}

func (r quoteRow) toDomain() domain.StoredQuote {
	return domain.StoredQuote{
		ID:        r.ID,
		UserID:    r.UserID,
		UploadID:  deref(r.UploadID),
		Content:   r.Content,
		Author:    deref(r.Author),
		Link:      deref(r.Source),
		CreatedAt: r.CreatedAt,
	}
}

type preferencesRow struct {
	UserID       string    `gorm:"primaryKey;size:36"`
	DeliveryTime string    `gorm:"size:5;not null"`
	Timezone     string    `gorm:"size:64;not null"`
	Frequency    string    `gorm:"size:16;not null"`
	CustomDays   []int     `gorm:"serializer:json"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

func (preferencesRow) TableName() string { return "user_preferences" }

// models lists every table for AutoMigrate.
var models = []any{&userRow{}, &uploadRow{}, &quoteRow{}, &preferencesRow{}}

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
