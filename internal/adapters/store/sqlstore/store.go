// Package sqlstore is a record store on gorm, backed by SQLite or MySQL.
//
// Unlike the hosted store, it owns its schema: with AutoMigrate enabled it
// creates the users, uploads, quotes and user_preferences tables, including
// the unique index on users.email that turns duplicate user inserts into
// conflicts.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config configures the SQL store.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	SlowThreshold   time.Duration
	Logger          *slog.Logger
}

// Store implements ports.RecordStore on a gorm connection.
type Store struct {
	db     *gorm.DB
	driver string
	logger *slog.Logger
}

// Open connects using cfg, applies pool settings and migrates when asked.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "sqlstore"), slog.String("driver", cfg.Driver))

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newSlogAdapter(logger, cfg.SlowThreshold),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s := &Store{db: db, driver: cfg.Driver, logger: logger}

	if cfg.AutoMigrate {
		if err := s.Migrate(context.Background()); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	logger.Info("sql store ready", slog.Bool("auto_migrate", cfg.AutoMigrate))

	return s, nil
}

// Migrate creates or updates the tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "store." + s.driver }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close implements ports.RecordStore.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// FindUserByEmail implements ports.UserStore.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow

	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("user", "")
	}

	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return row.toDomain(), nil
}

// CreateUser implements ports.UserStore.
func (s *Store) CreateUser(ctx context.Context, email string) (*domain.User, error) {
	row := userRow{ID: uuid.NewString(), Email: email}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.NewConflictError("user", "email already registered")
		}

		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return row.toDomain(), nil
}

// CreateUpload implements ports.UploadStore.
func (s *Store) CreateUpload(ctx context.Context, userID, filename string) (*domain.Upload, error) {
	row := uploadRow{ID: uuid.NewString(), UserID: userID, Filename: filename}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("inserting upload: %w", err)
	}

	return row.toDomain(), nil
}

// InsertQuotes implements ports.QuoteStore with a single multi-row INSERT.
func (s *Store) InsertQuotes(ctx context.Context, quotes []domain.StoredQuote) ([]domain.StoredQuote, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	rows := make([]quoteRow, len(quotes))
	for i, q := range quotes {
		rows[i] = newQuoteRow(uuid.NewString(), q)
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("inserting %d quotes: %w", len(rows), err)
	}

	out := make([]domain.StoredQuote, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}

	return out, nil
}

// SavePreferences implements ports.PreferencesStore as an upsert on user_id.
func (s *Store) SavePreferences(ctx context.Context, p *domain.Preferences) error {
	row := preferencesRow{
		UserID:       p.UserID,
		DeliveryTime: p.DeliveryTime,
		Timezone:     p.Timezone,
		Frequency:    string(p.Frequency),
		CustomDays:   p.CustomDays,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"delivery_time", "timezone", "frequency", "custom_days", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	return nil
}

// isDuplicate recognizes unique violations. TranslateError covers both
// drivers; the message checks catch errors raised outside the translator.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
