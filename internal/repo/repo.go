package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"github.com/Rajesh001100/cultural/internal/model"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyPaid          = errors.New("registration already paid")
	ErrInvalidCategory      = errors.New("invalid event category")
	ErrInvalidType          = errors.New("invalid participation type")
)

type Repository interface {
	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)
	CreateRegistration(ctx context.Context, reg *model.Registration) (int64, error)
	GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error)
	GetAllRegistrations(ctx context.Context) ([]model.Registration, error)
	MarkPaidTx(ctx context.Context, registrationID int64, paymentID string) (*model.Registration, error)
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := ioutil.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := ioutil.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	if !model.ValidCategory(e.Category) {
		return 0, ErrInvalidCategory
	}
	if !model.ValidParticipationType(e.Type) {
		return 0, ErrInvalidType
	}

	rules, coords, err := marshalEventJSON(e)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO events (title, description, category, type, fee, image_color, icon, rule_book, coordinators, day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Category, e.Type, e.Fee, e.ImageColor, e.Icon, rules, coords, e.Day,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	if !model.ValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	if !model.ValidParticipationType(e.Type) {
		return ErrInvalidType
	}

	rules, coords, err := marshalEventJSON(e)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = $1, description = $2, category = $3, type = $4, fee = $5,
		    image_color = $6, icon = $7, rule_book = $8, coordinators = $9, day = $10
		WHERE id = $11
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Category, e.Type, e.Fee, e.ImageColor, e.Icon, rules, coords, e.Day, e.ID,
	).Scan(&id); err != nil {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT id, title, description, category, type, fee, image_color, icon, rule_book, coordinators, day
		FROM events WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEvent(row)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	query := `
		SELECT id, title, description, category, type, fee, image_color, icon, rule_book, coordinators, day
		FROM events
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}

	return events, nil
}

func (r *repository) CreateRegistration(ctx context.Context, reg *model.Registration) (int64, error) {
	var teamMembers sql.NullString
	if len(reg.TeamMembers) > 0 {
		data, err := json.Marshal(reg.TeamMembers)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal team members: %w", err)
		}
		teamMembers = sql.NullString{String: string(data), Valid: true}
	}

	reg.Status = model.StatusPending
	query := `
		INSERT INTO registrations (name, email, phone, year, department, roll_no, college, event, team_members, status, pass_type, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query,
		reg.Name, reg.Email, reg.Phone, reg.Year, reg.Department, reg.RollNo,
		reg.College, reg.Event, teamMembers, reg.Status, reg.PassType, reg.Amount,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	return id, nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error) {
	query := `
		SELECT id, name, email, phone, year, department, roll_no, college, event, team_members, status, payment_id, amount, pass_type, timestamp
		FROM registrations
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	reg, err := scanRegistration(row)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

func (r *repository) GetAllRegistrations(ctx context.Context) ([]model.Registration, error) {
	query := `
		SELECT id, name, email, phone, year, department, roll_no, college, event, team_members, status, payment_id, amount, pass_type, timestamp
		FROM registrations
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}

	return regs, nil
}

// MarkPaidTx flips a registration to PAID and stores the gateway payment
// reference. The row is locked for the duration of the transaction; a
// registration that is already PAID is reported via ErrAlreadyPaid and
// left untouched, so concurrent verifications converge on a single write.
func (r *repository) MarkPaidTx(ctx context.Context, registrationID int64, paymentID string) (*model.Registration, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	querySelect := `
		SELECT id, name, email, phone, year, department, roll_no, college, event, team_members, status, payment_id, amount, pass_type, timestamp
		FROM registrations
		WHERE id = $1
		FOR UPDATE
	`
	reg, err := scanRegistration(tx.QueryRowContext(ctx, querySelect, registrationID))
	if err != nil {
		_ = tx.Rollback()
		return nil, ErrRegistrationNotFound
	}

	if reg.Status == model.StatusPaid {
		_ = tx.Rollback()
		return reg, ErrAlreadyPaid
	}

	queryUpdate := `
		UPDATE registrations
		SET status = $1, payment_id = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, queryUpdate, model.StatusPaid, paymentID, registrationID); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	reg.Status = model.StatusPaid
	reg.PaymentID = paymentID
	return reg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e           model.Event
		description sql.NullString
		imageColor  sql.NullString
		icon        sql.NullString
		ruleBook    sql.NullString
		coords      sql.NullString
		day         sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.Title, &description, &e.Category, &e.Type, &e.Fee,
		&imageColor, &icon, &ruleBook, &coords, &day,
	); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.ImageColor = imageColor.String
	e.Icon = icon.String
	e.Day = day.String
	if ruleBook.Valid && ruleBook.String != "" {
		_ = json.Unmarshal([]byte(ruleBook.String), &e.RuleBook)
	}
	if coords.Valid && coords.String != "" {
		_ = json.Unmarshal([]byte(coords.String), &e.Coordinators)
	}
	return &e, nil
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var (
		reg         model.Registration
		teamMembers sql.NullString
		paymentID   sql.NullString
	)
	if err := row.Scan(
		&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.Year, &reg.Department,
		&reg.RollNo, &reg.College, &reg.Event, &teamMembers, &reg.Status,
		&paymentID, &reg.Amount, &reg.PassType, &reg.Timestamp,
	); err != nil {
		return nil, err
	}
	if teamMembers.Valid && teamMembers.String != "" {
		_ = json.Unmarshal([]byte(teamMembers.String), &reg.TeamMembers)
	}
	reg.PaymentID = paymentID.String
	return &reg, nil
}

func marshalEventJSON(e *model.Event) (string, string, error) {
	rules := "[]"
	if len(e.RuleBook) > 0 {
		data, err := json.Marshal(e.RuleBook)
		if err != nil {
			return "", "", fmt.Errorf("failed to marshal rule book: %w", err)
		}
		rules = string(data)
	}
	coords := "[]"
	if len(e.Coordinators) > 0 {
		data, err := json.Marshal(e.Coordinators)
		if err != nil {
			return "", "", fmt.Errorf("failed to marshal coordinators: %w", err)
		}
		coords = string(data)
	}
	return rules, coords, nil
}
