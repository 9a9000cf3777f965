package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/capacinator/capacinator/internal/domain"
)

// ErrNotCached is returned when a lookup misses the local cache.
var ErrNotCached = errors.New("not in local cache")

// Store reads and replaces the locally cached scenario and project lists.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an opened cache database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ReplaceScenarios swaps the cached scenario list for a freshly fetched one.
// The swap is transactional so a concurrent reader never sees a half-empty
// cache.
func (s *Store) ReplaceScenarios(ctx context.Context, scenarios []*domain.Scenario) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios`); err != nil {
		return fmt.Errorf("clearing scenario cache: %w", err)
	}

	const insert = `INSERT INTO scenarios (id, name, description, parent_id, scenario_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, sc := range scenarios {
		var parent any
		if sc.HasParent() {
			parent = *sc.ParentID
		}
		_, err := tx.ExecContext(ctx, insert,
			sc.ID, sc.Name, sc.Description, parent,
			string(sc.Type), string(sc.Status),
			sc.CreatedAt.Format(time.RFC3339), sc.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("caching scenario %s: %w", sc.ID, err)
		}
	}

	if err := markFetched(ctx, tx, "scenarios"); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceProjects swaps the cached project list for a freshly fetched one.
func (s *Store) ReplaceProjects(ctx context.Context, projects []*domain.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("clearing project cache: %w", err)
	}

	const insert = `INSERT INTO projects (id, name, project_type, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, p := range projects {
		_, err := tx.ExecContext(ctx, insert,
			p.ID, p.Name, p.ProjectType, int(p.Priority),
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("caching project %s: %w", p.ID, err)
		}
	}

	if err := markFetched(ctx, tx, "projects"); err != nil {
		return err
	}
	return tx.Commit()
}

func markFetched(ctx context.Context, tx *sql.Tx, resource string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO sync_state (resource, fetched_at) VALUES (?, ?)
		 ON CONFLICT(resource) DO UPDATE SET fetched_at = excluded.fetched_at`,
		resource, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}
	return nil
}

// FetchedAt returns when the given resource list was last cached.
func (s *Store) FetchedAt(ctx context.Context, resource string) (time.Time, error) {
	var ts string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM sync_state WHERE resource = ?`, resource).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotCached
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading fetch time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fetch time: %w", err)
	}
	return t, nil
}

const scenarioColumns = `id, name, description, parent_id, scenario_type, status, created_at, updated_at`

// ListScenarios returns the cached scenario list, ordered by name.
func (s *Store) ListScenarios(ctx context.Context) ([]*domain.Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cached scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

// GetScenario returns one cached scenario by ID.
func (s *Store) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scenario %s", ErrNotCached, id)
	}
	return sc, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var sc domain.Scenario
	var parent sql.NullString
	var scType, status, createdAt, updatedAt string

	err := row.Scan(&sc.ID, &sc.Name, &sc.Description, &parent, &scType, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		sc.ParentID = &parent.String
	}
	sc.Type = domain.ScenarioType(scType)
	sc.Status = domain.ScenarioStatus(status)
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sc, nil
}

// ListProjects returns the cached project list, ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, project_type, priority, created_at, updated_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cached projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var priority int
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.ProjectType, &priority, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.Priority = domain.ProjectPriority(priority)
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}
