package repositories

import (
	"context"
	"sort"
	"sync"

	"call-insights/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvaluationRepository reads call evaluation rows for a time window.
// An empty clientID selects every client.
type EvaluationRepository interface {
	ListEvaluations(ctx context.Context, clientID string, window models.DateRange) ([]models.EvaluationRecord, error)
	ListClientIDs(ctx context.Context, window models.DateRange) ([]string, error)
}

const evaluationColumns = `id::text, call_id, client_id, agent_name, evaluated_at,
	failure_reasons::text, COALESCE(evaluation_notes, ''), quality_score::float8`

// PostgresEvaluationRepository implements EvaluationRepository on the call_evaluations table
type PostgresEvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEvaluationRepository creates a repository backed by a pgx pool
func NewPostgresEvaluationRepository(pool *pgxpool.Pool) *PostgresEvaluationRepository {
	return &PostgresEvaluationRepository{pool: pool}
}

// ListEvaluations returns the evaluations in [window.Start, window.End), oldest first
func (r *PostgresEvaluationRepository) ListEvaluations(ctx context.Context, clientID string, window models.DateRange) ([]models.EvaluationRecord, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + evaluationColumns + `
		FROM call_evaluations
		WHERE evaluated_at >= $1 AND evaluated_at < $2
		  AND ($3::text = '' OR client_id = $3::text)
		ORDER BY evaluated_at, id`

	rows, err := r.pool.Query(ctx, query, window.Start, window.End, clientID)
	if err != nil {
		return nil, NewRepositoryError("list_evaluations", clientID, err, "query failed")
	}

	records, err := scanEvaluations(rows)
	if err != nil {
		return nil, NewRepositoryError("list_evaluations", clientID, err, "scan failed")
	}
	return records, nil
}

// ListClientIDs returns the distinct clients with evaluations in the window
func (r *PostgresEvaluationRepository) ListClientIDs(ctx context.Context, window models.DateRange) ([]string, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT client_id FROM call_evaluations
		WHERE evaluated_at >= $1 AND evaluated_at < $2
		ORDER BY client_id`, window.Start, window.End)
	if err != nil {
		return nil, NewRepositoryError("list_client_ids", "", err, "query failed")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, NewRepositoryError("list_client_ids", "", err, "scan failed")
	}
	return ids, nil
}

func scanEvaluations(rows pgx.Rows) ([]models.EvaluationRecord, error) {
	defer rows.Close()

	records := []models.EvaluationRecord{}
	for rows.Next() {
		var rec models.EvaluationRecord
		var reasons *string
		if err := rows.Scan(
			&rec.ID,
			&rec.CallID,
			&rec.ClientID,
			&rec.AgentName,
			&rec.EvaluatedAt,
			&reasons,
			&rec.Notes,
			&rec.QualityScore,
		); err != nil {
			return nil, err
		}
		if reasons != nil {
			rec.FailureReasons = []byte(*reasons)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MemoryEvaluationRepository serves evaluations from a fixed in-memory set,
// such as an offline export loaded from disk.
type MemoryEvaluationRepository struct {
	mu      sync.RWMutex
	records []models.EvaluationRecord
}

// NewMemoryEvaluationRepository creates a repository over a copy of records
func NewMemoryEvaluationRepository(records []models.EvaluationRecord) *MemoryEvaluationRepository {
	repo := &MemoryEvaluationRepository{}
	repo.Replace(records)
	return repo
}

// Replace swaps the served record set
func (r *MemoryEvaluationRepository) Replace(records []models.EvaluationRecord) {
	sorted := make([]models.EvaluationRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EvaluatedAt.Before(sorted[j].EvaluatedAt)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = sorted
}

func (r *MemoryEvaluationRepository) ListEvaluations(ctx context.Context, clientID string, window models.DateRange) ([]models.EvaluationRecord, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRepositoryError("list_evaluations", clientID, err, "")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.EvaluationRecord{}
	for _, rec := range r.records {
		if clientID != "" && rec.ClientID != clientID {
			continue
		}
		if rec.EvaluatedAt.Before(window.Start) || !rec.EvaluatedAt.Before(window.End) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (r *MemoryEvaluationRepository) ListClientIDs(ctx context.Context, window models.DateRange) ([]string, error) {
	records, err := r.ListEvaluations(ctx, "", window)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, rec := range records {
		if rec.ClientID != "" && !seen[rec.ClientID] {
			seen[rec.ClientID] = true
			ids = append(ids, rec.ClientID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
