package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/sitescrape"
	"github.com/google/uuid"
)

var _ sitescrape.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements sitescrape.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

const extractionColumns = "id, url, strategy, result, content_hash, fetched_at"

// CreateExtraction assigns an ID, a fetch time and a content hash, then
// stores the extraction. The raw HTML itself is not persisted.
func (s *ExtractionService) CreateExtraction(ctx context.Context, e *sitescrape.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.Strategy == "" {
		e.Strategy = sitescrape.StrategyStatic
	}

	result := e.Result
	if result == nil {
		result = sitescrape.Result{}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "encode result")
	}

	e.ID = uuid.New().String()
	e.FetchedAt = time.Now().UTC()
	e.ContentHash = hashContent(e.HTML)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (`+extractionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.URL, string(e.Strategy), string(data), e.ContentHash, formatTime(e.FetchedAt))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*sitescrape.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+extractionColumns+` FROM extractions WHERE id = ?`, id)

	e, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindExtractions retrieves extractions matching the filter, newest first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter sitescrape.ExtractionFilter) ([]*sitescrape.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + extractionColumns + " FROM extractions WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*sitescrape.Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, e)
	}

	return extractions, rows.Err()
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitescrape.Errorf(sitescrape.ENOTFOUND, "extraction not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*sitescrape.Extraction, error) {
	var e sitescrape.Extraction
	var strategy, result, fetchedAt string

	if err := row.Scan(&e.ID, &e.URL, &strategy, &result, &e.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	e.Strategy = sitescrape.Strategy(strategy)
	if err := json.Unmarshal([]byte(result), &e.Result); err != nil {
		return nil, sitescrape.WrapError(sitescrape.EINTERNAL, err, "decode result of extraction %s", e.ID)
	}

	var err error
	e.FetchedAt, err = parseTime(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &e, nil
}
