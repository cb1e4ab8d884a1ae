package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"catalog/internal/models"
)

type ProjectStore interface {
	// ListProjects returns one page of projects whose name contains search
	// (case-insensitive, literal), ordered by id, and the count of all
	// matching projects.
	ListProjects(ctx context.Context, search string, pagination models.PaginationParams) ([]models.Project, int, error)
}

type PostgresProjectStore struct {
	DB *pgxpool.Pool
}

func NewPostgresProjectStore(db *pgxpool.Pool) *PostgresProjectStore {
	return &PostgresProjectStore{DB: db}
}

func (s *PostgresProjectStore) ListProjects(ctx context.Context, search string, pagination models.PaginationParams) ([]models.Project, int, error) {
	pagination = pagination.WithDefaults()
	filter := buildProjectFilter(search)

	var (
		projects   []models.Project
		totalCount int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query, args := filter.countQuery()
		if err := s.DB.QueryRow(gctx, query, args...).Scan(&totalCount); err != nil {
			return fmt.Errorf("failed to get total count of projects: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		query, args := filter.pageQuery(pagination.Limit, pagination.Offset())
		rows, err := s.DB.Query(gctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var p models.Project
			if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
				return fmt.Errorf("failed to scan project: %w", err)
			}
			if p.ID <= 0 {
				return fmt.Errorf("project id %d: %w", p.ID, ErrInvalidRow)
			}
			projects = append(projects, p)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return projects, totalCount, nil
}

// InsertProjects bulk-inserts seed rows with COPY and returns the number written.
func (s *PostgresProjectStore) InsertProjects(ctx context.Context, projects []models.Project) (int64, error) {
	rows := make([][]any, len(projects))
	for i, p := range projects {
		rows[i] = []any{p.Name, p.Description}
	}

	n, err := s.DB.CopyFrom(ctx, pgx.Identifier{"projects"}, []string{"name", "description"}, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to insert projects: %w", err)
	}
	return n, nil
}
