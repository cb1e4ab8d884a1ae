package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"catalog/internal/models"
)

const DefaultSeedRows = 50

// ProjectInserter is the write side used only by seeding.
type ProjectInserter interface {
	InsertProjects(ctx context.Context, projects []models.Project) (int64, error)
}

// GenerateProjects returns n fake projects. The same seed always yields the
// same names, so seeded catalogs are reproducible; seed 0 picks a random one.
func GenerateProjects(n int, seed uint64) []models.Project {
	if n <= 0 {
		n = DefaultSeedRows
	}

	faker := gofakeit.New(seed)
	projects := make([]models.Project, n)
	for i := range projects {
		projects[i] = models.Project{
			Name:        faker.ProductName(),
			Description: faker.ProductDescription(),
		}
	}
	return projects
}

// SeedProjects generates n projects and writes them in one batch.
func SeedProjects(ctx context.Context, inserter ProjectInserter, n int, seed uint64) (int64, error) {
	projects := GenerateProjects(n, seed)
	slog.Info("Seeding projects", "rows", len(projects))

	inserted, err := inserter.InsertProjects(ctx, projects)
	if err != nil {
		return 0, fmt.Errorf("failed to seed projects: %w", err)
	}

	slog.Info("Database seeded successfully", "rows", inserted)
	return inserted, nil
}
