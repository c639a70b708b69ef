package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
	"careerpath/internal/util"
)

// isUniqueViolation reports whether err is an Oracle unique-constraint hit.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}

const sectionColumns = `
	id "id",
	order_index "order_index",
	name "name",
	is_active "is_active",
	min_questions_required "min_questions_required",
	created_at "created_at",
	updated_at "updated_at"`

// SectionDatabaseAdapter implements domain.SectionRepository using sqlx.
type SectionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSectionDatabaseAdapter creates a new section repository.
func NewSectionDatabaseAdapter(db *sqlx.DB) domain.SectionRepository {
	return &SectionDatabaseAdapter{db: db}
}

func toDomainSection(m *models.Section) *domain.Section {
	if m == nil {
		return nil
	}
	return &domain.Section{
		ID:                   m.ID,
		OrderIndex:           m.OrderIndex,
		Name:                 m.Name,
		IsActive:             util.IntToBool(m.IsActive),
		MinQuestionsRequired: m.MinQuestionsRequired,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// GetActiveSections returns the active sections in gating order.
func (a *SectionDatabaseAdapter) GetActiveSections(ctx context.Context) ([]*domain.Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM sections WHERE is_active = 1 ORDER BY order_index ASC`, sectionColumns)

	var rows []models.Section
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get active sections: %w", err)
	}

	sections := make([]*domain.Section, 0, len(rows))
	for i := range rows {
		sections = append(sections, toDomainSection(&rows[i]))
	}
	return sections, nil
}

// GetByID returns one section, or nil when absent.
func (a *SectionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM sections WHERE id = :1`, sectionColumns)

	var row models.Section
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section by ID %s: %w", id, err)
	}
	return toDomainSection(&row), nil
}

// GetByOrderIndex returns the section at the given gating position.
func (a *SectionDatabaseAdapter) GetByOrderIndex(ctx context.Context, orderIndex int) (*domain.Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM sections WHERE order_index = :1`, sectionColumns)

	var row models.Section
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, orderIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section by order index %d: %w", orderIndex, err)
	}
	return toDomainSection(&row), nil
}

// CountSections counts all sections regardless of activation.
func (a *SectionDatabaseAdapter) CountSections(ctx context.Context) (int, error) {
	var count int
	err := GetExecutor(ctx, a.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM sections`)
	if err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return count, nil
}

// CreateSection inserts one section row. Used only by the bootstrap seeder.
func (a *SectionDatabaseAdapter) CreateSection(ctx context.Context, section *domain.Section) error {
	if section.ID == "" {
		section.ID = util.NewULID()
	}
	now := time.Now()
	section.CreatedAt = now
	section.UpdatedAt = now

	query := `INSERT INTO sections (
		id, order_index, name, is_active, min_questions_required, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		section.ID,
		section.OrderIndex,
		section.Name,
		util.BoolToInt(section.IsActive),
		section.MinQuestionsRequired,
		section.CreatedAt,
		section.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRow
		}
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}
