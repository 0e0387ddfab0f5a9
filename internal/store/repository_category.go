package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/models"
)

// categoryRepository is the SQL-backed implementation of
// [CategoryRepository]. Note counts are always recomputed from the
// note_categories join table, never cached.
type categoryRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCategory persists a new category record and returns it with the
// server-assigned ID and CreatedAt.
func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	category.ID = uuid.NewString()
	category.CreatedAt = time.Now().UTC()

	query, args, err := r.db.Builder().
		Insert(category.TableName()).
		Columns("id", "user_id", "name", "created_at").
		Values(category.ID, category.UserID, category.Name, category.CreatedAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error: building insert query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			return models.Category{}, ErrCategoryAlreadyExists
		}

		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Str("user_id", category.UserID).Msg("error: executing insert")
		return models.Category{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return category, nil
}

// FindCategoryByID retrieves the owner's category with the given id.
func (r *categoryRepository) FindCategoryByID(ctx context.Context, id, userID string) (models.Category, error) {
	return r.findCategoryBy(ctx, sq.Eq{"id": id, "user_id": userID})
}

// FindCategoryByName retrieves the owner's category with the given name.
func (r *categoryRepository) FindCategoryByName(ctx context.Context, name, userID string) (models.Category, error) {
	return r.findCategoryBy(ctx, sq.Eq{"name": name, "user_id": userID})
}

func (r *categoryRepository) findCategoryBy(ctx context.Context, where sq.Eq) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "user_id", "name", "created_at").
		From(models.Category{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.findCategoryBy").Msg("error: building select query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var category models.Category
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}

		log.Err(err).Str("func", "*categoryRepository.findCategoryBy").Msg("error: scanning error")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return category, nil
}

// FindCategoriesByIDs retrieves every category whose id is in ids AND whose
// owner is userID. Used by the ownership validator: ids of other owners are
// simply absent from the result.
func (r *categoryRepository) FindCategoriesByIDs(ctx context.Context, ids []string, userID string) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := r.db.Builder().
		Select("id", "user_id", "name", "created_at").
		From(models.Category{}.TableName()).
		Where(sq.Eq{"id": ids, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindCategoriesByIDs").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindCategoriesByIDs").Str("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, len(ids))
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt); err != nil {
			log.Err(err).Str("func", "*categoryRepository.FindCategoriesByIDs").Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindCategoriesByIDs").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// FindAllCategories retrieves every category owned by userID, each with a
// live count of notes currently referencing it.
func (r *categoryRepository) FindAllCategories(ctx context.Context, userID string) ([]models.CategoryWithCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("c.id", "c.user_id", "c.name", "c.created_at", "COUNT(nc.note_id)").
		From("categories c").
		LeftJoin("note_categories nc ON nc.category_id = c.id").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("c.id", "c.user_id", "c.name", "c.created_at").
		OrderBy("c.created_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindAllCategories").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindAllCategories").Str("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.CategoryWithCount, 0, 16)
	for rows.Next() {
		var category models.CategoryWithCount
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt, &category.NoteCount); err != nil {
			log.Err(err).Str("func", "*categoryRepository.FindAllCategories").Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindAllCategories").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// UpdateCategoryName renames the owner's category in place and returns the
// updated record.
func (r *categoryRepository) UpdateCategoryName(ctx context.Context, id, userID, name string) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Update(models.Category{}.TableName()).
		Set("name", name).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategoryName").Msg("error: building update query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			return models.Category{}, ErrCategoryAlreadyExists
		}

		log.Err(err).Str("func", "*categoryRepository.UpdateCategoryName").Str("user_id", userID).Msg("error: executing update")
		return models.Category{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Category{}, ErrCategoryNotFound
	}

	return r.FindCategoryByID(ctx, id, userID)
}

// DeleteCategory removes the owner's category and pulls its reference out of
// every note's category set in a single transaction. The returned count is
// the number of notes that referenced the category.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// Join rows reference the category, so they go first.
	pullReferences, args, err := r.db.Builder().
		Delete("note_categories").
		Where(sq.Eq{"category_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, pullReferences, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error: pulling category references from notes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	notesAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleteCategory, args, err := r.db.Builder().
		Delete(models.Category{}.TableName()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err = tx.ExecContext(ctx, deleteCategory, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Str("user_id", userID).Msg("error: deleting category")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return 0, ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return notesAffected, nil
}
