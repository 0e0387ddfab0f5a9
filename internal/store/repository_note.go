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

// noteRepository is the SQL-backed implementation of [NoteRepository].
// Category references live in the note_categories join table; every write
// touching both tables runs in a single transaction.
type noteRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note record together with its category
// references and returns the note with server-assigned fields populated.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	note.ID = uuid.NewString()
	note.CreatedAt = time.Now().UTC()
	note.UpdatedAt = note.CreatedAt
	if note.Categories == nil {
		note.Categories = make([]string, 0)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	insertNote, args, err := r.db.Builder().
		Insert(note.TableName()).
		Columns("id", "user_id", "title", "content", "created_at", "updated_at").
		Values(note.ID, note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, insertNote, args...); err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			return models.Note{}, ErrNoteTitleTaken
		}

		log.Err(err).Str("func", "*noteRepository.CreateNote").Str("user_id", note.UserID).Msg("error: executing insert")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := r.insertCategoryReferences(ctx, tx, note.ID, note.Categories); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: inserting category references")
		return models.Note{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return note, nil
}

// FindAllNotes retrieves every note owned by userID, categories included.
func (r *noteRepository) FindAllNotes(ctx context.Context, userID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "user_id", "title", "content", "created_at", "updated_at").
		From(models.Note{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindAllNotes").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindAllNotes").Str("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 32)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*noteRepository.FindAllNotes").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		note.Categories = make([]string, 0)
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.FindAllNotes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.loadCategoryReferences(ctx, notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// FindNoteByID retrieves the owner's note with the given id.
func (r *noteRepository) FindNoteByID(ctx context.Context, id, userID string) (models.Note, error) {
	return r.findNoteBy(ctx, sq.Eq{"id": id, "user_id": userID})
}

// FindNoteOwner retrieves the owning user id of a note without scoping the
// lookup to a caller.
func (r *noteRepository) FindNoteOwner(ctx context.Context, id string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("user_id").
		From(models.Note{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNoteOwner").Msg("error: building select query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var ownerID string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.FindNoteOwner").Msg("error: scanning error")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return ownerID, nil
}

// FindNoteByTitle retrieves the owner's note with the exact title.
func (r *noteRepository) FindNoteByTitle(ctx context.Context, title, userID string) (models.Note, error) {
	return r.findNoteBy(ctx, sq.Eq{"title": title, "user_id": userID})
}

func (r *noteRepository) findNoteBy(ctx context.Context, where sq.Eq) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "user_id", "title", "content", "created_at", "updated_at").
		From(models.Note{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.findNoteBy").Msg("error: building select query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.Note
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.findNoteBy").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	note.Categories = make([]string, 0)
	notes := []models.Note{note}
	if err := r.loadCategoryReferences(ctx, notes); err != nil {
		return models.Note{}, err
	}

	return notes[0], nil
}

// TitleExists reports whether userID already owns a note titled title,
// ignoring the note with id excludeID.
func (r *noteRepository) TitleExists(ctx context.Context, userID, title, excludeID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("COUNT(*)").
		From(models.Note{}.TableName()).
		Where(sq.Eq{"user_id": userID, "title": title}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.TitleExists").Msg("error: building select query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*noteRepository.TitleExists").Str("user_id", userID).Msg("error: scanning error")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

// UpdateNote applies the non-nil fields of update to the owner's note and
// returns the updated record. Field updates and category reference
// replacement happen in one transaction.
func (r *noteRepository) UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	builder := r.db.Builder().
		Update(models.Note{}.TableName()).
		Set("updated_at", time.Now().UTC())

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}

	updateNote, args, err := builder.
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, updateNote, args...)
	if err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			return models.Note{}, ErrNoteTitleTaken
		}

		log.Err(err).Str("func", "*noteRepository.UpdateNote").Str("user_id", update.UserID).Msg("error: executing update")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Note{}, ErrNoteNotFound
	}

	if update.Categories != nil {
		dropReferences, args, err := r.db.Builder().
			Delete("note_categories").
			Where(sq.Eq{"note_id": update.ID}).
			ToSql()
		if err != nil {
			return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := tx.ExecContext(ctx, dropReferences, args...); err != nil {
			log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: dropping category references")
			return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err := r.insertCategoryReferences(ctx, tx, update.ID, *update.Categories); err != nil {
			log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: inserting category references")
			return models.Note{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return r.FindNoteByID(ctx, update.ID, update.UserID)
}

// DeleteNote removes the owner's note permanently. Category records are
// untouched; the join rows disappear with the note.
func (r *noteRepository) DeleteNote(ctx context.Context, id, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	dropReferences, args, err := r.db.Builder().
		Delete("note_categories").
		Where(sq.Eq{"note_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, dropReferences, args...); err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error: dropping category references")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleteNote, args, err := r.db.Builder().
		Delete(models.Note{}.TableName()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, deleteNote, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Str("user_id", userID).Msg("error: deleting note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return nil
}

// insertCategoryReferences writes one note_categories row per category id.
// A nil or empty set is a no-op.
func (r *noteRepository) insertCategoryReferences(ctx context.Context, tx *sql.Tx, noteID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	builder := r.db.Builder().
		Insert("note_categories").
		Columns("note_id", "category_id")
	for _, categoryID := range categoryIDs {
		builder = builder.Values(noteID, categoryID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// loadCategoryReferences fills the Categories field of every note in notes
// with the ids found in the join table. The notes slice is modified in
// place.
func (r *noteRepository) loadCategoryReferences(ctx context.Context, notes []models.Note) error {
	log := logger.FromContext(ctx)

	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]string, 0, len(notes))
	index := make(map[string]int, len(notes))
	for i, note := range notes {
		noteIDs = append(noteIDs, note.ID)
		index[note.ID] = i
	}

	query, args, err := r.db.Builder().
		Select("note_id", "category_id").
		From("note_categories").
		Where(sq.Eq{"note_id": noteIDs}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.loadCategoryReferences").Msg("error: building select query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.loadCategoryReferences").Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID, categoryID string
		if err := rows.Scan(&noteID, &categoryID); err != nil {
			log.Err(err).Str("func", "*noteRepository.loadCategoryReferences").Msg("failed to scan reference row")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if i, ok := index[noteID]; ok {
			notes[i].Categories = append(notes[i].Categories, categoryID)
		}
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.loadCategoryReferences").Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}
