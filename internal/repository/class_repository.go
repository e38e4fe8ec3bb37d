package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// ClassRepository manages class rooms and the class-subject join.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// FindByID fetches a class room.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassRoom, error) {
	const query = `SELECT id, name, level, section FROM class_rooms WHERE id = $1`
	var class models.ClassRoom
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListBySubjectID returns the classes a subject is taught in, via the
// class_subjects join.
func (r *ClassRepository) ListBySubjectID(ctx context.Context, subjectID string) ([]models.ClassRoom, error) {
	const query = `SELECT c.id, c.name, c.level, c.section
        FROM class_subjects cs
        JOIN class_rooms c ON c.id = cs.class_id
        WHERE cs.subject_id = $1
        ORDER BY c.level ASC, c.section ASC`
	var classes []models.ClassRoom
	if err := r.db.SelectContext(ctx, &classes, query, subjectID); err != nil {
		return nil, fmt.Errorf("list classes by subject: %w", err)
	}
	return classes, nil
}

// ListSubjectsByClassID returns the subjects attached to a class. This join
// bounds which subjects and teachers a student's views may reference.
func (r *ClassRepository) ListSubjectsByClassID(ctx context.Context, classID string) ([]models.Subject, error) {
	const query = `SELECT subj.id, subj.name, subj.code
        FROM class_subjects cs
        JOIN subjects subj ON subj.id = cs.subject_id
        WHERE cs.class_id = $1
        ORDER BY subj.name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list subjects by class: %w", err)
	}
	return subjects, nil
}

// Count returns the total number of classes.
func (r *ClassRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM class_rooms"); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return count, nil
}
