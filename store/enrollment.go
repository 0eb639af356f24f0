package store

import (
	"context"
	"errors"
	"fmt"

	"coursebot/models"

	"gorm.io/gorm"
)

// Enroll creates an enrollment for the given (user, course) pair. The
// referenced user and course must exist. An existing enrollment for the
// pair yields ErrDuplicateEnrollment; the pre-check only improves the
// error path, the unique index rejects a racing duplicate insert and that
// outcome maps to the same error.
func (s *Store) Enroll(ctx context.Context, userID, courseID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			return ErrDuplicateEnrollment
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		enrollment = models.Enrollment{UserID: userID, CourseID: courseID}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEnrollment
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEnrollment) {
			return models.Enrollment{}, err
		}
		return models.Enrollment{}, fmt.Errorf("enroll user %d in course %d: %w", userID, courseID, err)
	}
	return enrollment, nil
}

// RemoveEnrollment deletes the enrollment for the given (user, course) pair
// and returns the deleted record's former values for confirmation. When no
// such enrollment exists it fails with ErrNotFound and has no side effect.
func (s *Store) RemoveEnrollment(ctx context.Context, userID, courseID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		// Hard delete so a later re-enrollment does not collide with the
		// unique index over a soft-deleted row.
		return tx.Unscoped().Delete(&enrollment).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Enrollment{}, err
		}
		return models.Enrollment{}, fmt.Errorf("remove enrollment user %d course %d: %w", userID, courseID, err)
	}
	return enrollment, nil
}

// RemoveEnrollmentByID deletes an enrollment by its surrogate id. Same
// contract as RemoveEnrollment: ErrNotFound when absent, no side effect.
func (s *Store) RemoveEnrollmentByID(ctx context.Context, id uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&enrollment, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Unscoped().Delete(&enrollment).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Enrollment{}, err
		}
		return models.Enrollment{}, fmt.Errorf("remove enrollment %d: %w", id, err)
	}
	return enrollment, nil
}

// CoursesForUser returns the courses the user is enrolled in. An unknown
// user or a user with no enrollments yields an empty slice, not an error.
func (s *Store) CoursesForUser(ctx context.Context, userID uint) ([]models.Course, error) {
	courses := []models.Course{}
	err := s.db.WithContext(ctx).
		Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("courses for user %d: %w", userID, err)
	}
	return courses, nil
}
