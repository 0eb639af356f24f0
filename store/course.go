package store

import (
	"context"
	"errors"
	"fmt"

	"coursebot/models"

	"gorm.io/gorm"
)

// CreateCourse stores a new course and returns it with the server-assigned
// id and timestamp populated.
func (s *Store) CreateCourse(ctx context.Context, title, description string) (models.Course, error) {
	course := models.Course{Title: title, Description: description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&course).Error
	})
	if err != nil {
		return models.Course{}, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// ListCourses returns all courses.
func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID returns the course with the given id, or ErrNotFound.
func (s *Store) GetCourseByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

// DeleteCourse removes a course. Rejected with ErrEnrollmentsExist while
// enrollments still reference it: callers must remove enrollments first.
func (s *Store) DeleteCourse(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Enrollment{}).Where("course_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEnrollmentsExist
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEnrollmentsExist) {
			return err
		}
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	return nil
}
