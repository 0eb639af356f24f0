package models

import (
	"gorm.io/gorm"
)

// Enrollment links a user to a course. The composite unique index is the
// authoritative guard against duplicate enrollments: the service pre-checks
// for a friendlier error, but under a race the index decides.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	User     User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT"`
}
