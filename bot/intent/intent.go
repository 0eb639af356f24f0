// Package intent defines the closed set of actions the bot's inline
// keyboards can request. Callback data is parsed exactly once, at the
// update boundary, and dispatched by kind; unknown data is an error, not
// a silently ignored string.
package intent

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindMainMenu Kind = iota
	KindAvailableCourses
	KindMyCourses
	KindSelectCourse
	KindEnroll
	KindLeave
	KindContactAdmin
)

// Intent is a parsed callback action. CourseID is set only for the
// course-scoped kinds (SelectCourse, Enroll, Leave).
type Intent struct {
	Kind     Kind
	CourseID uint
}

const (
	dataMainMenu         = "main_menu"
	dataAvailableCourses = "available_courses"
	dataMyCourses        = "my_courses"
	dataContactAdmin     = "contact_admin"

	prefixSelectCourse = "course_"
	prefixEnroll       = "enroll_"
	prefixLeave        = "leave_"
)

// Parse decodes callback data into an Intent.
func Parse(data string) (Intent, error) {
	switch data {
	case dataMainMenu:
		return Intent{Kind: KindMainMenu}, nil
	case dataAvailableCourses:
		return Intent{Kind: KindAvailableCourses}, nil
	case dataMyCourses:
		return Intent{Kind: KindMyCourses}, nil
	case dataContactAdmin:
		return Intent{Kind: KindContactAdmin}, nil
	}

	if rest, ok := strings.CutPrefix(data, prefixSelectCourse); ok {
		return courseIntent(KindSelectCourse, rest, data)
	}
	if rest, ok := strings.CutPrefix(data, prefixEnroll); ok {
		return courseIntent(KindEnroll, rest, data)
	}
	if rest, ok := strings.CutPrefix(data, prefixLeave); ok {
		return courseIntent(KindLeave, rest, data)
	}

	return Intent{}, fmt.Errorf("unknown callback data %q", data)
}

func courseIntent(kind Kind, rest, data string) (Intent, error) {
	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil || id == 0 {
		return Intent{}, fmt.Errorf("invalid course id in callback data %q", data)
	}
	return Intent{Kind: kind, CourseID: uint(id)}, nil
}

// CallbackData encodes the intent back into the wire string the keyboards
// attach to buttons. Parse(i.CallbackData()) always round-trips.
func (i Intent) CallbackData() string {
	switch i.Kind {
	case KindMainMenu:
		return dataMainMenu
	case KindAvailableCourses:
		return dataAvailableCourses
	case KindMyCourses:
		return dataMyCourses
	case KindContactAdmin:
		return dataContactAdmin
	case KindSelectCourse:
		return prefixSelectCourse + strconv.FormatUint(uint64(i.CourseID), 10)
	case KindEnroll:
		return prefixEnroll + strconv.FormatUint(uint64(i.CourseID), 10)
	case KindLeave:
		return prefixLeave + strconv.FormatUint(uint64(i.CourseID), 10)
	}
	return ""
}
