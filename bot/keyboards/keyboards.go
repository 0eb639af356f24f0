package keyboards

import (
	"coursebot/bot/client"
	"coursebot/bot/intent"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu is the top-level menu shown after /start.
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Available courses", intent.Intent{Kind: intent.KindAvailableCourses}.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("My courses", intent.Intent{Kind: intent.KindMyCourses}.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Contact admin", intent.Intent{Kind: intent.KindContactAdmin}.CallbackData()),
		),
	)
}

// CourseList renders one button per course plus a back button.
func CourseList(courses []client.Course) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(courses)+1)
	for _, course := range courses {
		data := intent.Intent{Kind: intent.KindSelectCourse, CourseID: course.ID}.CallbackData()
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(course.Title, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Back", intent.Intent{Kind: intent.KindMainMenu}.CallbackData()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// CourseManagement offers enroll or leave depending on the user's current
// enrollment, plus a back button to the course list.
func CourseManagement(courseID uint, enrolled bool) tgbotapi.InlineKeyboardMarkup {
	var action tgbotapi.InlineKeyboardButton
	if enrolled {
		action = tgbotapi.NewInlineKeyboardButtonData("Leave course", intent.Intent{Kind: intent.KindLeave, CourseID: courseID}.CallbackData())
	} else {
		action = tgbotapi.NewInlineKeyboardButtonData("Enroll", intent.Intent{Kind: intent.KindEnroll, CourseID: courseID}.CallbackData())
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(action),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back", intent.Intent{Kind: intent.KindAvailableCourses}.CallbackData()),
		),
	)
}
