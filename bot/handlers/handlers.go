// Package handlers wires Telegram updates to the backend client. The bot
// keeps no state about users or courses; the only local state is the set
// of chats whose next message is relayed to the admin.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"coursebot/bot/client"
	"coursebot/bot/intent"
	"coursebot/bot/keyboards"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const welcomeText = "Welcome! I will help you manage courses.\n\n" +
	"You can:\n" +
	"- Browse available courses\n" +
	"- Enroll in a course\n" +
	"- Contact the admin"

const transientText = "The service is temporarily unavailable. Please try again later."

type Bot struct {
	api         *tgbotapi.BotAPI
	backend     *client.Client
	adminChatID int64

	mu               sync.Mutex
	awaitingForAdmin map[int64]struct{}
}

func New(api *tgbotapi.BotAPI, backend *client.Client, adminChatID int64) *Bot {
	return &Bot{
		api:              api,
		backend:          backend,
		adminChatID:      adminChatID,
		awaitingForAdmin: make(map[int64]struct{}),
	}
}

// Run registers the bot commands and consumes updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Open the course menu"},
	)
	if _, err := b.api.Request(commands); err != nil {
		log.Printf("Failed to set bot commands: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			switch {
			case update.Message != nil:
				b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, msg)
		return
	}

	b.mu.Lock()
	_, pending := b.awaitingForAdmin[msg.Chat.ID]
	delete(b.awaitingForAdmin, msg.Chat.ID)
	b.mu.Unlock()

	if pending {
		b.relayToAdmin(msg)
		return
	}

	b.send(msg.Chat.ID, "Send /start to open the course menu.")
}

// handleStart registers the user on the backend before showing the menu,
// so every later enroll/leave has a user row to reference.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if _, err := b.backend.UpsertUser(ctx, msg.From.ID, displayName(msg.From)); err != nil {
		log.Printf("Failed to register user %d: %v", msg.From.ID, err)
		b.send(msg.Chat.ID, transientText)
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
	reply.ReplyMarkup = keyboards.MainMenu()
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to send main menu: %v", err)
	}
}

func (b *Bot) relayToAdmin(msg *tgbotapi.Message) {
	if b.adminChatID == 0 {
		b.send(msg.Chat.ID, "The admin is not available right now.")
		return
	}

	from := msg.From.UserName
	if from == "" {
		from = displayName(msg.From)
	}
	forward := tgbotapi.NewMessage(b.adminChatID, fmt.Sprintf("Message from %s:\n%s", from, msg.Text))
	if _, err := b.api.Send(forward); err != nil {
		log.Printf("Failed to relay message to admin: %v", err)
		b.send(msg.Chat.ID, transientText)
		return
	}

	b.send(msg.Chat.ID, "Your message has been sent to the admin.")
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge first so the button stops spinning even if the backend
	// call below is slow.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	// Telegram omits the message for callbacks on messages older than 48h;
	// without it there is nothing to edit.
	if cb.Message == nil {
		log.Printf("Dropping callback %q without message context", cb.Data)
		return
	}

	parsed, err := intent.Parse(cb.Data)
	if err != nil {
		log.Printf("Dropping callback: %v", err)
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch parsed.Kind {
	case intent.KindMainMenu:
		b.edit(chatID, messageID, welcomeText, keyboards.MainMenu())

	case intent.KindAvailableCourses:
		b.showAvailableCourses(ctx, chatID, messageID)

	case intent.KindMyCourses:
		b.showMyCourses(ctx, chatID, messageID, cb.From.ID)

	case intent.KindSelectCourse:
		b.showCourse(ctx, chatID, messageID, cb.From.ID, parsed.CourseID)

	case intent.KindEnroll:
		b.enroll(ctx, chatID, messageID, cb.From, parsed.CourseID)

	case intent.KindLeave:
		b.leave(ctx, chatID, messageID, cb.From, parsed.CourseID)

	case intent.KindContactAdmin:
		b.mu.Lock()
		b.awaitingForAdmin[chatID] = struct{}{}
		b.mu.Unlock()
		b.send(chatID, "Write your message for the admin.")
	}
}

func (b *Bot) showAvailableCourses(ctx context.Context, chatID int64, messageID int) {
	courses, err := b.backend.Courses(ctx)
	if err != nil {
		log.Printf("Failed to fetch courses: %v", err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
		return
	}
	if len(courses) == 0 {
		b.edit(chatID, messageID, "There are no available courses right now.", keyboards.MainMenu())
		return
	}

	b.edit(chatID, messageID, "Available courses:", keyboards.CourseList(courses))
}

func (b *Bot) showMyCourses(ctx context.Context, chatID int64, messageID int, telegramID int64) {
	courses, err := b.backend.UserCourses(ctx, telegramID)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		log.Printf("Failed to fetch user courses: %v", err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
		return
	}
	if len(courses) == 0 {
		b.edit(chatID, messageID, "You are not enrolled in any courses yet.", keyboards.MainMenu())
		return
	}

	b.edit(chatID, messageID, "Your courses:", keyboards.CourseList(courses))
}

func (b *Bot) showCourse(ctx context.Context, chatID int64, messageID int, telegramID int64, courseID uint) {
	course, err := b.backend.Course(ctx, courseID)
	if errors.Is(err, client.ErrNotFound) {
		b.edit(chatID, messageID, "This course no longer exists.", keyboards.MainMenu())
		return
	}
	if err != nil {
		log.Printf("Failed to fetch course %d: %v", courseID, err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
		return
	}

	enrolled := b.isEnrolled(ctx, telegramID, courseID)

	text := course.Title
	if course.Description != "" {
		text += "\n\n" + course.Description
	}
	b.edit(chatID, messageID, text, keyboards.CourseManagement(courseID, enrolled))
}

func (b *Bot) enroll(ctx context.Context, chatID int64, messageID int, from *tgbotapi.User, courseID uint) {
	user, err := b.backend.UpsertUser(ctx, from.ID, displayName(from))
	if err != nil {
		log.Printf("Failed to register user %d: %v", from.ID, err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
		return
	}

	_, err = b.backend.Enroll(ctx, user.ID, courseID)
	switch {
	case errors.Is(err, client.ErrAlreadyEnrolled):
		// A retried enroll lands here too; from the user's point of view
		// both mean the same thing.
		b.edit(chatID, messageID, "You are already enrolled in this course.", keyboards.CourseManagement(courseID, true))
	case errors.Is(err, client.ErrNotFound):
		b.edit(chatID, messageID, "This course no longer exists.", keyboards.MainMenu())
	case err != nil:
		log.Printf("Failed to enroll user %d in course %d: %v", user.ID, courseID, err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
	default:
		b.edit(chatID, messageID, "You are enrolled! See you in class.", keyboards.CourseManagement(courseID, true))
	}
}

func (b *Bot) leave(ctx context.Context, chatID int64, messageID int, from *tgbotapi.User, courseID uint) {
	user, err := b.backend.UpsertUser(ctx, from.ID, displayName(from))
	if err != nil {
		log.Printf("Failed to register user %d: %v", from.ID, err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
		return
	}

	_, err = b.backend.Leave(ctx, user.ID, courseID)
	switch {
	case errors.Is(err, client.ErrNotFound):
		b.edit(chatID, messageID, "You are not enrolled in this course.", keyboards.CourseManagement(courseID, false))
	case err != nil:
		log.Printf("Failed to remove enrollment for user %d course %d: %v", user.ID, courseID, err)
		b.edit(chatID, messageID, transientText, keyboards.MainMenu())
	default:
		b.edit(chatID, messageID, "You have left the course.", keyboards.CourseManagement(courseID, false))
	}
}

func (b *Bot) isEnrolled(ctx context.Context, telegramID int64, courseID uint) bool {
	courses, err := b.backend.UserCourses(ctx, telegramID)
	if err != nil {
		return false
	}
	for _, course := range courses {
		if course.ID == courseID {
			return true
		}
	}
	return false
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		// Telegram allows an empty profile name; the backend does not.
		name = strconv.FormatInt(u.ID, 10)
	}
	return name
}
