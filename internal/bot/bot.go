// Package bot is the chat surface of the expense tracker: it maps plain
// commands to the object, expense and report services. Free-text expense
// entry through a language model lives outside this repository.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/config"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/report"
	"github.com/vxtzo/telegram-construction-bot/internal/repository"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

const messageLimit = 4096

type Bot struct {
	api      *tgbotapi.BotAPI
	users    *repository.UserRepository
	objects  *service.ObjectService
	expenses *service.ExpenseService
	reports  *service.ReportService
	adminIDs map[int64]struct{}
	log      zerolog.Logger
}

func New(
	cfg *config.Config,
	users *repository.UserRepository,
	objects *service.ObjectService,
	expenses *service.ExpenseService,
	reports *service.ReportService,
	log zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("init telegram api: %w", err)
	}

	adminIDs := make(map[int64]struct{}, len(cfg.Bot.AdminIDs))
	for _, id := range cfg.Bot.AdminIDs {
		adminIDs[id] = struct{}{}
	}

	return &Bot{
		api:      api,
		users:    users,
		objects:  objects,
		expenses: expenses,
		reports:  reports,
		adminIDs: adminIDs,
		log:      log,
	}, nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, msg.From)
	if err != nil {
		b.log.Error().Err(err).Int64("telegram_id", msg.From.ID).Msg("resolve user failed")
		b.reply(msg.Chat.ID, "Доступ запрещен.")
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.reply(msg.Chat.ID, helpText(user.IsAdmin()))
	case "objects":
		b.handleObjects(ctx, msg)
	case "report":
		b.requireAdmin(ctx, msg, user, b.handleObjectReport)
	case "period":
		b.requireAdmin(ctx, msg, user, b.handlePeriodReport)
	case "compensate":
		b.requireAdmin(ctx, msg, user, b.handleCompensate)
	case "adduser":
		b.requireAdmin(ctx, msg, user, b.handleAddUser)
	case "deluser":
		b.requireAdmin(ctx, msg, user, b.handleRemoveUser)
	default:
		b.reply(msg.Chat.ID, "Неизвестная команда. Используйте /help.")
	}
}

func (b *Bot) requireAdmin(ctx context.Context, msg *tgbotapi.Message, user *model.User, handler func(context.Context, *tgbotapi.Message)) {
	if !user.IsAdmin() {
		b.reply(msg.Chat.ID, "Недостаточно прав.")
		return
	}
	handler(ctx, msg)
}

func (b *Bot) handleObjects(ctx context.Context, msg *tgbotapi.Message) {
	status := model.ObjectStatusActive
	if strings.TrimSpace(msg.CommandArguments()) == "completed" {
		status = model.ObjectStatusCompleted
	}

	objects, err := b.objects.ListByStatus(ctx, status)
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}
	if len(objects) == 0 {
		b.reply(msg.Chat.ID, "Объектов нет.")
		return
	}

	cards := make([]string, 0, len(objects))
	for _, obj := range objects {
		cards = append(cards, fmt.Sprintf("%s\nID: %s", report.RenderShortCard(obj), obj.ID))
	}
	b.reply(msg.Chat.ID, strings.Join(cards, "\n\n"))
}

func (b *Bot) handleObjectReport(ctx context.Context, msg *tgbotapi.Message) {
	objectID, err := uuid.Parse(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		b.reply(msg.Chat.ID, "Использование: /report <id объекта>")
		return
	}

	result, err := b.reports.GenerateObjectReport(ctx, objectID)
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}
	b.reply(msg.Chat.ID, report.RenderObjectReport(result))
}

func (b *Bot) handlePeriodReport(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		b.reply(msg.Chat.ID, "Использование: /period <дд.мм.гггг> <дд.мм.гггг>")
		return
	}

	from, err1 := time.Parse("02.01.2006", args[0])
	to, err2 := time.Parse("02.01.2006", args[1])
	if err1 != nil || err2 != nil {
		b.reply(msg.Chat.ID, "Неверный формат даты, ожидается дд.мм.гггг.")
		return
	}

	summary, err := b.reports.GeneratePeriodReport(ctx, from, to)
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}

	label := fmt.Sprintf("%s — %s", args[0], args[1])
	b.reply(msg.Chat.ID, report.RenderPeriodReport(summary, label))
}

func (b *Bot) handleCompensate(ctx context.Context, msg *tgbotapi.Message) {
	expenseID, err := uuid.Parse(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		b.reply(msg.Chat.ID, "Использование: /compensate <id расхода>")
		return
	}

	if _, err := b.expenses.MarkCompensated(ctx, expenseID); err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}
	b.reply(msg.Chat.ID, "Компенсация отмечена.")
}

func (b *Bot) handleAddUser(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.reply(msg.Chat.ID, "Использование: /adduser <telegram id> [имя]")
		return
	}

	telegramID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.reply(msg.Chat.ID, "Неверный telegram id.")
		return
	}

	if existing, err := b.users.GetByTelegramID(ctx, telegramID); err == nil {
		if existing.IsActive {
			b.reply(msg.Chat.ID, "Пользователь уже зарегистрирован.")
			return
		}
		if err := b.users.SetActive(ctx, telegramID, true); err != nil {
			b.replyError(msg.Chat.ID, err)
			return
		}
		b.reply(msg.Chat.ID, "Доступ восстановлен.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		b.replyError(msg.Chat.ID, err)
		return
	}

	user := &model.User{
		ID:         uuid.New(),
		TelegramID: telegramID,
		Role:       model.UserRoleForeman,
		IsActive:   true,
	}
	if name := strings.Join(args[1:], " "); name != "" {
		user.FullName = &name
	}

	if err := b.users.Create(ctx, user); err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}
	b.reply(msg.Chat.ID, "Бригадир добавлен.")
}

func (b *Bot) handleRemoveUser(ctx context.Context, msg *tgbotapi.Message) {
	telegramID, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
	if err != nil {
		b.reply(msg.Chat.ID, "Использование: /deluser <telegram id>")
		return
	}

	if err := b.users.SetActive(ctx, telegramID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b.reply(msg.Chat.ID, "Пользователь не найден.")
			return
		}
		b.replyError(msg.Chat.ID, err)
		return
	}
	b.reply(msg.Chat.ID, "Доступ отключен.")
}

// resolveUser loads the caller, auto-registering configured admins on first
// contact. Unknown users are rejected.
func (b *Bot) resolveUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	user, err := b.users.GetByTelegramID(ctx, from.ID)
	if err == nil {
		if !user.IsActive {
			return nil, fmt.Errorf("user %d is deactivated", from.ID)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, ok := b.adminIDs[from.ID]; !ok {
		return nil, fmt.Errorf("user %d is not registered", from.ID)
	}

	user = &model.User{
		ID:         uuid.New(),
		TelegramID: from.ID,
		Role:       model.UserRoleAdmin,
		IsActive:   true,
	}
	if from.UserName != "" {
		username := from.UserName
		user.Username = &username
	}
	if name := strings.TrimSpace(from.FirstName + " " + from.LastName); name != "" {
		user.FullName = &name
	}
	if err := b.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (b *Bot) reply(chatID int64, text string) {
	for _, part := range splitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		if _, err := b.api.Send(msg); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
			return
		}
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		b.reply(chatID, "Не найдено.")
	case errors.Is(err, service.ErrInvalidInput):
		b.reply(chatID, fmt.Sprintf("Ошибка: %s", err))
	default:
		b.log.Error().Err(err).Msg("command failed")
		b.reply(chatID, "Внутренняя ошибка, попробуйте позже.")
	}
}

// splitMessage keeps replies under the telegram message size limit. The limit
// is in bytes, so the fallback cut must land on a rune boundary or a Cyrillic
// report would be torn mid-character.
func splitMessage(text string) []string {
	if len(text) <= messageLimit {
		return []string{text}
	}

	var parts []string
	for len(text) > messageLimit {
		cut := strings.LastIndex(text[:messageLimit], "\n")
		if cut <= 0 {
			cut = messageLimit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func helpText(isAdmin bool) string {
	lines := []string{
		"Команды:",
		"/objects — текущие объекты",
		"/objects completed — завершенные объекты",
	}
	if isAdmin {
		lines = append(lines,
			"/report <id> — отчет по объекту",
			"/period <дд.мм.гггг> <дд.мм.гггг> — сводный отчет за период",
			"/compensate <id> — отметить компенсацию расхода",
			"/adduser <telegram id> [имя] — добавить бригадира",
			"/deluser <telegram id> — отключить доступ",
		)
	}
	return strings.Join(lines, "\n")
}
