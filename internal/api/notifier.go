package telegram

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

const (
	msgReport        = "🖼 %s\nСовпадение пикселей: %.2f%%\nРазмер: %dx%d"
	msgReportNoImage = "🖼 %s\nСовпадение пикселей: %.2f%%\nDiff: %s"
)

// Notifier отправляет отчёты о сравнении в Telegram-чат
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    logr.Logger
}

// NewNotifier создаёт уведомитель для официального Bot API
func NewNotifier(token string, chatID int64, log logr.Logger) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, tgbotapi.APIEndpoint, chatID, log)
}

// NewNotifierWithEndpoint создаёт уведомитель для собственного Bot API сервера.
// endpoint шаблон вида "https://host/bot%s/%s".
func NewNotifierWithEndpoint(token, endpoint string, chatID int64, log logr.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "telegram auth")
	}

	log = log.WithName("telegram")
	log.V(1).Info("authorized", "account", api.Self.UserName)

	return &Notifier{
		api:    api,
		chatID: chatID,
		log:    log,
	}, nil
}

// NotifyReport отправляет diff-изображение с подписью. Если локального файла
// нет (например, артефакт уже в S3), отправляется только текст со ссылкой.
func (n *Notifier) NotifyReport(ctx context.Context, label string, report *entity.ComparisonReport) error {
	_ = ctx
	if report == nil {
		return errors.New("report is nil")
	}

	if _, err := os.Stat(report.DiffPath); err == nil {
		photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FilePath(report.DiffPath))
		photo.Caption = fmt.Sprintf(msgReport, label, report.Result.Similarity, report.Width, report.Height)
		if _, err := n.api.Send(photo); err != nil {
			return errors.Wrap(err, "send diff photo")
		}
		return nil
	}

	link := report.ArtifactURL
	if link == "" {
		link = report.DiffPath
	}
	return n.sendMessage(fmt.Sprintf(msgReportNoImage, label, report.Result.Similarity, link))
}

// sendMessage отправляет текстовое сообщение
func (n *Notifier) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.ReportNotifier = (*Notifier)(nil)
