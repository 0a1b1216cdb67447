// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jobnest/jobnest/pkg/botx"
	"golang.org/x/exp/slog"
)

// MaxFileSize is the maximum size of the downloaded attachment.
const MaxFileSize = 10 << 20

// ErrFileTooLarge is returned when the attachment exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("file is too large")

// Telegram is a controller that handles requests from telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	cl      *http.Client
	updates chan botx.Request
	done    chan struct{}
}

// NewTelegram returns a new telegram bot controller.
func NewTelegram(lg *slog.Logger, cl *http.Client, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, cl)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	return &Telegram{
		log:     lg,
		api:     api,
		cl:      cl,
		updates: make(chan botx.Request, bufferSize),
		done:    make(chan struct{}),
	}, nil
}

// Run runs telegram bot listener until Stop is called,
// the updates channel is closed when Run returns.
func (b *Telegram) Run() {
	defer close(b.updates)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		var update tgbotapi.Update
		select {
		case <-b.done:
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			update = upd
		}

		req, ok := request(update)
		if !ok {
			continue
		}

		select {
		case b.updates <- req:
		case <-b.done:
			return
		}
	}
}

func request(update tgbotapi.Update) (botx.Request, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return botx.Request{}, false
	}

	req := botx.Request{
		MessageID: strconv.Itoa(msg.MessageID),
		Chat: botx.Chat{
			ID:       strconv.FormatInt(msg.Chat.ID, 10),
			Username: msg.Chat.UserName,
		},
		Text: msg.Text,
	}

	if req.Text == "" {
		req.Text = msg.Caption
	}

	switch {
	case len(msg.Photo) > 0:
		// the last one is the largest
		photo := msg.Photo[len(msg.Photo)-1]
		req.Attachment = &botx.Attachment{FileID: photo.FileID, MIMEType: "image/jpeg", Size: photo.FileSize}
	case msg.Document != nil:
		req.Attachment = &botx.Attachment{
			FileID:   msg.Document.FileID,
			Name:     msg.Document.FileName,
			MIMEType: msg.Document.MimeType,
			Size:     msg.Document.FileSize,
		}
	}

	if req.Text == "" && req.Attachment == nil {
		return botx.Request{}, false
	}

	return req, true
}

// Stop stops telegram bot listener, must be called once.
func (b *Telegram) Stop() {
	close(b.done)
	b.api.StopReceivingUpdates()
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SendMessage sends message to telegram user.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if resp.ReplyToMessageID != "" {
		if msg.ReplyToMessageID, err = strconv.Atoi(resp.ReplyToMessageID); err != nil {
			return fmt.Errorf("parse reply to message id: %w", err)
		}
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// DownloadFile downloads the attached file.
func (b *Telegram) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	// the url contains the bot token, it must not get into logs or errors
	u, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, errors.New("build file request")
	}

	resp, err := b.cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, unwrapURLError(err))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			b.log.WarnContext(ctx, "failed to close file body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: unexpected status code %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
