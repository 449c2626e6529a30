// internal/mailcheck/mailcheck.go
package mailcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	conf "github.com/bartek5186/tourops/internal/config"
	"github.com/bartek5186/tourops/internal/jobs"
)

const JobName = "test-email"

// DefaultRecipient: skrzynka, na którą idzie wiadomość testowa (SMTP_TEST_TO nadpisuje).
const DefaultRecipient = "test@example.com"

const subject = "Тестовое письмо / Test email"

const testBody = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif">
  <h2>Проверка почты</h2>
  <p>Это тестовое письмо. Если вы его получили, SMTP настроен правильно.</p>
  <p>This is a test message. If you can read it, SMTP works.</p>
  <p style="color:#888">Отправлено: {{sent}}</p>
</body>
</html>`

// Dialer: podzbiór *gomail.Dialer używany przez check.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
	DialAndSend(m ...*gomail.Message) error
}

var ErrNotConfigured = errors.New("SMTP не настроен: нужны SMTP_HOST и SMTP_FROM")

type Checker struct {
	log    zerolog.Logger
	cfg    conf.SMTPConfig
	dialer Dialer
	now    func() time.Time
}

func New(log zerolog.Logger, cfg conf.SMTPConfig) *Checker {
	return &Checker{
		log:    log,
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		now:    time.Now,
	}
}

// WithDialer podmienia połączenie SMTP (testy).
func (c *Checker) WithDialer(d Dialer) *Checker {
	c.dialer = d
	return c
}

func (c *Checker) Name() string { return JobName }

func (c *Checker) Run(ctx context.Context) error {
	_, err := c.Check(ctx)
	return err
}

// Check: weryfikacja połączenia, potem jedna wiadomość testowa. Zwraca Message-ID.
func (c *Checker) Check(ctx context.Context) (string, error) {
	if c.cfg.Host == "" || c.cfg.From == "" {
		c.dumpConfig()
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.log.Info().Str("host", c.cfg.Host).Int("port", c.cfg.Port).Msg("Проверка подключения к SMTP...")
	s, err := c.dialer.Dial()
	if err != nil {
		c.log.Error().Err(err).Msg("Ошибка подключения к SMTP")
		c.dumpConfig()
		return "", fmt.Errorf("smtp verify: %w", err)
	}
	_ = s.Close()
	c.log.Info().Msg("SMTP сервер готов к отправке")

	msg, id := c.message()
	if err := c.dialer.DialAndSend(msg); err != nil {
		c.log.Error().Err(err).Msg("Ошибка отправки письма")
		c.dumpConfig()
		return "", fmt.Errorf("smtp send: %w", err)
	}

	c.log.Info().Str("message_id", id).Str("to", c.recipient()).Msg("Письмо отправлено")
	return id, nil
}

func (c *Checker) recipient() string {
	if c.cfg.TestTo != "" {
		return c.cfg.TestTo
	}
	return DefaultRecipient
}

func (c *Checker) message() (*gomail.Message, string) {
	html := strings.ReplaceAll(testBody, "{{sent}}", c.now().Format(time.RFC1123Z))
	id := messageID(c.cfg.From, c.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", c.recipient())
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", id)
	m.SetDateHeader("Date", c.now())
	m.SetBody("text/plain", HTMLToText(html))
	m.AddAlternative("text/html", html)
	return m, id
}

// messageID: <uuid@domena-nadawcy>
func messageID(from, host string) string {
	domain := host
	if at := strings.LastIndex(from, "@"); at >= 0 {
		domain = strings.Trim(from[at+1:], "> ")
	}
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func (c *Checker) dumpConfig() {
	pass := ""
	if c.cfg.Pass != "" {
		pass = "****"
	}
	c.log.Warn().
		Str("SMTP_HOST", c.cfg.Host).
		Int("SMTP_PORT", c.cfg.Port).
		Str("SMTP_USER", c.cfg.User).
		Str("SMTP_PASS", pass).
		Str("SMTP_FROM", c.cfg.From).
		Str("to", c.recipient()).
		Msg("Текущая конфигурация SMTP")
}

func init() {
	jobs.Register(jobs.Spec{
		Name:  JobName,
		Short: "Проверка SMTP: подключение и тестовое письмо",
		New: func(d jobs.Deps) (jobs.Job, error) {
			var cfg conf.SMTPConfig
			if d.Config != nil {
				cfg = d.Config.SMTP
			}
			return New(d.Log, cfg), nil
		},
	})
}
