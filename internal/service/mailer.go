package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/blogicum/internal/db"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer 基于 gomail 的 SMTP 邮件发送实现。
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTPMailer. Host may be empty, in which case the
// caller is expected to skip mail entirely.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers the message synchronously over SMTP.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Notifier sends best-effort notifications. Delivery failures are logged and
// otherwise swallowed so the triggering operation never fails because of
// mail transport state.
type Notifier struct {
	mailer  Mailer
	baseURL string
}

// NewNotifier creates a Notifier. A nil mailer disables notifications.
func NewNotifier(mailer Mailer, baseURL string) *Notifier {
	return &Notifier{mailer: mailer, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// NotifyNewComment mails the post author that commenter left a comment,
// with a link to the post detail page.
func (n *Notifier) NotifyNewComment(post *db.Post, commenter *db.User) {
	if n == nil || n.mailer == nil || post == nil || commenter == nil {
		return
	}

	recipient := strings.TrimSpace(post.Author.Email)
	if recipient == "" {
		return
	}

	link := fmt.Sprintf("%s/posts/%d", n.baseURL, post.ID)
	body := fmt.Sprintf(
		"User %s commented on the post %s.\nRead the comment: %s",
		commenter.Username, post.Title, link,
	)

	if err := n.mailer.Send(recipient, "New comment", body); err != nil {
		log.Printf("comment notification for post %d failed: %v", post.ID, err)
	}
}
