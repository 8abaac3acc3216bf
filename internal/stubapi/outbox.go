// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/salonbook/internal/platform/ctxutil"
)

// MailKind names the emails the stub would send.
type MailKind string

const (
	MailVerification  MailKind = "verification"
	MailPasswordReset MailKind = "password_reset"
)

// Mail is an email the stub pretends to send.
type Mail struct {
	To     string
	Kind   MailKind
	Secret string
}

// Outbox records outgoing mail instead of delivering it. Each send is also
// logged so a developer can copy the code from the server output.
type Outbox struct {
	mu   sync.Mutex
	last map[string]Mail
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{last: make(map[string]Mail)}
}

func (outbox *Outbox) send(ctx context.Context, mail Mail) {
	outbox.mu.Lock()
	outbox.last[normalizeEmail(mail.To)+"|"+string(mail.Kind)] = mail
	outbox.mu.Unlock()

	ctxutil.GetLogger(ctx).InfoContext(ctx, "mail_sent",
		slog.String("to", mail.To),
		slog.String("kind", string(mail.Kind)),
		slog.String("secret", mail.Secret),
	)
}

// Last returns the latest mail of a kind sent to an address.
func (outbox *Outbox) Last(to string, kind MailKind) (Mail, bool) {
	outbox.mu.Lock()
	defer outbox.mu.Unlock()

	mail, ok := outbox.last[normalizeEmail(to)+"|"+string(kind)]
	return mail, ok
}
