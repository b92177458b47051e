package telegram

import (
	"errors"
	"strings"
	"testing"

	"github.com/alehernandezlabs/trade-notifier/internal/config"
	"github.com/alehernandezlabs/trade-notifier/internal/logger"
)

func TestDisabledNotifierDropsSends(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Enabled = false

	n, err := NewNotifier(cfg, logger.New("error"))
	if err != nil {
		t.Fatalf("disabled notifier should construct: %v", err)
	}
	if n.Enabled() {
		t.Fatal("notifier should report disabled")
	}
	if err := n.Send("hello"); err != nil {
		t.Fatalf("disabled notifier should drop silently, got %v", err)
	}
}

func TestSendErrorIsGeneric(t *testing.T) {
	cause := errors.New("Forbidden: bot token 123:abc revoked")
	err := &SendError{err: cause}

	if strings.Contains(err.Error(), "token") {
		t.Fatalf("SendError message must not leak transport detail: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("SendError should wrap the transport error")
	}
}
