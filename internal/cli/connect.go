package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/izzyreal/raincast/internal/client"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/page"
)

type commandDeps struct {
	prompter Prompter
	discover func(ctx context.Context, timeout time.Duration) (string, error)
}

func defaultCommandDeps() commandDeps {
	return commandDeps{prompter: surveyPrompter{}, discover: client.Discover}
}

// connect resolves the server (flag or mDNS) and checks it speaks our API.
func connect(ctx context.Context, server string, discoverTimeout time.Duration, deps commandDeps) (*client.Client, error) {
	baseURL := strings.TrimSpace(server)
	if baseURL == "" {
		discover := deps.discover
		if discover == nil {
			discover = client.Discover
		}
		var err error
		baseURL, err = discover(ctx, discoverTimeout)
		if err != nil {
			return nil, err
		}
		slog.Info("discovered raincast server", "url", baseURL)
	}
	c, err := client.New(baseURL)
	if err != nil {
		return nil, err
	}
	if info, err := c.ServerInfo(ctx); err != nil {
		slog.Warn("server info unavailable", "error", err)
	} else if err := client.CheckCompatible(info); err != nil {
		return nil, err
	}
	return c, nil
}

// newAuthForm builds the terminal rendition of the login or signup form.
func newAuthForm(fields []forms.Field, label string, out io.Writer, notifier *flash.Notifier) *page.AuthController {
	return page.NewAuthController(page.AuthOptions{
		Fields:    fields,
		Submit:    &terminalControl{out: out, label: label},
		Annotator: terminalAnnotator{out: out},
		Meter:     terminalMeter{out: out},
		Notifier:  notifier,
	})
}

// failureText is the notification shown for a failed login or signup call.
func failureText(err error, fallback string) string {
	var appErr *client.ApplicationError
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &appErr):
		if appErr.Message != "" {
			return appErr.Message
		}
		return fmt.Sprintf("%s (status %d)", fallback, appErr.Status)
	case errors.As(err, &transportErr):
		return "Network error: " + transportErr.Err.Error()
	default:
		return err.Error()
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
