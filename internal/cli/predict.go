package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/page"
)

type predictOptions struct {
	server          string
	username        string
	password        string
	features        []string
	interactive     bool
	timeout         time.Duration
	discoverTimeout time.Duration
}

func newPredictCmd(deps commandDeps) *cobra.Command {
	opts := predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Log in and request a rainfall prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.username == "" {
				opts.username = os.Getenv("RAINCAST_USERNAME")
			}
			if opts.password == "" {
				opts.password = os.Getenv("RAINCAST_PASSWORD")
			}
			return runPredict(cmd.Context(), opts, deps, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.server, "server", "", "server base URL (default: discover via mDNS)")
	f.StringVar(&opts.username, "username", "", "account username (default $RAINCAST_USERNAME)")
	f.StringVar(&opts.password, "password", "", "account password (default $RAINCAST_PASSWORD)")
	f.StringArrayVar(&opts.features, "feature", nil, "feature value as name=value, repeatable")
	f.BoolVar(&opts.interactive, "interactive", false, "prompt for every feature value")
	f.DurationVar(&opts.timeout, "timeout", 0, "overall request timeout (0 means none)")
	f.DurationVar(&opts.discoverTimeout, "discover-timeout", 2*time.Second, "mDNS browse time when --server is not set")
	return cmd
}

func runPredict(ctx context.Context, opts predictOptions, deps commandDeps, stdout, stderr io.Writer) error {
	stderr = newLockedWriter(stderr)
	catalog := features.Default()
	snapshot, err := buildSnapshot(catalog, opts.features)
	if err != nil {
		return err
	}
	if opts.interactive {
		if err := promptFeatures(deps.prompter, catalog, snapshot); err != nil {
			return err
		}
		if opts.username == "" {
			if opts.username, err = deps.prompter.Input("Username", "", "", nil); err != nil {
				return err
			}
		}
		if opts.password == "" {
			if opts.password, err = deps.prompter.Password("Password"); err != nil {
				return err
			}
		}
	}

	notifier := newTerminalNotifier(stderr)
	login := newAuthForm(forms.LoginFields(), "Login", stderr, notifier)
	if !login.Submit(url.Values{
		forms.FieldUsername: {opts.username},
		forms.FieldPassword: {opts.password},
	}) {
		return reported(errFormInvalid)
	}

	ctx, cancel := withTimeout(ctx, opts.timeout)
	defer cancel()

	c, err := connect(ctx, opts.server, opts.discoverTimeout, deps)
	if err != nil {
		return err
	}
	if err := c.Login(ctx, opts.username, opts.password); err != nil {
		notifier.Notify(flash.KindError, failureText(err, "Login failed"))
		return reported(err)
	}

	ctrl := page.NewPredictionController(page.PredictionOptions{
		Predictor: c,
		Submit:    &terminalControl{out: stderr, label: "Predict Rainfall"},
		View:      terminalView{out: stdout},
		Notifier:  notifier,
	})
	return reported(ctrl.Submit(ctx, snapshot))
}

// buildSnapshot starts from the catalog defaults and applies name=value
// overrides.
func buildSnapshot(catalog features.Catalog, overrides []string) (url.Values, error) {
	snapshot := catalog.Defaults()
	for _, raw := range overrides {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --feature %q, want name=value", raw)
		}
		if _, known := catalog.Lookup(name); !known {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		snapshot.Set(name, value)
	}
	return snapshot, nil
}

func promptFeatures(p Prompter, catalog features.Catalog, snapshot url.Values) error {
	for _, f := range catalog.Features {
		msg := f.Label()
		if f.Unit != "" {
			msg += " (" + f.Unit + ")"
		}
		feature := f
		answer, err := p.Input(msg, f.Description, snapshot.Get(f.Name), func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("not a number")
			}
			if feature.Min != feature.Max && (v < feature.Min || v > feature.Max) {
				return fmt.Errorf("must be between %s and %s", features.FormatValue(feature.Min), features.FormatValue(feature.Max))
			}
			return nil
		})
		if err != nil {
			return err
		}
		snapshot.Set(f.Name, strings.TrimSpace(answer))
	}
	return nil
}
