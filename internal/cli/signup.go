package cli

import (
	"context"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
)

const msgSignupSuccess = "Account created successfully! Please login."

type signupOptions struct {
	server          string
	username        string
	email           string
	password        string
	confirm         string
	interactive     bool
	timeout         time.Duration
	discoverTimeout time.Duration
}

func newSignupCmd(deps commandDeps) *cobra.Command {
	opts := signupOptions{}
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on a raincast server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd.Context(), opts, deps, cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.server, "server", "", "server base URL (default: discover via mDNS)")
	f.StringVar(&opts.username, "username", "", "account username")
	f.StringVar(&opts.email, "email", "", "account email address")
	f.StringVar(&opts.password, "password", "", "account password")
	f.StringVar(&opts.confirm, "confirm-password", "", "repeat the password")
	f.BoolVar(&opts.interactive, "interactive", false, "prompt for missing values")
	f.DurationVar(&opts.timeout, "timeout", 0, "overall request timeout (0 means none)")
	f.DurationVar(&opts.discoverTimeout, "discover-timeout", 2*time.Second, "mDNS browse time when --server is not set")
	return cmd
}

func runSignup(ctx context.Context, opts signupOptions, deps commandDeps, stderr io.Writer) error {
	stderr = newLockedWriter(stderr)
	notifier := newTerminalNotifier(stderr)
	form := newAuthForm(forms.SignupFields(), "Sign Up", stderr, notifier)

	var err error
	if opts.interactive {
		if opts.username == "" {
			if opts.username, err = deps.prompter.Input("Username", "", "", nil); err != nil {
				return err
			}
		}
		if opts.email == "" {
			opts.email, err = deps.prompter.Input("Email", "", "", func(s string) error {
				if s != "" && !forms.ValidEmail(s) {
					return errors.New(forms.MsgInvalidEmail)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		if opts.password == "" {
			if opts.password, err = deps.prompter.Password("Password"); err != nil {
				return err
			}
		}
		form.PasswordInput(opts.password)
		if opts.confirm == "" {
			if opts.confirm, err = deps.prompter.Password("Confirm password"); err != nil {
				return err
			}
			form.ConfirmInput(opts.password, opts.confirm)
		}
	} else if opts.password != "" {
		form.PasswordInput(opts.password)
	}

	values := url.Values{
		forms.FieldUsername:        {opts.username},
		forms.FieldEmail:           {opts.email},
		forms.FieldPassword:        {opts.password},
		forms.FieldConfirmPassword: {opts.confirm},
	}
	if !form.Submit(values) {
		return reported(errFormInvalid)
	}

	ctx, cancel := withTimeout(ctx, opts.timeout)
	defer cancel()

	c, err := connect(ctx, opts.server, opts.discoverTimeout, deps)
	if err != nil {
		return err
	}
	if err := c.Signup(ctx, values); err != nil {
		notifier.Notify(flash.KindError, failureText(err, "Signup failed"))
		return reported(err)
	}
	notifier.Notify(flash.KindSuccess, msgSignupSuccess)
	return nil
}
