package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dimitrije/carshare/internal/config"
	"github.com/dimitrije/carshare/internal/localstore"
	"github.com/dimitrije/carshare/internal/mockapi"
	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/internal/session"
	"github.com/dimitrije/carshare/internal/settings"
	"github.com/dimitrije/carshare/internal/transport"
)

type cli struct {
	settings  *settings.Settings
	transport *transport.Client
	session   *session.Session
	out       io.Writer
}

func newCLI(ctx context.Context, cfg *config.Config, storage localstore.Storage, logger *slog.Logger, out io.Writer) (*cli, error) {
	s, err := settings.Load(ctx, storage, cfg.APIEndpoint)
	if err != nil {
		return nil, err
	}

	dispatcher := mockapi.NewDispatcher(mockapi.Seed(),
		mockapi.WithLatency(cfg.MockLatency),
		mockapi.WithLogger(logger),
	)
	client := transport.New(s, dispatcher,
		transport.WithTimeout(cfg.HTTPTimeout),
		transport.WithLogger(logger),
	)

	return &cli{
		settings:  s,
		transport: client,
		session:   session.New(client, storage, logger),
		out:       out,
	}, nil
}

func (c *cli) run(ctx context.Context, args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carshare",
		Short:         "Car-share client for the mock and the real backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)
	root.SetErr(c.out)

	root.AddCommand(
		c.settingsCmd(),
		&cobra.Command{
			Use:   "ping",
			Short: "Check that the backend answers",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return c.ping(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return c.whoami(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "login <email> <password>",
			Short: "Sign in",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return c.login(cmd.Context(), args[0], args[1]) },
		},
		&cobra.Command{
			Use:   "send-code <email>",
			Short: "Mail a signup verification code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.session.SendVerificationCode(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "verification code sent to %s\n", args[0])
				return nil
			},
		},
		c.signupCmd(),
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.session.Logout(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(c.out, "signed out")
				return nil
			},
		},
		&cobra.Command{
			Use:   "query <operation> [variables-json]",
			Short: "Run an operation and print its result",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  func(cmd *cobra.Command, args []string) error { return c.query(cmd.Context(), args) },
		},
		&cobra.Command{
			Use:   "operations",
			Short: "List the known operations",
			Args:  cobra.NoArgs,
			Run: func(_ *cobra.Command, _ []string) {
				for _, kind := range operations.All() {
					fmt.Fprintln(c.out, kind.String())
				}
			},
		},
	)
	return root
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the backend settings",
		Args:  cobra.NoArgs,
		Run:   func(_ *cobra.Command, _ []string) { c.showSettings() },
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the backend settings",
			Args:  cobra.NoArgs,
			Run:   func(_ *cobra.Command, _ []string) { c.showSettings() },
		},
		&cobra.Command{
			Use:   "mock <on|off>",
			Short: "Switch between the mock and the real backend",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				return c.settings.SetUseMockData(cmd.Context(), on)
			},
		},
		&cobra.Command{
			Use:   "endpoint <url>",
			Short: "Set the real backend endpoint",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.settings.SetAPIEndpoint(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default settings",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return c.settings.Reset(cmd.Context()) },
		},
	)
	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	var input operations.SignupInput
	var vcode string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.session.Signup(cmd.Context(), input, vcode)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "signed up as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Email, "email", "", "account email")
	flags.StringVar(&input.Password, "password", "", "account password")
	flags.StringVar(&input.FirstName, "first", "", "first name")
	flags.StringVar(&input.LastName, "last", "", "last name")
	flags.StringVar(&input.Icon, "icon", "", "icon URL")
	flags.StringVar(&vcode, "vcode", "", "verification code from send-code")
	return cmd
}

func (c *cli) showSettings() {
	mode := "api"
	if c.settings.UseMockData() {
		mode = "mock"
	}
	fmt.Fprintf(c.out, "mode:     %s\nendpoint: %s\n", mode, c.settings.APIEndpoint())
	fmt.Fprintln(c.out, "candidates:")
	for _, candidate := range c.settings.Candidates() {
		fmt.Fprintf(c.out, "  %s\n", candidate)
	}
}

func (c *cli) ping(ctx context.Context) error {
	if err := c.transport.Ping(ctx); err != nil {
		return err
	}
	if c.transport.Mode() == "mock" {
		fmt.Fprintln(c.out, "ok (mock data)")
		return nil
	}
	fmt.Fprintf(c.out, "ok (%s)\n", c.settings.APIEndpoint())
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	if err := c.session.Restore(ctx); err != nil {
		return err
	}
	user := c.session.User()
	if user == nil {
		fmt.Fprintln(c.out, "not signed in")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}

func (c *cli) login(ctx context.Context, email, password string) error {
	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (c *cli) query(ctx context.Context, args []string) error {
	kind, ok := operations.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown operation %q (see carshare operations)", args[0])
	}

	var vars operations.Variables
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &vars); err != nil {
			return fmt.Errorf("failed to parse variables: %w", err)
		}
	}

	if err := c.session.Restore(ctx); err != nil {
		return err
	}

	var out map[string]any
	if err := c.transport.Execute(ctx, kind, vars, &out); err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", value)
	}
	return v, nil
}
