package main

import (
	"context"
	"fmt"

	"github.com/jonathan/hiring-portal/internal/config"
	"github.com/jonathan/hiring-portal/internal/fixtures"
	"github.com/jonathan/hiring-portal/internal/session"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session for later commands",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

// terminal bundles what every session-aware command needs.
type terminal struct {
	cfg      config.Config
	env      config.Env
	repo     *fixtures.Repository
	sessions *session.Store
	close    func()
}

func openTerminal(ctx context.Context) (*terminal, error) {
	cfg, env, err := loadSettings()
	if err != nil {
		return nil, err
	}
	repo, err := loadFixtures(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	sessions, closeFn, err := openSession(ctx, cfg, env, repo)
	if err != nil {
		return nil, err
	}
	return &terminal{cfg: cfg, env: env, repo: repo, sessions: sessions, close: closeFn}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	term, err := openTerminal(ctx)
	if err != nil {
		return err
	}
	defer term.close()

	res, err := term.sessions.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%s", res.Reason)
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Logged in as %s (%s)\n", res.Session.Name, res.Session.Role)
	_, _ = fmt.Fprintf(out, "Home: %s\n", res.Redirect)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	term, err := openTerminal(ctx)
	if err != nil {
		return err
	}
	defer term.close()

	if err := term.sessions.Logout(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	term, err := openTerminal(commandContext(cmd))
	if err != nil {
		return err
	}
	defer term.close()

	sess, err := term.sessions.Require("")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", sess.Name, sess.Email, sess.Role)
	return nil
}
