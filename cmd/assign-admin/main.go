// Command assign-admin grants or revokes the admin role of a site user.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"recruitfunnel/site/config"
	"recruitfunnel/site/database"
	"recruitfunnel/site/models"
	"recruitfunnel/site/store"
)

type options struct {
	email    string
	role     string
	revoke   bool
	password string
}

// userStore is the part of store.UserStore the command needs.
type userStore interface {
	SetRole(ctx context.Context, email, role string) error
	CreateUser(ctx context.Context, email string, hashedPassword []byte, role string) (*models.User, error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "assign-admin",
		Short:         "Grant or revoke a user's admin role",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cmd.Context(), cfg.DatabaseURL, zap.NewNop())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.EnsurePostgresSchema(cmd.Context()); err != nil {
				return err
			}
			return assign(cmd.Context(), store.NewUserStore(db.DB), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "email of the user")
	cmd.Flags().StringVar(&opts.role, "role", models.RoleAdmin, "role to assign")
	cmd.Flags().BoolVar(&opts.revoke, "revoke", false, "downgrade the user to viewer")
	cmd.Flags().StringVar(&opts.password, "password", "", "create the user with this password if it does not exist")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func assign(ctx context.Context, users userStore, opts options, out io.Writer) error {
	email := strings.TrimSpace(strings.ToLower(opts.email))
	if email == "" {
		return errors.New("--email is required")
	}
	role := opts.role
	if opts.revoke {
		role = models.RoleViewer
	}
	if role != models.RoleAdmin && role != models.RoleViewer {
		return fmt.Errorf("unknown role %q", role)
	}

	err := users.SetRole(ctx, email, role)
	if err == nil {
		fmt.Fprintf(out, "%s is now %s\n", email, role)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) || opts.password == "" {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := users.CreateUser(ctx, email, hashed, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created %s (id %d) as %s\n", user.Email, user.ID, user.Role)
	return nil
}
