package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"evently/internal/domain"
	"evently/internal/repository/postgres"
)

var promoteEmail string

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote a registered user to organizer",
	Long: `Promote a registered user to organizer.

The HTTP change-role route is itself organizer only, so the first organizer
has to be created from the command line.

Examples:
  evently promote --email dean@uni.edu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPromote(cmd.Context(), promoteEmail)
	},
}

func init() {
	promoteCmd.Flags().StringVar(&promoteEmail, "email", "", "email of the user to promote (required)")
	_ = promoteCmd.MarkFlagRequired("email")
}

func runPromote(ctx context.Context, email string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	users := postgres.NewUserRepository(db)
	user, err := users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("no user with email %s", email)
		}
		return fmt.Errorf("look up user: %w", err)
	}
	if user.IsOrganizer() {
		fmt.Printf("%s is already an organizer\n", user.Email)
		return nil
	}
	if _, err := users.UpdateRole(ctx, user.ID, domain.RoleOrganizer); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	logger.Info("user promoted", "user_id", user.ID, "email", user.Email)
	fmt.Printf("%s is now an organizer\n", user.Email)
	return nil
}
