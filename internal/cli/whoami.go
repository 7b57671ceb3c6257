package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	ok, err := c.storage.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return fmt.Errorf("not logged in, run 'hunterctl login' first")
	}

	user := c.fetchProfile(ctx)
	if user == nil {
		return fmt.Errorf("failed to fetch profile, the session may have expired")
	}

	fmt.Println("=== Profile ===")
	fmt.Printf("Name:  %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role:  %s\n", user.Role)
	fmt.Printf("XP:    %d\n", user.XP)
	if user.Rank != "" {
		fmt.Printf("Rank:  %s\n", user.Rank)
	}

	// Обновляем сохраненный user id, если логин его не узнал
	if auth, err := c.storage.GetAuth(ctx); err == nil && auth.UserID != user.ID {
		auth.UserID = user.ID
		if err := c.storage.SaveAuth(ctx, auth); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
	}

	return nil
}
