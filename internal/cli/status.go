package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hunterfit/gateway/internal/clistorage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	auth, err := c.storage.GetAuth(ctx)
	if err != nil {
		if err == clistorage.ErrAuthNotFound {
			fmt.Println("Not logged in. Run 'hunterctl login' first.")
			return nil
		}
		return fmt.Errorf("failed to read auth data: %w", err)
	}

	fmt.Println("=== Session status ===")
	fmt.Printf("Email: %s\n", auth.Email)
	if auth.UserID != "" {
		fmt.Printf("User ID: %s\n", auth.UserID)
	}

	if auth.ExpiresAt > 0 {
		expiresAt := time.Unix(auth.ExpiresAt, 0)
		if time.Now().After(expiresAt) {
			if auth.RefreshToken != "" {
				fmt.Println("Access token: expired (will refresh on next request)")
			} else {
				fmt.Println("Access token: expired")
			}
		} else {
			fmt.Printf("Access token: valid until %s\n", expiresAt.Format(time.RFC3339))
		}
	}

	return nil
}
