package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/validation"
	"github.com/hunterfit/gateway/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Println("=== Register ===")
	fmt.Println()

	name, err := readInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if err := validation.ValidateName(name); err != nil {
		return err
	}

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	ageInput, err := readInput("Age (optional, press Enter to skip): ")
	if err != nil {
		return fmt.Errorf("failed to read age: %w", err)
	}

	age := 0
	if ageInput != "" {
		age, err = strconv.Atoi(ageInput)
		if err != nil {
			return fmt.Errorf("age must be a number")
		}
		if err := validation.ValidateAge(age); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("Creating account...")

	body, err := json.Marshal(api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Age:      age,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal register request: %w", err)
	}

	resp, err := c.apiClient.Post(ctx, nil, "/auth/register", apiclient.JSONOptions(body))
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	env := api.ParseEnvelope(respBody)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated || env == nil || !env.Success {
		return fmt.Errorf("registration rejected: %s", env.ErrorMessage("registration failed"))
	}

	fmt.Println()
	fmt.Println("✓ Registration successful!")
	fmt.Printf("Email: %s\n", email)
	fmt.Println()
	fmt.Println("Run 'hunterctl login' to start a session.")

	return nil
}
