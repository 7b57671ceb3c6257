// cli реализует команды hunterctl: регистрация, вход, статус сессии
// и просмотр профиля прямо из терминала, мимо браузера.
package cli

import (
	"context"
	"fmt"

	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/clistorage"
)

type Cli struct {
	apiClient *apiclient.Client
	storage   clistorage.AuthStorage
}

func New(apiClient *apiclient.Client, storage clistorage.AuthStorage) *Cli {
	return &Cli{
		apiClient: apiClient,
		storage:   storage,
	}
}

// Run выполняет команду. Ошибка возвращается вызывающему:
// решение о коде выхода принимает main после закрытия хранилища.
func (c *Cli) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage печатает справку по командам
func PrintUsage() {
	fmt.Println("HunterFit CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hunterctl [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register   Create a new account")
	fmt.Println("  login      Log in and save the session locally")
	fmt.Println("  logout     Remove the saved session")
	fmt.Println("  status     Show the local session state")
	fmt.Println("  whoami     Fetch the current profile from the server")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server    Backend API URL (default http://localhost:5000/api)")
	fmt.Println("  -db        Path to the local session database")
	fmt.Println("  -version   Show version information")
}
