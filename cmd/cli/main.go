// Command cli is an interactive terminal chat with the shoe assistant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/prompts"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/app"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

var quitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build application")
	}
	defer a.Close(context.Background())

	sessionID := "cli-" + uuid.NewString()
	fmt.Println(prompts.Greeting(cfg.Prompt))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if quitWords[strings.ToLower(text)] {
			break
		}

		reply, err := a.Orchestrator.Chat(ctx, sessionID, text)
		if err != nil {
			fmt.Println("\nSorry, I ran into a problem. Please try again.")
			logx.Error().Err(err).Msg("chat turn failed")
			continue
		}
		fmt.Printf("\n%s: %s\n", cfg.Prompt.AssistantName, reply.Message)
	}

	if res, err := a.Orchestrator.EndSession(ctx, sessionID); err != nil {
		logx.Error().Err(err).Msg("failed to end session")
	} else if res != nil && res.Success {
		logx.Info().Str("customer_id", res.CustomerID).Msg("contact details saved on exit")
	}
	fmt.Println("\n" + prompts.Farewell(cfg.Prompt))
}
