package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sdr4n/toolshed/bootstrap"
	"github.com/sdr4n/toolshed/config"
	toolctx "github.com/sdr4n/toolshed/context"
	"github.com/sdr4n/toolshed/events"
	"github.com/sdr4n/toolshed/log"
)

const usage = `Usage:
  toolshed list                     List registered tools
  toolshed describe <tool>          Print a tool definition as JSON
  toolshed run <tool> [<json>]      Invoke a tool with JSON arguments
`

func main() {
	// Load .env if present
	_ = godotenv.Load()

	log.Init()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Handle Ctrl+C (SIGINT)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Interrupted. Exiting...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(ctx, "Failed to load config: %v", err)
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}

	switch os.Args[1] {
	case "list":
		for _, tool := range app.Registry.GetTools() {
			def := tool.Definition()
			fmt.Printf("%-24s %s\n", def.Name, def.Description)
		}

	case "describe":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		tool, ok := app.Registry.Get(os.Args[2])
		if !ok {
			log.Fatalf(ctx, "Tool not found: %s", os.Args[2])
		}
		out, err := json.MarshalIndent(tool.Definition(), "", "  ")
		if err != nil {
			log.Fatalf(ctx, "Failed to marshal definition: %v", err)
		}
		fmt.Println(string(out))

	case "run":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		name := os.Args[2]

		args := map[string]interface{}{}
		if len(os.Args) > 3 {
			if err := json.Unmarshal([]byte(os.Args[3]), &args); err != nil {
				log.Fatalf(ctx, "Invalid JSON arguments: %v", err)
			}
		}

		runCtx := toolctx.WithInvocationID(ctx, toolctx.NewInvocationID())
		// Print host events to stderr so stdout stays clean JSON
		runCtx = events.WithEmitter(runCtx, events.Func(func(ctx context.Context, event events.Event) error {
			b, err := json.Marshal(event)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, string(b))
			return nil
		}))

		result, err := app.Registry.ExecuteTool(runCtx, name, args)
		if err != nil {
			log.Fatalf(runCtx, "Tool %s failed: %v", name, err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf(runCtx, "Failed to marshal result: %v", err)
		}
		fmt.Println(string(out))

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
