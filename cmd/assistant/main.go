package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sg-217/paisabuddy/internal/amqp"
	"github.com/sg-217/paisabuddy/internal/backend"
	"github.com/sg-217/paisabuddy/internal/classify"
	"github.com/sg-217/paisabuddy/internal/config"
	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/engine"
	"github.com/sg-217/paisabuddy/internal/forecast"
	"github.com/sg-217/paisabuddy/internal/log"
	"github.com/sg-217/paisabuddy/internal/query"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	logger.Info("Starting assistant")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	be, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if be.Cleanup != nil {
		defer be.Cleanup()
	}

	analyzer := classify.NewTextAnalyzer()
	classifier := classify.New(analyzer, classify.DefaultLexicon(analyzer))

	// Fold previously learned keywords back into the hot lexicon.
	if learned, err := be.Lexicon.LoadKeywords(context.Background()); err != nil {
		logger.Warn("Failed to load learned keywords, starting from seed lexicon", "error", err)
	} else {
		for cat, keywords := range learned {
			for _, kw := range keywords {
				classifier.Learn(kw, cat)
			}
		}
	}

	baseline := query.StaticBaseline{
		MonthlyIncome: core.FromRupees(cfg.MonthlyIncome),
		MonthlyBudget: core.FromRupees(cfg.MonthlyBudget),
	}
	executor := query.NewExecutor(be.Expenses, classifier, baseline)
	forecaster := forecast.New(be.Expenses)

	engineOpts := []engine.Option{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, corrections disabled", "error", err)
		} else {
			defer amqpClient.Close()
			engineOpts = append(engineOpts, engine.WithCorrections(amqpClient))
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	eng := engine.New(executor, logger.WithComponent(log.ComponentEngine), engineOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Assistant ready", "backend", cfg.DataBackend, "user", cfg.DefaultUserID)
	runREPL(ctx, eng, forecaster, cfg.DefaultUserID, logger)
	logger.Info("Assistant stopped")
}

// runREPL reads one transcript per line until stdin closes or ctx is
// cancelled. Lines starting with "/" are meta commands: /forecast and
// /correct <category> <text>.
func runREPL(ctx context.Context, eng *engine.Engine, forecaster *forecast.Forecaster, userID string, logger *log.Logger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "/") {
				runMeta(ctx, eng, forecaster, userID, line, logger)
				continue
			}

			result, err := eng.Execute(ctx, userID, line)
			if err != nil {
				logger.Error("Command failed", "error", err)
				fmt.Println("Something went wrong, please try again.")
				continue
			}
			fmt.Println(result.Response)
		}
	}
}

func runMeta(ctx context.Context, eng *engine.Engine, forecaster *forecast.Forecaster, userID, line string, logger *log.Logger) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/forecast":
		bundle, err := forecaster.Forecast(ctx, userID)
		if err != nil {
			logger.Error("Forecast failed", "error", err)
			fmt.Println("Something went wrong, please try again.")
			return
		}
		printForecast(bundle)

	case "/correct":
		// /correct <category> <original text...>
		if len(fields) < 3 {
			fmt.Println("Usage: /correct <category> <text>")
			return
		}
		cat, ok := core.ParseCategory(fields[1])
		if !ok {
			fmt.Printf("Unknown category %q.\n", fields[1])
			return
		}
		text := strings.Join(fields[2:], " ")
		if err := eng.Correct(ctx, userID, text, cat, nil); err != nil {
			logger.Error("Correction failed", "error", err)
			fmt.Println("Could not record the correction.")
			return
		}
		fmt.Printf("Noted: %q is %s.\n", text, cat)

	default:
		fmt.Println("Commands: /forecast, /correct <category> <text>")
	}
}

func printForecast(b forecast.Bundle) {
	if b.Message != "" {
		fmt.Println(b.Message)
		return
	}
	fmt.Printf("Next month estimate: ₹%.0f (confidence: %s)\n", b.Total.Rupees(), b.Confidence)
	for cat, r := range b.Regular {
		fmt.Printf("  %s: ₹%.0f (%s)\n", cat, r.Predicted.Rupees(), r.Trend)
	}
	for cat, ir := range b.Irregular {
		fmt.Printf("  %s: ₹%.0f (probability %.0f%%)\n", cat, ir.PredictedAmount.Rupees(), ir.Probability*100)
	}
	for _, ins := range b.Insights {
		fmt.Printf("  [%s] %s\n", ins.Type, ins.Message)
	}
}
