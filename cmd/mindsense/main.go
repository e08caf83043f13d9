package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/mindsense/ai/core/llm"
	"github.com/hrygo/mindsense/ai/docimport"
	"github.com/hrygo/mindsense/ai/engine"
	"github.com/hrygo/mindsense/ai/metrics"
	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/internal/version"
	"github.com/hrygo/mindsense/server"
	"github.com/hrygo/mindsense/store"
	"github.com/hrygo/mindsense/store/db"
)

var rootCmd = &cobra.Command{
	Use:     "mindsense",
	Short:   `An AI-powered personal growth companion. Adaptive conversation, emotional insight, and memory that follows you.`,
	Version: version.StringFull(),
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Only load .env for direct binary execution; service managers
		// inject their own environment.
		if !isRunningAsSystemdService() {
			_ = godotenv.Load()
		}
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version.String(),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}
		return serve(instanceProfile)
	},
}

func serve(instanceProfile *profile.Profile) error {
	ctx, cancel := signal.NotifyContext(context.Background(), terminationSignals...)
	defer cancel()

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		slog.Error("failed to create db driver", "error", err)
		return err
	}
	storeInstance := store.New(dbDriver, instanceProfile)
	defer storeInstance.Close()
	if err := storeInstance.Migrate(ctx); err != nil {
		slog.Error("failed to migrate", "error", err)
		return err
	}

	model, err := llm.NewService(&llm.Config{
		Provider:          instanceProfile.LLMProvider,
		Model:             instanceProfile.LLMModel,
		APIKey:            instanceProfile.LLMAPIKey,
		BaseURL:           instanceProfile.LLMBaseURL,
		Timeout:           instanceProfile.LLMTimeout,
		RequestsPerMinute: instanceProfile.LLMRPM,
	})
	if err != nil {
		slog.Error("failed to create llm service", "error", err)
		return err
	}
	if instanceProfile.IsAIEnabled() {
		go model.Warmup(context.Background())
	} else {
		slog.Warn("no LLM API key configured, chat responses will degrade to the fallback message")
	}

	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())
	sessions := engine.NewSessionManager(engine.SessionManagerConfig{
		IdleTTL: time.Duration(instanceProfile.SessionTTLMinutes) * time.Minute,
	})
	pipeline := docimport.NewPipeline(docimport.DefaultConfig())
	eng := engine.New(engine.Config{
		CacheCapacity: instanceProfile.CacheCapacity,
		CacheTTL:      time.Duration(instanceProfile.CacheTTLSeconds) * time.Second,
		ModelLabel:    instanceProfile.LLMModel,
	}, model, sessions, pipeline, exporter)

	s := server.NewServer(instanceProfile, storeInstance, eng, exporter)

	printGreetings(instanceProfile)

	return s.Start(ctx)
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 28090)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 28090, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("mindsense")
	viper.AutomaticEnv()
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("MindSense %s started successfully!\n", profile.Version)

	if profile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if profile.DSN != "" {
			fmt.Fprintf(os.Stderr, "Database: %s\n", profile.DSN)
		}
	}

	fmt.Printf("Data directory: %s\n", profile.Data)
	fmt.Printf("Database driver: %s\n", profile.Driver)
	fmt.Printf("Mode: %s\n", profile.Mode)
	fmt.Printf("LLM provider: %s (%s)\n", profile.LLMProvider, profile.LLMModel)

	if len(profile.Addr) == 0 {
		fmt.Printf("Server running on port %d\n", profile.Port)
	} else {
		fmt.Printf("Server running on %s:%d\n", profile.Addr, profile.Port)
	}
	if profile.SecretKey == "" {
		fmt.Println("Auth: demo mode, identify with the X-User-ID header")
	}
}

// isRunningAsSystemdService detects if the process is running under systemd.
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("mindsense exited", "error", err)
		os.Exit(1)
	}
}
