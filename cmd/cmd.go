package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/category"
	"github.com/mmwale/expense-tracker/internal/core/events"
	"github.com/mmwale/expense-tracker/internal/notification"
	"github.com/mmwale/expense-tracker/internal/storage"
	"github.com/mmwale/expense-tracker/internal/storage/sqlite"
	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/mmwale/expense-tracker/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootFlags holds the persistent flag values of one root command.
type rootFlags struct {
	configPath  string
	backend     string
	storagePath string
	logLevel    string
}

// skipStoreAnnotation marks commands that manage storage themselves.
const skipStoreAnnotation = "skip_store"

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          "expense-tracker",
		Short:        "Expense & trip tracker",
		Long:         `Record expenses and trips, approve or reject pending expenses and report on spending.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupApp(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", ".", "directory holding config.yml and .env")
	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: memory, file or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.storagePath, "storage-path", "", "storage directory or database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(newExpenseCmd())
	rootCmd.AddCommand(newTripCmd())
	rootCmd.AddCommand(newReferenceCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

func Execute() {
	if err := Run(NewRootCmd()); err != nil {
		os.Exit(1)
	}
}

// Run executes root and then flushes toasts and closes the store of the
// command that ran, whether or not it failed.
func Run(root *cobra.Command) error {
	c, err := root.ExecuteC()
	if c != nil {
		teardownApp(c)
	}
	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", internal.BackendFile)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("notification.default_duration", notification.DefaultDuration)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("reference.teams", category.DefaultTeams)
	v.SetDefault("reference.categories", category.DefaultCategories)
	v.SetDefault("report.locale", "en-US")
}

func loadConfig(flags *rootFlags) (*internal.Config, error) {
	path := flags.configPath
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Storage.Backend = getStringFlag(flags.backend, cfg.Storage.Backend)
	cfg.Storage.Path = getStringFlag(flags.storagePath, cfg.Storage.Path)
	cfg.Logging.Level = getStringFlag(flags.logLevel, cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return &cfg, nil
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func openBackend(cfg internal.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case internal.BackendMemory:
		return storage.NewMemoryBackend(), nil
	case internal.BackendFile:
		return storage.NewFileBackend(afero.NewOsFs(), cfg.Path)
	case internal.BackendSQLite:
		return sqlite.Open(cfg.Path)
	default:
		return nil, internal.ErrUnsupportedBackend.WithDetails(cfg.Backend)
	}
}

// app bundles what a command needs. It lives in the command context.
type app struct {
	cfg    *internal.Config
	logger *slog.Logger
	store  *tracker.Store
	toasts *notification.Sink
	bus    *events.EventBus
}

type appKey struct{}

func appFrom(ctx context.Context) *app {
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}

func setupApp(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log := logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	a := &app{
		cfg:    cfg,
		logger: log,
		toasts: notification.NewSink(log, notification.WithDefaultDuration(cfg.Notification.DefaultDuration)),
		bus:    events.NewEventBus(log),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.With(logger.Into(ctx, log), "command", cmd.CommandPath())

	if cmd.Annotations[skipStoreAnnotation] != "true" {
		backend, err := openBackend(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		a.store = tracker.NewStore(
			storage.NewAdapter(backend, log),
			log,
			tracker.WithPublisher(a.bus),
			tracker.WithTeams(cfg.Reference.Teams...),
			tracker.WithCategories(cfg.Reference.Categories...),
		)
		subscribeToasts(a.bus, a.toasts)
		ctx = tracker.WithStore(ctx, a.store)
	}

	cmd.SetContext(context.WithValue(ctx, appKey{}, a))
	return nil
}

func teardownApp(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		return
	}
	a := appFrom(ctx)
	if a == nil {
		return
	}

	for _, t := range a.toasts.Toasts() {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", t.Type, t.Message)
	}
	a.toasts.Close()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("failed to close store", "error", err)
		}
	}
}

// subscribeToasts turns store events into user-facing toasts.
func subscribeToasts(bus *events.EventBus, sink *notification.Sink) {
	bus.Subscribe(events.EventTypeExpenseStatusChanged, func(_ context.Context, event events.Event) error {
		if e, ok := event.(*events.StatusChangedEvent); ok {
			sink.AddToast(notification.ToastInput{
				Type:    notification.TypeSuccess,
				Message: fmt.Sprintf("Expense %s is now %s.", e.ExpenseID, e.To),
			})
		}
		return nil
	})
	bus.Subscribe(events.EventTypeExpenseReported, func(_ context.Context, event events.Event) error {
		if e, ok := event.(*events.ReportedEvent); ok {
			sink.AddToast(notification.ToastInput{
				Type:    notification.TypeInfo,
				Message: fmt.Sprintf("%d expense(s) marked as reported.", len(e.ExpenseIDs)),
			})
		}
		return nil
	})
}
