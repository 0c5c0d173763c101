package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/internal/config"
	"github.com/username/workcal/internal/xmlcalendar"
	"github.com/username/workcal/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "workcal",
		Short: "Working-day calendar",
		Long:  "Answer working-day questions against the Russian production calendar or a custom exception source",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger()
				}
			} else {
				initLogger()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(countCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(rangeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Show the day type of a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateutil.Today()
			if len(args) == 1 {
				var err error
				date, err = dateutil.ParseDate(args[0])
				if err != nil {
					return err
				}
			}

			cal, err := buildCalendar()
			if err != nil {
				return err
			}

			dayType, err := cal.GetDayType(date)
			if err != nil {
				return fmt.Errorf("failed to resolve day type: %w", err)
			}
			working, err := cal.IsWorkingDay(date)
			if err != nil {
				return err
			}

			verdict := "not a working day"
			if working {
				verdict = "a working day"
			}
			fmt.Printf("%s is %s (%s)\n", date.Format("2006-01-02"), verdict, dayType)
			return nil
		},
	}
}

func countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <start> <end>",
		Short: "Count working days in [start, end)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			end, err := dateutil.ParseDate(args[1])
			if err != nil {
				return err
			}

			cal, err := buildCalendar()
			if err != nil {
				return err
			}

			days, err := cal.CountWorkingDaysInPeriod(start, end)
			if err != nil {
				return fmt.Errorf("failed to count working days: %w", err)
			}

			fmt.Printf("%d working day(s) between %s and %s\n",
				days, start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <n>",
		Short: "Offset a date by n working days (n may be negative)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid working-day count %q: %w", args[1], err)
			}

			cal, err := buildCalendar()
			if err != nil {
				return err
			}

			result, err := cal.AddWorkingDays(date, n)
			if err != nil {
				return fmt.Errorf("failed to add working days: %w", err)
			}

			fmt.Printf("%s %+d working day(s) = %s\n",
				date.Format("2006-01-02"), n, result.Format("2006-01-02"))
			return nil
		},
	}
}

func rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range",
		Short: "Show the date range the configured source can serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := buildCalendar()
			if err != nil {
				return err
			}

			supported, ok := cal.SupportedDateRange()
			if !ok {
				fmt.Println("configured source is unbounded")
				return nil
			}

			fmt.Println(supported)
			return nil
		},
	}
}

// buildCalendar assembles the working calendar from configuration.
func buildCalendar() (*calendar.WorkingCalendar, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var source calendar.YearSource
	switch cfg.Calendar.Source {
	case config.SourceRemote:
		source = xmlcalendar.NewClient(
			cfg.Calendar.BaseURL,
			cfg.Calendar.MinYear,
			cfg.Calendar.MaxYear,
			cfg.Calendar.MaxRetries,
			logger)
	default:
		source = xmlcalendar.NewEmbedded()
	}

	provider, err := calendar.NewCachedProvider(source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exceptions provider: %w", err)
	}

	logger.Debug("Calendar assembled",
		zap.String("source", cfg.Calendar.Source),
		zap.String("supported_range", provider.SupportedDateRange().String()))

	return calendar.New(provider), nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
