// Command recallsense drives the review scheduling engine from the
// command line: ingest learning content, scan raw documents, list due and
// upcoming reviews, record completions, and print statistics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/recallsense/internal/profile"
	"github.com/hrygo/recallsense/internal/util"
	"github.com/hrygo/recallsense/plugin/classifier"
	"github.com/hrygo/recallsense/server/service/review"
	"github.com/hrygo/recallsense/server/timezone"
	"github.com/hrygo/recallsense/store"
	"github.com/hrygo/recallsense/store/db"
)

const version = "0.3.0"

var (
	instanceProfile = &profile.Profile{Version: version}
	configFile      string

	rootCmd = &cobra.Command{
		Use:   "recallsense",
		Short: "Spaced-repetition review scheduling engine",
		Long: `recallsense tracks when learned content must be revisited, following
the Ebbinghaus forgetting curve (reviews after 1, 2, 4, 7, 15 and 30
day intervals, compounded).`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configFile != "" {
				viper.SetConfigFile(configFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config %s: %w", configFile, err)
				}
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				return err
			}
			if instanceProfile.IsDev() {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
	}
)

// engine wires profile -> driver -> store -> classifier -> service.
type engine struct {
	service *review.Service
	store   *store.Store
	loc     *time.Location
}

func newEngine(ctx context.Context) (*engine, error) {
	loc, err := timezone.ParseTimezone(instanceProfile.Timezone)
	if err != nil {
		return nil, err
	}

	driver, err := db.NewDriver(instanceProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to create store driver: %w", err)
	}
	st := store.New(driver, instanceProfile)

	c, err := classifier.NewFromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}

	return &engine{
		service: review.NewService(ctx, st, c, loc),
		store:   st,
		loc:     loc,
	}, nil
}

func (e *engine) close() {
	if err := e.store.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}

// referenceDate resolves the optional --date flag, defaulting to now.
func referenceDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return time.Now(), nil
	}
	t, ok := classifier.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}
	return t, nil
}

func newIngestCmd() *cobra.Command {
	var (
		id           string
		title        string
		summary      string
		course       string
		contentType  string
		learningDate string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Add one learning item to the review schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			learned := time.Now()
			if learningDate != "" {
				t, ok := classifier.ParseDate(learningDate)
				if !ok {
					return fmt.Errorf("unrecognized learning date %q", learningDate)
				}
				learned = t
			}

			if id == "" {
				id = "manual_" + util.GenShortUID()
			}

			before := e.service.Count()
			e.service.Ingest(ctx, review.IngestRequest{
				ContentID:    id,
				Title:        title,
				Summary:      summary,
				CourseName:   course,
				ContentType:  store.ParseContentType(contentType),
				LearningDate: learned,
			})

			if e.service.Count() > before {
				fmt.Printf("scheduled %q (%s)\n", title, id)
			} else {
				fmt.Printf("already scheduled: %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "content id (generated when omitted)")
	cmd.Flags().StringVar(&title, "title", "", "content title")
	cmd.Flags().StringVar(&summary, "summary", "", "short content summary")
	cmd.Flags().StringVar(&course, "course", "", "course name")
	cmd.Flags().StringVar(&contentType, "type", "general", "content type: lesson|assignment|reading|general")
	cmd.Flags().StringVar(&learningDate, "learning-date", "", "when the content was learned (default now)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <documents.json>",
		Short: "Classify raw documents and schedule the learning material found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read documents file: %w", err)
			}
			var docs []classifier.Document
			if err := json.Unmarshal(data, &docs); err != nil {
				return fmt.Errorf("failed to parse documents file: %w", err)
			}

			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			created, skipped := e.service.ScanDocuments(ctx, docs)
			fmt.Printf("scanned %d documents: %d new items scheduled, %d skipped\n", len(docs), created, skipped)
			return nil
		},
	}
}

func newDueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reviews due on or before a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ref, err := referenceDate(cmd)
			if err != nil {
				return err
			}

			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			due := e.service.GetDueReviews(ctx, ref)
			if len(due) == 0 {
				fmt.Println("no reviews due")
				return nil
			}
			for _, item := range due {
				overdue := "due today"
				if item.DaysOverdue > 0 {
					overdue = fmt.Sprintf("%d days overdue", item.DaysOverdue)
				}
				fmt.Printf("%s  [%s] %s (review %d/%d, %s)\n",
					item.DueDate.In(e.loc).Format("2006-01-02"),
					item.CourseName, item.Title,
					item.ReviewNumber, item.TotalReviews, overdue)
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "reference date (default today)")
	return cmd
}

func newUpcomingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List reviews scheduled within the coming days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ref, err := referenceDate(cmd)
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")

			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			upcoming := e.service.GetUpcomingReviews(ctx, ref, days)
			if len(upcoming) == 0 {
				fmt.Printf("no reviews in the next %d days\n", days)
				return nil
			}
			for _, item := range upcoming {
				when := "today"
				if item.DaysUntil > 0 {
					when = fmt.Sprintf("in %d days", item.DaysUntil)
				}
				fmt.Printf("%s  [%s] %s (review %d/%d, %s)\n",
					item.ReviewDate.In(e.loc).Format("2006-01-02"),
					item.CourseName, item.Title,
					item.ReviewNumber, item.TotalReviews, when)
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "reference date (default today)")
	cmd.Flags().Int("days", review.UpcomingWeekHorizon, "horizon in days")
	return cmd
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <content-id>",
		Short: "Mark the next review of a content item as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if !e.service.MarkCompleted(ctx, args[0], time.Now()) {
				fmt.Printf("nothing to complete for %s (unknown or already finished)\n", args[0])
				return nil
			}
			fmt.Printf("review recorded for %s\n", args[0])
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print review schedule statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ref, err := referenceDate(cmd)
			if err != nil {
				return err
			}

			e, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			stats := e.service.GetStatistics(ctx, ref)
			fmt.Printf("tracked content:     %d\n", stats.TotalContents)
			fmt.Printf("active schedules:    %d\n", stats.ActiveSchedules)
			fmt.Printf("completed schedules: %d\n", stats.CompletedSchedules)
			fmt.Printf("due today:           %d\n", stats.DueToday)
			fmt.Printf("upcoming this week:  %d\n", stats.UpcomingThisWeek)
			fmt.Printf("reviews completed:   %d/%d\n", stats.TotalReviewsCompleted, stats.TotalReviewsScheduled)
			fmt.Printf("completion rate:     %.2f%%\n", stats.CompletionRate)
			return nil
		},
	}
	cmd.Flags().String("date", "", "reference date (default today)")
	return cmd
}

func init() {
	// Flag defaults stay empty so the resolution order is flag, then
	// RECALLSENSE_* environment variable, then the Validate defaults.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&instanceProfile.Mode, "mode", "", `mode of the engine: "prod", "dev" or "demo" (default demo)`)
	flags.StringVar(&instanceProfile.Data, "data", "", "data directory")
	flags.StringVar(&instanceProfile.Driver, "driver", "", "schedule store driver (default jsonfile)")
	flags.StringVar(&instanceProfile.StorePath, "store-path", "", "schedule store file path")
	flags.StringVar(&instanceProfile.Timezone, "timezone", "", "IANA timezone for day boundaries (default UTC)")
	flags.StringVar(&configFile, "config", "", "optional config file with classifier pattern overrides")

	rootCmd.AddCommand(
		newIngestCmd(),
		newScanCmd(),
		newDueCmd(),
		newUpcomingCmd(),
		newCompleteCmd(),
		newStatsCmd(),
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
