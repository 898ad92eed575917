package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/accademia-digitale/classroom-gateway/internal/classroom"
)

const commandTimeout = 30 * time.Second

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the active courses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		catalog := newCatalog()
		courses, err := catalog.ListCourses(ctx)
		if err != nil {
			return err
		}
		return RenderCourses(courses, viper.GetString("output"))
	},
}

var courseCmd = &cobra.Command{
	Use:   "course <id>",
	Short: "Show the detail of one course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		catalog := newCatalog()
		detail, err := catalog.GetCourseDetail(ctx, args[0])
		if err != nil {
			return err
		}
		return RenderCourseDetail(detail, viper.GetString("output"))
	},
}

var announcementsCmd = &cobra.Command{
	Use:   "announcements <course-id>",
	Short: "List the announcements of one course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		catalog := newCatalog()
		anns, err := catalog.ListAnnouncements(ctx, args[0])
		if err != nil {
			return err
		}
		return RenderAnnouncements(anns, viper.GetString("output"))
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(announcementsCmd)
}

// newCatalog builds the aggregation stack from the CLI configuration. The
// CLI talks to the live API directly, without cache or fallback: a broken
// credential should fail loudly here.
func newCatalog() classroom.Service {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tokens := classroom.NewTokenProvider(classroom.Credential{
		ClientID:     viper.GetString("google.client_id"),
		ClientSecret: viper.GetString("google.client_secret"),
		RefreshToken: viper.GetString("google.refresh_token"),
	})
	return classroom.NewAggregator(tokens, logger)
}
