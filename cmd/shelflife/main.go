package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shelflife/internal/bootstrap"
	bookdto "shelflife/internal/modules/book/dto"
	"shelflife/internal/platform/config"
	"shelflife/internal/platform/format"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var libraryPath string

	root := &cobra.Command{
		Use:           "shelflife",
		Short:         "Reading tracker with pace projections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&libraryPath, "library", ".", "library path")

	root.AddCommand(newTUICmd(&libraryPath))
	root.AddCommand(newBookCmd(&libraryPath))
	root.AddCommand(newSessionCmd(&libraryPath))
	root.AddCommand(newStatsCmd(&libraryPath))
	root.AddCommand(newGenreCmd(&libraryPath))
	root.AddCommand(newSearchCmd(&libraryPath))
	root.AddCommand(newExportCmd(&libraryPath))
	root.AddCommand(newImportCmd(&libraryPath))
	root.AddCommand(newReindexCmd(&libraryPath))
	return root
}

func loadApp(libraryPath string) (*bootstrap.App, error) {
	cfg, err := config.New(libraryPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(libraryPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the dashboard UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newBookCmd(libraryPath *string) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage books on the shelf"}

	var author, dueDate, coverURL, description string
	var pages int
	var genres []string
	var abandonCurrent bool

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book and make it the current read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			out, err := app.BookCLI.Add(context.Background(), bookdto.AddInput{
				Title:          args[0],
				Author:         author,
				PagesTotal:     pages,
				DueDate:        dueDate,
				Genres:         genres,
				CoverURL:       coverURL,
				Description:    description,
				AbandonCurrent: abandonCurrent,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) note=%s\n", out.Title, out.ID, out.NotePath)
			return nil
		},
	}
	addCmd.Flags().StringVar(&author, "author", "", "author name")
	addCmd.Flags().IntVar(&pages, "pages", 0, "total pages (required)")
	addCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVar(&genres, "genres", nil, "genres")
	addCmd.Flags().StringVar(&coverURL, "cover", "", "cover image URL")
	addCmd.Flags().StringVar(&description, "description", "", "description")
	addCmd.Flags().BoolVar(&abandonCurrent, "abandon-current", false, "abandon the current book first")
	_ = addCmd.MarkFlagRequired("pages")

	var genreFilter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			books, err := app.BookCLI.List(context.Background(), genreFilter)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no books")
				return nil
			}
			for _, b := range books {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-30s %4d/%-4d %s\n", b.Status, b.Title, b.PagesRead, b.PagesTotal, b.ID)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&genreFilter, "genre", "", "filter by genre")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a book (current book when id is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			var detail bookdto.BookDetailOutput
			if len(args) == 0 {
				detail, err = app.BookCLI.Current(context.Background())
			} else {
				detail, err = app.BookCLI.Get(context.Background(), args[0])
			}
			if err != nil {
				return err
			}
			printBookDetail(cmd, detail)
			return nil
		},
	}

	dueCmd := &cobra.Command{
		Use:   "due <id> <date>",
		Short: "Set or clear a book's due date (empty date clears)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			date := ""
			if len(args) == 2 {
				date = args[1]
			}
			detail, err := app.BookCLI.SetDueDate(context.Background(), args[0], date)
			if err != nil {
				return err
			}
			printBookDetail(cmd, detail)
			return nil
		},
	}

	abandonCmd := &cobra.Command{
		Use:   "abandon <id>",
		Short: "Mark the current book as did-not-finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			detail, err := app.BookCLI.Abandon(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "abandoned %s\n", detail.Title)
			return nil
		},
	}

	rereadCmd := &cobra.Command{
		Use:   "reread <id>",
		Short: "Start a book over from page zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			detail, err := app.BookCLI.Reread(context.Background(), args[0], abandonCurrent)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rereading %s\n", detail.Title)
			return nil
		},
	}
	rereadCmd.Flags().BoolVar(&abandonCurrent, "abandon-current", false, "abandon the current book first")

	resumeCmd := &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume an abandoned book keeping its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			detail, err := app.BookCLI.Resume(context.Background(), args[0], abandonCurrent)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "resumed %s at page %d\n", detail.Title, detail.PagesRead)
			return nil
		},
	}
	resumeCmd.Flags().BoolVar(&abandonCurrent, "abandon-current", false, "abandon the current book first")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book and its note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			if err := app.BookCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	rateCmd := &cobra.Command{
		Use:   "rate <id> <thumbs_up|thumbs_down>",
		Short: "Rate a finished book (empty rating clears it)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			rating := ""
			if len(args) == 2 {
				rating = args[1]
			}
			detail, err := app.BookCLI.Rate(context.Background(), args[0], rating)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated %s: %s\n", detail.Title, ratingLabel(detail.Rating))
			return nil
		},
	}

	var pace float64
	paceCmd := &cobra.Command{
		Use:   "pace <id>",
		Short: "Set or clear a manual pages-per-minute override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			var detail bookdto.BookDetailOutput
			if cmd.Flags().Changed("set") {
				detail, err = app.BookCLI.SetOverridePace(context.Background(), args[0], pace)
			} else {
				detail, err = app.BookCLI.ClearOverridePace(context.Background(), args[0])
			}
			if err != nil {
				return err
			}
			if detail.OverridePagesPerMin > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "override pace %.2f pages/min\n", detail.OverridePagesPerMin)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "override cleared")
			}
			return nil
		},
	}
	paceCmd.Flags().Float64Var(&pace, "set", 0, "pages per minute; omit to clear")

	book.AddCommand(addCmd, listCmd, showCmd, dueCmd, abandonCmd, rereadCmd, resumeCmd, deleteCmd, rateCmd, paceCmd)
	return book
}

func printBookDetail(cmd *cobra.Command, d bookdto.BookDetailOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s", d.Title)
	if d.Author != "" {
		_, _ = fmt.Fprintf(w, " by %s", d.Author)
	}
	_, _ = fmt.Fprintf(w, "\nstatus: %s  pages: %d/%d\n", d.Status, d.PagesRead, d.PagesTotal)
	if !d.DueDate.IsZero() {
		_, _ = fmt.Fprintf(w, "due: %s\n", d.DueDate.Format("2006-01-02"))
	}
	if len(d.Genres) > 0 {
		_, _ = fmt.Fprintf(w, "genres: %s\n", strings.Join(d.Genres, ", "))
	}
	if d.Rating != "" {
		_, _ = fmt.Fprintf(w, "rating: %s\n", ratingLabel(d.Rating))
	}
	if d.OverridePagesPerMin > 0 {
		_, _ = fmt.Fprintf(w, "override pace: %.2f pages/min\n", d.OverridePagesPerMin)
	}
	_, _ = fmt.Fprintf(w, "note: %s\n", d.NotePath)
}

func ratingLabel(rating string) string {
	switch rating {
	case "thumbs_up":
		return "👍"
	case "thumbs_down":
		return "👎"
	default:
		return "unrated"
	}
}

func newSessionCmd(libraryPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record reading sessions"}

	var bookID string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a reading session on the current book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), bookID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reading %s (session %s)\n", out.BookTitle, out.SessionID)
			return nil
		},
	}
	startCmd.Flags().StringVar(&bookID, "book", "", "book id (defaults to the current book)")

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			status, err := app.SessionCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused at %s\n", status.Elapsed.Round(time.Second))
			return nil
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			status, err := app.SessionCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "resumed (segment %d)\n", status.Segments)
			return nil
		},
	}

	var exclude bool
	finishCmd := &cobra.Command{
		Use:   "finish <ending-page>",
		Short: "Finish the session at the page you stopped on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			page := 0
			if _, err := fmt.Sscanf(args[0], "%d", &page); err != nil {
				return fmt.Errorf("ending page must be a number: %w", err)
			}
			out, err := app.SessionCLI.Finalize(context.Background(), page, exclude)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages in %s (%.2f pages/min)\n",
				out.BookTitle, out.Pages, format.Minutes(out.DurationMin), out.PagesPerMin)
			if out.BookCompleted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "book finished! rate it with: shelflife book rate")
			}
			return nil
		},
	}
	finishCmd.Flags().BoolVar(&exclude, "exclude-from-pace", false, "keep this session out of the pace average")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			status, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			state := "reading"
			if status.Paused {
				state = "paused"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s (%d segments)\n",
				state, status.BookTitle, status.Elapsed.Round(time.Second), status.Segments)
			return nil
		},
	}

	var historyBook string
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List finished sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.History(context.Background(), historyBook)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				tag := ""
				if s.ExcludeFromPace {
					tag = " (excluded)"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d pages  %.2f pages/min%s\n",
					s.StartedAt.Format("2006-01-02 15:04"), format.Minutes(s.DurationMin), s.Pages, s.PagesPerMin, tag)
			}
			return nil
		},
	}
	historyCmd.Flags().StringVar(&historyBook, "book", "", "filter by book id")

	session.AddCommand(startCmd, pauseCmd, resumeCmd, finishCmd, statusCmd, historyCmd)
	return session
}

func newStatsCmd(libraryPath *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Pace, projections and word estimates"}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the stat card (current book when id is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			s, err := app.StatsCLI.BookStats(context.Background(), id)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n", s.Title)
			_, _ = fmt.Fprintf(w, "progress:     %d%% (page %d of %d)\n", s.ProgressPercent, s.PagesRead, s.PagesTotal)
			pace := "--"
			if s.Pace > 0 {
				pace = fmt.Sprintf("%.2f pages/min", s.Pace)
				if s.PaceOverride {
					pace += " (manual)"
				}
			}
			_, _ = fmt.Fprintf(w, "pace:         %s\n", pace)
			_, _ = fmt.Fprintf(w, "time left:    %s\n", s.TimeRemainingLabel)
			_, _ = fmt.Fprintf(w, "pages/day:    %s\n", s.PagesPerDayLabel)
			_, _ = fmt.Fprintf(w, "target page:  %s\n", s.TargetPageLabel)
			_, _ = fmt.Fprintf(w, "session/day:  %s\n", s.SessionLengthLabel)
			if s.AtRisk {
				_, _ = fmt.Fprintln(w, "due date at risk!")
			}
			_, _ = fmt.Fprintf(w, "words:        ~%s of %s read (%d words/page)\n",
				format.Count(s.WordsRead), format.Count(s.TotalWords), s.WordsPerPage)
			_, _ = fmt.Fprintf(w, "sessions:     %d totaling %s over %d pages\n",
				s.SessionCount, format.Minutes(s.TotalMinutes), s.TotalSessionPages)
			if s.TotalMinutes > 0 {
				_, _ = fmt.Fprintf(w, "average:      %.0f pages/hour\n", float64(s.TotalSessionPages)/(s.TotalMinutes/60))
			}
			return nil
		},
	}

	var wpm float64
	baselineCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Show or set your baseline reading speed (words/min)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("set") {
				out, err := app.StatsCLI.SetBaselineWPM(context.Background(), wpm)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "baseline set to %.0f words/min\n", out.WPM)
				return nil
			}
			if cmd.Flags().Changed("clear") {
				if err := app.StatsCLI.ClearBaselineWPM(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "baseline cleared")
				return nil
			}
			out, err := app.StatsCLI.GetBaselineWPM(context.Background())
			if err != nil {
				return err
			}
			suffix := ""
			if out.Default {
				suffix = " (default)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "baseline: %.0f words/min%s\n", out.WPM, suffix)
			return nil
		},
	}
	baselineCmd.Flags().Float64Var(&wpm, "set", 0, "words per minute")
	baselineCmd.Flags().Bool("clear", false, "remove the stored baseline")

	stats.AddCommand(showCmd, baselineCmd)
	return stats
}

func newGenreCmd(libraryPath *string) *cobra.Command {
	genre := &cobra.Command{Use: "genre", Short: "Genre breakdowns"}

	genre.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List genres with book and completion counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			counts, err := app.BookCLI.GenreStats(context.Background())
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no genres")
				return nil
			}
			for _, g := range counts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %3d books, %d finished\n", g.Name, g.Total, g.Completed)
			}
			return nil
		},
	})
	return genre
}

func newSearchCmd(libraryPath *string) *cobra.Command {
	var showKey string
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the OpenLibrary catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if showKey != "" {
				detail, err := app.CatalogCLI.Describe(context.Background(), query, showKey)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s", detail.Title)
				if detail.Author != "" {
					_, _ = fmt.Fprintf(w, " by %s", detail.Author)
				}
				if detail.FirstPublishYear > 0 {
					_, _ = fmt.Fprintf(w, " (%d)", detail.FirstPublishYear)
				}
				_, _ = fmt.Fprintln(w)
				if detail.PagesTotal > 0 {
					_, _ = fmt.Fprintf(w, "pages: %d\n", detail.PagesTotal)
				}
				if detail.Description != "" {
					_, _ = fmt.Fprintf(w, "\n%s\n", detail.Description)
				}
				return nil
			}
			results, err := app.CatalogCLI.Search(context.Background(), query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, r := range results {
				year := ""
				if r.FirstPublishYear > 0 {
					year = fmt.Sprintf(" (%d)", r.FirstPublishYear)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s by %s%s\n", r.Key, r.Title, r.Author, year)
			}
			return nil
		},
	}
	search.Flags().StringVar(&showKey, "show", "", "work key from a previous search to show details for")
	return search
}

func newExportCmd(libraryPath *string) *cobra.Command {
	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the whole library to a JSON archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Export(context.Background(), outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d books and %d sessions to %s\n", out.Books, out.Sessions, out.Path)
			return nil
		},
	}
	export.Flags().StringVarP(&outPath, "out", "o", "shelf-life-data.json", "output file")
	return export
}

func newImportCmd(libraryPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the library with a JSON archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d books and %d sessions (format %s)\n", out.Books, out.Sessions, out.Version)
			return nil
		},
	}
}

func newReindexCmd(libraryPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the book index from notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*libraryPath)
			if err != nil {
				return err
			}
			if err := app.BookCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "index rebuilt")
			return nil
		},
	}
}
