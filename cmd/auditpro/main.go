package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/auditpro/auditpro/internal/config"
	"github.com/auditpro/auditpro/internal/logging"
	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/internal/server"
	"github.com/auditpro/auditpro/pkg/analyzer"
	"github.com/auditpro/auditpro/pkg/chat"
	"github.com/auditpro/auditpro/pkg/gemini"
	"github.com/auditpro/auditpro/pkg/history"
	"github.com/auditpro/auditpro/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "auditpro",
	Short: "AuditPro - AI-powered SEO and ASO audits",
	Long: `AuditPro audits websites and app store listings with an AI analyst:
scored findings across technical, content, UX and authority dimensions,
competitor intelligence, traffic forecasts, and code-level fixes.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newAnalyzer(cfg *config.Config) (*analyzer.Analyzer, *gemini.Client) {
	client := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if cfg.Gemini.BaseURL != "" {
		client.SetBaseURL(cfg.Gemini.BaseURL)
	}
	client.SetTimeout(cfg.Gemini.Timeout)
	return analyzer.New(client), client
}

func newHistory(cfg *config.Config) *history.Store {
	path := cfg.History.Path
	if path == "" {
		path = history.DefaultPath()
	}
	return history.New(path)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [URL]",
	Short: "Run a full AI audit for a URL or app store listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		kindFlag, _ := cmd.Flags().GetString("type")
		audience, _ := cmd.Flags().GetString("audience")
		geo, _ := cmd.Flags().GetString("geo")
		contentFile, _ := cmd.Flags().GetString("content-file")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		sections, _ := cmd.Flags().GetStringSlice("sections")

		kind := models.AuditWeb
		if strings.EqualFold(kindFlag, "app") {
			kind = models.AuditApp
		}

		var content string
		if contentFile != "" {
			raw, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("failed to read content file: %w", err)
			}
			content = string(raw)
		}

		a, _ := newAnalyzer(cfg)
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Gemini.Timeout+30*time.Second)
		defer cancel()

		fmt.Fprintf(os.Stderr, "Auditing %s...\n", args[0])
		result, err := a.Analyze(ctx, analyzer.Request{
			URL:            args[0],
			Content:        content,
			Kind:           kind,
			TargetAudience: audience,
			Geo:            geo,
		})
		if err != nil {
			return err
		}

		if err := newHistory(cfg).Record(result.ToHistoryItem()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record history: %v\n", err)
		}

		rep := reporter.New()
		opts := reporter.Options{Sections: sections}
		if format == "pdf" {
			if output == "" {
				output = reporter.ExportFilename(result.URL, "pdf")
			}
			if err := rep.ExportPDF(result, opts, output); err != nil {
				return err
			}
			fmt.Printf("Report saved to %s\n", output)
			return nil
		}

		report, err := rep.Generate(result, format, opts)
		if err != nil {
			return err
		}
		if output != "" {
			if err := os.WriteFile(output, []byte(report), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report saved to %s\n", output)
		} else {
			fmt.Println(report)
		}
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [QUESTION]",
	Short: "Ask a follow-up question about a saved audit result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		resultFile, _ := cmd.Flags().GetString("result")
		if resultFile == "" {
			return fmt.Errorf("--result is required (a JSON report from 'auditpro analyze --format json')")
		}

		raw, err := os.ReadFile(resultFile)
		if err != nil {
			return fmt.Errorf("failed to read result file: %w", err)
		}
		var result models.AuditResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("invalid result file: %w", err)
		}

		_, client := newAnalyzer(cfg)
		c := chat.New(client)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Gemini.Timeout)
		defer cancel()

		reply, err := c.Ask(ctx, nil, strings.Join(args, " "), &result)
		if err != nil {
			fmt.Println(chat.Fallback)
			return nil
		}
		fmt.Println(reply)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent audits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		items := newHistory(cfg).Load()
		if len(items) == 0 {
			fmt.Println("No audits recorded yet.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%-36s  %-5s  %5.0f  %3d issues  %s  %s\n",
				item.ID, item.Type, item.Score, item.ErrorCount,
				time.UnixMilli(item.Timestamp).Format("2006-01-02 15:04"), item.URL)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded audits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := newHistory(cfg).Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the AuditPro HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer log.Sync()

		a, client := newAnalyzer(cfg)
		srv := server.New(cfg.Server, log, a, chat.New(client), newHistory(cfg))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("starting auditpro",
			zap.String("version", version),
			zap.String("model", cfg.Gemini.Model),
		)
		return srv.Start(ctx)
	},
}

func init() {
	analyzeCmd.Flags().String("type", "web", "Audit type (web, app)")
	analyzeCmd.Flags().String("audience", "General", "Target audience")
	analyzeCmd.Flags().String("geo", "Global", "Geographic focus")
	analyzeCmd.Flags().String("content-file", "", "File with page content to analyze")
	analyzeCmd.Flags().String("format", "json", "Report format (json, markdown, html, pdf)")
	analyzeCmd.Flags().String("output", "", "Output file for the report")
	analyzeCmd.Flags().StringSlice("sections", reporter.DefaultSections(), "Report sections to include")

	chatCmd.Flags().String("result", "", "Path to a JSON audit result")

	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
}

func main() {
	// a local .env is optional; absence is not an error
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
