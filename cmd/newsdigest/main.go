package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/newsdigest/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath    string
		envFile       string
		pageURL       string
		textPath      string
		category      string
		maxArticles   int
		concurrency   int
		contentMax    int
		summaryMax    int
		summaryMethod string
		noSummary     bool
		userAgent     string
		timeout       time.Duration
		asJSON        bool
		verbose       bool
		metricsAddr   string
	)

	flag.StringVar(&configPath, "config", "", "Path to yaml config file")
	flag.StringVar(&envFile, "env", ".env", "Path to dotenv file")
	flag.StringVar(&pageURL, "url", "", "Process a single article URL")
	flag.StringVar(&textPath, "text", "", "Summarize a raw text file instead of fetching ('-' for stdin)")
	flag.StringVar(&category, "category", "italian_news", "Feed catalog category to process")
	flag.IntVar(&maxArticles, "feeds.max", 0, "Articles per feed (0 uses config default)")
	flag.IntVar(&concurrency, "feeds.concurrency", 0, "Parallel article workers (0 uses config default)")
	flag.IntVar(&contentMax, "content.max", 0, "Content length cap in characters")
	flag.IntVar(&summaryMax, "summary.max", 0, "Summary length cap in characters")
	flag.StringVar(&summaryMethod, "summary.method", "", "Summary method: auto|extractive|keyword|lead")
	flag.BoolVar(&noSummary, "summary.off", false, "Disable summarization")
	flag.StringVar(&userAgent, "ua", "", "Override the request User-Agent")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout")
	flag.BoolVar(&asJSON, "json", false, "Emit article records as JSON")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&metricsAddr, "metrics.addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	flag.Parse()

	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				log.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	app.LoadEnvFiles(envFile)

	cfg := app.DefaultConfig()
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnv(&cfg)

	// Flags win over file and environment.
	cfg.URL = pageURL
	cfg.Category = category
	if maxArticles > 0 {
		cfg.MaxArticlesPerFeed = maxArticles
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	if contentMax > 0 {
		cfg.ContentMaxChars = contentMax
	}
	if summaryMax > 0 {
		cfg.SummaryMaxChars = summaryMax
	}
	if summaryMethod != "" {
		cfg.SummaryMethod = summaryMethod
	}
	if noSummary {
		cfg.Summarize = false
	}
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if textPath != "" {
		var raw []byte
		var err error
		if textPath == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(textPath)
		}
		if err != nil {
			log.Fatal().Err(err).Str("path", textPath).Msg("read text input")
		}
		res := app.New(cfg).SummarizeText(string(raw))
		fmt.Printf("summary (%s): %s\n", res.Method, res.Text)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records, err := app.New(cfg).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			log.Fatal().Err(err).Msg("encode output")
		}
		return
	}
	for _, rec := range records {
		fmt.Printf("# %s\n", rec.Title)
		if rec.Source != "" {
			fmt.Printf("source: %s\n", rec.Source)
		}
		fmt.Printf("link: %s\n", rec.Link)
		fmt.Printf("strategy: %s", rec.ContentStrategy)
		if rec.ContentSelector != "" {
			fmt.Printf(" (%s)", rec.ContentSelector)
		}
		fmt.Println()
		if rec.Summary != "" {
			fmt.Printf("summary (%s): %s\n", rec.SummaryMethod, rec.Summary)
		}
		fmt.Printf("\n%s\n\n", rec.Content)
	}
}
