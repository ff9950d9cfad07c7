// cmd/productharvester/main.go

// ProductHarvester drives a rendering browser across a batch of product
// detail pages and assembles the extracted fields into a dataset.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/config"
	"github.com/valpere/ProductHarvester/internal/extract"
	"github.com/valpere/ProductHarvester/internal/images"
	"github.com/valpere/ProductHarvester/internal/input"
	"github.com/valpere/ProductHarvester/internal/ledger"
	"github.com/valpere/ProductHarvester/internal/monitoring"
	"github.com/valpere/ProductHarvester/internal/output"
	"github.com/valpere/ProductHarvester/internal/runner"
	"github.com/valpere/ProductHarvester/internal/utils"
)

const (
	appName    = "productharvester"
	appVersion = "1.0.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "template":
		err = templateCommand()
	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - browser-driven product data extraction

Usage:
  %s <command> [arguments]

Commands:
  run <config.yaml>       Execute a harvesting run
  validate <config.yaml>  Validate a configuration file
  template                Print a starter configuration to stdout
  version                 Print version information
  help                    Show this help

`, appName, appName)
}

func runCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s run <config.yaml>", appName)
	}

	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	log, logPath, closeLog, err := utils.NewRunLogger(cfg.Logging.Dir, utils.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return err
	}
	defer closeLog()

	log.Infof("%s %s starting, config %q, log %s", appName, appVersion, cfg.Name, logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	links, err := input.ReadLinks(cfg.Input.File, cfg.Input.Sheet, cfg.Input.Column)
	if err != nil {
		return err
	}
	log.Infof("loaded %d links from %s", len(links), cfg.Input.File)

	locators, err := extract.DefaultLocators().Merge(cfg.Selectors)
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetrics()

	downloader, err := images.NewDownloader(images.Config{
		Dir:               cfg.Images.Dir,
		TypeLabel:         cfg.Images.TypeLabel,
		Timeout:           cfg.Images.Timeout,
		RequestsPerSecond: cfg.Images.RequestsPerSecond,
		OnSaved:           metrics.ImagesSaved.Inc,
	}, log)
	if err != nil {
		return err
	}

	sessionCfg := &browser.SessionConfig{
		Headless:          cfg.Browser.Headless,
		ViewportWidth:     cfg.Browser.ViewportWidth,
		ViewportHeight:    cfg.Browser.ViewportHeight,
		UserAgent:         cfg.Browser.UserAgent,
		DisableImages:     cfg.Browser.DisableImages,
		NavigationTimeout: cfg.Browser.NavigationTimeout,
		ElementTimeout:    cfg.Browser.ElementTimeout,
	}

	popups := extract.PopupPolicy{
		AcceptCookies:     cfg.Popups.AcceptCookies,
		CookieTimeout:     cfg.Popups.CookieTimeout,
		DismissNewsletter: cfg.Popups.DismissNewsletter,
		NewsletterTimeout: cfg.Popups.NewsletterTimeout,
	}

	extractor := extract.NewPageExtractor(browser.NewChromeSession, sessionCfg, locators, downloader, popups, log)

	processed := ledger.NewProcessedSet(cfg.Ledger.File)
	if cfg.Ledger.Enabled {
		if err := processed.Load(); err != nil {
			return err
		}
		log.Infof("ledger holds %d previously scraped links", processed.Len())
	} else {
		processed = nil
	}

	var monitor *monitoring.Server
	if cfg.Monitoring.Enabled {
		monitor = monitoring.NewServer(cfg.Monitoring.ListenAddress, metrics, log)
		monitor.Start()
		monitor.SetReady(true)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := monitor.Shutdown(shutdownCtx); err != nil {
				log.Warnf("%v", err)
			}
		}()
	}

	retrier := runner.NewRetrier(cfg.Retry.Attempts, cfg.Retry.Cooldown)
	run := runner.NewRunner(extractor, retrier, processed, ledger.NewInvalidCache(), metrics, log, cfg.Concurrency.Workers)

	started := time.Now()
	collector := run.Run(ctx, links)

	sink, err := output.NewManager(output.Config{
		Format:     cfg.Output.Format,
		File:       cfg.Output.File,
		FailedFile: cfg.Output.FailedFile,
		SheetName:  cfg.Output.SheetName,
		Table:      cfg.Output.Table,
	})
	if err != nil {
		return err
	}

	assembler := runner.NewAssembler(sink, processed, log)
	if err := assembler.Assemble(collector); err != nil {
		return err
	}

	log.Infof("run finished: %d scraped, %d failed, elapsed %s",
		len(collector.Records()), len(collector.Failures()), time.Since(started).Round(time.Second))
	return ctx.Err()
}

func validateCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s validate <config.yaml>", appName)
	}
	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	if _, err := extract.DefaultLocators().Merge(cfg.Selectors); err != nil {
		return err
	}
	fmt.Printf("Configuration %q is valid\n", cfg.Name)
	return nil
}

func templateCommand() error {
	data, err := yaml.Marshal(config.GenerateTemplate())
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
