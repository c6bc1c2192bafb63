package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/curio/internal/smoketest"
	"github.com/okian/curio/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumItems     = 100
	defaultWorkerFactor = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultTestTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numItems = flag.Int("items", defaultNumItems, "Number of items to create")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkerFactor, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		keep     = flag.Bool("keep", false, "Leave created items in place instead of cleaning up")
		logFile  = flag.String("log", "", "Log file for test output (default: smoke_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:  *baseURL,
		NumItems: *numItems,
		Workers:  *workers,
		Timeout:  *timeout,
		KeepData: *keep,
		Verbose:  *verbose,
		LogFile:  *logFile,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "smoke test failed", logger.Error(err))
		os.Exit(1)
	}
}
