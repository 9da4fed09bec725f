package main

import (
	"TokenFinder/internal"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "TokenFinder",
		Usage:     "Locate every occurrence of a search token in large UTF-8 files",
		ArgsUsage: "FILE [FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "search",
				Usage:    "Token to search for (case-insensitive, must not be empty)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "separator",
				Usage: "Single character that resets matching, like a newline does",
				Value: ",",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Write all occurrences into this CSV file after the scan",
			},
			&cli.BoolFlag{
				Name:  "archives",
				Usage: "Treat archive targets (.zip,.tar,.gz,...) as sets of inner files",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "Max concurrent file workers (default scales with CPU)",
				Value: 0,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Global timeout for the run (e.g. 10m, 1h)",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar for single-file scans",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))
	logrus.Info("TokenFinder started")

	// ctx with timeout + OS signals
	base := context.Background()

	var cancel context.CancelFunc
	if t := c.Duration("timeout"); t > 0 {
		base, cancel = context.WithTimeout(base, t)
	} else {
		base, cancel = context.WithCancel(base)
	}
	defer cancel()

	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// targets
	var paths []string
	var singleSize int64 = -1
	for _, p := range c.Args().Slice() {
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			logrus.Warnf("Skip: not a file or inaccessible: %s", p)
			continue
		}
		paths = append(paths, p)
		singleSize = st.Size()
	}
	if len(paths) == 0 {
		return cli.Exit("No valid target files", 1)
	}

	opts := internal.RunOptions{
		Paths:     paths,
		Search:    c.String("search"),
		Separator: internal.PickSeparator(internal.DefaultSeparator, c.String("separator")),
		Threads:   c.Int("threads"),
		Archives:  c.Bool("archives"),
		CSVPath:   c.String("csv"),
	}
	if err := opts.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	opts.Prepare()

	// byte progress bar, single plain file only
	var bar *progressbar.ProgressBar
	if len(paths) == 1 && !opts.Archives && !c.Bool("no-progress") {
		bar = progressbar.DefaultBytes(singleSize, "scanning")
	}

	var stats internal.AppStats
	sink := internal.NewResultSink(&stats)

	runner := internal.NewRunner()
	err := runner.Run(ctx, opts, func(res internal.ScanResult) {
		sink.Handle(res)
		if bar != nil && res.Err == nil && !res.Done {
			_ = bar.Set64(int64(res.Progress.BytesScanned))
		}
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	if err != nil {
		if ctx.Err() != nil {
			logrus.Warn("Scan cancelled")
		} else {
			logrus.WithError(err).Error("Scan failed")
		}
	}

	// export only what a finished or cancelled run already reported
	if opts.CSVPath != "" {
		if all := sink.All(); len(all) > 0 {
			if err := internal.WriteCSV(opts.CSVPath, all); err != nil {
				logrus.WithError(err).Error("CSV export failed")
			}
		} else {
			logrus.Info("Nothing to export")
		}
	}

	fmt.Printf(
		"\n======= Scan finished in %s =======\nFiles scanned: %d\nBytes scanned: %d\nOccurrences found: %d\nErrors: %d\n",
		stats.Elapsed(), stats.FilesScanned.Load(), stats.BytesScanned.Load(),
		stats.Occurrences.Load(), stats.Errors.Load(),
	)
	return nil
}
