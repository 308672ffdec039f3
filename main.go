package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/cdr3match/symdel/ingest"
	"github.com/cdr3match/symdel/result"
	"github.com/cdr3match/symdel/symdel"
)

var gitCommitSHA = ""

func main() {
	// set up a context that is canceled when a command is interrupted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// set up a signal handler to cancel the context
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			klog.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}

		// Allow any further SIGTERM or SIGINT to kill process
		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:        "symdel",
		Version:     gitCommitSHA,
		Usage:       "find nearby strings by symmetric-deletion indexed Levenshtein distance",
		UsageText:   "symdel [-d N] [-n T] [--zero-index] [--debug-dump] [--verbose] [FILE_QUERY] [FILE_REFERENCE]",
		Description: "Zero file args: read one collection from stdin, run a within-collection search.\nOne file arg: read that file, run a within-collection search.\nTwo file args: read both, run a cross-collection search.",
		Before: func(c *cli.Context) error {
			symdel.SetWorkers(c.Int("n"))
			return nil
		},
		Flags: append([]cli.Flag{
			&cli.UintFlag{
				Name:    "d",
				Usage:   "max edit distance",
				Value:   1,
				EnvVars: []string{"SYMDEL_MAX_DISTANCE"},
			},
			&cli.IntFlag{
				Name:    "n",
				Usage:   "worker thread count, 0 means one per CPU",
				Value:   0,
				EnvVars: []string{"SYMDEL_WORKERS"},
			},
			&cli.BoolFlag{
				Name:  "zero-index",
				Usage: "emit 0-based indices instead of the default 1-based",
			},
			&cli.BoolFlag{
				Name:  "debug-dump",
				Usage: "dump the run configuration and result matrix size to stderr",
			},
		}, NewKlogFlagSet()...),
		Action: runSearch,
	}

	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Errorf("symdel: %v", err)
		os.Exit(1)
	}
}

func runSearch(c *cli.Context) error {
	maxDistance := uint8(c.Uint("d"))
	zeroIndex := c.Bool("zero-index")
	debugDump := c.Bool("debug-dump")

	var matrix *result.Matrix
	var err error

	switch c.NArg() {
	case 0:
		strs, readErr := ingest.ReadLines(os.Stdin)
		if readErr != nil {
			return readErr
		}
		klog.V(1).Infof("read %s strings from stdin", humanize.Comma(int64(len(strs))))
		matrix, err = symdel.Within(c.Context, strs, maxDistance)
	case 1:
		strs, readErr := readFile(c.Args().Get(0))
		if readErr != nil {
			return readErr
		}
		klog.V(1).Infof("read %s strings from %s", humanize.Comma(int64(len(strs))), c.Args().Get(0))
		matrix, err = symdel.Within(c.Context, strs, maxDistance)
	case 2:
		query, readErr := readFile(c.Args().Get(0))
		if readErr != nil {
			return readErr
		}
		reference, readErr := readFile(c.Args().Get(1))
		if readErr != nil {
			return readErr
		}
		klog.V(1).Infof("read %s query, %s reference strings", humanize.Comma(int64(len(query))), humanize.Comma(int64(len(reference))))
		matrix, err = symdel.Cross(c.Context, query, reference, maxDistance)
	default:
		return fmt.Errorf("symdel: expected 0, 1 or 2 file arguments, got %d", c.NArg())
	}
	if err != nil {
		return err
	}
	klog.V(1).Infof("found %s hits", humanize.Comma(int64(matrix.Len())))

	if debugDump {
		spew.Fdump(os.Stderr, struct {
			MaxDistance uint8
			ZeroIndex   bool
			NumArgs     int
			ResultLen   int
		}{maxDistance, zeroIndex, c.NArg(), matrix.Len()})
	}

	return writeMatrix(os.Stdout, matrix, zeroIndex)
}

func readFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadLines(f)
}

func writeMatrix(w *os.File, m *result.Matrix, zeroIndex bool) error {
	offset := uint32(1)
	if zeroIndex {
		offset = 0
	}
	buf := make([]byte, 0, 4096)
	for i := 0; i < m.Len(); i++ {
		buf = buf[:0]
		buf = fmt.Appendf(buf, "%d,%d,%d\n", m.Row[i]+offset, m.Col[i]+offset, m.Dist[i])
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
