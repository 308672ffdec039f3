package main

import (
	"flag"
	"fmt"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

// NewKlogFlagSet wires klog's own flag.FlagSet into the cli.App's flag
// list, so -v, -logtostderr and friends are ordinary CLI flags instead of
// a second, separate flag.Parse call.
func NewKlogFlagSet() []cli.Flag {
	fs := flag.NewFlagSet("klog", flag.PanicOnError)
	klog.InitFlags(fs)

	fs.Set("v", "0")
	fs.Set("logtostderr", "true")

	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "logtostderr",
			Usage:   "log to standard error instead of files",
			EnvVars: []string{"SYMDEL_LOGTOSTDERR"},
			Action: func(cctx *cli.Context, v bool) error {
				fs.Set("logtostderr", fmt.Sprint(v))
				return nil
			},
		},
		&cli.IntFlag{
			Name:    "v",
			Usage:   "number for the log level verbosity",
			EnvVars: []string{"SYMDEL_V"},
			Action: func(cctx *cli.Context, v int) error {
				fs.Set("v", fmt.Sprint(v))
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "vmodule",
			Usage:   "comma-separated list of pattern=N settings for file-filtered logging",
			EnvVars: []string{"SYMDEL_VMODULE"},
			Action: func(cctx *cli.Context, v string) error {
				if v != "" {
					fs.Set("vmodule", v)
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "raise the log level to debug (shorthand for -v=4)",
			EnvVars: []string{"SYMDEL_VERBOSE"},
			Action: func(cctx *cli.Context, v bool) error {
				if v {
					fs.Set("v", "4")
				}
				return nil
			},
		},
	}
}
