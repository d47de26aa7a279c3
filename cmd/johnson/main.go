package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	logging "github.com/ipfs/go-log/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"johnsonShop/internal/api"
	"johnsonShop/internal/config"
	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/planner"
	"johnsonShop/internal/report"
	"johnsonShop/internal/taskfile"
	"johnsonShop/internal/telemetry"
)

var log = logging.Logger("cli")

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagStrategy  string
	flagNoColor   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "johnson",
		Short: "Two-machine flow-shop scheduling with Johnson's Rule",
		Long: `johnson orders tasks that run on machine 1 and then machine 2 so that the
makespan is minimal, simulates the resulting schedule and reports machine
delays, utilization and a Gantt timeline.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: color, plaintext, json")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "sequencing strategy: scan or heap")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(defaultCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		if isInputError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var cfg *config.Config

// setup loads the config file and applies the global flags on top of it.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}
	if flagStrategy != "" {
		cfg.Scheduler.Strategy = flagStrategy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flagNoColor {
		color.NoColor = true
	}
	return telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format)
}

func isInputError(err error) bool {
	var verr *flowshop.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, config.ErrTaskCount) ||
		errors.Is(err, flowshop.ErrNoTasks) ||
		errors.Is(err, flowshop.ErrZeroMakespan)
}

func solveCmd() *cobra.Command {
	var (
		flagFile     string
		flagSelect   string
		flagFormat   string
		flagWidth    int
		flagExample  bool
		flagTimeline bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute the optimal sequence, timing and metrics for a task file",
		Example: `  johnson solve --file tasks.yaml
  johnson solve --file export.json --select data.rows --format json
  johnson solve --example`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(flagFile, flagSelect, flagExample, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := cfg.Limits.Check(inst.Len()); err != nil {
				return err
			}

			p, err := planner.New(cfg.Johnson(), nil)
			if err != nil {
				return err
			}
			rep, err := p.Plan(cmd.Context(), inst)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch flagFormat {
			case "text":
				report.WriteSummary(out, rep)
				if flagTimeline {
					fmt.Fprintln(out)
					return report.RenderTimeline(out, rep, flagWidth)
				}
				return nil
			default:
				return report.Encode(out, rep, flagFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&flagFile, "file", "f", "", "task file (YAML or JSON); - reads stdin")
	cmd.Flags().StringVar(&flagSelect, "select", "", "gjson path of the task list inside the document")
	cmd.Flags().StringVarP(&flagFormat, "format", "o", "text", "output format: text, json, yaml")
	cmd.Flags().IntVar(&flagWidth, "width", 72, "timeline width in columns")
	cmd.Flags().BoolVar(&flagExample, "example", false, "use the built-in ten-task example")
	cmd.Flags().BoolVar(&flagTimeline, "timeline", true, "draw the Gantt timeline in text output")

	return cmd
}

func loadInstance(path, sel string, example bool, stdin io.Reader) (*flowshop.Instance, error) {
	switch {
	case example:
		return flowshop.DefaultInstance(), nil
	case path == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return taskfile.Parse(data, sel)
	case path != "":
		return taskfile.Load(path, sel)
	default:
		return nil, fmt.Errorf("no input: pass --file or --example")
	}
}

func defaultCmd() *cobra.Command {
	var (
		flagN      int
		flagFormat string
	)

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print a starting task table (the example data for 10 tasks, zeros otherwise)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Limits.Check(flagN); err != nil {
				return err
			}
			table := struct {
				Tasks []flowshop.Task `json:"tasks"`
			}{Tasks: flowshop.BlankInstance(flagN).Tasks}

			var (
				data []byte
				err  error
			)
			switch flagFormat {
			case "yaml", "yml":
				data, err = yaml.Marshal(table)
			case "json":
				data, err = json.MarshalIndent(table, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown output format %q", flagFormat)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().IntVarP(&flagN, "tasks", "n", flowshop.DefaultTaskCount, "number of tasks")
	cmd.Flags().StringVarP(&flagFormat, "format", "o", "yaml", "output format: yaml, json")

	return cmd
}

func serveCmd() *cobra.Command {
	var flagAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduler over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagAddr != "" {
				cfg.Server.Addr = flagAddr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			p, err := planner.New(cfg.Johnson(), telemetry.NewCollectors(reg))
			if err != nil {
				return err
			}

			gin.SetMode(cfg.Server.Mode)
			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           api.NewRouter(p, cfg.Limits, reg),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infow("listening", "addr", cfg.Server.Addr, "strategy", p.Strategy())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Infow("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config)")

	return cmd
}
