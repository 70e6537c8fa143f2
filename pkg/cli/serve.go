package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getmockd/influxmock/pkg/cli/internal/netaddr"
	"github.com/getmockd/influxmock/pkg/cli/internal/output"
	"github.com/getmockd/influxmock/pkg/config"
	"github.com/getmockd/influxmock/pkg/engine"
	"github.com/getmockd/influxmock/pkg/engine/api"
	"github.com/getmockd/influxmock/pkg/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const managementShutdownTimeout = 5 * time.Second

// serveFlags holds the serve command's flag values.
type serveFlags struct {
	configFile     string
	port           int
	managementPort int
	bind           string
	token          string
	autoStart      bool
	logLevel       string
	logFormat      string
	logFile        string
	exitOnStdin    bool
}

var sf serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the management listener and the mock data plane",
	Long: `Run the management listener and, with --autostart, the data plane.

Configuration is layered: built-in defaults, then the YAML/JSON file given
by --config (or INFLUXMOCK_CONFIG), then INFLUXMOCK_* environment
variables, then the flags given on the command line.

The command blocks until SIGINT or SIGTERM. When stdin is a terminal it
also exits when Enter is pressed.`,
	Example: `  # Wait for a harness to call /start
  influxmock serve

  # Serve the data plane right away on a custom port
  influxmock serve --autostart --port 8086

  # Run under a supervisor, ignoring stdin
  influxmock serve --exit-on-stdin=false --log-format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadServeConfig(cmd)
		if err != nil {
			return err
		}

		logOut, closeLog, err := openLogFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		defer closeLog()

		log := logging.New(logging.Config{
			Level:  logging.ParseLevel(cfg.Logging.Level),
			Format: logging.ParseFormat(cfg.Logging.Format),
			Output: cmd.ErrOrStderr(),
			Mirror: logOut,
		})

		if !cfg.AutoStart {
			if err := netaddr.Check(cfg.BindAddress, cfg.Port); err != nil {
				output.Warn(cmd.ErrOrStderr(), "%v; /start will fail until it is freed", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg, serveOptions{
			stdin:       cmd.InOrStdin(),
			exitOnStdin: sf.exitOnStdin,
			log:         log,
		})
	},
}

// loadServeConfig layers explicitly set flags over config.Load.
func loadServeConfig(cmd *cobra.Command) (*config.ServerConfiguration, error) {
	cfg, err := config.Load(sf.configFile)
	if err != nil {
		return nil, err
	}
	applyServeFlags(cfg, cmd.Flags().Changed, sf)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyServeFlags copies the flags reported as changed into cfg.
func applyServeFlags(cfg *config.ServerConfiguration, changed func(name string) bool, f serveFlags) {
	if changed("port") {
		cfg.Port = f.port
		cfg.SetSource("port", config.SourceFlag)
	}
	if changed("management-port") {
		cfg.ManagementPort = f.managementPort
		cfg.SetSource("managementPort", config.SourceFlag)
	}
	if changed("bind") {
		cfg.BindAddress = f.bind
		cfg.SetSource("bindAddress", config.SourceFlag)
	}
	if changed("token") {
		cfg.Credentials.Token = f.token
		cfg.SetSource("credentials.token", config.SourceFlag)
	}
	if changed("autostart") {
		cfg.AutoStart = f.autoStart
		cfg.SetSource("autoStart", config.SourceFlag)
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
		cfg.SetSource("logging.level", config.SourceFlag)
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
		cfg.SetSource("logging.format", config.SourceFlag)
	}
	if changed("log-file") {
		cfg.Logging.File = f.logFile
		cfg.SetSource("logging.file", config.SourceFlag)
	}
}

// openLogFile opens path for appending. An empty path yields a nil writer.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

type serveOptions struct {
	stdin       io.Reader
	exitOnStdin bool
	log         *slog.Logger

	// ready, if set, is called with the management address once both
	// listeners are up.
	ready func(managementAddr string)
}

// runServe starts the listeners and blocks until ctx is done or, with
// exitOnStdin, a line is read from stdin.
func runServe(ctx context.Context, cfg *config.ServerConfiguration, opts serveOptions) error {
	log := opts.log
	if log == nil {
		log = logging.Nop()
	}

	eng := engine.NewServer(cfg, engine.WithLogger(logging.Component(log, "engine")))
	mgmt := api.NewServer(eng, net.JoinHostPort(cfg.BindAddress, strconv.Itoa(cfg.ManagementPort)))
	mgmt.SetLogger(logging.Component(log, "management"))

	if err := mgmt.Start(); err != nil {
		return err
	}
	if cfg.AutoStart {
		if err := eng.Start(); err != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), managementShutdownTimeout)
			defer cancel()
			_ = mgmt.Stop(stopCtx)
			return fmt.Errorf("starting data plane: %w", err)
		}
	}
	logInterfaces(log, cfg.Port)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.exitOnStdin && opts.stdin != nil {
		log.Info("press Enter to exit")
		// A blocked read cannot be interrupted; the goroutine is left
		// behind when the context ends first.
		go func() {
			_, _ = bufio.NewReader(opts.stdin).ReadString('\n')
			cancel()
		}()
	}

	if opts.ready != nil {
		opts.ready(mgmt.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		if err := eng.Stop(); err != nil && !errors.Is(err, engine.ErrNotRunning) {
			return fmt.Errorf("stopping data plane: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), managementShutdownTimeout)
		defer cancel()
		if err := mgmt.Stop(stopCtx); err != nil {
			return fmt.Errorf("stopping management API: %w", err)
		}
		return nil
	})

	err := g.Wait()
	log.Info("shut down")
	return err
}

func logInterfaces(log *slog.Logger, port int) {
	ifaces, err := netaddr.ExternalIPv4()
	if err != nil {
		log.Warn("listing network interfaces", "error", err)
		return
	}
	for _, i := range ifaces {
		log.Info("reachable at", "interface", i.Name, "url", "http://"+net.JoinHostPort(i.Addr, strconv.Itoa(port)))
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&sf.configFile, "config", "c", "", "Path to a YAML or JSON configuration file")
	serveCmd.Flags().IntVarP(&sf.port, "port", "p", config.DefaultPort, "Data plane port")
	serveCmd.Flags().IntVarP(&sf.managementPort, "management-port", "m", config.DefaultManagementPort, "Management listener port")
	serveCmd.Flags().StringVar(&sf.bind, "bind", "", "Address to bind both listeners to (default all interfaces)")
	serveCmd.Flags().StringVar(&sf.token, "token", "", "API token accepted in the Authorization header")
	serveCmd.Flags().BoolVar(&sf.autoStart, "autostart", false, "Start the data plane without waiting for /start")
	serveCmd.Flags().StringVar(&sf.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&sf.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")
	serveCmd.Flags().StringVar(&sf.logFile, "log-file", "", "Also append log output to this file")
	serveCmd.Flags().BoolVar(&sf.exitOnStdin, "exit-on-stdin", term.IsTerminal(int(os.Stdin.Fd())), "Exit when a line is read from stdin")
}
