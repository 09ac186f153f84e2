// Command multipass issues and inspects multipass login links from the shell.
//
//	MULTIPASS_SECRET=... MULTIPASS_STORE_URL=https://your-store.myshopify.com/ \
//	    multipass -in customer.yaml -qr login.png
//
// Settings come from the environment, optionally seeded from a .env file.
// With -serve it runs a development redirect server instead: GET /login?email=...
// signs in whoever the query names, so it refuses to start in production.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/multipass"
	"github.com/dmitrymomot/multipass/pkg/clientip"
	"github.com/dmitrymomot/multipass/pkg/config"
	"github.com/dmitrymomot/multipass/pkg/environment"
	"github.com/dmitrymomot/multipass/pkg/httpserver"
	"github.com/dmitrymomot/multipass/pkg/logger"
	"github.com/dmitrymomot/multipass/pkg/loginhandler"
	"github.com/dmitrymomot/multipass/pkg/qrcode"
	"github.com/dmitrymomot/multipass/pkg/requestid"
)

const serviceName = "multipass"

// settings is the CLI configuration. The embedded codec settings carry their
// own MULTIPASS_* variables.
type settings struct {
	multipass.Config
	HTTP             httpserver.Config
	Env              string   `env:"MULTIPASS_ENV" envDefault:"development"`        // development, staging or production
	LogLevel         string   `env:"MULTIPASS_LOG_LEVEL"`                           // Overrides the environment's default level
	TrustedIPHeaders []string `env:"MULTIPASS_TRUSTED_IP_HEADERS" envSeparator:","` // Proxy headers trusted for remote_ip in -serve mode
}

type options struct {
	envFile   string
	in        string
	email     string
	returnTo  string
	tokenOnly bool
	qrPath    string
	qrSize    int
	decode    string
	serve     bool
}

var (
	errNoInput           = errors.New("customer attributes required: pass -in or -email")
	errServeInProduction = errors.New("-serve is a development tool and is disabled in production")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := loadEnvFile(opts.envFile); err != nil {
		return err
	}

	var cfg settings
	if err := loadSettings(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	codec, err := multipass.NewFromConfig(cfg.Config, multipass.WithLogger(log))
	if err != nil {
		return err
	}

	if opts.serve {
		if environment.Parse(cfg.Env).IsProduction() {
			return errServeInProduction
		}
		srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
		return srv.Run(ctx, devRouter(codec, cfg, log))
	}

	if opts.decode != "" {
		return decodeToken(codec, opts.decode, stdout)
	}

	customer, err := readCustomer(opts, stdin)
	if err != nil {
		return err
	}

	var out string
	if opts.tokenOnly {
		out, err = codec.Token(customer)
	} else {
		out, err = codec.LoginURL(customer)
	}
	if err != nil {
		return err
	}

	if opts.qrPath != "" {
		if err := qrcode.WriteFile(opts.qrPath, out, opts.qrSize); err != nil {
			return err
		}
		log.Info("qr code written", slog.String("path", opts.qrPath))
	}

	_, err = fmt.Fprintln(stdout, out)
	return err
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.envFile, "env-file", "", "dotenv file to load (default: .env when present)")
	fs.StringVar(&o.in, "in", "", "customer attributes file, JSON or YAML; - reads stdin")
	fs.StringVar(&o.email, "email", "", "customer email, when no -in is given")
	fs.StringVar(&o.returnTo, "return-to", "", "return_to for -email")
	fs.BoolVar(&o.tokenOnly, "token-only", false, "print the token instead of the login URL")
	fs.StringVar(&o.qrPath, "qr", "", "also write the output as a QR code PNG to this path")
	fs.IntVar(&o.qrSize, "qr-size", qrcode.DefaultSize, "QR code edge length in pixels")
	fs.StringVar(&o.decode, "decode", "", "verify a token and print its attributes as JSON")
	fs.BoolVar(&o.serve, "serve", false, "run the development redirect server on MULTIPASS_HTTP_ADDR")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.in != "" && o.email != "" {
		return o, errors.New("-in and -email are mutually exclusive")
	}
	return o, nil
}

func loadEnvFile(path string) error {
	if path != "" {
		return config.LoadEnv(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return config.LoadEnv(".env")
	}
	return nil
}

// loadSettings always re-reads the environment so a .env file loaded just
// before takes effect.
func loadSettings(cfg *settings) error {
	return config.ForceReloadConfig(cfg)
}

func newLogger(cfg settings, out io.Writer) (*slog.Logger, error) {
	env := environment.Parse(cfg.Env)
	opts := []logger.Option{
		logger.WithEnvironment(env, serviceName),
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)
		if err != nil {
			return nil, fmt.Errorf("MULTIPASS_LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

func readCustomer(o options, stdin io.Reader) (multipass.Customer, error) {
	switch {
	case o.in == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return multipass.Customer{}, err
		}
		return parseAttributes(data)
	case o.in != "":
		data, err := os.ReadFile(o.in)
		if err != nil {
			return multipass.Customer{}, err
		}
		return parseAttributes(data)
	case o.email != "":
		customer := multipass.NewCustomer(o.email)
		if o.returnTo != "" {
			customer = customer.Set(multipass.KeyReturnTo, o.returnTo)
		}
		return customer, nil
	default:
		return multipass.Customer{}, errNoInput
	}
}

func decodeToken(codec *multipass.Codec, token string, stdout io.Writer) error {
	customer, err := codec.Decode(token)
	if err != nil {
		return err
	}
	data, err := customer.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", data)
	return err
}

func devRouter(codec *multipass.Codec, cfg settings, log *slog.Logger) http.Handler {
	h := loginhandler.New(codec, loginhandler.QueryCustomer, loginhandler.WithLogger(log))
	return loginhandler.Router(h, clientip.NewResolver(cfg.TrustedIPHeaders...))
}
