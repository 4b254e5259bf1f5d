package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	authservice "trackmate/internal/auth-service"
	"trackmate/internal/config"
	emailworker "trackmate/internal/email-worker"
	locationservice "trackmate/internal/location-service"
	"trackmate/internal/mylogger"
	tripservice "trackmate/internal/trip-service"
)

const usage = `usage: app <auth-service|trip-service|location-service|email-worker> [-config path]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	service := os.Args[1]

	flags := flag.NewFlagSet(service, flag.ExitOnError)
	configPath := flags.String("config", "", "optional YAML config path, env vars otherwise")
	_ = flags.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	mylog = mylog.With("service", service)

	ctx := context.Background()

	var runErr error
	switch service {
	case "auth-service":
		runErr = authservice.Execute(ctx, mylog, cfg)
	case "trip-service":
		runErr = tripservice.Execute(ctx, mylog, cfg)
	case "location-service":
		runErr = locationservice.Execute(ctx, mylog, cfg)
	case "email-worker":
		runErr = emailworker.Execute(ctx, mylog, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown service %q\n%s\n", service, usage)
		os.Exit(1)
	}

	if runErr != nil {
		mylog.Action("service_failed").Error("Service exited with error", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewFromYAML(path)
	}
	return config.New()
}
