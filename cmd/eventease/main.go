package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/internal/approvals"
	"github.com/BHAVY1503/eventease-client/internal/auth"
	"github.com/BHAVY1503/eventease-client/internal/booking"
	"github.com/BHAVY1503/eventease-client/internal/catalog"
	"github.com/BHAVY1503/eventease-client/internal/payments"
	"github.com/BHAVY1503/eventease-client/internal/shared/config"
	"github.com/BHAVY1503/eventease-client/internal/shared/session"
	"github.com/BHAVY1503/eventease-client/internal/stadiums"
	"github.com/BHAVY1503/eventease-client/pkg/cache"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const usage = `eventease - booking terminal for the EventEase platform

Usage:
  eventease login      --role <user|organizer|admin> --email <email> --password <password>
  eventease events     [--name <substr>] [--city <substr>] [--type <type|all>]
  eventease book       --event <id> [--seats A1,B1,...] [--quantity <n>] [--token <session token>]
  eventease stadiums   list
  eventease stadiums   create --name <name> --address <addr> --state <id> --city <id> [--lat f] [--lng f]
  eventease approvals  watch [--token <session token>]
`

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Debug("no .env file found, using system environment variables")
	}

	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Cancel in-flight work on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("startup failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		appLogger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// app wires the client stack: session boundary, API transport, catalog
// loader, booking flow and the collaborator implementations.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	session *session.Session
	api     *api.Client
	loader  *catalog.Loader
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	sess := session.New()
	if token := os.Getenv("EVENTEASE_TOKEN"); token != "" {
		if err := sess.SetToken(token); err != nil {
			return nil, fmt.Errorf("EVENTEASE_TOKEN: %w", err)
		}
	}

	apiClient := api.NewClient(cfg.API, sess, log)

	var cacheSvc cache.Service
	switch cfg.Cache.Backend {
	case "redis":
		client, err := cache.Connect(ctx, cache.Config{
			Address:  cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		cacheSvc = cache.NewRedis(client)
	default:
		cacheSvc = cache.NewMemory()
	}

	return &app{
		cfg:     cfg,
		log:     log,
		session: sess,
		api:     apiClient,
		loader:  catalog.NewLoader(apiClient, cacheSvc, cfg.Cache.SnapshotTTL, log),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "events":
		return a.cmdEvents(ctx, args)
	case "book":
		return a.cmdBook(ctx, args)
	case "stadiums":
		return a.cmdStadiums(ctx, args)
	case "approvals":
		return a.cmdApprovals(ctx, args)
	case "version":
		fmt.Printf("eventease %s (built %s)\n", Version, BuildTime)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	role := fs.String("role", "user", "role to sign in as")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	svc := auth.NewService(a.api, a.session, a.log)
	user, err := svc.SignIn(ctx, auth.Role(*role), auth.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	token, _ := a.session.Token()
	fmt.Printf("signed in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
	fmt.Printf("export EVENTEASE_TOKEN=%s\n", token)
	return nil
}

func (a *app) cmdEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	name := fs.String("name", "", "filter by name substring")
	city := fs.String("city", "", "filter by city substring")
	eventType := fs.String("type", "all", "filter by event type")
	fs.Parse(args)

	events, err := a.loader.List(ctx)
	if err != nil {
		return err
	}

	filtered := catalog.ApplyFilter(events, catalog.Filter{
		Name: *name,
		City: *city,
		Type: catalog.EventType(*eventType),
	})

	for i := range filtered {
		e := &filtered[i]
		fmt.Printf("%-36s  %-30s  %-12s  %s  %d/%d seats free\n",
			e.ID, e.Name, e.Type, e.StartsAt.Format(time.RFC3339), e.Available(), e.NumberOfSeats)
	}
	fmt.Printf("%d of %d events\n", len(filtered), len(events))
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	eventID := fs.String("event", "", "event id to book")
	seats := fs.String("seats", "", "comma-separated seat labels")
	quantity := fs.Int("quantity", 1, "ticket count for events without a seat map")
	fs.Parse(args)

	if *eventID == "" {
		return fmt.Errorf("--event is required")
	}

	event, err := a.loader.Get(ctx, *eventID)
	if err != nil {
		return err
	}

	// Payment collaborator: local browser-callback checkout
	callbackSrv := payments.NewCallbackServer(a.cfg.Checkout, a.log)
	callbackSrv.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = callbackSrv.Shutdown(shutdownCtx)
	}()

	paymentSvc := payments.NewService(a.api, callbackSrv, a.log)
	refresher := booking.RefresherFunc(func(ctx context.Context) error {
		_, err := a.loader.Refresh(ctx)
		return err
	})
	submitter := booking.NewSubmitter(a.api, refresher, a.log)
	flow := booking.NewFlow(submitter, paymentSvc, a.log)

	if err := flow.Start(event); err != nil {
		return err
	}

	if event.HasSeatMap() {
		if *seats == "" {
			return fmt.Errorf("event has a seat map, pass --seats")
		}
		for _, label := range strings.Split(*seats, ",") {
			label = strings.TrimSpace(label)
			selected, err := flow.Toggle(label)
			if err != nil {
				return err
			}
			if !selected {
				return fmt.Errorf("seat %s is already booked", label)
			}
		}
	} else {
		if err := flow.SetQuantity(*quantity); err != nil {
			return err
		}
	}

	total, unpriced := flow.Total()
	for _, label := range unpriced {
		fmt.Printf("warning: seat %s has no zone price and counts as 0\n", label)
	}
	fmt.Printf("total: %d (minor units)\n", total)

	confirmation, err := flow.Checkout(ctx)
	if err != nil {
		if api.IsConflict(err) {
			return fmt.Errorf("seats were taken by another booker, re-select and retry: %w", err)
		}
		return err
	}

	fmt.Printf("booked %d seat(s), booking %s (ref %s)\n",
		confirmation.Quantity, confirmation.BookingID, confirmation.Reference)
	return nil
}

func (a *app) cmdStadiums(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("stadiums requires a subcommand: list or create")
	}

	svc := stadiums.NewService(a.api, nil, a.log)

	switch args[0] {
	case "list":
		list, err := svc.List(ctx)
		if err != nil {
			return err
		}
		for i := range list {
			s := &list[i]
			fmt.Printf("%-36s  %-30s  %s (%0.5f, %0.5f)\n", s.ID, s.Name, s.Address, s.Location.Lat, s.Location.Lng)
		}
		return nil

	case "create":
		fs := flag.NewFlagSet("stadiums create", flag.ExitOnError)
		name := fs.String("name", "", "stadium name")
		address := fs.String("address", "", "street address")
		stateID := fs.String("state", "", "state id")
		cityID := fs.String("city", "", "city id")
		lat := fs.Float64("lat", 0, "latitude")
		lng := fs.Float64("lng", 0, "longitude")
		fs.Parse(args[1:])

		stadium, err := svc.Create(ctx, stadiums.CreateStadiumRequest{
			Name:    *name,
			Address: *address,
			StateID: *stateID,
			CityID:  *cityID,
			Lat:     *lat,
			Lng:     *lng,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created stadium %s (%s)\n", stadium.Name, stadium.ID)
		return nil

	default:
		return fmt.Errorf("unknown stadiums subcommand %q", args[0])
	}
}

func (a *app) cmdApprovals(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] != "watch" {
		return fmt.Errorf("approvals requires the watch subcommand")
	}

	watcher := approvals.NewWatcher(approvals.NewAPISource(a.api), a.cfg.Approvals.PollInterval, a.log)
	watcher.Subscribe(func(c approvals.Counts) {
		fmt.Printf("pending approvals: %d organizers, %d stadiums\n", c.PendingOrganizers, c.PendingStadiums)
	})

	watcher.Start(ctx)
	defer watcher.Stop()

	<-ctx.Done()
	return nil
}
