package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"trackmate/internal/mylogger"
	"trackmate/internal/tracker"
	"trackmate/internal/tripmap"
)

func main() {
	authURL := flag.String("auth-url", "http://localhost:3010", "auth service base URL")
	tripURL := flag.String("trip-url", "http://localhost:3000", "trip service base URL")
	locationURL := flag.String("location-url", "http://localhost:3001", "location service base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	tripId := flag.String("trip", "", "trip id to track")
	startLat := flag.Float64("lat", 43.236, "simulated start latitude")
	startLng := flag.Float64("lng", 76.886, "simulated start longitude")
	quiet := flag.Bool("quiet", false, "suppress map output")
	flag.Parse()

	if *email == "" || *password == "" || *tripId == "" {
		log.Fatal("email, password and trip are required")
	}

	mylog, err := mylogger.New(mylogger.LevelWarn)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	api, err := NewAPIClient(*authURL, *tripURL, *locationURL)
	if err != nil {
		log.Fatalf("Failed to build API client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, err := api.Login(ctx, *email, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)

	participantId, err := api.OwnParticipant(ctx, *tripId, user.Id)
	if err != nil {
		log.Fatalf("Failed to resolve participant: %v", err)
	}

	surface := NewTerminalSurface(*quiet)
	store, err := tripmap.NewFileViewportStore()
	if err != nil {
		log.Fatalf("Failed to open viewport store: %v", err)
	}
	reconciler := tripmap.NewReconciler(mylog, surface, api, store, *tripId, participantId)
	poller := tripmap.NewPoller(mylog, api, reconciler, *tripId)

	pollErrCh := make(chan error, 1)
	go func() {
		pollErrCh <- poller.Run(ctx)
	}()

	watcher := tracker.NewSimWatcher(*startLat, *startLng, 3*time.Second)
	// Each pushed position also recenters the local camera on the viewer.
	tr := tracker.New(mylog, watcher, api, participantId, func(pos tracker.Position) {
		reconciler.AnchorSelf(tripmap.LatLng{Lat: pos.Latitude, Lng: pos.Longitude})
	})

	fmt.Println("Commands: start | stop | quit")
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	for {
		select {
		case err := <-pollErrCh:
			tr.Stop()
			if err != nil {
				log.Fatalf("Trip view failed: %v", err)
			}
			return

		case line, ok := <-lines:
			if !ok {
				tr.Stop()
				return
			}
			switch line {
			case "start":
				if err := tr.Start(ctx); err != nil {
					fmt.Printf("Failed to start tracking: %v\n", err)
					continue
				}
				fmt.Println("Tracking started")
			case "stop":
				tr.Stop()
				fmt.Println("Tracking stopped")
			case "quit", "exit":
				tr.Stop()
				return
			case "":
			default:
				fmt.Printf("Unknown command %q\n", line)
			}
		}
	}
}
