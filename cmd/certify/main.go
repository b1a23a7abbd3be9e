// Certify runs the full booking workflow once against the provider sandbox
// and prints the summary as JSON. Intended for provider certification runs
// and smoke tests.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"utrippin_backend/internal/hotels/service"
	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/platform/config"
	"utrippin_backend/platform/logger"
)

func main() {
	hotelID := flag.String("hotel", "", "hotel to book (defaults to the certification property)")
	checkin := flag.String("checkin", time.Now().AddDate(0, 0, 30).Format("2006-01-02"), "check-in date (YYYY-MM-DD)")
	checkout := flag.String("checkout", time.Now().AddDate(0, 0, 32).Format("2006-01-02"), "check-out date (YYYY-MM-DD)")
	adults := flag.Int("adults", 2, "number of adults")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := ratehawk.New(cfg, log)
	svc := service.New(provider, nil, nil, nil,
		service.ParseFailureMode(cfg.GetProviderFailureMode()), log)

	summary, err := svc.RunWorkflow(ctx, transport.WorkflowRequest{
		HotelID:  *hotelID,
		Checkin:  *checkin,
		Checkout: *checkout,
		Guests:   []transport.GuestGroup{{Adults: *adults}},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "workflow failed:", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode summary:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !summary.Success {
		os.Exit(1)
	}
}
