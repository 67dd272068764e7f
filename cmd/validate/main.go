package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/postcode-locator/app/config"
	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/geocode"
	"github.com/postcode-locator/internal/matcher"
	"github.com/postcode-locator/internal/validation"
	"go.uber.org/zap"
)

// Known Lagos positions with well-understood expected outcomes. The set mixes
// dense commercial areas, landmarks and residential estates.
var testCoordinates = []validation.Coordinate{
	{Label: "Victoria Island (Adeola Odeku)", Lat: 6.4281, Lng: 3.4219},
	{Label: "Ikoyi (Awolowo Road)", Lat: 6.4441, Lng: 3.4243},
	{Label: "Lekki Phase 1 (Admiralty Way)", Lat: 6.4478, Lng: 3.4723},
	{Label: "Computer Village, Ikeja", Lat: 6.5927, Lng: 3.3419},
	{Label: "Ikeja GRA", Lat: 6.5764, Lng: 3.3554},
	{Label: "UNILAG, Akoka", Lat: 6.5158, Lng: 3.3898},
	{Label: "LUTH, Idi-Araba", Lat: 6.5184, Lng: 3.3554},
	{Label: "National Stadium, Surulere", Lat: 6.4969, Lng: 3.3616},
	{Label: "MMIA, Ikeja", Lat: 6.5774, Lng: 3.3212},
	{Label: "CMS, Lagos Island", Lat: 6.4488, Lng: 3.3941},
	{Label: "Alausa Secretariat", Lat: 6.6176, Lng: 3.3554},
	{Label: "VGC, Lekki", Lat: 6.4668, Lng: 3.5411},
	{Label: "Oshodi Market", Lat: 6.5568, Lng: 3.3433},
	{Label: "Apapa Wharf", Lat: 6.4430, Lng: 3.3669},
	{Label: "Ikorodu Garage", Lat: 6.6194, Lng: 3.5105},
}

func main() {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := config.Load(path); err != nil {
			log.Printf("Warning: cannot read config file %s: %v", path, err)
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	defer logger.Sync()

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		logger.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("Failed to load postal code catalog", zap.Error(err))
	}

	m := matcher.New(cat, nil, logger)
	geocoder := geocode.NewClient(apiKey, config.GeocoderTimeout(), logger)

	harness := validation.NewHarness(geocoder, m, validation.Config{
		Delay:           config.ValidationDelay(),
		AcceptThreshold: config.C.Thresholds.Accept,
		HighThreshold:   config.C.Thresholds.High,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Interrupted, finishing up")
		cancel()
	}()

	fmt.Printf("Running validation against %d coordinates...\n\n", len(testCoordinates))
	results := harness.Run(ctx, testCoordinates)

	printResults(results)

	metrics := validation.CalculateMetrics(results, config.C.Viability.Viable, config.C.Viability.Conditional)
	printMetrics(metrics)

	failures := validation.AnalyzeFailures(results)
	printFailures(failures)

	if metrics.Viability == models.VerdictNotViable {
		os.Exit(1)
	}
}

func printResults(results []models.CoordinateResult) {
	for _, r := range results {
		mark := "✓"
		if r.Status == models.StatusFailed {
			mark = "✗"
		} else if r.Status == models.StatusPartial {
			mark = "~"
		}
		fmt.Printf("%s %-35s status=%-8s postal_code=%-7s confidence=%5.1f %s\n",
			mark, r.Label, r.Status, r.PostalCode, r.Confidence, r.FailureReason)
	}
}

func printMetrics(m models.ValidationMetrics) {
	fmt.Printf("\nTotal:       %d\n", m.Total)
	fmt.Printf("Success:     %d\n", m.SuccessCount)
	fmt.Printf("Partial:     %d\n", m.PartialCount)
	fmt.Printf("Failed:      %d\n", m.FailedCount)
	fmt.Printf("Success rate: %.1f%%\n", m.SuccessRate)
	fmt.Printf("Verdict:     %s\n", m.Viability)
}

func printFailures(failures []models.FailureReasonCount) {
	if len(failures) == 0 {
		return
	}
	fmt.Println("\nFailure breakdown:")
	for _, f := range failures {
		fmt.Printf("  %3dx %s\n", f.Count, f.Reason)
	}
}
