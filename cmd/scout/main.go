// Package main is the scout command-line tool.
//
//	scout list [-source path] [-location L] [-category C ...] [-q text] [-date YYYY-MM-DD] [-party N]
//	scout seed -source path -db dsn
//
// list prints the filtered venues with their links as a table. seed copies a
// file source into a Postgres or SQLite store that the API can then serve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pkordes/dining-scout/internal/config"
	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/links"
	"github.com/pkordes/dining-scout/internal/repo"
	"github.com/pkordes/dining-scout/internal/service"
	"github.com/pkordes/dining-scout/internal/table"
)

// errUsage signals a command-line mistake; usage has already been printed.
var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "scout:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	if len(args) < 1 {
		usage(stderr)
		return errUsage
	}
	switch args[0] {
	case "list":
		return runList(ctx, args[1:], stdout, stderr, now)
	case "seed":
		return runSeed(ctx, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return nil
	}
	usage(stderr)
	return errUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  scout list [-source path] [-location L] [-category C ...] [-q text] [-date YYYY-MM-DD] [-party N]")
	fmt.Fprintln(w, "  scout seed -source path -db dsn")
}

// stringsFlag collects every occurrence of a repeatable flag.
type stringsFlag struct {
	values []string
	set    bool
}

func (f *stringsFlag) String() string { return strings.Join(f.values, ",") }

func (f *stringsFlag) Set(v string) error {
	f.set = true
	if strings.TrimSpace(v) != "" {
		f.values = append(f.values, v)
	}
	return nil
}

func runList(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	settings, err := config.LoadLinks()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	source := fs.String("source", os.Getenv("DATA_SOURCE"), "csv|xlsx|yaml file, postgres:// URL or sqlite: path")
	location := fs.String("location", "", "exact location (default: all)")
	text := fs.String("q", "", "search name, location and tips")
	date := fs.String("date", "", "booking date YYYY-MM-DD (default: today)")
	party := fs.Int("party", settings.DefaultPartySize, "booking party size (default: DEFAULT_PARTY_SIZE or 2)")
	var categories stringsFlag
	fs.Var(&categories, "category", "category to include; repeatable (default: all)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if strings.TrimSpace(*source) == "" {
		fmt.Fprintln(stderr, "list: -source or DATA_SOURCE is required")
		return errUsage
	}

	day := now()
	if *date != "" {
		d, err := time.Parse(domain.DateLayout, *date)
		if err != nil {
			return fmt.Errorf("list: -date must be YYYY-MM-DD: %w", err)
		}
		day = d
	}
	b, err := domain.NewBooking(day, *party)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	src, closeSrc, err := repo.Open(ctx, *source)
	if err != nil {
		return err
	}
	defer closeSrc()

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	resolver := links.NewResolver(settings.DiningBaseURL, settings.ExternalBookingDomain)
	svc := service.NewVenueService(src, resolver, log)
	if _, err := svc.Load(ctx); err != nil {
		return err
	}

	f := service.Filter{Location: domain.AnyLocation(), Text: *text}
	if strings.TrimSpace(*location) != "" {
		f.Location = domain.LocationIs(*location)
	}
	if categories.set {
		f.Categories = append([]string{}, categories.values...)
	}

	res, err := svc.Search(f, b)
	if err != nil {
		return err
	}
	proj, mappable, err := svc.Map(f)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, table.Render(
		[]string{"Name", "Location", "Type", "Discounts", "Happy Hour", "Menu", "Reserve", "OpenTable"},
		venueRows(res.Venues),
	))
	fmt.Fprintf(stdout, "\nFound %d locations\n", len(res.Venues))
	if mappable {
		fmt.Fprintf(stdout, "Map centre: %.5f, %.5f (%d mapped)\n", proj.Center.Lat, proj.Center.Lon, len(proj.Points))
	} else {
		fmt.Fprintln(stdout, "Map centre: none (no venues with coordinates)")
	}
	return nil
}

// venueRows lays out one table row per venue. A venue may carry both a
// reservation and an external booking link, so each gets its own column.
func venueRows(views []domain.VenueView) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		var reserve, external string
		if v.Links.Reservation != nil {
			reserve = v.Links.Reservation.URL
		}
		if v.Links.External != nil {
			external = v.Links.External.URL
		}
		rows = append(rows, []string{
			v.Venue.Name,
			v.Venue.Location,
			v.Venue.Category,
			strings.Join(v.Venue.Discounts, ", "),
			v.Venue.HappyHour,
			v.Links.Menu.URL,
			reserve,
			external,
		})
	}
	return rows
}

func runSeed(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	source := fs.String("source", "", "csv|xlsx|yaml file to read")
	dsn := fs.String("db", "", "postgres:// URL or sqlite: path to write")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if strings.TrimSpace(*source) == "" || strings.TrimSpace(*dsn) == "" {
		fmt.Fprintln(stderr, "seed: -source and -db are required")
		return errUsage
	}

	src, closeSrc, err := repo.Open(ctx, *source)
	if err != nil {
		return err
	}
	defer closeSrc()

	store, err := repo.OpenStore(ctx, *dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := repo.Seed(ctx, src, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "seed complete: rows=%d venues=%d skipped_malformed=%d dropped_nameless=%d\n",
		st.Rows, st.Venues, st.SkippedMalformed, st.DroppedNameless)
	return nil
}
