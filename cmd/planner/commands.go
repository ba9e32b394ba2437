// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/places"
	"github.com/tomtom215/waypoint/internal/schedule"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	tablesPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan trips with the Waypoint engines from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			cfg := logging.DefaultConfig()
			cfg.Level = opts.logLevel
			cfg.Format = "console"
			logging.Init(cfg)
		},
	}
	root.PersistentFlags().StringVar(&opts.tablesPath, "tables", "", "YAML file merged over the built-in rule tables")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(newPlanCmd(opts), newTravelCmd(opts), newTablesCmd(opts))
	return root
}

type planOptions struct {
	tripPath   string
	placesPath string
	start      string
	end        string
	cities     []string
	pace       string
	mode       string
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a day-by-day itinerary",
		Long: `Generate an itinerary from a JSON trip request (--trip) or from flags.

Cities are given as name:nights. Without --end the trip ends once the last
city's nights are used up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(root.tablesPath)
			if err != nil {
				return err
			}
			searcher, err := opts.searcher()
			if err != nil {
				return err
			}

			logger := stderrLogger(cmd)
			scorer := scoring.New(cat)
			calc := travel.NewCalculator(cat, nil, logger)
			builder := schedule.NewBuilder(cat, scorer, calc, logger)
			gen := itinerary.NewGenerator(cat, scorer, builder, calc, searcher, logger)

			it, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), it)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.tripPath, "trip", "", "JSON trip request; other trip flags override its fields")
	f.StringVar(&opts.placesPath, "places", "", "YAML or JSON place fixture used for searches")
	f.StringVar(&opts.start, "start", "", "first day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "last day of the trip (YYYY-MM-DD)")
	f.StringArrayVar(&opts.cities, "city", nil, "city stop as name:nights, repeatable")
	f.StringVar(&opts.pace, "pace", "", "relaxed, balanced or packed")
	f.StringVar(&opts.mode, "mode", "", "travel mode within cities")
	return cmd
}

// request merges the trip file with the flags.
func (o *planOptions) request() (*itinerary.TripRequest, error) {
	req := &itinerary.TripRequest{}
	if o.tripPath != "" {
		data, err := os.ReadFile(o.tripPath)
		if err != nil {
			return nil, fmt.Errorf("read trip: %w", err)
		}
		if err := json.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("parse trip %s: %w", o.tripPath, err)
		}
	}

	if len(o.cities) > 0 {
		req.Cities = req.Cities[:0]
		for _, raw := range o.cities {
			stop, err := parseCityStop(raw)
			if err != nil {
				return nil, err
			}
			req.Cities = append(req.Cities, stop)
		}
	}
	if o.start != "" {
		d, err := models.ParseDate(o.start)
		if err != nil {
			return nil, err
		}
		req.StartDate = d
	}
	if o.end != "" {
		d, err := models.ParseDate(o.end)
		if err != nil {
			return nil, err
		}
		req.EndDate = d
	}
	if req.EndDate.IsZero() && !req.StartDate.IsZero() {
		nights := 0
		for _, c := range req.Cities {
			nights += c.Nights
		}
		req.EndDate = req.StartDate.AddDays(nights)
	}
	if o.pace != "" {
		req.Pace = models.Pace(o.pace)
	}
	if o.mode != "" {
		req.Mode = models.TravelMode(o.mode)
	}
	return req, nil
}

func (o *planOptions) searcher() (places.Searcher, error) {
	if o.placesPath == "" {
		return places.NewStaticSearcher(nil), nil
	}
	return places.NewStaticSearcherFromFile(o.placesPath)
}

// parseCityStop parses "name:nights"; a bare name stays one night.
func parseCityStop(raw string) (itinerary.CityStop, error) {
	name, nightsText, found := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return itinerary.CityStop{}, fmt.Errorf("city %q has no name", raw)
	}
	if !found {
		return itinerary.CityStop{Name: name, Nights: 1}, nil
	}
	nights, err := strconv.Atoi(strings.TrimSpace(nightsText))
	if err != nil || nights < 0 {
		return itinerary.CityStop{}, fmt.Errorf("city %q: nights must be a non-negative integer", raw)
	}
	return itinerary.CityStop{Name: name, Nights: nights}, nil
}

type travelOptions struct {
	from   string
	to     string
	mode    string
	depart  string
	traffic bool
}

func newTravelCmd(root *rootOptions) *cobra.Command {
	opts := &travelOptions{}
	cmd := &cobra.Command{
		Use:   "travel",
		Short: "Estimate one travel segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			origin, err := parseCoordinates(opts.from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			dest, err := parseCoordinates(opts.to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			mode := models.TravelMode(opts.mode)
			if !mode.Valid() {
				return fmt.Errorf("--mode: unknown travel mode %q", opts.mode)
			}

			req := travel.SegmentRequest{Origin: origin, Destination: dest, Mode: mode, Traffic: opts.traffic}
			if opts.depart != "" {
				at, err := time.Parse(time.RFC3339, opts.depart)
				if err != nil {
					return fmt.Errorf("--depart: %w", err)
				}
				req.DepartAt = &at
				req.Traffic = true
			}

			cat, err := catalog.Load(root.tablesPath)
			if err != nil {
				return err
			}
			seg := travel.NewCalculator(cat, nil, stderrLogger(cmd)).Segment(req)
			return writeJSON(cmd.OutOrStdout(), seg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.from, "from", "", "origin as lat,lng")
	f.StringVar(&opts.to, "to", "", "destination as lat,lng")
	f.StringVar(&opts.mode, "mode", string(models.ModeDriving), "driving, walking, transit or cycling")
	f.StringVar(&opts.depart, "depart", "", "departure time (RFC 3339) for traffic adjustment")
	f.BoolVar(&opts.traffic, "traffic", false, "adjust for traffic at the current time when --depart is not set")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parseCoordinates(raw string) (models.Coordinates, error) {
	latText, lngText, ok := strings.Cut(raw, ",")
	if !ok {
		return models.Coordinates{}, fmt.Errorf("want lat,lng, got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.Coordinates{}, fmt.Errorf("invalid latitude in %q", raw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil || lng < -180 || lng > 180 {
		return models.Coordinates{}, fmt.Errorf("invalid longitude in %q", raw)
	}
	return models.Coordinates{Lat: lat, Lng: lng}, nil
}

func newTablesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the effective rule tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load(root.tablesPath)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cat.Tables())
		},
	}
}

func stderrLogger(cmd *cobra.Command) zerolog.Logger {
	return logging.Logger().Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
