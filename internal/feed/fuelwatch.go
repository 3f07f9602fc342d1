package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
)

// FuelWatchURL is the public FuelWatch RSS endpoint for Western Australia.
const FuelWatchURL = "https://www.fuelwatch.wa.gov.au/fuelwatch/fuelWatchRSS"

// FuelWatchConfig selects what the RSS feed returns. Empty fields are omitted from
// the query and the feed falls back to its own defaults (unleaded, metro, today).
type FuelWatchConfig struct {
	BaseURL string // BaseURL overrides FuelWatchURL
	Product string // Product is the FuelWatch product code, e.g. "1" for ULP, "4" for diesel
	Region  string // Region is the FuelWatch region code
	Day     string // Day is "today" or "tomorrow"
}

// FuelWatch fetches station prices from the FuelWatch RSS feed.
type FuelWatch struct {
	client    HTTPClient      // HTTP client for making requests
	cfg       FuelWatchConfig // Feed query options
	log       *slog.Logger    // Logger for logging operations
	userAgent string
}

type rss struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Brand       string `xml:"brand"`
	Date        string `xml:"date"`
	Price       string `xml:"price"`
	TradingName string `xml:"trading-name"`
	Location    string `xml:"location"`
	Address     string `xml:"address"`
	Latitude    string `xml:"latitude"`
	Longitude   string `xml:"longitude"`
}

// NewFuelWatch creates a FuelWatch source with a default HTTP client.
func NewFuelWatch(cfg FuelWatchConfig, log *slog.Logger) *FuelWatch {
	const timeout = 15

	return NewFuelWatchWithClient(&http.Client{Timeout: timeout * time.Second}, cfg, log)
}

// NewFuelWatchWithClient creates a FuelWatch source with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewFuelWatchWithClient(client HTTPClient, cfg FuelWatchConfig, log *slog.Logger) *FuelWatch {
	if cfg.BaseURL == "" {
		cfg.BaseURL = FuelWatchURL
	}

	return &FuelWatch{
		client:    client,
		cfg:       cfg,
		log:       log,
		userAgent: "Servo-Fuel-Finder/1.0 (https://github.com/UnknownOlympus/servo)",
	}
}

// Fetch downloads the feed and converts its items into facilities.
// Items with a non-numeric price or invalid coordinates are skipped and logged,
// they do not fail the whole fetch.
func (fw *FuelWatch) Fetch(ctx context.Context) ([]models.Facility, error) {
	reqURL, err := fw.requestURL()
	if err != nil {
		return nil, err
	}

	fw.log.DebugContext(ctx, "Fetching fuel feed", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fw.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml")

	resp, err := fw.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrFeedStatus, resp.StatusCode, string(body))
	}

	var doc rss
	if err = xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode fuel feed: %w", err)
	}

	if len(doc.Channel.Items) == 0 {
		return nil, ErrFeedEmpty
	}

	facilities := make([]models.Facility, 0, len(doc.Channel.Items))
	for idx, item := range doc.Channel.Items {
		facility, errItem := item.toFacility()
		if errItem != nil {
			fw.log.WarnContext(ctx, "Skipping feed item", "index", idx, "name", item.TradingName, "error", errItem)
			continue
		}
		facilities = append(facilities, facility)
	}

	if len(facilities) == 0 {
		return nil, ErrFeedEmpty
	}

	fw.log.DebugContext(ctx, "Fuel feed loaded", "items", len(doc.Channel.Items), "stations", len(facilities))

	return facilities, nil
}

func (fw *FuelWatch) requestURL() (string, error) {
	reqURL, err := url.Parse(fw.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	if fw.cfg.Product != "" {
		query.Set("Product", fw.cfg.Product)
	}
	if fw.cfg.Region != "" {
		query.Set("Region", fw.cfg.Region)
	}
	if fw.cfg.Day != "" {
		query.Set("Day", fw.cfg.Day)
	}
	reqURL.RawQuery = query.Encode()

	return reqURL.String(), nil
}

// toFacility coerces the string fields of the feed into typed values.
func (item rssItem) toFacility() (models.Facility, error) {
	price, err := parseNumber(item.Price)
	if err != nil {
		return models.Facility{}, fmt.Errorf("invalid price: %w", err)
	}

	lat, err := parseNumber(item.Latitude)
	if err != nil {
		return models.Facility{}, fmt.Errorf("invalid latitude: %w", err)
	}

	lng, err := parseNumber(item.Longitude)
	if err != nil {
		return models.Facility{}, fmt.Errorf("invalid longitude: %w", err)
	}

	point, err := geo.NewGeoPoint(lat, lng)
	if err != nil {
		return models.Facility{}, err
	}

	return models.Facility{
		Point:       point,
		Price:       price,
		Brand:       strings.TrimSpace(item.Brand),
		TradingName: strings.TrimSpace(item.TradingName),
		Address:     strings.TrimSpace(item.Address),
		Location:    strings.TrimSpace(item.Location),
		Date:        strings.TrimSpace(item.Date),
	}, nil
}

func parseNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}

	return value, nil
}
