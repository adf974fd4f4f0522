package config

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/getsentry/sentry-go"

	"github.com/lmalottucsd/bikewatching/internal/models"
	"github.com/lmalottucsd/bikewatching/internal/report"
	"github.com/lmalottucsd/bikewatching/internal/utils"
)

// ValidateConfigFlags ensures that at most one configuration source is
// specified: either a config file (--config-file) or a remote config URL
// (--config-url). Neither is an error; the built-in Bluebikes defaults
// apply.
func ValidateConfigFlags(configFile, configURL *string) error {
	if (*configFile != "" && *configURL != "") || (*configFile != "" && len(flag.Args()) > 0) || (*configURL != "" && len(flag.Args()) > 0) {
		return fmt.Errorf("only one of --config-file or --config-url can be specified")
	}
	return nil
}

// LoadSourcesFromFile reads a JSON file describing the three dataset URLs.
func LoadSourcesFromFile(filePath string) (models.DataSources, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to read config file: %v", err)
	}

	var sources models.DataSources
	if err := json.Unmarshal(data, &sources); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	if err := sources.Validate(); err != nil {
		return models.DataSources{}, err
	}
	return sources, nil
}

// LoadSourcesFromURL fetches the dataset source JSON from a remote
// HTTP(S) endpoint with optional basic authentication, retrying with
// backoff.
func LoadSourcesFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (models.DataSources, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to create request: %v", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to fetch remote config: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("remote config returned status: %d", resp.StatusCode)
		report.ReportErrorWithSentryOptions(statusErr, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to read remote config: %v", err)
	}

	var sources models.DataSources
	if err := json.Unmarshal(data, &sources); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return models.DataSources{}, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	if err := sources.Validate(); err != nil {
		return models.DataSources{}, err
	}
	return sources, nil
}

// DefaultSources are the public Bluebikes datasets the original
// visualization was built against.
func DefaultSources() models.DataSources {
	return models.DataSources{
		StationsURL:  "https://gbfs.bluebikes.com/gbfs/en/station_information.json",
		TripsURL:     "https://dsc106.com/labs/lab07/data/bluebikes-traffic-2024-03.csv",
		BikeLanesURL: "https://bostonopendata-boston.opendata.arcgis.com/datasets/boston::existing-bike-network-2022.geojson",
	}
}
