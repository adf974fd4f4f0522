package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestLoadSourcesFromFile(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		content := `{
		"stations_url": "https://stations.example.com/info.json",
		"trips_url": "https://trips.example.com/traffic.csv",
		"bike_lanes_url": "https://lanes.example.com/network.geojson"
		}`
		tmpFile, err := os.CreateTemp("", "config-*.json")
		if err != nil {
			t.Fatalf("Failed to create temporary file: %v", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to temporary file: %v", err)
		}
		tmpFile.Close()

		sources, err := LoadSourcesFromFile(tmpFile.Name())
		if err != nil {
			t.Fatalf("LoadSourcesFromFile failed: %v", err)
		}

		if sources.StationsURL != "https://stations.example.com/info.json" {
			t.Errorf("unexpected stations URL: %q", sources.StationsURL)
		}
		if sources.TripsURL != "https://trips.example.com/traffic.csv" {
			t.Errorf("unexpected trips URL: %q", sources.TripsURL)
		}
		if sources.BikeLanesURL != "https://lanes.example.com/network.geojson" {
			t.Errorf("unexpected lanes URL: %q", sources.BikeLanesURL)
		}
	})

	t.Run("MissingRequiredURL", func(t *testing.T) {
		content := `{"stations_url": "https://stations.example.com/info.json"}`
		tmpFile, err := os.CreateTemp("", "config-*.json")
		if err != nil {
			t.Fatalf("Failed to create temporary file: %v", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to temporary file: %v", err)
		}
		tmpFile.Close()

		if _, err := LoadSourcesFromFile(tmpFile.Name()); err == nil {
			t.Error("Expected error for config missing trips_url, got none")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		tmpFile, err := os.CreateTemp("", "invalid-config-*.json")
		if err != nil {
			t.Fatalf("Failed to create temporary file: %v", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.Write([]byte(`{ this is not valid JSON }`)); err != nil {
			t.Fatalf("Failed to write to temporary file: %v", err)
		}
		tmpFile.Close()

		if _, err := LoadSourcesFromFile(tmpFile.Name()); err == nil {
			t.Error("Expected error with invalid JSON, got none")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		if _, err := LoadSourcesFromFile("non-existent-file.json"); err == nil {
			t.Error("Expected error for non-existent file, got none")
		}
	})
}

func TestLoadSourcesFromURL(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	t.Run("ValidResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"stations_url": "https://stations.example.com/info.json",
				"trips_url": "https://trips.example.com/traffic.csv"
			}`))
		}))
		defer ts.Close()

		sources, err := LoadSourcesFromURL(context.Background(), client, ts.URL, "", "", 0)
		if err != nil {
			t.Fatalf("LoadSourcesFromURL failed: %v", err)
		}
		if sources.StationsURL == "" || sources.TripsURL == "" {
			t.Errorf("expected both required URLs, got %+v", sources)
		}
	})

	t.Run("BasicAuthForwarded", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "user" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{
				"stations_url": "https://stations.example.com/info.json",
				"trips_url": "https://trips.example.com/traffic.csv"
			}`))
		}))
		defer ts.Close()

		if _, err := LoadSourcesFromURL(context.Background(), client, ts.URL, "user", "secret", 0); err != nil {
			t.Fatalf("expected authenticated request to succeed: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		if _, err := LoadSourcesFromURL(context.Background(), client, ts.URL, "", "", 0); err == nil {
			t.Error("Expected error for 404 response, got none")
		}
	})
}

func TestValidateConfigFlags(t *testing.T) {
	file := "sources.json"
	url := "https://example.com/sources.json"
	empty := ""

	if err := ValidateConfigFlags(&file, &url); err == nil {
		t.Error("expected error when both flags are set")
	}
	if err := ValidateConfigFlags(&file, &empty); err != nil {
		t.Errorf("file only should be valid: %v", err)
	}
	if err := ValidateConfigFlags(&empty, &empty); err != nil {
		t.Errorf("defaults (no flags) should be valid: %v", err)
	}
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if err := sources.Validate(); err != nil {
		t.Errorf("default sources must validate: %v", err)
	}
}
