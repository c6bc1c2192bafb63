package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/curio/pkg/logger"
)

// Run executes the complete smoke test against a running registry.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting registry smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("items", config.NumItems),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create items concurrently
	created, err := createItems(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("item creation failed: %w", err)
	}

	// Step 3: Verify the registry's contracts for the created items
	if err := verifyItems(ctx, client, config, created, stats); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	// Step 4: Clean up unless asked to keep the data
	if !config.KeepData {
		deleteItems(ctx, client, config, created, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "smoke test finished",
		logger.Int64("created", stats.Created.Load()),
		logger.Int64("verified", stats.Verified.Load()),
		logger.Int64("deleted", stats.Deleted.Load()),
		logger.Int64("failed", stats.Failed.Load()),
		logger.String("duration", stats.Duration.String()))

	if stats.Failed.Load() > 0 {
		return fmt.Errorf("%d operations failed", stats.Failed.Load())
	}
	return nil
}

func checkServiceHealth(ctx context.Context, client *httpClient, config *Config) error {
	resp, err := client.get(config.BaseURL + "/health")
	if err != nil {
		return err
	}
	defer drainBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// createItems posts NumItems uniquely named items using a small worker pool
// and returns the items the registry acknowledged.
func createItems(ctx context.Context, client *httpClient, config *Config, stats *Stats) ([]item, error) {
	names := make(chan string, config.Workers*2)
	results := make(chan item, config.NumItems)

	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range names {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.post(config.BaseURL+"/items", map[string]string{"name": name})
				if err != nil {
					stats.Failed.Add(1)
					continue
				}
				if resp.StatusCode != http.StatusCreated {
					drainBody(resp)
					stats.Failed.Add(1)
					continue
				}
				var created item
				if err := decodeBody(resp, &created); err != nil {
					stats.Failed.Add(1)
					continue
				}
				stats.Created.Add(1)
				results <- created
			}
		}()
	}

	for i := 0; i < config.NumItems; i++ {
		names <- fmt.Sprintf("smoke-%s", uuid.NewString())
	}
	close(names)
	wg.Wait()
	close(results)

	created := make([]item, 0, config.NumItems)
	for it := range results {
		created = append(created, it)
	}

	logger.Get().Info(ctx, "created items", logger.Int("count", len(created)))
	return created, nil
}

// verifyItems checks the registry's observable contracts: each created item
// is fetchable with identical fields, ids are unique, the collection holds
// at least the created items, and a duplicate create is rejected.
func verifyItems(ctx context.Context, client *httpClient, config *Config, created []item, stats *Stats) error {
	seen := make(map[int64]bool, len(created))
	for _, want := range created {
		if seen[want.ID] {
			return fmt.Errorf("duplicate id assigned: %d", want.ID)
		}
		seen[want.ID] = true

		resp, err := client.get(fmt.Sprintf("%s/items/%d", config.BaseURL, want.ID))
		if err != nil {
			stats.Failed.Add(1)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			drainBody(resp)
			stats.Failed.Add(1)
			continue
		}
		var got item
		if err := decodeBody(resp, &got); err != nil {
			stats.Failed.Add(1)
			continue
		}
		if got.ID != want.ID || got.Name != want.Name {
			return fmt.Errorf("item %d changed after creation: got %q, want %q", want.ID, got.Name, want.Name)
		}
		stats.Verified.Add(1)
	}

	// The whole collection must contain everything we created.
	resp, err := client.get(config.BaseURL + "/items")
	if err != nil {
		return err
	}
	var all []item
	if err := decodeBody(resp, &all); err != nil {
		return err
	}
	if len(all) < len(created) {
		return fmt.Errorf("list returned %d items, expected at least %d", len(all), len(created))
	}

	// A duplicate name must be rejected with 400.
	if len(created) > 0 {
		resp, err := client.post(config.BaseURL+"/items", map[string]string{"name": created[0].Name})
		if err != nil {
			return err
		}
		drainBody(resp)
		if resp.StatusCode != http.StatusBadRequest {
			return fmt.Errorf("duplicate create returned %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	}

	logger.Get().Info(ctx, "verification complete", logger.Int64("verified", stats.Verified.Load()))
	return nil
}

// deleteItems removes the created items and confirms each is gone.
func deleteItems(ctx context.Context, client *httpClient, config *Config, created []item, stats *Stats) {
	for _, it := range created {
		url := fmt.Sprintf("%s/items/%d", config.BaseURL, it.ID)

		resp, err := client.del(url)
		if err != nil {
			stats.Failed.Add(1)
			continue
		}
		drainBody(resp)
		if resp.StatusCode != http.StatusNoContent {
			stats.Failed.Add(1)
			continue
		}

		// Deleted ids must now miss.
		check, err := client.get(url)
		if err != nil {
			stats.Failed.Add(1)
			continue
		}
		drainBody(check)
		if check.StatusCode != http.StatusNotFound {
			stats.Failed.Add(1)
			continue
		}
		stats.Deleted.Add(1)
	}

	logger.Get().Info(ctx, "cleanup complete", logger.Int64("deleted", stats.Deleted.Load()))
}
