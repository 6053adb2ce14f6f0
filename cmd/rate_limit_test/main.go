package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"weather-skill/datasource"
	"weather-skill/models"
)

// MockForecastSource is a simple mock that simulates latency and counts calls
type MockForecastSource struct {
	callCount int
	mutex     sync.Mutex
	latency   time.Duration
}

func NewMockForecastSource(latency time.Duration) *MockForecastSource {
	return &MockForecastSource{latency: latency}
}

func (m *MockForecastSource) FetchForecast(ctx context.Context, location string) (models.ForecastResponse, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	slog.Info("processing request", "n", currentCount, "location", location)

	// Simulate work/latency
	select {
	case <-time.After(m.latency):
	case <-ctx.Done():
		return models.ForecastResponse{}, ctx.Err()
	}

	return models.ForecastResponse{Cod: "200"}, nil
}

func (m *MockForecastSource) Name() string {
	return "MockSource"
}

func (m *MockForecastSource) GetCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mockSource := NewMockForecastSource(200 * time.Millisecond)
	limited := datasource.NewRateLimitedForecastSource(mockSource, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing %s with:\n", limited.Name())
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)

	startTime := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			for j := 0; j < requestsPerWorker; j++ {
				location := fmt.Sprintf("Ort-%d-%d", workerID, j)
				before := time.Now()
				_, err := limited.FetchForecast(ctx, location)
				if err != nil {
					slog.Warn("request failed", "worker", workerID, "request", j, "err", err)
					continue
				}
				slog.Info("request completed", "worker", workerID, "request", j, "duration", time.Since(before))
			}
		}(i)
	}

	wg.Wait()

	totalTime := time.Since(startTime)
	actualRPS := float64(*totalRequests) / totalTime.Seconds()

	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Actual requests per second: %.2f\n", actualRPS)
	fmt.Printf("Total requests processed: %d\n", mockSource.GetCallCount())

	expectedMinTime := max(float64(*totalRequests-*burstSize) / *requestsPerSecond, 0)
	fmt.Printf("Expected minimum time (theoretical): %.2f seconds\n", expectedMinTime)

	if actualRPS > *requestsPerSecond*1.5 && *totalRequests > *burstSize {
		fmt.Println("\nWARNING: actual RPS significantly higher than configured rate limit")
	} else {
		fmt.Println("\nRate limiting appears to be working correctly.")
	}
}
