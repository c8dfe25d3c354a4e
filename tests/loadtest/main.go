package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	maxWindow    = 15
	maxPageSize  = 100
)

var metrics = []string{"message_count", "active_days", "avg_message_length"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// userIDs is filled from /rankings at startup so summary and context
// requests hit real users.
var userIDs []string

func main() {
	fmt.Println("=== ChatStats Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	if err := loadUserIDs(); err != nil {
		fmt.Printf("FAILED: cannot fetch rankings: %s\n", err)
		return
	}
	fmt.Printf("Loaded %d ranked users\n", len(userIDs))

	// Phase 1: rankings and leaderboard pages, exercises the snapshot
	// load and the response cache fill
	fmt.Println("\n--- Phase 1: Ranking reads (50% rankings, 50% leaderboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.50 {
			return doGetRankings()
		}
		return doGetLeaderboard(rng)
	})

	// Phase 2: per-user lookups, mostly cache misses on unique keys
	fmt.Println("\n--- Phase 2: Per-user lookups (50% summary, 50% context) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.50 {
			return doGetSummary(rng)
		}
		return doGetContext(rng)
	})

	// Phase 3: mixed read load
	fmt.Println("\n--- Phase 3: Mixed load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doGetRankings()
		case r < 0.55:
			return doGetLeaderboard(rng)
		case r < 0.80:
			return doGetSummary(rng)
		default:
			return doGetContext(rng)
		}
	})
}

func loadUserIDs() error {
	resp, err := httpClient.Get(baseURL + "/rankings")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload struct {
		MessageCount []struct {
			UserID string `json:"user_id"`
		} `json:"message_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}
	for _, e := range payload.MessageCount {
		userIDs = append(userIDs, e.UserID)
	}
	if len(userIDs) == 0 {
		return fmt.Errorf("rankings returned no users")
	}
	return nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGet(endpoint, url string, wantStatus int) result {
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != wantStatus}
}

func doGetRankings() result {
	return doGet("GET /rankings", baseURL+"/rankings", 200)
}

func doGetLeaderboard(rng *rand.Rand) result {
	metric := metrics[rng.Intn(len(metrics))]
	page := rng.Intn(10) + 1
	limit := rng.Intn(maxPageSize) + 1
	url := fmt.Sprintf("%s/leaderboard?metric=%s&page=%d&limit=%d", baseURL, metric, page, limit)
	return doGet("GET /leaderboard", url, 200)
}

func doGetSummary(rng *rand.Rand) result {
	u := userIDs[rng.Intn(len(userIDs))]
	url := fmt.Sprintf("%s/summary?u=%s", baseURL, u)
	return doGet("GET /summary", url, 200)
}

func doGetContext(rng *rand.Rand) result {
	u := userIDs[rng.Intn(len(userIDs))]
	window := rng.Intn(maxWindow) + 1
	url := fmt.Sprintf("%s/context?u=%s&window=%d", baseURL, u, window)
	return doGet("GET /context", url, 200)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
