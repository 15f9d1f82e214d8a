package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
)

var (
	baseURL       = flag.String("url", "http://127.0.0.1:18090", "fontpaird base url")
	numWorkers    = flag.Int("workers", 20, "concurrent workers")
	phaseDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
	webhookSecret = flag.String("secret", "", "webhook secret, sent as X-Webhook-Secret")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

// scenario is one request shape. Any status in ok counts as a success, so
// tier-gated endpoints may answer 403 on a free install.
type scenario struct {
	name   string
	weight float64
	build  func(rng *rand.Rand) (*http.Request, error)
	ok     []int
}

type result struct {
	name    string
	latency time.Duration
	err     bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	flag.Parse()

	fmt.Println("=== fontpaird load test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", *baseURL, *numWorkers, *phaseDuration)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: reads (entitlements, history, settings) ---")
	runPhase([]scenario{
		getScenario("GET /entitlements", 0.35, "/entitlements", http.StatusOK),
		getScenario("GET /history", 0.25, "/history", http.StatusOK),
		getScenario("GET /search-history", 0.15, "/search-history", http.StatusOK),
		getScenario("GET /settings", 0.15, "/settings", http.StatusOK),
		getScenario("GET /health", 0.10, "/health", http.StatusOK),
	})

	fmt.Println("\n--- Phase 2: projects (403 on free tier) ---")
	runPhase([]scenario{
		getScenario("GET /projects", 0.50, "/projects", http.StatusOK, http.StatusForbidden),
		{
			name:   "POST /projects",
			weight: 0.30,
			build: func(rng *rand.Rand) (*http.Request, error) {
				return jsonRequest(http.MethodPost, "/projects", map[string]string{
					"name": fmt.Sprintf("load-%d", rng.Intn(1000)),
				})
			},
			ok: []int{http.StatusCreated, http.StatusForbidden},
		},
		getScenario("GET /projects/active", 0.20, "/projects/active", http.StatusOK, http.StatusForbidden),
	})

	fmt.Println("\n--- Phase 3: license traffic ---")
	runPhase([]scenario{
		{
			name:   "POST /license/validate",
			weight: 0.60,
			build: func(rng *rand.Rand) (*http.Request, error) {
				// malformed keys never leave the daemon
				return jsonRequest(http.MethodPost, "/license/validate", map[string]string{
					"licenseKey": fmt.Sprintf("bad-%d", rng.Intn(1000)),
				})
			},
			ok: []int{http.StatusOK},
		},
		{
			name:   "POST /webhooks/license",
			weight: 0.40,
			build: func(rng *rand.Rand) (*http.Request, error) {
				form := url.Values{"license_key": {fmt.Sprintf("LOAD-%04d-%04d-%04d", rng.Intn(10000), rng.Intn(10000), rng.Intn(10000))}}
				req, err := http.NewRequest(http.MethodPost, *baseURL+"/webhooks/license", strings.NewReader(form.Encode()))
				if err != nil {
					return nil, err
				}
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				if *webhookSecret != "" {
					req.Header.Set("X-Webhook-Secret", *webhookSecret)
				}
				return req, nil
			},
			// 500 when no license backend is configured
			ok: []int{http.StatusOK, http.StatusInternalServerError},
		},
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func getScenario(name string, weight float64, path string, ok ...int) scenario {
	return scenario{
		name:   name,
		weight: weight,
		build: func(_ *rand.Rand) (*http.Request, error) {
			return http.NewRequest(http.MethodGet, *baseURL+path, nil)
		},
		ok: ok,
	}
}

func jsonRequest(method, path string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, *baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func pick(rng *rand.Rand, scenarios []scenario) scenario {
	r := rng.Float64()
	for _, s := range scenarios {
		if r < s.weight {
			return s
		}
		r -= s.weight
	}
	return scenarios[len(scenarios)-1]
}

func execute(rng *rand.Rand, s scenario) result {
	req, err := s.build(rng)
	if err != nil {
		return result{name: s.name, err: true}
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{name: s.name, latency: lat, err: true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	for _, code := range s.ok {
		if resp.StatusCode == code {
			return result{name: s.name, latency: lat}
		}
	}
	return result{name: s.name, latency: lat, err: true}
}

func runPhase(scenarios []scenario) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var stopped atomic.Bool

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for !stopped.Load() {
				results <- execute(rng, pick(rng, scenarios))
			}
		}(time.Now().UnixNano() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.name]
			if !ok {
				s = &stats{}
				all[r.name] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*phaseDuration)
	stopped.Store(true)
	wg.Wait()
	close(results)
	<-done

	printResults(all, *phaseDuration)
}

func printResults(all map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 74))

	for _, name := range names {
		s := all[name]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-24s %8d %6d %10s %10s %10s\n", name, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 74))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
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
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
