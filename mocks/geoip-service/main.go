package main

import (
	"crypto/sha256"
	"encoding/json"
	"log"
	"net/http"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8082"
	defaultLatencyMs = "50"
)

type LocationResponse struct {
	IP            string `json:"ip"`
	ContinentCode string `json:"continent_code"`
	CountryCode   string `json:"country_code"`
	ResolvedAt    string `json:"resolved_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/v1/location/", handleLocation)

	log.Printf("🌍 Mock GeoIP API starting on port %s", port)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "geoip",
		"version": "1.0.0",
	})
}

// testLocations contains predefined test data for specific addresses.
// These "magic" IPs allow e2e tests to control the mock's behavior.
var testLocations = map[string]LocationResponse{
	// EU addresses
	"81.2.69.142":   {ContinentCode: "EU", CountryCode: "GB"},
	"89.160.20.112": {ContinentCode: "EU", CountryCode: "SE"},
	"92.154.93.31":  {ContinentCode: "EU", CountryCode: "FR"},
	// Non-EU addresses
	"8.8.8.8":        {ContinentCode: "NA", CountryCode: "US"},
	"1.1.1.1":        {ContinentCode: "OC", CountryCode: "AU"},
	"200.160.2.3":    {ContinentCode: "SA", CountryCode: "BR"},
	"196.25.255.250": {ContinentCode: "AF", CountryCode: "ZA"},
	"202.12.27.33":   {ContinentCode: "AS", CountryCode: "JP"},
}

// unknownLocations simulates addresses the upstream database has no record for.
var unknownLocations = map[string]bool{
	"203.0.113.9":  true,
	"198.51.100.7": true,
}

func handleLocation(w http.ResponseWriter, r *http.Request) {
	// Simulate latency
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	log.Printf("📥 Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ip := strings.TrimPrefix(r.URL.Path, "/v1/location/")
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		sendError(w, "Invalid IP address: "+ip, http.StatusBadRequest)
		return
	}

	if unknownLocations[ip] {
		sendError(w, "No location known for "+ip, http.StatusNotFound)
		log.Printf("🔍 Location not found (test IP): %s", ip)
		return
	}

	loc, ok := testLocations[ip]
	if !ok {
		loc = generateLocation(addr)
	}
	loc.IP = ip
	loc.ResolvedAt = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(loc)

	log.Printf("✅ Location resolved: %s -> %s/%s", ip, loc.ContinentCode, loc.CountryCode)
}

// generateLocation derives a deterministic continent and country from the
// address so repeated lookups of the same IP agree with each other.
func generateLocation(addr netip.Addr) LocationResponse {
	continents := []struct {
		code      string
		countries []string
	}{
		{"EU", []string{"DE", "FR", "IT", "ES", "NL"}},
		{"NA", []string{"US", "CA", "MX"}},
		{"AS", []string{"JP", "IN", "KR", "SG"}},
		{"SA", []string{"BR", "AR", "CL"}},
		{"AF", []string{"ZA", "NG", "EG"}},
		{"OC", []string{"AU", "NZ"}},
	}

	hash := sha256.Sum256([]byte(addr.String()))
	c := continents[int(hash[0])%len(continents)]
	return LocationResponse{
		ContinentCode: c.code,
		CountryCode:   c.countries[int(hash[1])%len(c.countries)],
	}
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key, fallback string) int {
	v := getEnv(key, fallback)
	n, err := strconv.Atoi(v)
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}
