// Package main provides a CLI tool for generating test tokens for the
// consent API. These tokens use the dev signing key and will NOT work
// against a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"assent/internal/identity"
	"assent/internal/token"
)

const (
	// Dev signing key, matches config.go when ASSENT_JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultIssuer   = "assent"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in"`
	Claims    map[string]any    `json:"claims"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	userID := flag.Int64("user-id", 1, "Numeric user id for the token subject")
	userName := flag.String("user-name", "dev-user", "User name claim")
	role := flag.String("role", "CONSUMER", "Role claim: CONSUMER, LEGAL or ADMIN")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	key := flag.String("key", "", "Signing key. Defaults to the dev key.")
	jsonOutput := flag.Bool("json", false, "Output as JSON")
	flag.Usage = printUsage
	flag.Parse()

	actorRole := identity.Role(*role)
	switch actorRole {
	case identity.RoleConsumer, identity.RoleLegal, identity.RoleAdmin:
	default:
		fmt.Fprintf(os.Stderr, "Unknown role: %s\n", *role)
		os.Exit(1)
	}

	signingKey := devSigningKey
	if *key != "" {
		signingKey = *key
	}

	issuer := token.NewIssuer([]byte(signingKey), defaultIssuer, *ttl)
	signed, err := issuer.Issue(identity.Actor{
		UserID:   *userID,
		UserName: *userName,
		Role:     actorRole,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     signed,
			Type:      "access_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"sub":       *userID,
				"user_name": *userName,
				"role":      string(actorRole),
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Access Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Expires In: %s\n", *ttl)
	fmt.Printf("User ID:    %d\n", *userID)
	fmt.Printf("User Name:  %s\n", *userName)
	fmt.Printf("Role:       %s\n", actorRole)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(signed)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/...")
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the consent API

WARNING: These tokens use the dev signing key and will NOT work in
         production. Only use for local development and testing.

Usage:
  tokengen [flags]

Examples:
  # Consumer token with defaults
  tokengen

  # Legal-team token for wording management
  tokengen -user-id 2 -user-name "legal-lead" -role LEGAL

  # Admin token with a custom TTL
  tokengen -role ADMIN -ttl 1h

  # Output as JSON
  tokengen -json`)
	flag.PrintDefaults()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
