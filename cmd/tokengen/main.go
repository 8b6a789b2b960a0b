// Command tokengen mints a bearer token for local development.
//
// Usage:
//
//	tokengen -user 3f0c...           # token for a user id
//	tokengen -email dev@example.com  # look the user up first
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/unishowcase/server/internal/module/auth"
	"github.com/unishowcase/server/internal/module/user"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/database"
)

func main() {
	userFlag := flag.String("user", "", "user id to issue the token for")
	emailFlag := flag.String("email", "", "look up the user by email")
	expiry := flag.Duration("expiry", 0, "token lifetime (defaults to the configured expiry)")
	flag.Parse()

	if (*userFlag == "") == (*emailFlag == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -user or -email is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("UNISHOWCASE_JWT_SECRET must be set")
	}

	userID, email, err := resolveUser(cfg, *userFlag, *emailFlag)
	if err != nil {
		log.Fatal(err)
	}

	jwtConfig := auth.JWTConfigFromAuth(&cfg.Auth)
	if *expiry > 0 {
		jwtConfig.AccessTokenExpiry = *expiry
	}
	token, expiresAt, err := auth.NewJWTManager(jwtConfig).GenerateAccessToken(userID, email)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "user %s, expires %s\n", userID, expiresAt.Format(time.RFC3339))
}

func resolveUser(cfg *config.Config, rawID, email string) (uuid.UUID, string, error) {
	if rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("invalid user id %q: %w", rawID, err)
		}
		return id, "", nil
	}

	db, err := database.New(&cfg.Database, nil)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := user.NewRepository(db).GetByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("look up %s: %w", email, err)
	}
	if u == nil {
		return uuid.Nil, "", fmt.Errorf("no user with email %s", email)
	}
	return u.ID, u.Email, nil
}
