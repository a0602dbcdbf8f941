package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/finflow/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	Long:  `Sign a bearer token for a user id with the configured JWT secret.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := bootstrap()

		userID := tokenUserID
		if userID == "" {
			userID = cfg.Security.DefaultUserID
		}

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Security.AccessTokenDuration
		}

		token, expiresAt, err := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, ttl).GenerateAccessToken(userID)
		if err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}

		fmt.Println(token)
		fmt.Printf("user: %s, expires: %s\n", userID, expiresAt.Format(time.RFC3339))
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id placed in the sub claim (defaults to security.default_user_id)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to security.access_token_duration)")
}
