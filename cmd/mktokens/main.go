// mktokens mints access tokens for load testing. Subjects are random ids, so
// the tokens only pass full verification against a database seeded with the
// same ids; for handler-level load tests that is enough to exercise parsing
// and signature checks.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/security"
)

func main() {
	var (
		count = flag.Int("n", 1000, "number of tokens to mint")
		ttl   = flag.Duration("ttl", time.Hour, "token lifetime")
		out   = flag.String("out", "tokens.csv", "output file (user_id,token per line)")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	codec, err := security.NewTokenCodec(secret, "user-service")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	for i := 0; i < *count; i++ {
		uid := uuid.NewString()
		tok, err := codec.Issue(uid, account.TokenAccess, *ttl)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintf(f, "%s,%s\n", uid, tok)
	}

	fmt.Printf("wrote %d tokens to %s\n", *count, *out)
}
