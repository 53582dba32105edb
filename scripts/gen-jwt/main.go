// Prints a signed bearer token for manual testing. Subject defaults to a random
// uuid; pass a user id as the first argument to impersonate an existing user.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"todolist-api/internal/auth"
)

func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}
	subject := uuid.NewString()
	if len(os.Args) > 1 {
		subject = os.Args[1]
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(secret),
		TTL:    24 * time.Hour,
	})
	signed, err := tokens.Issue(subject)
	if err != nil {
		panic(err)
	}

	fmt.Println(signed)
}
