package main

import (
	"flag"
	"fmt"
	"os"

	"tempora.io/tempora/security"
)

func main() {
	id := flag.Int("id", 1, "user id to embed in the token")
	name := flag.String("name", "dev", "user name")
	role := flag.String("role", "manager", "role claim")
	flag.Parse()

	secret := os.Getenv("TEMPORA_SIGNING_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "TEMPORA_SIGNING_SECRET is not set")
		os.Exit(1)
	}

	token, err := security.CreateIdentityToken(&security.TemporaIdentity{
		Id:       *id,
		UserName: *name,
		Role:     *role,
	}, secret, 3600)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
