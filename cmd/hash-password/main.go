package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/brisa-edu/brisa-client/internal/mockapi"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-password/main.go <password>")
		os.Exit(1)
	}
	hash, err := mockapi.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
