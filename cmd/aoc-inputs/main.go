package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"aoc-inputs/internal/cli"

	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	cli.SetVersionInfo(version, commit, date)

	if err := cli.Execute(context.Background()); err != nil {
		log.Fatal(err)
	}
}
