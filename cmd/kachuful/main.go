package main

import (
	"github.com/kunalgolani-work/kachuful-backend/internal/cli"
)

func main() {
	cli.Execute()
}
