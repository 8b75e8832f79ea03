// Package main runs the pantry API server
package main

import (
	"go.uber.org/fx"

	"github.com/pantryhq/pantry/internal/infrastructure/container"
)

func main() {
	fx.New(container.Module).Run()
}
