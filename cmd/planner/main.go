// Package main provides the command line entry point for the meal planner
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alchemorsel/mealplanner/internal/infrastructure/container"
	"github.com/alchemorsel/mealplanner/internal/ports/inbound"
	apperrors "github.com/alchemorsel/mealplanner/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// Modes understood by -mode
const (
	modePlan      = "plan"
	modeGoals     = "goals"
	modeNutrition = "nutrition"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one planner command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the configuration file")
	mode := fs.String("mode", modePlan, "one of plan, goals or nutrition")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: planner [-config file] [-mode plan|goals|nutrition] request.yaml")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	var service inbound.MealPlanService
	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's
		fx.Supply(container.ConfigPath(*configPath)),
		container.Module,
		fx.Populate(&service),
	)

	startCtx, startCancel := context.WithTimeout(ctx, 15*time.Second)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		return writeError(stderr, apperrors.Wrap(err, "failed to start planner"))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	}()

	result, err := execute(ctx, service, *mode, fs.Arg(0))
	if err != nil {
		return writeError(stderr, err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return writeError(stderr, apperrors.Wrap(err, "failed to write result"))
	}
	return 0
}

func execute(ctx context.Context, service inbound.MealPlanService, mode, requestPath string) (interface{}, error) {
	switch mode {
	case modePlan:
		var cmd inbound.GenerateWeeklyPlanCommand
		if err := decodeRequest(requestPath, &cmd); err != nil {
			return nil, err
		}
		return service.GenerateWeeklyPlan(ctx, cmd)
	case modeGoals:
		var profile inbound.ProfileInput
		if err := decodeRequest(requestPath, &profile); err != nil {
			return nil, err
		}
		return service.RecommendedGoals(ctx, profile)
	case modeNutrition:
		var cmd inbound.AggregateNutritionCommand
		if err := decodeRequest(requestPath, &cmd); err != nil {
			return nil, err
		}
		return service.AggregateNutrition(ctx, cmd)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown mode %q", mode))
	}
}

// decodeRequest reads a YAML (or JSON) request document
func decodeRequest(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("cannot read request: %v", err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("cannot parse request: %v", err))
	}
	return nil
}

func writeError(w io.Writer, err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, "planner failed")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(apperrors.ToErrorResponse(appErr, uuid.NewString()))
	return appErr.ExitCode()
}
