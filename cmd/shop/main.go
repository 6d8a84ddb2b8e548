package main

import (
	"context"
	"os"

	"go.llib.dev/frameless/pkg/logging"
)

func main() {
	logger := &logging.Logger{Out: os.Stderr}
	ctx := logging.ContextWith(context.Background(), logging.Field("app", "shop"))
	if err := Main(ctx, logger, os.Args[1:]); err != nil {
		logger.Fatal(ctx, "error in main", logging.ErrField(err))
		os.Exit(1)
	}
}

func Main(ctx context.Context, logger *logging.Logger, args []string) error {
	rootLogger = logger
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
