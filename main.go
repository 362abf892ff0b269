package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/replicate/modelget/cmd"
	"github.com/replicate/modelget/pkg/logging"
)

func main() {
	logging.SetupLogger()
	rootCMD := cmd.GetRootCommand()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCMD.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger := logging.GetLogger()
		logger.Error().Err(err).Msg("Error")
		os.Exit(1)
	}
}
