package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"go_chat_client/bootstrap"
	"go_chat_client/config"
	"go_chat_client/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	logging.Init()
	cfg := config.LoadConfig()

	if len(os.Args) > 1 && os.Args[1] == "stub" {
		runStub(cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp(cfg)
	if err := app.Console(os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		logging.Logger.Error("fail console", "error", err)
		os.Exit(1)
	}
}

func runStub(cfg *config.Config) {
	stub := bootstrap.NewStubServer(cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := stub.Shutdown(); err != nil {
			logging.Logger.Error("fail shutting down stub", "error", err)
		}
	}()

	if err := stub.Listen(); err != nil {
		log.Fatal(err)
	}
}
