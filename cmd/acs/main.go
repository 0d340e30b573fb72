// Command acs runs the mock 3-D Secure 2.x Access Control Server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"acs/internal/acs/apiv1"
	"acs/internal/acs/httpserver"
	"acs/internal/acs/store"
	"acs/pkg/configuration"
	"acs/pkg/kvclient"
	"acs/pkg/logger"
	"acs/pkg/trace"
)

type service interface {
	Close(ctx context.Context) error
}

func main() {
	ctx := context.Background()

	services := make(map[string]service)

	cfg, err := configuration.New(ctx)
	if err != nil {
		logger.NewSimple("configuration").Error(err, "failed to load configuration")
		os.Exit(1)
	}

	log, err := logger.New("acs", cfg.Common.Log.FolderPath, cfg.Common.Production)
	if err != nil {
		os.Exit(1)
	}

	tracer, err := trace.New(ctx, cfg, log, "acs")
	if err != nil {
		log.Error(err, "tracer")
		os.Exit(1)
	}

	kvClient, err := kvclient.New(ctx, cfg, tracer, log.New("kvClient"))
	services["kvClient"] = kvClient
	if err != nil {
		log.Error(err, "kvClient")
		os.Exit(1)
	}

	txnStore := store.New(kvClient, cfg, log.New("store"), tracer)

	apiv1Client, err := apiv1.New(ctx, cfg, tracer, log.New("apiv1"), txnStore)
	services["apiv1Client"] = apiv1Client
	if err != nil {
		log.Error(err, "apiv1Client")
		os.Exit(1)
	}

	httpService, err := httpserver.New(ctx, cfg, apiv1Client, tracer, log.New("httpserver"))
	services["httpService"] = httpService
	if err != nil {
		log.Error(err, "httpService")
		os.Exit(1)
	}

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	<-termChan

	mainLog := log.New("main")
	mainLog.Info("HALTING SIGNAL!")

	for serviceName, service := range services {
		if err := service.Close(ctx); err != nil {
			mainLog.Trace("serviceName", serviceName, "error", err)
		}
	}

	if err := tracer.Shutdown(ctx); err != nil {
		mainLog.Error(err, "Tracer shutdown")
	}

	mainLog.Info("Stopped")
	os.Exit(0)
}
