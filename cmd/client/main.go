package main

import (
	"fmt"

	"github.com/MKhiriev/go-pin-guard/internal/adapter"
	"github.com/MKhiriev/go-pin-guard/internal/biometric"
	"github.com/MKhiriev/go-pin-guard/internal/client"
	"github.com/MKhiriev/go-pin-guard/internal/config"
	"github.com/MKhiriev/go-pin-guard/internal/crypto"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/service"
	"github.com/MKhiriev/go-pin-guard/internal/store"
	"github.com/MKhiriev/go-pin-guard/internal/tui"
	"github.com/MKhiriev/go-pin-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	printBuildInfo(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("pin-guard-client", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("pin-guard-client", cfg.App.LogPath)

	sealer := crypto.NewPlainSealer()
	if cfg.Storage.DB.DSN != store.MemoryDSN {
		sealer, err = crypto.NewSealer(cfg.App.DeviceSecret)
		if err != nil {
			log.Fatal().Err(err).Msg("create sealer")
		}
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, sealer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	var account adapter.AccountAdapter
	if cfg.Adapter.HTTPAddress != "" {
		account, err = adapter.NewHTTPAccountAdapter(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create account adapter")
		}
	} else {
		log.Warn().Msg("no account api configured, account based offers are disabled")
	}

	device := biometric.NewInteractiveDevice(cfg.Biometric.HasHardware, cfg.Biometric.Enrolled, cfg.Biometric.Type)
	services := service.NewClientServices(localStorage, device, account, log)

	ui, err := tui.New(services, device, cfg.App.UserID, cfg.Security.BiometricPromptDelay, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, localStorage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	if !info.Known() {
		fmt.Println("PinGuard (development build)")
		return
	}
	fmt.Printf("PinGuard %s (%s, commit %s)\n", info.Version, info.Date, info.Commit)
}
