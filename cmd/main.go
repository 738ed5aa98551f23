package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"hexint-tracker/api"
	"hexint-tracker/bot"
	"hexint-tracker/config"
	"hexint-tracker/database"
	"hexint-tracker/log"
	"hexint-tracker/net"
	"hexint-tracker/tron"
)

func main() {
	configPath := flag.String("config", "./config.toml", "path of the toml config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Init(&cfg.Log)
	net.Init(&cfg.Net)

	db := database.New(&cfg.DB)

	var notifier tron.Notifier
	var alertBot *bot.AlertBot
	if cfg.Bot.AlertBotToken != "" {
		alertBot, err = bot.New(&cfg.Bot, db)
		if err != nil {
			zap.S().Fatal(err)
		}
		alertBot.Start()
		notifier = alertBot
	}

	tracker, err := tron.NewTracker(db, net.Default(), notifier, &cfg.Tracker)
	if err != nil {
		zap.S().Fatal(err)
	}
	tracker.Start()

	apiSrv := api.New(db, &cfg.Server)
	apiSrv.Start()

	c := cron.New(cron.WithSeconds())
	if _, err = c.AddFunc(cfg.Tracker.ReportCron, tracker.Report); err != nil {
		zap.S().Fatalf("Invalid report cron [%s]: %s", cfg.Tracker.ReportCron, err.Error())
	}
	c.Start()

	watchOSSignal()

	<-c.Stop().Done()
	tracker.Stop()
	apiSrv.Stop()
	if alertBot != nil {
		alertBot.Stop()
	}
	db.Close()
	_ = zap.L().Sync()
}

func watchOSSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c
}
