//go:build unix

// File: cmd/uniloop-echo/main.go
// Package main
// TCP echo server driven entirely by a single uniloop runtime thread.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	uniloop "github.com/momentics/uniloop"
	"github.com/momentics/uniloop/config"
	"github.com/momentics/uniloop/control"
	"github.com/momentics/uniloop/fd"
)

func main() {
	var (
		cfgPath string
		host    string
		port    int
		metrics string
	)

	root := &cobra.Command{
		Use:   "uniloop-echo",
		Short: "Single-threaded TCP echo server on the uniloop runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Listen.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Listen.Port = port
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = metrics
			}
			return runServer(cfg)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	root.Flags().StringVar(&host, "host", "127.0.0.1", "listen host")
	root.Flags().IntVarP(&port, "port", "p", 9000, "listen port")
	root.Flags().StringVar(&metrics, "metrics-addr", "", "serve Prometheus metrics on this address")

	if err := root.Execute(); err != nil {
		log.Fatalf("uniloop-echo: %v", err)
	}
}

func runServer(cfg *config.Config) error {
	rt := uniloop.New()
	if cfg.Runtime.MaxTasks > 0 {
		rt.SetTaskLimit(cfg.Runtime.MaxTasks)
	}
	if err := rt.EnableExternalWake(); err != nil {
		return err
	}

	listener, err := fd.ListenTCP(cfg.Listen.Host, cfg.Listen.Port, cfg.Listen.Backlog)
	if err != nil {
		return err
	}
	defer listener.Close()

	actualPort, err := listener.LocalPort()
	if err != nil {
		return err
	}
	log.Printf("echo server listening on %s:%d", cfg.Listen.Host, actualPort)

	if cfg.Metrics.Enabled {
		reg := control.NewStatsRegistry()
		rt.Spawn(control.NewSampler(reg, cfg.Metrics.SampleInterval.Std()))

		preg := prometheus.NewRegistry()
		preg.MustRegister(control.NewCollector(reg))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(preg, promhttp.HandlerOpts{}))
			log.Printf("metrics on http://%s/metrics", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	rt.Spawn(newAcceptor(listener, cfg.Runtime.ReadBufferKB*1024))

	var stop atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		stop.Store(true)
		rt.Kick()
	}()

	for !stop.Load() {
		if _, err := rt.RunUntilIdle(); err != nil {
			return err
		}
	}

	rt.Clear()
	log.Println("server shutdown complete")
	return nil
}
