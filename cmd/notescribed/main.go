// Package main is the entry point for notescribed, a headless monophonic
// audio-to-MIDI transcription daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/notescribe/notescribed/internal/config"
	"github.com/notescribe/notescribed/internal/session"
)

// Config holds the daemon's command-line configuration.
type Config struct {
	ConfigDir  string
	InputPath  string // set for the upload path; empty means live capture
	OutputPath string
	Tempo      int
	Bars       int
	Denom      string
	Key        string
	Quant      string
	FFTSize    int
	Verbose    bool
}

func main() {
	cfg := parseFlags()

	if cfg.Verbose {
		log.Printf("notescribed starting...")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigDir, "config", "", "Configuration directory (default: ~/.config/notescribed)")
	flag.StringVar(&cfg.InputPath, "input", "", "Path to an existing WAV file to transcribe (omit for live capture)")
	flag.StringVar(&cfg.OutputPath, "output", "", "Output base path (required); the core writes <path>.mid and, for live sessions, <path>.wav")
	flag.IntVar(&cfg.Tempo, "tempo", 120, "Tempo in beats per minute, 10-200")
	flag.IntVar(&cfg.Bars, "bars", 4, "Beats per bar, 2-16")
	flag.StringVar(&cfg.Denom, "denom", string(config.TimeDenomCrotchet), "Time signature denominator unit: Quavers, Crotchets, or Minims")
	flag.StringVar(&cfg.Key, "key", "C major", "Key signature, e.g. \"C major\" or \"A minor\"")
	flag.StringVar(&cfg.Quant, "quantization", string(config.QuantSixteenth), "Rhythmic quantization grid")
	flag.IntVar(&cfg.FFTSize, "fft-size", config.DefaultAudioConfig().WindowSize, "FFT window size: 1024, 2048, 4096, or 8192")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if cfg.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		cfg.ConfigDir = filepath.Join(homeDir, ".config", "notescribed")
	}

	if cfg.OutputPath == "" {
		log.Fatalf("-output is required")
	}

	return cfg
}

func run(ctx context.Context, cfg *Config) error {
	if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configMgr := config.NewManager(cfg.ConfigDir)
	if err := configMgr.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	audioCfg := configMgr.Audio()
	if config.ValidWindowSize(cfg.FFTSize) {
		audioCfg.WindowSize = cfg.FFTSize
	} else {
		log.Printf("[CONFIG] fft-size %d is not supported, using %d", cfg.FFTSize, audioCfg.WindowSize)
	}

	music := config.MusicConfig{
		TempoBPM:     cfg.Tempo,
		BeatsPerBar:  cfg.Bars,
		TimeDenom:    config.TimeDenom(cfg.Denom),
		KeySignature: cfg.Key,
		Quantization: config.Quantization(cfg.Quant),
		OutputPath:   cfg.OutputPath,
	}
	if err := music.Validate(); err != nil {
		return fmt.Errorf("invalid session configuration: %w", err)
	}
	if err := configMgr.UpdateMusic(music); err != nil {
		log.Printf("[CONFIG] Warning: failed to persist session configuration: %v", err)
	}

	controller := session.NewController(audioCfg)

	if cfg.InputPath != "" {
		log.Printf("[SESSION] transcribing %s -> %s", cfg.InputPath, music.MIDIPath())
		if err := controller.StartUpload(music, cfg.InputPath); err != nil {
			return fmt.Errorf("failed to start upload session: %w", err)
		}
	} else {
		log.Printf("[SESSION] capturing from default input device, recording to %s", music.WAVPath())
		if err := controller.StartLive(music); err != nil {
			return fmt.Errorf("failed to start live session: %w", err)
		}

		go func() {
			<-ctx.Done()
			log.Printf("[SESSION] stopping live capture")
			controller.Stop()
		}()
	}

	if err := controller.Wait(ctx); err != nil {
		return fmt.Errorf("session error: %w", err)
	}

	log.Printf("[SESSION] transcription complete: %s", music.MIDIPath())
	return nil
}
