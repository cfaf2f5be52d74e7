package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/signals"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Signal the run in this directory to stop",
	Long: `Stop writes a stop signal file that a running cascade process in this
directory picks up at its next checkpoint. The stop is sticky: it stays
in effect until a new run clears it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := signalManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.SendStop(); err != nil {
			return fmt.Errorf("write stop signal: %w", err)
		}
		fmt.Printf("Stop signal written to %s\n", signalsDir())
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Signal the run in this directory to pause",
	Long: `Pause writes a pause signal file. A running cascade process holds at its
next checkpoint until the file is removed (see 'cascade resume').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := signalManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.SendPause(); err != nil {
			return fmt.Errorf("write pause signal: %w", err)
		}
		fmt.Printf("Pause signal written to %s\n", signalsDir())
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Clear pending signals so a paused run continues",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := signalManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		mgr.Clear()
		fmt.Printf("Signals cleared in %s\n", signalsDir())
		return nil
	},
}

func signalManager() (*signals.Manager, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	mgr, err := signals.NewManager(cwd)
	if err != nil {
		return nil, fmt.Errorf("open signal directory: %w", err)
	}
	return mgr, nil
}

func signalsDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ".cascade/signals"
	}
	return signals.Dir(cwd)
}
