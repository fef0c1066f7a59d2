package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/storage"
)

var (
	flagProfileSession string
	flagProfileLimit   int
	flagProfileClear   bool
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show recorded frame-timing profiles",
	Long: `Display the most recent frame-timing profiles from --profile-db.

A profile is written when a session quits. It holds the averaged frame
and update rates, the mean and worst frame time and the best score.

Examples:
  dino profiles --profile-db ~/.dino/profiles.db
  dino profiles --profile-db ~/.dino/profiles.db --session alice
  dino profiles --profile-db ~/.dino/profiles.db --clear`,
	Args: cobra.NoArgs,
	Run:  runProfiles,
}

func init() {
	profilesCmd.Flags().StringVar(&flagProfileSession, "session", "", "Only show this session (empty = all)")
	profilesCmd.Flags().IntVar(&flagProfileLimit, "limit", 10, "Number of profiles to show")
	profilesCmd.Flags().BoolVar(&flagProfileClear, "clear", false, "Delete the selected profiles")
}

func runProfiles(_ *cobra.Command, _ []string) {
	if flagProfileDB == "" {
		fmt.Fprintln(os.Stderr, "Error: --profile-db is required")
		os.Exit(1)
	}

	store, err := storage.Open(flagProfileDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if flagProfileClear {
		if err := store.ClearProfiles(ctx, flagProfileSession); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing profiles: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Profiles cleared.")
		return
	}

	profiles, err := store.ListProfiles(ctx, flagProfileSession, flagProfileLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving profiles: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Frame-timing profiles")
	fmt.Println()

	if len(profiles) == 0 {
		fmt.Println("No profiles recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'dino play --profile-db <path>' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-12s  %4s  %4s  %9s  %9s  %8s  %5s\n",
		"Date", "Session", "FPS", "UPS", "Avg (ms)", "Max (ms)", "Frames", "Best")
	fmt.Printf("  %-16s  %-12s  %4s  %4s  %9s  %9s  %8s  %5s\n",
		"----", "-------", "---", "---", "--------", "--------", "------", "----")

	for _, p := range profiles {
		fmt.Printf("  %-16s  %-12s  %4d  %4d  %9.2f  %9.2f  %8d  %04d\n",
			p.CreatedAt.Format("2006-01-02 15:04"), p.Session, p.FPS, p.UPS,
			p.AvgFrame*1000, p.MaxFrame*1000, p.Frames, p.BestScore)
	}

	fmt.Println()
	if best, err := store.BestScore(ctx); err == nil {
		fmt.Printf("Best across profiles: %04d\n", best)
	}
}
