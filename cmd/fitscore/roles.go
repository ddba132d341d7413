package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/fitscore/internal/benchmark"
)

var rolesFlags struct {
	benchmarks string
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles with configured benchmarks",
	RunE:  runRoles,
}

func init() {
	rolesCmd.Flags().StringVarP(&rolesFlags.benchmarks, "benchmarks", "b", "", "Path to role benchmarks override JSON")
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, args []string) error {
	registry := benchmark.DefaultRegistry()
	if rolesFlags.benchmarks != "" {
		data, err := os.ReadFile(rolesFlags.benchmarks)
		if err != nil {
			return fmt.Errorf("failed to read benchmarks file: %w", err)
		}
		if registry, err = benchmark.LoadFile(data); err != nil {
			return err
		}
	}

	roles := registry.Roles()
	sort.Strings(roles)
	for _, role := range roles {
		bench, _ := registry.Resolve(role)
		fmt.Printf("%-20s hire ≥ %.1f  elite ≥ %.1f  (edu %.0f%% / exp %.0f%% / skills %.0f%% / achieve %.0f%%)\n",
			role, bench.HireThreshold, bench.EliteThreshold,
			bench.EducationWeight*100, bench.ExperienceWeight*100,
			bench.SkillsWeight*100, bench.AchievementsWeight*100)
	}
	return nil
}
