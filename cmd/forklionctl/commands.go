package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"forklion/internal/genetics"
	"forklion/internal/model"
	"forklion/pkg/forklion"
)

var (
	outPath     string
	recordPath  string
	parentAPath string
	parentBPath string
	recordID    string
	limit       int
	genesisSeed int64
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Create a brand-new lion record",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		record, err := client.Genesis(cmd.Context(), forklion.GenesisRequest{Seed: genesisSeed})
		if err != nil {
			return err
		}
		if err := saveRecordFile(outPath, record); err != nil {
			return err
		}
		logger.Info("genesis complete",
			zap.String("id", record.ID),
			zap.Float64("rarity_score", record.RarityScore))
		printRecord(record)
		return nil
	},
}

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Apply one day's evolution to a record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, advisor, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		record, err := loadRecordFile(recordPath)
		if err != nil {
			return err
		}

		req := forklion.EvolveRequest{Record: record}
		if advisor != nil {
			req.StoryFn = func(ctx context.Context, changes []model.TraitChange) (string, error) {
				return advisor.Story(ctx, changes)
			}
		}
		summary, err := client.Evolve(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := saveRecordFile(recordPath, summary.Record); err != nil {
			return err
		}

		for _, change := range summary.Changes {
			fmt.Printf("%s: %s -> %s\n", change.Category, change.From, change.To)
		}
		fmt.Println(summary.Story)
		printRecord(summary.Record)
		return nil
	},
}

var breedCmd = &cobra.Command{
	Use:   "breed",
	Short: "Breed a cub from one or two parent record files",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		parentA, err := loadRecordFile(parentAPath)
		if err != nil {
			return err
		}
		req := forklion.BreedRequest{ParentA: parentA}
		if parentBPath != "" {
			parentB, err := loadRecordFile(parentBPath)
			if err != nil {
				return err
			}
			req.ParentB = &parentB
		}

		cub, err := client.Breed(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := saveRecordFile(outPath, cub); err != nil {
			return err
		}
		logger.Info("breed complete",
			zap.String("id", cub.ID),
			zap.Int("generation", cub.Generation),
			zap.Int("mutations", cub.MutationCount))
		printRecord(cub)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display a record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := loadRecordFile(recordPath)
		if err != nil {
			return err
		}
		printRecord(record)
		return nil
	},
}

var lineageCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Show the stored breeding chain for a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		lineage, err := client.Lineage(cmd.Context(), forklion.LineageRequest{ID: recordID, Limit: limit})
		if err != nil {
			return err
		}
		for _, entry := range lineage {
			fmt.Printf("gen %-3d %-8s %s  %s\n",
				entry.Generation, entry.Operation, entry.RecordID, shortFingerprint(entry.Fingerprint))
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored evolution history for a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		events, err := client.History(cmd.Context(), forklion.HistoryRequest{ID: recordID, Limit: limit})
		if err != nil {
			return err
		}
		for _, event := range events {
			fmt.Printf("day %-4d", event.AgeDays)
			if len(event.Changes) == 0 {
				fmt.Print(" no changes")
			}
			for _, change := range event.Changes {
				fmt.Printf(" %s:%s->%s", change.Category, change.From, change.To)
			}
			fmt.Println()
			if event.Story != "" {
				fmt.Printf("         %s\n", event.Story)
			}
		}
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the trait catalog with rarity tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := genetics.DefaultCatalog()
		if catalogPath != "" {
			var err error
			catalog, err = genetics.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}
		}
		for _, category := range catalog.Categories {
			fmt.Printf("%s:\n", category.Name)
			for _, value := range category.Values {
				fmt.Printf("  %-16s %s\n", value.Name, value.Tier)
			}
		}
		return nil
	},
}

func init() {
	genesisCmd.Flags().StringVar(&outPath, "out", "lion.json", "output record file")
	genesisCmd.Flags().Int64Var(&genesisSeed, "genesis-seed", 0, "seed for this genesis only (0 = client seed)")

	evolveCmd.Flags().StringVar(&recordPath, "record", "lion.json", "record file, updated in place")

	breedCmd.Flags().StringVar(&parentAPath, "parent-a", "lion.json", "first parent record file")
	breedCmd.Flags().StringVar(&parentBPath, "parent-b", "", "second parent record file (optional)")
	breedCmd.Flags().StringVar(&outPath, "out", "cub.json", "output record file")

	showCmd.Flags().StringVar(&recordPath, "record", "lion.json", "record file")

	lineageCmd.Flags().StringVar(&recordID, "id", "", "record id")
	lineageCmd.Flags().IntVar(&limit, "limit", 0, "max entries (0 = all)")
	_ = lineageCmd.MarkFlagRequired("id")

	historyCmd.Flags().StringVar(&recordID, "id", "", "record id")
	historyCmd.Flags().IntVar(&limit, "limit", 0, "max entries (0 = all)")
	_ = historyCmd.MarkFlagRequired("id")
}

func printRecord(record model.TraitRecord) {
	fmt.Printf("id:          %s\n", record.ID)
	fmt.Printf("generation:  %d\n", record.Generation)
	fmt.Printf("age_days:    %d\n", record.AgeDays)
	fmt.Printf("mutations:   %d\n", record.MutationCount)
	fmt.Printf("rarity:      %.1f\n", record.RarityScore)
	fmt.Printf("fingerprint: %s\n", shortFingerprint(record.Fingerprint))
	fmt.Println("traits:")
	catalog := genetics.DefaultCatalog()
	for _, category := range catalog.Categories {
		if value, ok := record.Traits[category.Name]; ok {
			fmt.Printf("  %-16s %s\n", category.Name, value)
		}
	}
	for name, value := range record.Traits {
		if _, known := catalog.Category(name); !known {
			fmt.Printf("  %-16s %s\n", name, value)
		}
	}
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
