package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/generator"
	"github.com/tandouridev/password-guardian-vault/pkg/strength"
)

// Generate command flags
var (
	generateLength      int
	generateCount       int
	generateNoSymbols   bool
	generateNoNumbers   bool
	generateNoUppercase bool
	generateNoLowercase bool
	generateQuiet       bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateLength, "length", "l", generator.DefaultLength, "password length")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of passwords to generate")
	generateCmd.Flags().BoolVar(&generateNoSymbols, "no-symbols", false, "exclude symbols")
	generateCmd.Flags().BoolVar(&generateNoNumbers, "no-numbers", false, "exclude digits")
	generateCmd.Flags().BoolVar(&generateNoUppercase, "no-uppercase", false, "exclude uppercase letters")
	generateCmd.Flags().BoolVar(&generateNoLowercase, "no-lowercase", false, "exclude lowercase letters")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "print passwords only, no strength line")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random passwords",
	Long: `Generate random passwords from the enabled character pools. With
every pool disabled the generator falls back to lowercase plus digits,
never an empty alphabet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateLength < 1 {
			return fmt.Errorf("length must be positive, got %d", generateLength)
		}
		if generateCount < 1 || generateCount > 100 {
			return fmt.Errorf("count must be between 1 and 100, got %d", generateCount)
		}

		opts := generator.Options{
			Length:           generateLength,
			IncludeUppercase: !generateNoUppercase,
			IncludeLowercase: !generateNoLowercase,
			IncludeNumbers:   !generateNoNumbers,
			IncludeSymbols:   !generateNoSymbols,
		}

		for i := 0; i < generateCount; i++ {
			password, err := generator.Generate(opts)
			if err != nil {
				return err
			}
			if generateQuiet {
				fmt.Println(password)
				continue
			}
			score := strength.Score(password)
			fmt.Printf("%s  (%d/100 %s)\n", password, score, strength.ForScore(score).Label)
		}
		return nil
	},
}
