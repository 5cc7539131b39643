package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-facet-engine/internal/engine"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/seed"
	"github.com/gcbaptista/go-facet-engine/model"
)

type filterOptions struct {
	seedPath   string
	collection string
	search     string
	categories []string
	ranges     []string
	sortBy     string
	suggest    bool
}

func filterCmd() *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a seeded collection offline and print the result as JSON",
		Example: `  facetd filter --seed seed/agency.json --collection athletes --range age=24:26
  facetd filter --seed seed/agency.json --collection athletes --category position=Forward,Winger --sort performance
  facetd filter --seed seed/agency.json --collection faq --search transfer --suggest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runFilter(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.seedPath, "seed", "seed/agency.json", "Seed file with the collections")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "Collection to filter")
	cmd.Flags().StringVar(&opts.search, "search", "", "Search term")
	cmd.Flags().StringArrayVar(&opts.categories, "category", nil, "Category selection as facet=value1,value2 (repeatable)")
	cmd.Flags().StringArrayVar(&opts.ranges, "range", nil, "Range as facet=min:max (repeatable)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "Sort option name")
	cmd.Flags().BoolVar(&opts.suggest, "suggest", false, "Print suggestions for the search term instead of the result")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

func runFilter(opts *filterOptions) ([]byte, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = "warn"
	logging.Init(logCfg)

	criteria, err := opts.criteria()
	if err != nil {
		return nil, err
	}

	file, err := seed.Load(opts.seedPath)
	if err != nil {
		return nil, err
	}
	eng := engine.NewEngine("", nil)
	defer eng.Close()
	if _, err := seed.Apply(eng, file); err != nil {
		return nil, err
	}

	accessor, err := eng.GetCollection(opts.collection)
	if err != nil {
		return nil, err
	}

	if opts.suggest {
		return json.MarshalIndent(accessor.Suggest(opts.search), "", "  ")
	}

	result, err := accessor.Filter(criteria)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result, "", "  ")
}

func (opts *filterOptions) criteria() (model.FilterCriteria, error) {
	categories, err := parseCategoryFlags(opts.categories)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	ranges, err := parseRangeFlags(opts.ranges)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	return model.FilterCriteria{
		Categories: categories,
		Ranges:     ranges,
		SearchTerm: opts.search,
		SortBy:     opts.sortBy,
	}, nil
}

// parseCategoryFlags parses facet=value1,value2 pairs. Repeating a facet adds to its selection.
func parseCategoryFlags(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	categories := make(map[string][]string, len(flags))
	for _, flag := range flags {
		facet, values, ok := strings.Cut(flag, "=")
		if !ok || facet == "" {
			return nil, fmt.Errorf("invalid category %q, expected facet=value1,value2", flag)
		}
		for _, value := range strings.Split(values, ",") {
			if value = strings.TrimSpace(value); value != "" {
				categories[facet] = append(categories[facet], value)
			}
		}
	}
	return categories, nil
}

// parseRangeFlags parses facet=min:max pairs.
func parseRangeFlags(flags []string) (map[string]model.Range, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	ranges := make(map[string]model.Range, len(flags))
	for _, flag := range flags {
		facet, bounds, ok := strings.Cut(flag, "=")
		if !ok || facet == "" {
			return nil, fmt.Errorf("invalid range %q, expected facet=min:max", flag)
		}
		minText, maxText, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, fmt.Errorf("invalid range %q, expected facet=min:max", flag)
		}
		lo, err := strconv.ParseFloat(strings.TrimSpace(minText), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum in range %q: %w", flag, err)
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(maxText), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid maximum in range %q: %w", flag, err)
		}
		ranges[facet] = model.Range{Min: lo, Max: hi}
	}
	return ranges, nil
}
