package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/customizer"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/enhancer"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
)

const dateLayout = "2006-01-02"

type options struct {
	jsonOutput  bool
	catalogPath string

	// overridable in tests
	intn func(n int) int
	now  func() time.Time
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "coffeecraft",
		Short: "Browse and customize coffee recipes",
		Long: `coffeecraft shows coffee and espresso recipes from the built-in catalog.

Examples:
  coffeecraft today                          # Recipe of the day for each category
  coffeecraft today -c espresso --date 2025-03-01
  coffeecraft random -c brewing              # A random brewing recipe
  coffeecraft list --json                    # Whole catalog as JSON
  coffeecraft customize "strong and bold"    # Customize a random recipe
  coffeecraft show 7                         # One recipe by id`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Path to a YAML catalog (built-in catalog if not set)")

	root.AddCommand(
		newTodayCmd(opts),
		newRandomCmd(opts),
		newListCmd(opts),
		newCustomizeCmd(opts),
		newShowCmd(opts),
	)
	return root
}

func (o *options) service(extra ...service.Option) (*service.RecipeService, error) {
	cat, err := catalog.Load(o.catalogPath)
	if err != nil {
		return nil, err
	}

	var selOpts []catalog.Option
	if o.intn != nil {
		selOpts = append(selOpts, catalog.WithRand(o.intn))
	}
	if o.now != nil {
		selOpts = append(selOpts, catalog.WithClock(o.now))
	}
	return service.NewRecipeService(catalog.NewSelector(cat, selOpts...), customizer.New(), extra...), nil
}

func newTodayCmd(opts *options) *cobra.Command {
	var category, date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the recipe of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			var at time.Time
			if date != "" {
				if at, err = time.ParseInLocation(dateLayout, date, time.Local); err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD")
				}
			}

			categories := domain.Categories
			if category != "" {
				categories = []domain.Category{domain.Category(category)}
			}

			var recipes []domain.Recipe
			for _, c := range categories {
				r, err := svc.Today(string(c), at)
				if err != nil {
					return err
				}
				recipes = append(recipes, r)
			}
			return opts.printRecipes(cmd.OutOrStdout(), recipes)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "brewing or espresso (both if not set)")
	cmd.Flags().StringVar(&date, "date", "", "Day to show, YYYY-MM-DD (today if not set)")
	return cmd
}

func newRandomCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			r, err := svc.Random(category)
			if err != nil {
				return err
			}
			return opts.printRecipes(cmd.OutOrStdout(), []domain.Recipe{r})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryBrewing), "brewing or espresso")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			recipes, err := svc.List(category)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), recipes)
			}
			renderList(cmd.OutOrStdout(), recipes)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	return cmd
}

func newCustomizeCmd(opts *options) *cobra.Command {
	var category string
	var flavor bool

	cmd := &cobra.Command{
		Use:   "customize <preferences>",
		Short: "Customize a random recipe to your taste",
		Long: `Customize picks a random recipe from the category and adjusts it to the
preference text. Words like strong, light or creamy steer the result.

With --flavor, flavor profiles (sweet, healthy, exotic) are tried first.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []service.Option
			if flavor {
				extra = append(extra, service.WithEnhancer(enhancer.NewLocalEnhancer(enhancer.NewFlavorGenerator())))
			}
			svc, err := opts.service(extra...)
			if err != nil {
				return err
			}

			res, err := svc.Customize(cmd.Context(), nil, strings.Join(args, " "), category)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCard(res.Recipe))
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("source: "+res.Source))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryBrewing), "brewing or espresso")
	cmd.Flags().BoolVar(&flavor, "flavor", false, "Try flavor profiles before the keyword rules")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			r, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			return opts.printRecipes(cmd.OutOrStdout(), []domain.Recipe{r})
		},
	}
}

func (o *options) printRecipes(w io.Writer, recipes []domain.Recipe) error {
	if o.jsonOutput {
		if len(recipes) == 1 {
			return writeJSON(w, recipes[0])
		}
		return writeJSON(w, recipes)
	}
	for _, r := range recipes {
		fmt.Fprintln(w, renderCard(r))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
