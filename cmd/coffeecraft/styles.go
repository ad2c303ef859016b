package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

var (
	colorEasy = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorMed  = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorHard = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMute = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorBrew = lipgloss.AdaptiveColor{Light: "#a37acc", Dark: "#d2a6ff"}
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBrew)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMute)
	failStyle   = lipgloss.NewStyle().Foreground(colorHard)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrew).
			Padding(0, 1).
			Width(72)
)

func difficultyBadge(d domain.Difficulty) string {
	color := colorMute
	switch d {
	case domain.DifficultyEasy:
		color = colorEasy
	case domain.DifficultyMedium:
		color = colorMed
	case domain.DifficultyHard:
		color = colorHard
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(d))
}

// renderCard renders a recipe with numbered instructions.
func renderCard(r domain.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(r.Name), mutedStyle.Render("#"+r.ID))
	fmt.Fprintf(&b, "%s · %s · %s\n", string(r.Category), difficultyBadge(r.Difficulty), r.BrewTime)
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Ingredients"))
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  • %s\n", ing)
	}

	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Instructions"))
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "\n%s", mutedStyle.Render("tags: "+strings.Join(r.Tags, ", ")))
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderList prints one line per recipe, grouped by category.
func renderList(w io.Writer, recipes []domain.Recipe) {
	byCategory := make(map[domain.Category][]domain.Recipe)
	for _, r := range recipes {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	first := true
	for _, cat := range domain.Categories {
		rs := byCategory[cat]
		if len(rs) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		fmt.Fprintln(w, headerStyle.Render(string(cat)))
		for _, r := range rs {
			fmt.Fprintf(w, "  %-3s %-24s %s %s\n", r.ID, r.Name, difficultyBadge(r.Difficulty), mutedStyle.Render(r.BrewTime))
		}
	}
}
