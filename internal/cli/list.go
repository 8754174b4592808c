package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/toldot/toldot/pkg/dates"
	"github.com/toldot/toldot/pkg/timeline"
)

// listCommand creates the list command, which prints the filtered persons.
func (c *CLI) listCommand() *cobra.Command {
	var (
		asJSON bool
		lang   string
		ff     filterFlags
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List persons with their resolved lifespans",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			defer v.runner.Close()
			people := v.people

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(people)
			}
			fmt.Fprintln(cmd.OutOrStdout(), personTable(people, v.dataset, lang))
			fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(plural(len(people), "person", "people")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "name language: ru, en, he")
	ff.register(cmd)
	return cmd
}

// personTable renders people as a bordered table.
func personTable(people []timeline.Person, ds timeline.Dataset, lang string) string {
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		period := p.Period
		if pd, ok := ds.Period(p.Period); ok {
			period = pd.DisplayName()
			if lang == "en" && pd.NameEN != "" {
				period = pd.NameEN
			}
		}
		region := ""
		if p.Region != "" {
			region = p.Region.Label(lang)
		}
		gen := ""
		if p.Generation != nil {
			gen = strconv.Itoa(*p.Generation)
		}
		rows = append(rows, []string{p.Slug, personName(p, lang), lifespanText(p), period, region, gen})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Slug", "Name", "Years", "Period", "Region", "Gen").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorAccent)
			case col == 2 && strings.HasPrefix(rows[row][2], "~"):
				return cell.Foreground(colorMuted)
			}
			return cell
		}).
		Render()
}

// personName picks the name in lang, falling back to the display name.
func personName(p timeline.Person, lang string) string {
	var name string
	switch lang {
	case "en":
		name = p.NameEN
	case "he":
		name = p.NameHE
	case "ru":
		name = p.NameRU
	}
	if strings.TrimSpace(name) == "" {
		return p.DisplayName()
	}
	return name
}

// lifespanText formats the resolved lifespan; estimates are prefixed "~".
func lifespanText(p timeline.Person) string {
	r, ok := dates.DeriveLifespanRange(p)
	if !ok {
		return "?"
	}
	s := yearText(r.Start) + "–" + yearText(r.End)
	if r.Estimated {
		s = "~" + s
	}
	return s
}

func yearText(y int) string {
	if y < 0 {
		return strconv.Itoa(-y) + " BCE"
	}
	return strconv.Itoa(y)
}
