package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmallory/cursor-export/internal"
	"github.com/jmallory/cursor-export/internal/render"
	"github.com/spf13/cobra"
)

// Title length cap when listing many sessions at once.
const listTitleLimit = 80

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recoverable sessions",
	Long: `List every chat session discoverable across the global store and all
workspace stores, including workspace-registered sessions whose content could
not be recovered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openAllStores()
		if err != nil {
			return err
		}
		defer internal.CloseStores(stores)

		var sessions []*internal.Session
		for _, store := range stores {
			assembler := internal.NewAssembler(store)
			found := assembler.CollectAll()
			sessions = append(sessions, found...)

			// Registry entries with no recoverable content still get a row,
			// so the user can see the id was known to a workspace.
			refs, err := internal.ListComposers(store)
			if err != nil {
				internal.Log.Warn().Err(err).Str("store", store.Label()).Msg("failed to read composer registry")
			}
			known := make(map[string]bool, len(found))
			for _, s := range found {
				known[s.ID] = true
			}
			for _, ref := range refs {
				if known[ref.ID] {
					continue
				}
				s := assembler.Assemble(ref.ID)
				if s.Title == s.ID && ref.Title != "" {
					s.Title = ref.Title
				}
				sessions = append(sessions, s)
			}
		}

		sessions = internal.Aggregate(sessions, nil)
		displaySessions(sessions)
		return nil
	},
}

func displaySessions(sessions []*internal.Session) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Started")+"\t"+titleStyle.Render("Source")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, s := range sessions {
		title := internal.DisplayTitle(s.Title, listTitleLimit)
		if title == "" {
			title = "Untitled"
		}
		if s.Note != "" {
			title = title + " " + dateStyle.Render("("+s.Note+")")
		}

		count := countStyle.Render(strconv.Itoa(len(s.Messages)))

		started := render.FormatTimestamp(s.FirstTimestamp())
		if started == "" {
			started = "—"
		}

		shortID := s.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID), title, count, dateStyle.Render(started), sourceStyle.Render(s.Source))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: use the full ID (e.g. ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render(") with `cursor-export show <id>`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
