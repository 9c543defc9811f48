package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmallory/cursor-export/internal"
	"github.com/jmallory/cursor-export/internal/render"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const showWrapWidth = 100

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	assistantHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageBodyStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("150")).
			Padding(0, 2)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Italic(true).
			Padding(0, 1)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session in the terminal",
	Long:  `Display the messages of a single session, searching every storage location.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		stores, err := openAllStores()
		if err != nil {
			return err
		}
		defer internal.CloseStores(stores)

		session := findSession(stores, id)
		displaySession(session)
		return nil
	},
}

// findSession assembles the session from the first store holding content for
// it, falling back to a "no content found" session from the first store.
func findSession(stores []*internal.Store, id string) *internal.Session {
	var empty *internal.Session
	for _, store := range stores {
		s := internal.NewAssembler(store).Assemble(id)
		if len(s.Messages) > 0 {
			return s
		}
		if empty == nil {
			empty = s
		}
	}
	return empty
}

func displaySession(s *internal.Session) {
	header := s.Title
	if start := render.FormatTimestamp(s.FirstTimestamp()); start != "" {
		header += " — " + start
	}
	fmt.Println(sessionHeaderStyle.Render(header))
	fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("Session %s · %s · %d message(s)", s.ID, s.Source, len(s.Messages))))

	if len(s.Messages) == 0 {
		note := s.Note
		if note == "" {
			note = internal.NoContentNote
		}
		fmt.Println(noteStyle.Render("(" + note + ")"))
		return
	}

	for _, msg := range s.Messages {
		role := "Assistant"
		style := assistantHeaderStyle
		if msg.Role == internal.RoleUser {
			role = "User"
			style = userHeaderStyle
		}

		ts := render.FormatTimestamp(msg.Timestamp)
		if ts != "" {
			ts = " (" + ts + ")"
		}
		fmt.Println(style.Render(role + ts))

		if msg.Text != "" {
			body := wordwrap.String(render.TruncateBody(msg.Text), showWrapWidth)
			fmt.Println(messageBodyStyle.Render(body))
		}
		for _, frag := range msg.CodeFragments {
			label := frag.Language
			if label == "" {
				label = "code"
			}
			fmt.Println(codeStyle.Render(fmt.Sprintf("[%s]\n%s", label, frag.Code)))
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
