package cli

import (
	"embed"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/winregi/pkg/cobrax/topics"
	"github.com/arthur-debert/winregi/pkg/ui/render"
)

//go:embed topics/*.md
var helpTopics embed.FS

// topicRenderer renders markdown with glamour only when output goes to a
// styled terminal.
type topicRenderer struct {
	opts *options
}

func (r topicRenderer) Render(content, ext string) string {
	format, err := resolveFormat(r.opts.format, os.Stdout)
	if err == nil && format == render.FormatTerminal {
		return topics.NewGlamourRenderer().Render(content, ext)
	}
	return content
}

func installHelpTopics(rootCmd *cobra.Command, opts *options) {
	m, err := topics.Load(helpTopics, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topicRenderer{opts: opts},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics.Install(rootCmd, m)
}
