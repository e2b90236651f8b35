package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/moodify-app/moodify/internal/analysis/preference"
	catalogclient "github.com/moodify-app/moodify/internal/client/catalog"
	"github.com/moodify-app/moodify/internal/client/moodify"
	"github.com/moodify-app/moodify/internal/config"
	"github.com/moodify-app/moodify/internal/logging"
	"github.com/moodify-app/moodify/internal/model/chat"
	"github.com/moodify-app/moodify/internal/service/conversation"
	"github.com/moodify-app/moodify/internal/service/panel"
	"github.com/moodify-app/moodify/internal/service/transcript"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type app struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewRootCmd creates the moodify command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	var (
		apiURL     string
		extraction string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "moodify",
		Short: "Moodify - chat your way to a song",
		Long: `Moodify is a terminal chat client for the Moodify recommendation service.
Describe a genre, mood, tempo or artist and Moodify suggests a song.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.Client.APIURL = apiURL
			}
			if extraction != "" {
				policy, err := preference.ParsePolicy(extraction)
				if err != nil {
					return err
				}
				cfg.Client.Extraction = policy
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			if envErr != nil {
				log.Debugf("no .env file loaded (%v), using system environment only", envErr)
			}

			a.cfg, a.log = cfg, log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Recommendation service base URL (overrides MOODIFY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&extraction, "extraction", "", "Artist/song extraction policy: keywords or passthrough")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSongsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newSongsCmd lists the CSV catalog served by the backend.
func newSongsCmd(a *app) *cobra.Command {
	var (
		catalogURL string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List songs from the catalog backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := a.cfg.Client.CatalogURL
			if catalogURL != "" {
				base = catalogURL
			}

			songs, err := catalogclient.New(base, a.cfg.Client.HTTPTimeout).ListSongs(cmd.Context())
			if err != nil {
				return err
			}

			total := len(songs)
			if limit > 0 && len(songs) > limit {
				songs = songs[:limit]
			}
			out := cmd.OutOrStdout()
			NewView(out, false).Songs(songs)
			fmt.Fprintf(out, "%d of %d songs\n", len(songs), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogURL, "catalog-url", "", "Catalog backend base URL (overrides MOODIFY_CATALOG_URL)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of songs to print (0 for all)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "moodify %s\n", Version)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	session := chat.NewSession()
	out := cmd.OutOrStdout()
	view := NewView(out, isTerminal(out))
	ctrl := NewController(a.cfg.Client, session, view, a.log)

	view.Banner(session.ID)
	a.log.WithField("session", session.ID).WithField("api", a.cfg.Client.APIURL).Debug("chat session started")

	return RunChat(cmd.Context(), ctrl, NewSurveyPrompter())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// NewController wires a conversation controller whose output goes to view.
func NewController(cfg config.ClientConfig, session chat.Session, view *View, log logrus.FieldLogger) *conversation.Controller {
	api := moodify.New(cfg.APIURL, cfg.HTTPTimeout, log)

	tr := transcript.New(view)
	p := panel.New(api, session, log)
	p.OnChange(view.Panel)

	ctrl := conversation.New(session, api, preference.NewExtractor(cfg.Extraction), tr, p, log,
		conversation.WithTypingDelay(cfg.TypingPerWord, cfg.TypingMax))
	ctrl.OnOptions(view.Options)
	return ctrl
}
