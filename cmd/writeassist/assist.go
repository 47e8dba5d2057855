package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/writeassist-backend/internal/app"
	"github.com/heartmarshall/writeassist-backend/internal/config"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/internal/selection"
	"github.com/heartmarshall/writeassist-backend/internal/service/assist"
	"github.com/heartmarshall/writeassist-backend/pkg/ctxutil"
)

const apiKeyEnv = "GEMINI_API_KEY"

// localUserID identifies the operator in logs of headless runs.
var localUserID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("writeassist:cli"))

var errNoSelection = errors.New(selection.NoSelectionNotice)

type assistOptions struct {
	file        string
	action      string
	match       string
	start, end  int
	tone        string
	language    string
	contextText string
	prompt      string
	apiKey      string
	write       bool
}

// staticCredentials serves one API key to every caller.
type staticCredentials struct {
	apiKey string
}

func (c staticCredentials) GetCredential(_ context.Context, userID uuid.UUID) (domain.UserCredential, error) {
	return domain.UserCredential{UserID: userID, APIKey: c.apiKey}, nil
}

func newAssistCmd() *cobra.Command {
	var opts assistOptions

	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Run one assistant action over a selection of a text file",
		Long: `Selects text in --file (all of it, the first --match, or the rune range
--start..--end), sends it to Gemini and replaces the selection with the result.

improve and rewrite print the updated document, or save it with --write.
grammar and detectLanguage print their JSON result. generate prints new
content for --prompt, using the selection as context when a file is given.

The API key comes from --api-key or GEMINI_API_KEY.`,
		Example: `  writeassist assist --file=draft.md --match="teh results" --action=improve --write
  writeassist assist --file=mail.txt --action=rewrite --tone=friendly
  writeassist assist --file=essay.txt --action=grammar --language=en
  writeassist assist --action=generate --prompt="A haiku about autumn"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssist(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "text file to work on")
	f.StringVar(&opts.action, "action", string(domain.ActionImprove), "improve, grammar, rewrite, generate or detectLanguage")
	f.StringVar(&opts.match, "match", "", "select the first occurrence of this text")
	f.IntVar(&opts.start, "start", 0, "selection start, in runes")
	f.IntVar(&opts.end, "end", 0, "selection end, in runes")
	f.StringVar(&opts.tone, "tone", "", "tone for rewrite")
	f.StringVar(&opts.language, "language", "", "ISO 639-1 language code")
	f.StringVar(&opts.contextText, "context", "", "context for generate, instead of the selection")
	f.StringVar(&opts.prompt, "prompt", "", "instruction for generate")
	f.StringVar(&opts.apiKey, "api-key", "", "Gemini API key (or set "+apiKeyEnv+")")
	f.BoolVar(&opts.write, "write", false, "save the updated document back to --file")
	cmd.MarkFlagsMutuallyExclusive("match", "start")
	cmd.MarkFlagsMutuallyExclusive("match", "end")
	return cmd
}

func runAssist(cmd *cobra.Command, opts assistOptions) error {
	action := domain.Action(opts.action)
	if !action.IsValid() {
		return fmt.Errorf("assist: unknown action %q", opts.action)
	}
	if opts.file == "" && action != domain.ActionGenerate {
		return fmt.Errorf("assist: --file is required for %s", action)
	}
	if opts.write && (action == domain.ActionGrammar || action == domain.ActionDetectLanguage || action == domain.ActionGenerate) {
		return fmt.Errorf("assist: --write does not apply to %s", action)
	}

	apiKey := strings.TrimSpace(opts.apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(apiKeyEnv))
	}
	if apiKey == "" {
		return fmt.Errorf("assist: no API key: pass --api-key or set %s", apiKeyEnv)
	}

	cfg, err := config.LoadProvider(configPath(cmd))
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

	doc, session, err := openSelection(cmd, opts)
	if err != nil {
		return err
	}

	var selected string
	if session != nil {
		selected = session.Capture()
	}

	req := domain.AssistRequest{
		Action:   action,
		Text:     selected,
		Tone:     domain.Tone(strings.ToLower(opts.tone)),
		Language: opts.language,
	}
	if action == domain.ActionGenerate {
		req.Text = opts.prompt
		req.ContextText = opts.contextText
		if req.ContextText == "" {
			req.ContextText = selected
		}
	} else if selected == "" {
		cmd.PrintErrln(selection.NoSelectionNotice)
		return errNoSelection
	}

	svc := assist.NewService(logger, app.NewAIClient(cfg.Gemini, logger), staticCredentials{apiKey: apiKey})
	result, err := svc.Assist(ctxutil.WithUserID(cmd.Context(), localUserID), req)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("assist: %s", ve.Messages())
		}
		return fmt.Errorf("assist: %w", err)
	}

	if result.Text == nil || action == domain.ActionGenerate {
		return printPayload(cmd, result.Payload())
	}

	if !session.Replace(result.Text.Text) {
		return errNoSelection
	}
	if !opts.write {
		_, err := fmt.Fprint(cmd.OutOrStdout(), doc.String())
		return err
	}

	info, err := os.Stat(opts.file)
	if err != nil {
		return fmt.Errorf("assist: stat %s: %w", opts.file, err)
	}
	if err := os.WriteFile(opts.file, []byte(doc.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("assist: write %s: %w", opts.file, err)
	}
	cmd.PrintErrf("updated %s\n", opts.file)
	return nil
}

// openSelection loads --file into a buffer and selects the requested span.
// Without --file it returns a nil session.
func openSelection(cmd *cobra.Command, opts assistOptions) (*selection.Buffer, *selection.Session, error) {
	if opts.file == "" {
		return nil, nil, nil
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, nil, fmt.Errorf("assist: read %s: %w", opts.file, err)
	}
	doc := selection.NewBuffer(string(data))

	span := doc.All()
	switch {
	case opts.match != "":
		r, ok := doc.Find(opts.match)
		if !ok {
			return nil, nil, fmt.Errorf("assist: %q not found in %s", opts.match, opts.file)
		}
		span = r
	case cmd.Flags().Changed("start") || cmd.Flags().Changed("end"):
		span = selection.Range{Start: opts.start, End: opts.end}
		if !cmd.Flags().Changed("end") {
			span.End = doc.All().End
		}
	}
	doc.Select(span)

	notify := func(msg string) { cmd.PrintErrln(msg) }
	return doc, selection.NewSession(selection.NewEditor(doc), notify), nil
}

func printPayload(cmd *cobra.Command, payload any) error {
	if s, ok := payload.(string); ok {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
