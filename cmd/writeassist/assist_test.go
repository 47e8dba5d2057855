package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/writeassist-backend/internal/selection"
)

type fakeGemini struct {
	calls      atomic.Int32
	lastKey    atomic.Value
	lastPrompt atomic.Value
	completion string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.lastKey.Store(r.URL.Query().Get("key"))

	body, _ := io.ReadAll(r.Body)
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	_ = json.Unmarshal(body, &req)
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		f.lastPrompt.Store(req.Contents[0].Parts[0].Text)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": f.completion}}}},
		},
	})
}

func setupGemini(t *testing.T, completion string) *fakeGemini {
	t.Helper()

	fake := &fakeGemini{completion: completion}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GEMINI_BASE_URL", srv.URL)
	t.Setenv("GEMINI_CLIENT", "rest")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv(apiKeyEnv, "")
	return fake
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestAssist_RewriteMatchWritesFile(t *testing.T) {
	fake := setupGemini(t, "**Rewritten Text:** Hello world.")
	path := writeFile(t, "Intro.\nhelo wrld\nOutro.\n")

	_, _, err := execute(t, "assist",
		"--file", path, "--match", "helo wrld",
		"--action", "rewrite", "--tone", "Friendly",
		"--api-key", "test-key", "--write",
	)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Intro.\nHello world.\nOutro.\n", string(got))
	assert.Equal(t, int32(1), fake.calls.Load())
	assert.Equal(t, "test-key", fake.lastKey.Load())
	assert.Contains(t, fake.lastPrompt.Load(), "helo wrld")
	assert.Contains(t, fake.lastPrompt.Load(), "friendly")
}

func TestAssist_ImprovePrintsDocumentWithoutWriting(t *testing.T) {
	fake := setupGemini(t, "The cat sat.")
	t.Setenv(apiKeyEnv, "env-key")
	path := writeFile(t, "Title: teh cat sat")

	stdout, _, err := execute(t, "assist", "--file", path, "--start", "7")
	require.NoError(t, err)

	assert.Equal(t, "Title: The cat sat.", stdout)
	assert.Equal(t, "env-key", fake.lastKey.Load())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title: teh cat sat", string(got), "file must be untouched without --write")
}

func TestAssist_GrammarPrintsJSON(t *testing.T) {
	setupGemini(t, "```json\n{\"language\":\"English\",\"errors\":[],\"score\":97}\n```")
	path := writeFile(t, "This sentence is fine.")

	stdout, _, err := execute(t, "assist", "--file", path, "--action", "grammar", "--api-key", "k")
	require.NoError(t, err)

	var got struct {
		Language string `json:"language"`
		Errors   []any  `json:"errors"`
		Score    int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "English", got.Language)
	assert.Equal(t, 97, got.Score)
	assert.NotNil(t, got.Errors)
}

func TestAssist_GenerateWithoutFile(t *testing.T) {
	fake := setupGemini(t, "Leaves drift slowly down.")

	stdout, _, err := execute(t, "assist", "--action", "generate", "--prompt", "A haiku about autumn", "--api-key", "k")
	require.NoError(t, err)

	assert.Equal(t, "Leaves drift slowly down.\n", stdout)
	assert.Contains(t, fake.lastPrompt.Load(), "A haiku about autumn")
}

func TestAssist_FailsBeforeProviderCall(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		wantErr string
	}{
		{
			name:    "blank selection",
			content: "   \n\t  ",
			args:    []string{"--api-key", "k"},
			wantErr: selection.NoSelectionNotice,
		},
		{
			name:    "match not found",
			content: "some text",
			args:    []string{"--match", "absent", "--api-key", "k"},
			wantErr: "not found",
		},
		{
			name:    "missing api key",
			content: "some text",
			wantErr: "no API key",
		},
		{
			name:    "unknown action",
			content: "some text",
			args:    []string{"--action", "summarize", "--api-key", "k"},
			wantErr: "unknown action",
		},
		{
			name:    "unknown tone",
			content: "some text",
			args:    []string{"--action", "rewrite", "--tone", "pirate", "--api-key", "k"},
			wantErr: "Unknown tone",
		},
		{
			name:    "write with grammar",
			content: "some text",
			args:    []string{"--action", "grammar", "--write", "--api-key", "k"},
			wantErr: "--write does not apply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := setupGemini(t, "unused")
			path := writeFile(t, tt.content)

			args := append([]string{"assist", "--file", path}, tt.args...)
			_, _, err := execute(t, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, int32(0), fake.calls.Load())

			got, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(got))
		})
	}
}

func TestAssist_BlankSelectionNotifies(t *testing.T) {
	setupGemini(t, "unused")
	path := writeFile(t, "   ")

	_, stderr, err := execute(t, "assist", "--file", path, "--api-key", "k")

	require.ErrorIs(t, err, errNoSelection)
	assert.True(t, strings.Contains(stderr, selection.NoSelectionNotice))
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "writeassist dev"))
}

func TestMigrateCmd_RejectsUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "migrate", "sideways")
	require.Error(t, err)
}
