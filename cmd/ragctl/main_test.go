// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("ragctl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}
	return &cli, kctx
}

func TestParseCommands(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(meta, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		args []string
		want string
	}{
		"index-datastore": {args: []string{"index-datastore", "--metadata-file", meta}, want: "index-datastore"},
		"index-rag":       {args: []string{"index-rag", "--metadata-file", meta}, want: "index-rag"},
		"create-corpus":   {args: []string{"create-corpus"}, want: "create-corpus"},
		"deploy":          {args: []string{"deploy", "--source", dir, "--update"}, want: "deploy"},
		"query":           {args: []string{"query"}, want: "query"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, kctx := parse(t, tt.args...)
			if diff := cmp.Diff(tt.want, kctx.Command()); diff != "" {
				t.Errorf("Command() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cli, _ := parse(t, "query")

	if cli.LogLevel != "info" || cli.LogFormat != "text" {
		t.Errorf("log = %q/%q, want info/text", cli.LogLevel, cli.LogFormat)
	}
	if filepath.Base(cli.EnvFile) != ".env" {
		t.Errorf("EnvFile = %q, want .env", cli.EnvFile)
	}
	if cli.Query.User != "local-user" {
		t.Errorf("User = %q, want local-user", cli.Query.User)
	}
	if cli.CreateCorpus.DisplayName != "markdown_corpus" {
		t.Errorf("DisplayName = %q, want markdown_corpus", cli.CreateCorpus.DisplayName)
	}
}

func TestOverride(t *testing.T) {
	v := "kept"
	override(&v, "")
	if v != "kept" {
		t.Errorf("empty override changed value to %q", v)
	}
	override(&v, "new")
	if v != "new" {
		t.Errorf("v = %q, want new", v)
	}
}

func TestDeployHelpNamesManifestLimit(t *testing.T) {
	f, ok := reflect.TypeFor[CLI]().FieldByName("Deploy")
	if !ok {
		t.Fatal("CLI has no Deploy command")
	}
	if help := f.Tag.Get("help"); !strings.Contains(help, "pickled-object slot") || !strings.Contains(help, "query fails") {
		t.Errorf("deploy help = %q, want it to state the engine cannot serve queries", help)
	}
}
