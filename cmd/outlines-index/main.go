// Command outlines-index compiles a regex or JSON Schema pattern against
// a token vocabulary and writes the resulting index as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	"gopkg.in/yaml.v3"

	outlinesgo "github.com/coregx/outlines-go"
	"github.com/coregx/outlines-go/internal/index"
	"github.com/coregx/outlines-go/internal/primitives"
	"github.com/coregx/outlines-go/internal/vocabulary"
)

// fileConfig is the YAML config an invocation may merge flag values
// from, mirroring a permutation config file's role: a reusable,
// checked-in description of one compilation job.
type fileConfig struct {
	Vocab             string   `yaml:"vocab"`
	Pattern           string   `yaml:"pattern"`
	Schema            string   `yaml:"schema"`
	WhitespacePattern string   `yaml:"whitespace_pattern"`
	FrozenTokens      []string `yaml:"frozen_tokens"`
	Output            string   `yaml:"output"`
}

type options struct {
	Config            string
	Vocab             string
	Pattern           string
	Schema            string
	WhitespacePattern string
	FrozenTokens      goflags.StringSlice
	Output            string
	Verbose           bool
	Silent            bool
}

// vocabFile is the on-disk shape a vocabulary is read from: a token ->
// ids map plus the id reserved for end-of-sequence.
type vocabFile struct {
	Tokens     map[string][]primitives.TokenId `json:"tokens"`
	EosTokenID *primitives.TokenId             `json:"eos_token_id"`
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compiles a regex or JSON Schema pattern into a token-level index over a vocabulary.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Vocab, "vocab", "V", "", "vocabulary JSON file (token -> ids, eos_token_id)"),
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regex pattern to compile"),
		flagSet.StringVarP(&opts.Schema, "schema", "s", "", "JSON Schema file to compile (mutually exclusive with -pattern)"),
		flagSet.StringVar(&opts.WhitespacePattern, "whitespace", "", "whitespace regex used between JSON Schema tokens (default "+`"[\n\t ]*"`+")"),
		flagSet.StringSliceVarP(&opts.FrozenTokens, "frozen", "f", nil, "tokens matched atomically rather than character by character (comma-separated)", goflags.CommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "index JSON output file (default stdout)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display debug output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display errors only"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVarP(&opts.Config, "config", "c", "", "YAML config file; flag values override its contents"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}

	if opts.Config != "" {
		mergeFileConfig(opts, opts.Config)
	}
	return opts
}

func mergeFileConfig(opts *options, path string) {
	bin, err := os.ReadFile(path)
	if err != nil {
		gologger.Fatal().Msgf("failed to read config file %s: %v", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		gologger.Fatal().Msgf("invalid config file %s: %v", path, err)
	}
	if opts.Vocab == "" {
		opts.Vocab = cfg.Vocab
	}
	if opts.Pattern == "" {
		opts.Pattern = cfg.Pattern
	}
	if opts.Schema == "" {
		opts.Schema = cfg.Schema
	}
	if opts.WhitespacePattern == "" {
		opts.WhitespacePattern = cfg.WhitespacePattern
	}
	if len(opts.FrozenTokens) == 0 {
		opts.FrozenTokens = cfg.FrozenTokens
	}
	if opts.Output == "" {
		opts.Output = cfg.Output
	}
}

func loadVocabulary(path string) (*vocabulary.Vocabulary, primitives.TokenId, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading vocabulary: %w", err)
	}
	var vf vocabFile
	if err := json.Unmarshal(bin, &vf); err != nil {
		return nil, 0, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if vf.EosTokenID == nil {
		return nil, 0, index.ErrNoEosTokenID
	}
	vocab := vocabulary.FromMap(vf.Tokens)
	vocab.SetEosTokenID(*vf.EosTokenID)
	return vocab, *vf.EosTokenID, nil
}

func main() {
	opts := parseFlags()

	if opts.Vocab == "" {
		gologger.Fatal().Msg("a vocabulary file is required (-vocab)")
	}
	if (opts.Pattern == "") == (opts.Schema == "") {
		gologger.Fatal().Msg("exactly one of -pattern or -schema is required")
	}

	vocab, eosTokenID, err := loadVocabulary(opts.Vocab)
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}

	var dfa *outlinesgo.DFA
	if opts.Pattern != "" {
		gologger.Info().Msgf("compiling pattern: %s", opts.Pattern)
		dfa, err = outlinesgo.Compile(opts.Pattern)
	} else {
		schemaBin, readErr := os.ReadFile(opts.Schema)
		if readErr != nil {
			gologger.Fatal().Msgf("failed to read schema file %s: %v", opts.Schema, readErr)
		}
		gologger.Info().Msgf("compiling schema: %s", opts.Schema)
		dfa, err = outlinesgo.CompileSchema(string(schemaBin), opts.WhitespacePattern)
	}
	if err != nil {
		gologger.Fatal().Msgf("compilation failed: %v", err)
	}

	frozen := make(map[string]struct{}, len(opts.FrozenTokens))
	for _, t := range opts.FrozenTokens {
		frozen[t] = struct{}{}
	}

	gologger.Info().Msgf("building index over %d vocabulary tokens", vocab.Len())
	idx, err := outlinesgo.BuildIndex(dfa, vocab, eosTokenID, frozen)
	if err != nil {
		gologger.Fatal().Msgf("index build failed: %v", err)
	}

	out, err := json.Marshal(idx)
	if err != nil {
		gologger.Fatal().Msgf("failed to serialize index: %v", err)
	}

	if opts.Output == "" {
		os.Stdout.Write(out)
		os.Stdout.WriteString("\n")
		return
	}
	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		gologger.Fatal().Msgf("failed to write %s: %v", opts.Output, err)
	}
	gologger.Info().Msgf("wrote index to %s", opts.Output)
}
