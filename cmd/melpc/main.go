// Copyright 2026 MELP Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command melpc compiles MELP source into textual LLVM IR.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/melp-lang/melpc/internal/codegen"
	"github.com/melp-lang/melpc/internal/lang/parser"
	"github.com/melp-lang/melpc/internal/lang/sema"
	"github.com/melp-lang/melpc/internal/sto/state"
)

var (
	verbose    bool
	output     string
	configFile string
	version    = "dev"
)

// fileConfig is the shape a --config TOML file may declare; each present
// field pre-seeds a state-store config key before compilation begins.
type fileConfig struct {
	AutoPersist *bool  `toml:"auto_persist"`
	PersistFile string `toml:"persist_file"`
}

var command = &cobra.Command{
	Use:     "melpc <input>",
	Short:   "Compile MELP source to LLVM IR",
	Args:    cobra.ExactArgs(1),
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		err := run(args[0])
		// os.Exit below would skip any deferred cleanup, so exit-hook
		// running happens inside run() itself, before this point.
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	command.PersistentFlags().StringVarP(&output, "output", "o", "output.ll", "output file for generated LLVM IR")
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "if set, print pipeline stage progress")
	command.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML file pre-seeding state-store configuration")
}

func run(inputFile string) error {
	if err := state.Init(); err != nil {
		return fmt.Errorf("melpc: initialize runtime state: %w", err)
	}
	state.InstallExitHook()
	// state.RunExitHooks is called explicitly on every return path rather
	// than deferred: the Run closure calls os.Exit on failure, which would
	// skip a deferred call here.
	err := compile(inputFile)
	state.RunExitHooks()
	return err
}

func compile(inputFile string) error {
	if configFile != "" {
		if err := applyConfigFile(configFile); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Step 1/4: Reading source file %q...\n", inputFile)
	}
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("melpc: read %q: %w", inputFile, err)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Step 2/4: Parsing (lexing + syntax analysis)...")
	}
	prog, err := parser.Parse(string(src))
	if err != nil {
		return fmt.Errorf("melpc: parse %q: %w", inputFile, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "  ok: AST generated (%d functions)\n", len(prog.Funcs))
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Step 3/4: Semantic analysis...")
	}
	if errs := sema.Check(prog); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("melpc: semantic analysis failed with %d error(s)", len(errs))
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "  ok: semantic validation complete")
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Step 4/4: Code generation (LLVM IR)...")
	}
	ir, err := codegen.Generate(prog)
	if err != nil {
		return fmt.Errorf("melpc: code generation failed: %w", err)
	}
	if err := os.WriteFile(output, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("melpc: write %q: %w", output, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "  ok: LLVM IR written to %q\n", output)
	}
	return nil
}

func applyConfigFile(path string) error {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("melpc: read config %q: %w", path, err)
	}
	if cfg.AutoPersist != nil {
		value := "0"
		if *cfg.AutoPersist {
			value = "1"
		}
		if err := state.ConfigSet("auto_persist", value); err != nil {
			return fmt.Errorf("melpc: apply config %q: %w", path, err)
		}
	}
	if cfg.PersistFile != "" {
		if err := state.ConfigSet("persist_file", cfg.PersistFile); err != nil {
			return fmt.Errorf("melpc: apply config %q: %w", path, err)
		}
	}
	return nil
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
