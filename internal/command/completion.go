// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for csvdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_csvdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "lines columns check completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --padding -p --sort -s --titles -t"
    local compare="--base-dir -b --new-dir -n --out --fail --profile --region --max-attempts --s3-endpoint"

    case "$cmd" in
        lines)
            local opts="$common $compare"
            ;;
        columns)
            local opts="$common $compare --columns -C --pick"
            ;;
        check)
            local opts="--dir -d --profile --region --max-attempts --s3-endpoint"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --base-dir|-b|--new-dir|-n|--out|--dir|-d)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Positional BASE/NEW/NAME arguments are csv files.
    COMPREPLY=( $(compgen -f -X '!*.csv' -- "$cur") )
    return 0
}

complete -F _csvdiff csvdiff
`

const zshCompletionScript = `#compdef csvdiff

_csvdiff() {
  local -a cmds
  cmds=(
    'lines:report lines of NEW missing from BASE'
    'columns:compare selected columns against the first row of NEW'
    'check:report whether a csv holds data rows'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-p --padding)'{-p,--padding}'[column padding]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a s3
  s3=(
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--max-attempts[attempts per S3 request]:attempts'
  '--s3-endpoint[S3-compatible endpoint]:url'
  )

  local -a compare
  compare=(
  '(-b --base-dir)'{-b,--base-dir}'[reference directory]:dir:_directories'
  '(-n --new-dir)'{-n,--new-dir}'[new directory]:dir:_directories'
  '--out[difference directory]:dir:_directories'
  '--fail[exit 3 when files differ]'
  $s3
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'csvdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    lines)
      _arguments -C \
        $common \
        $compare \
        '1:BASE:_files -g "*.csv"' \
        '2:NEW:_files -g "*.csv"'
      ;;
    columns)
      _arguments -C \
        $common \
        $compare \
        '(-C --columns)'{-C,--columns}'[columns to compare]:columns' \
        '--pick[choose columns interactively]' \
        '1:BASE:_files -g "*.csv"' \
        '2:NEW:_files -g "*.csv"'
      ;;
    check)
      _arguments -C \
        $s3 \
        '(-d --dir)'{-d,--dir}'[directory]:dir:_directories' \
        '1:NAME:_files -g "*.csv"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _csvdiff csvdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(cmd.Root().ErrWriter, "usage: csvdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "csvdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
