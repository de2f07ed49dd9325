// Package install manages shell integration: the wrapper function that
// turns printed commands into executed ones, and tab completion for bash,
// zsh, and fish.
package install

// BashFunction is the wrapper appended to ~/.bashrc. It runs the binary,
// and when the output looks like a command rather than help text or styled
// output, evals it in the calling shell so cd and export take effect there.
const BashFunction = `nlsh() {
    if [ $# -eq 0 ]; then
        command nlsh
        return $?
    fi

    local cmd=$(command nlsh "$@")
    local exit_code=$?
    if [ $exit_code -eq 0 ] && [ -n "$cmd" ]; then
        if [[ "$cmd" =~ ^(Usage:|error:|Commands:|nlsh\ [0-9]|$'\e'|$'\033'|✓|.*:$) ]]; then
            echo "$cmd"
            return 0
        fi
        eval "$cmd"
    else
        return $exit_code
    fi
}`

// FishFunction is the wrapper installed as a fish function file.
const FishFunction = `function nlsh
    if test (count $argv) -eq 0
        command nlsh
        return $status
    end

    set cmd (command nlsh $argv)
    set exit_code $status
    if test $exit_code -eq 0 -a -n "$cmd"
        if string match -qr '^(Usage:|error:|Commands:|nlsh [0-9]|\x1b|\e|✓|.*:$)' -- "$cmd"
            echo "$cmd"
            return 0
        end
        eval $cmd
    else
        return $exit_code
    end
end`

// BashCompletion completes subcommands and the prompt kind/action words.
const BashCompletion = `_nlsh_completions() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [ $COMP_CWORD -eq 1 ]; then
        COMPREPLY=( $(compgen -W "api prompt explain uninstall update --help --version" -- "$cur") )
    elif [ $COMP_CWORD -eq 2 ]; then
        case "$prev" in
            prompt)
                COMPREPLY=( $(compgen -W "system explain" -- "$cur") )
                ;;
        esac
    elif [ $COMP_CWORD -eq 3 ]; then
        case "${COMP_WORDS[1]}" in
            prompt)
                COMPREPLY=( $(compgen -W "show edit" -- "$cur") )
                ;;
        esac
    fi
    return 0
}
complete -F _nlsh_completions nlsh`

const ZshCompletion = `#compdef nlsh

_nlsh() {
    local -a commands
    commands=(
        'api:configure API provider (Gemini, Ollama, OpenAI, Anthropic)'
        'explain:explain a shell command'
        'prompt:view or edit system/explain prompts'
        'uninstall:uninstall nlsh'
        'update:update nlsh to the latest release'
    )

    _arguments -C \
        '1: :->cmds' \
        '--help[show help information]' \
        '--version[show version information]' \
        '*::arg:->args'

    case "$state" in
        cmds)
            _describe -t commands 'nlsh commands' commands
            ;;
        args)
            case "${words[1]}" in
                prompt)
                    local -a kinds actions
                    kinds=('system:system prompt' 'explain:explain prompt')
                    actions=('show:show prompt' 'edit:edit prompt')
                    _arguments \
                        '1: :->kind' \
                        '2: :->action'
                    case "$state" in
                        kind) _describe -t kinds 'prompt kind' kinds ;;
                        action) _describe -t actions 'prompt action' actions ;;
                    esac
                    ;;
            esac
            ;;
    esac
}

_nlsh`

const FishCompletion = `# nlsh autocomplete
complete -c nlsh -f
complete -c nlsh -n "__fish_use_subcommand" -a api -d 'configure API provider (Gemini, Ollama, OpenAI, Anthropic)'
complete -c nlsh -n "__fish_use_subcommand" -a explain -d 'explain a shell command'
complete -c nlsh -n "__fish_use_subcommand" -a prompt -d 'view or edit system/explain prompts'
complete -c nlsh -n "__fish_use_subcommand" -a uninstall -d 'uninstall nlsh'
complete -c nlsh -n "__fish_use_subcommand" -a update -d 'update nlsh to the latest release'
complete -c nlsh -l help -d 'show help information'
complete -c nlsh -l version -d 'show version information'
complete -c nlsh -n "__fish_seen_subcommand_from prompt" -a system -d 'system prompt'
complete -c nlsh -n "__fish_seen_subcommand_from prompt" -a explain -d 'explain prompt'
complete -c nlsh -n "__fish_seen_subcommand_from prompt; and __fish_seen_subcommand_from system explain" -a "show edit" -d 'prompt action'`
