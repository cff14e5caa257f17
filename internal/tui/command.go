package tui

import "strings"

// Command is a parsed ":" prompt line.
type Command struct {
	Name string
	Args string
}

var commandAliases = map[string]string{
	"h": "help",
	"q": "quit",
	"f": "filter",
	"s": "search",
}

// ParseCommand splits a prompt line (without the leading ':') into a
// lowercase command name, with aliases expanded, and its argument text.
func ParseCommand(input string) Command {
	name, args, _ := strings.Cut(strings.TrimSpace(input), " ")
	name = strings.ToLower(name)
	if full, ok := commandAliases[name]; ok {
		name = full
	}
	return Command{Name: name, Args: strings.TrimSpace(args)}
}
