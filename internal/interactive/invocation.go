package interactive

import "strings"

// ProgramName is the placeholder placed before the sub-command in Tokens.
const ProgramName = "ignix"

// Invocation is a sub-command call built by the loop for one dispatch.
type Invocation struct {
	Name string
	Args []string
}

// Tokens returns the invocation as a command line: the program name
// followed by the sub-command and its arguments.
func (inv Invocation) Tokens() []string {
	return append([]string{ProgramName, inv.Name}, inv.Args...)
}

// CommandArgs returns the invocation as arguments for the command parser.
// Arguments follow a "--" so text typed at a prompt is never read as a flag.
func (inv Invocation) CommandArgs() []string {
	if len(inv.Args) == 0 {
		return []string{inv.Name}
	}
	return append([]string{inv.Name, "--"}, inv.Args...)
}

func (inv Invocation) String() string {
	return strings.Join(inv.Tokens(), " ")
}

// ParseIdentifiers splits free text on whitespace, dropping empty tokens.
func ParseIdentifiers(text string) []string {
	return strings.Fields(text)
}
