package models

import "strings"

// CommandType enumerates the WhatsApp queries the manager can send.
type CommandType string

const (
	CommandSummary CommandType = "summary"
	CommandWage    CommandType = "wage"
	CommandDebt    CommandType = "debt"
	CommandTrips   CommandType = "trips"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed query extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// Subject joins the arguments back into a single name, e.g. "/wage juan dela cruz".
func (c Command) Subject() string {
	return strings.Join(c.Args, " ")
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Raw: message, Type: CommandUnknown}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return cmd
	}

	switch head := CommandType(strings.TrimPrefix(tokens[0], "/")); head {
	case CommandSummary, CommandWage, CommandDebt, CommandTrips, CommandHelp:
		cmd.Type = head
	case "wages":
		cmd.Type = CommandWage
	case "debts":
		cmd.Type = CommandDebt
	case "travels":
		cmd.Type = CommandTrips
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
