package model

import "time"

type CommandKind int

const (
	// CommandStart requests today's rates when the screen opens.
	CommandStart CommandKind = iota
	CommandSetDate
	// CommandSetDateText carries the raw date field text.
	CommandSetDateText
	CommandSelectInput
	CommandSelectOutput
	CommandSetAmount
	CommandSwap
	CommandRetry
	CommandShare
)

var commandNames = map[CommandKind]string{
	CommandStart:        "start",
	CommandSetDate:      "set_date",
	CommandSetDateText:  "set_date_text",
	CommandSelectInput:  "select_input",
	CommandSelectOutput: "select_output",
	CommandSetAmount:    "set_amount",
	CommandSwap:         "swap",
	CommandRetry:        "retry",
	CommandShare:        "share",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one user action addressed to the screen controller.
type Command struct {
	Kind     CommandKind
	Date     time.Time
	Text     string
	Currency Currency
}

func StartCommand() Command {
	return Command{Kind: CommandStart}
}

func SetDateCommand(date time.Time) Command {
	return Command{Kind: CommandSetDate, Date: date}
}

func SetDateTextCommand(text string) Command {
	return Command{Kind: CommandSetDateText, Text: text}
}

func SelectInputCommand(symbol Currency) Command {
	return Command{Kind: CommandSelectInput, Currency: symbol}
}

func SelectOutputCommand(symbol Currency) Command {
	return Command{Kind: CommandSelectOutput, Currency: symbol}
}

func SetAmountCommand(text string) Command {
	return Command{Kind: CommandSetAmount, Text: text}
}

func SwapCommand() Command {
	return Command{Kind: CommandSwap}
}

func RetryCommand() Command {
	return Command{Kind: CommandRetry}
}

func ShareCommand() Command {
	return Command{Kind: CommandShare}
}
