package console

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"currency-converter/internal/domain/model"
)

var (
	ErrQuit  = errors.New("quit")
	ErrEmpty = errors.New("empty line")
	ErrHelp  = errors.New("help")
)

const Help = `Commands:
  date <M/D/YYYY | YYYY-MM-DD>   show rates of that day
  today                          show the latest rates
  from <SYMBOL>                  currency to convert from
  to <SYMBOL>                    currency to convert to
  amount <number> | <number>     amount to convert
  swap                           exchange the two currencies
  retry                          repeat the last failed request
  share                          print the conversion
  quit`

// ParseCommand turns one input line into a screen command.
func ParseCommand(line string, now time.Time) (model.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return model.Command{}, ErrEmpty
	}

	verb := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch verb {
	case "quit", "exit", "q":
		return model.Command{}, ErrQuit
	case "help", "?":
		return model.Command{}, ErrHelp
	case "date":
		if arg == "" {
			return model.Command{}, fmt.Errorf("%w: date needs a value", model.ErrInvalidDate)
		}
		return model.SetDateTextCommand(arg), nil
	case "today", "latest":
		return model.SetDateCommand(now), nil
	case "from":
		return model.SelectInputCommand(symbolArg(arg)), nil
	case "to":
		return model.SelectOutputCommand(symbolArg(arg)), nil
	case "amount":
		return model.SetAmountCommand(arg), nil
	case "swap":
		return model.SwapCommand(), nil
	case "retry":
		return model.RetryCommand(), nil
	case "share":
		return model.ShareCommand(), nil
	}

	if strings.ContainsAny(verb[:1], "0123456789.") {
		return model.SetAmountCommand(strings.TrimSpace(line)), nil
	}

	return model.Command{}, fmt.Errorf("%w: %q", model.ErrUnknownCommand, fields[0])
}

func symbolArg(arg string) model.Currency {
	return model.Currency(strings.ToUpper(model.SymbolFromFullName(arg).String()))
}
