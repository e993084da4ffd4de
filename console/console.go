// Package console drives a hub from line commands, the only way to reach the
// bridge from outside the process.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"secure-bridge/domain"
	"secure-bridge/errors"
	"secure-bridge/repositories"
	"secure-bridge/runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const usage = `Commands:
  join <participant> <channel>
  send <participant> <channel> <text...>
  leave <participant>
  status
  journal [limit]
  help
  quit`

type Bridge interface {
	JoinChannel(participantID, channelName string) runtime.Result
	SendMessage(participantID, channelName string, payload domain.Payload) runtime.Result
	LeaveChannel(participantID string) runtime.Result
	GetStatus() domain.Status
}

type Console struct {
	log     *slog.Logger
	bridge  Bridge
	journal repositories.INotificationRepository
	out     io.Writer
	colours bool
}

func New(log *slog.Logger, bridge Bridge, journal repositories.INotificationRepository, out io.Writer, colours bool) *Console {
	return &Console{log: log, bridge: bridge, journal: journal, out: out, colours: colours}
}

// Run reads commands from in until EOF, quit or cancellation of ctx.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			more, err := c.Execute(line)
			if err != nil {
				fmt.Fprintln(c.out, c.paint(color.FgRed, err.Error()))
			}
			if !more {
				return nil
			}
		}
	}
}

// Execute handles a single command line. It reports false once the session should end.
func (c *Console) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}

	switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
	case "join":
		if len(args) != 2 {
			return true, usageError(command)
		}
		c.printResult(c.bridge.JoinChannel(args[0], args[1]))
	case "send":
		if len(args) < 3 {
			return true, usageError(command)
		}
		text := strings.Join(args[2:], " ")
		c.printResult(c.bridge.SendMessage(args[0], args[1], domain.TextPayload{Text: text}))
	case "leave":
		if len(args) != 1 {
			return true, usageError(command)
		}
		c.printResult(c.bridge.LeaveChannel(args[0]))
	case "status":
		c.printStatus(c.bridge.GetStatus())
	case "journal":
		limit := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return true, usageError(command)
			}
			limit = n
		}
		return true, c.printJournal(limit)
	case "help":
		fmt.Fprintln(c.out, usage)
	case "quit", "exit":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s\n%s", errors.ErrUnknownCommand, command, usage)
	}
	return true, nil
}

func (c *Console) printResult(res runtime.Result) {
	switch {
	case !res.Success:
		fmt.Fprintln(c.out, c.paint(color.FgRed, "FAILED: "+res.Message))
	case res.ChannelID != "":
		fmt.Fprintln(c.out, c.paint(color.FgGreen, fmt.Sprintf("OK: %s (%s)", res.Message, res.ChannelID)))
	default:
		fmt.Fprintln(c.out, c.paint(color.FgGreen, "OK: "+res.Message))
	}
}

func (c *Console) printStatus(status domain.Status) {
	table := c.newTable([]string{"Running", "Channels", "Participants", "Uptime", "Security"})
	table.Append([]string{
		strconv.FormatBool(status.IsRunning),
		strconv.Itoa(status.Channels),
		strconv.Itoa(status.Participants),
		status.Uptime.Truncate(time.Second).String(),
		c.securityStatus(status.SecurityStatus),
	})
	table.Render()
}

func (c *Console) printJournal(limit int) error {
	notifications, err := c.journal.List(limit)
	if err != nil {
		c.log.Error("Cannot read journal", "err", err)
		return err
	}
	table := c.newTable([]string{"Time", "Type", "Payload"})
	for _, n := range notifications {
		table.Append([]string{n.At.Format(time.RFC3339Nano), n.Type, string(n.Payload)})
	}
	table.Render()
	return nil
}

func (c *Console) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (c *Console) securityStatus(status domain.SecurityStatus) string {
	switch status {
	case domain.SECURE:
		return c.paint(color.FgGreen, string(status))
	case domain.WARNING:
		return c.paint(color.FgYellow, string(status))
	default:
		return c.paint(color.FgRed, string(status))
	}
}

func (c *Console) paint(fg color.Color, text string) string {
	if !c.colours {
		return text
	}
	return color.New(fg).Render(text)
}

func usageError(command string) error {
	return fmt.Errorf("%w: wrong arguments for %s\n%s", errors.ErrUnknownCommand, command, usage)
}
