package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/matheus3301/wppsim/internal/api"
	"github.com/matheus3301/wppsim/internal/app"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/delivery"
	"github.com/matheus3301/wppsim/internal/session"
	"github.com/matheus3301/wppsim/internal/status"
	"go.uber.org/fx"
)

// services is what every subcommand works against.
type services struct {
	chats    *api.ChatService
	messages *api.MessageService
	machine  *status.Machine
	engine   *delivery.Engine
	jsonOut  bool
}

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Usage = printUsage
	flag.Parse()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fail(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	s := services{jsonOut: *jsonFlag}
	fxApp := fx.New(
		app.Options(app.Params{SessionName: sessionName, Owner: "wppsimctl", Console: true}),
		fx.Populate(&s.chats, &s.messages, &s.machine, &s.engine),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		fail(fmt.Errorf("open session %q: %w", sessionName, err))
	}

	cmdErr := dispatch(s, args)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		cmdErr = errors.Join(cmdErr, err)
	}
	if cmdErr != nil {
		fail(cmdErr)
	}
}

func dispatch(s services, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "status":
		return cmdStatus(s)
	case "chats":
		return cmdChats(s, rest)
	case "show":
		return withChat(s, rest, cmdShow)
	case "open":
		return withChat(s, rest, func(s services, c chat.Chat) error {
			return s.chats.SetActiveChat(c.ID)
		})
	case "close":
		return s.chats.SetActiveChat("")
	case "send":
		return cmdSend(s, rest)
	case "start":
		return cmdStart(s, rest)
	case "pin":
		return withChat(s, rest, func(s services, c chat.Chat) error { return s.chats.TogglePinned(c.ID) })
	case "mute":
		return withChat(s, rest, func(s services, c chat.Chat) error { return s.chats.ToggleMute(c.ID) })
	case "archive":
		return withChat(s, rest, func(s services, c chat.Chat) error { return s.chats.ArchiveChat(c.ID, true) })
	case "unarchive":
		return withChat(s, rest, func(s services, c chat.Chat) error { return s.chats.ArchiveChat(c.ID, false) })
	case "read":
		return withChat(s, rest, func(s services, c chat.Chat) error { return s.chats.MarkRead(c.ID) })
	case "contacts":
		return cmdContacts(s, strings.Join(rest, " "))
	case "search":
		return cmdSearch(s, strings.Join(rest, " "))
	}
	printUsage()
	return fmt.Errorf("unknown command: %s", cmd)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: wppsimctl [--session <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status                     Show session summary")
	fmt.Fprintln(os.Stderr, "  chats [filter] [search]    List chats (filter: all, unread, groups, pinned, archived)")
	fmt.Fprintln(os.Stderr, "  show <chat>                Print the messages of a chat")
	fmt.Fprintln(os.Stderr, "  open <chat>                Make a chat active and mark it read")
	fmt.Fprintln(os.Stderr, "  close                      Clear the active chat")
	fmt.Fprintln(os.Stderr, "  send [--wait] <chat> <text> Send a message; --wait lets receipts and the reply arrive")
	fmt.Fprintln(os.Stderr, "  start <contact>            Open or create a direct chat")
	fmt.Fprintln(os.Stderr, "  pin|mute <chat>            Toggle a chat flag")
	fmt.Fprintln(os.Stderr, "  archive|unarchive <chat>   Move a chat in or out of the archive")
	fmt.Fprintln(os.Stderr, "  read <chat>                Clear the unread counter")
	fmt.Fprintln(os.Stderr, "  contacts [query]           List contacts")
	fmt.Fprintln(os.Stderr, "  search <text>              Search messages in every chat")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "<chat> is a chat id or part of its title.")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// resolveChat finds a chat by id, then by case-insensitive title substring.
func resolveChat(s services, ref string) (chat.Chat, error) {
	if c, err := s.chats.Chat(ref); err == nil {
		return c, nil
	}
	q := strings.ToLower(ref)
	for _, c := range s.chats.State().Chats {
		if strings.Contains(strings.ToLower(c.Title), q) {
			return c, nil
		}
	}
	return chat.Chat{}, fmt.Errorf("%w: %s", api.ErrChatNotFound, ref)
}

func withChat(s services, args []string, fn func(services, chat.Chat) error) error {
	if len(args) == 0 {
		return errors.New("missing <chat> argument")
	}
	c, err := resolveChat(s, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := fn(s, c); err != nil {
		return err
	}
	c, _ = s.chats.Chat(c.ID)
	return printChatRow(s, c)
}

func cmdStatus(s services) error {
	st := s.chats.State()
	msgs := 0
	for _, c := range st.Chats {
		msgs += len(c.Messages)
	}
	summary := struct {
		Status   status.State `json:"status"`
		User     string       `json:"user"`
		Chats    int          `json:"chats"`
		Unread   int          `json:"unreadChats"`
		Archived int          `json:"archived"`
		Messages int          `json:"messages"`
		Active   string       `json:"activeChatId,omitempty"`
		Filter   chat.Filter  `json:"filter"`
	}{
		Status:   s.machine.Current(),
		User:     s.chats.Me().Name,
		Chats:    len(st.Chats),
		Unread:   conversation.UnreadChats(st),
		Archived: conversation.ArchivedCount(st),
		Messages: msgs,
		Active:   st.ActiveChatID,
		Filter:   st.Filter,
	}
	if s.jsonOut {
		outputJSON(summary)
		return nil
	}
	fmt.Printf("Status:   %s\n", summary.Status)
	fmt.Printf("User:     %s\n", summary.User)
	fmt.Printf("Chats:    %d (%d unread, %d archived)\n", summary.Chats, summary.Unread, summary.Archived)
	fmt.Printf("Messages: %d\n", summary.Messages)
	fmt.Printf("Filter:   %s\n", summary.Filter)
	if summary.Active != "" {
		fmt.Printf("Active:   %s\n", summary.Active)
	}
	return nil
}

// cmdChats lists chats. A filter or search given here is not persisted.
func cmdChats(s services, args []string) error {
	st := s.chats.State()
	if len(args) > 0 {
		f, err := chat.ParseFilter(args[0])
		if err != nil {
			return err
		}
		st.Filter = f
		st.SearchTerm = strings.Join(args[1:], " ")
	}
	visible := conversation.VisibleChats(st)
	if s.jsonOut {
		outputJSON(visible)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUNREAD\tFLAGS\tLAST ACTIVITY\tPREVIEW")
	for _, c := range visible {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", c.ID, c.Title, c.UnreadCount, flags(c),
			c.LastActivity.Local().Format("2006-01-02 15:04"), truncate(c.LastMessagePreview, 40))
	}
	return w.Flush()
}

func printChatRow(s services, c chat.Chat) error {
	if s.jsonOut {
		outputJSON(c)
		return nil
	}
	fmt.Printf("%s  %s  unread=%d  %s\n", c.ID, c.Title, c.UnreadCount, flags(c))
	return nil
}

func cmdShow(s services, c chat.Chat) error {
	if s.jsonOut {
		outputJSON(c)
		return nil
	}
	fmt.Printf("%s (%s)\n", c.Title, c.ID)
	for _, g := range conversation.GroupByDay(c.Messages) {
		fmt.Printf("\n-- %s --\n", g.Day.Format("Mon, 02 Jan 2006"))
		for _, m := range g.Messages {
			who := c.Title
			if m.Direction == chat.Outgoing {
				who = "you"
			}
			line := fmt.Sprintf("%s  %-12s %s", m.Timestamp.Local().Format("15:04"), who, m.Content)
			if m.Type != chat.TypeText {
				line += fmt.Sprintf(" [%s]", m.Type)
			}
			if m.Direction == chat.Outgoing {
				line += fmt.Sprintf(" (%s)", m.Status)
			}
			fmt.Println(line)
		}
	}
	return nil
}

func cmdSend(s services, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	wait := fs.Duration("wait", 0, "keep the session open this long so receipts and the reply arrive (e.g. 10s)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: send [--wait <duration>] <chat> <text>")
	}
	c, err := resolveChat(s, fs.Arg(0))
	if err != nil {
		return err
	}
	msg, err := s.messages.SendMessage(c.ID, strings.Join(fs.Args()[1:], " "))
	if err != nil {
		return err
	}

	if *wait > 0 {
		deadline := time.Now().Add(*wait)
		for s.engine.Pending() > 0 && time.Now().Before(deadline) {
			time.Sleep(100 * time.Millisecond)
		}
	}

	if s.jsonOut {
		c, _ = s.chats.Chat(c.ID)
		outputJSON(c)
		return nil
	}
	c, _ = s.chats.Chat(c.ID)
	for _, m := range c.Messages {
		if m.ID == msg.ID {
			fmt.Printf("sent %s to %s (%s)\n", m.ID, c.Title, m.Status)
		}
	}
	if last, ok := c.LastMessage(); ok && last.Direction == chat.Incoming && last.Timestamp.After(msg.Timestamp) {
		fmt.Printf("%s: %s\n", c.Title, last.Content)
	}
	return nil
}

func cmdStart(s services, args []string) error {
	if len(args) == 0 {
		return errors.New("missing <contact> argument")
	}
	query := strings.Join(args, " ")
	id := query
	if matches := s.chats.FindContacts(query); len(matches) > 0 {
		id = matches[0].ID
	}
	c, err := s.chats.StartChat(id)
	if err != nil {
		return err
	}
	return printChatRow(s, c)
}

func cmdContacts(s services, query string) error {
	contacts := s.chats.FindContacts(query)
	if s.jsonOut {
		outputJSON(contacts)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tABOUT")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.About)
	}
	return w.Flush()
}

func cmdSearch(s services, query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("missing <text> argument")
	}
	hits := s.messages.SearchMessages(query)
	if s.jsonOut {
		outputJSON(hits)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHAT\tTIME\tMESSAGE")
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\n", h.ChatTitle, h.Message.Timestamp.Local().Format("2006-01-02 15:04"), truncate(h.Message.Content, 60))
	}
	return w.Flush()
}

func flags(c chat.Chat) string {
	var out []string
	if c.IsGroup {
		out = append(out, "group")
	}
	if c.Pinned {
		out = append(out, "pinned")
	}
	if c.Muted {
		out = append(out, "muted")
	}
	if c.Archived {
		out = append(out, "archived")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
