package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/tui/keys"
	"github.com/matheus3301/wppsim/internal/tui/model"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/matheus3301/wppsim/internal/tui/views"
	"github.com/rivo/tview"
)

// Page names, also used as key binding scopes.
const (
	pageChats   = "Chats"
	pageThread  = "Thread"
	pageDetails = "Details"
	pageSearch  = "Search"
	pageNewChat = "New Chat"
	pageHelp    = "Help"
)

const headerHeight = 9

var commandHelp = []views.CommandHelp{
	{Usage: ":filter, :f <name>", Description: "Show all, unread, groups, pinned or archived chats"},
	{Usage: ":search, :s <text>", Description: "Search messages in every chat"},
	{Usage: ":chat <name>", Description: "Open a chat by title"},
	{Usage: ":new [name]", Description: "Start a chat with a contact"},
	{Usage: ":help, :h", Description: "Show this help"},
	{Usage: ":quit, :q", Description: "Quit"},
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	vm       *model.ViewModel
	theme    *ui.Theme
	registry *keys.Registry

	root        *tview.Flex
	pages       *ui.Pages
	sessionInfo *ui.SessionInfo
	menu        *ui.Menu
	logo        *ui.Logo
	crumbs      *ui.Crumbs
	flash       *ui.FlashBar
	prompt      *ui.Prompt

	list    *views.ConversationList
	thread  *views.MessageThread
	details *views.ConversationInfo
	search  *views.SearchView
	picker  *views.ContactPicker
	help    *views.HelpView

	components map[string]ui.Component
	detailsID  string
}

// NewApp creates the TUI application over vm.
func NewApp(vm *model.ViewModel) *App {
	theme := ui.DefaultTheme()
	a := &App{
		app:         tview.NewApplication(),
		vm:          vm,
		theme:       theme,
		registry:    keys.NewRegistry(),
		pages:       ui.NewPages(),
		sessionInfo: ui.NewSessionInfo(theme),
		menu:        ui.NewMenu(theme),
		logo:        ui.NewLogo(theme),
		crumbs:      ui.NewCrumbs(theme),
		flash:       ui.NewFlashBar(theme),
		prompt:      ui.NewPrompt(theme),
		list:        views.NewConversationList(theme),
		thread:      views.NewMessageThread(theme),
		details:     views.NewConversationInfo(theme),
		search:      views.NewSearchView(theme),
		picker:      views.NewContactPicker(theme),
		help:        views.NewHelpView(theme),
	}
	a.components = map[string]ui.Component{
		pageChats:   a.list,
		pageThread:  a.thread,
		pageDetails: a.details,
		pageSearch:  a.search,
		pageNewChat: a.picker,
		pageHelp:    a.help,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	r := a.registry
	r.AddGlobal(
		keys.Rune(':', "Command", func() { a.activatePrompt(ui.PromptCommand) }),
		keys.Rune('?', "Help", a.showHelp),
		keys.Key(tcell.KeyEscape, "Esc", "Back", a.back),
		keys.Rune('q', "Quit/Back", func() {
			if a.pages.Depth() > 1 {
				a.back()
				return
			}
			a.app.Stop()
		}),
	)

	r.AddView(pageChats,
		keys.Key(tcell.KeyEnter, "Enter", "Open", func() { a.openChat(a.list.SelectedChat()) }),
		keys.Rune('n', "New chat", a.showNewChat),
		keys.Rune('/', "Filter chats", func() { a.activatePrompt(ui.PromptFilter) }),
		keys.Rune('f', "Next filter", func() {
			f := a.vm.CycleFilter()
			a.vm.Flash.Info("Filter: " + string(f))
			a.refresh()
		}),
		keys.Rune('s', "Search messages", func() { a.showSearch("") }),
		keys.Rune('p', "Pin", func() { a.withRefresh(a.vm.TogglePin(a.list.SelectedChat())) }),
		keys.Rune('m', "Mute", func() { a.withRefresh(a.vm.ToggleMute(a.list.SelectedChat())) }),
		keys.Rune('a', "Archive", func() { a.withRefresh(a.vm.ToggleArchive(a.list.SelectedChat())) }),
		keys.Rune('d', "Details", func() { a.showDetails(a.list.SelectedChat()) }),
		keys.Rune('0', "Reset list", func() {
			a.vm.SetSearch("")
			_ = a.vm.ApplyFilter(string(chat.FilterAll))
			a.refresh()
		}),
	)
	for n := '1'; n <= '9'; n++ {
		b := keys.Rune(n, "Jump", func() { a.openChat(a.list.ChatByIndex(int(n - '0'))) })
		if n == '1' {
			b.Label = "1-9"
		} else {
			b.Hidden = true
		}
		r.AddView(pageChats, b)
	}

	activeID := func() string {
		c, _ := a.vm.ActiveChat()
		return c.ID
	}
	r.AddView(pageThread,
		keys.Rune('i', "Compose", func() { a.app.SetFocus(a.thread.Composer()) }),
		keys.Rune('d', "Details", func() { a.showDetails(activeID()) }),
		keys.Rune('p', "Pin", func() { a.withRefresh(a.vm.TogglePin(activeID())) }),
		keys.Rune('m', "Mute", func() { a.withRefresh(a.vm.ToggleMute(activeID())) }),
		keys.Rune('a', "Archive", func() { a.withRefresh(a.vm.ToggleArchive(activeID())) }),
	)

	r.AddView(pageSearch,
		keys.Key(tcell.KeyEnter, "Enter", "Open result", a.openSearchHit),
		keys.Key(tcell.KeyTab, "Tab", "Edit query", func() { a.app.SetFocus(a.search.Input()) }),
	)
	r.AddView(pageNewChat,
		keys.Key(tcell.KeyEnter, "Enter", "Start chat", func() {
			if c, ok := a.picker.Selected(); ok {
				a.startChat(c.ID)
			}
		}),
		keys.Key(tcell.KeyTab, "Tab", "Edit query", func() { a.app.SetFocus(a.picker.Input()) }),
	)
}

func (a *App) setupCallbacks() {
	a.thread.SetOnSend(func(text string) {
		a.withRefresh(a.vm.Send(text))
	})

	a.search.SetOnQuery(func(query string) {
		a.search.Update(query, a.vm.Search(query))
		a.app.SetFocus(a.search.Results())
		a.updateFlash()
	})

	a.picker.SetOnQuery(func(query string) {
		a.picker.Update(a.vm.FindContacts(query))
	})
	a.picker.SetOnPick(func(c chat.Contact) {
		a.startChat(c.ID)
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.vm.SetSearch(text)
		}
		a.refresh()
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.pages.SetOnChange(func(stack []string) {
		labels := make([]string, len(stack))
		for i, name := range stack {
			labels[i] = a.components[name].Name()
		}
		a.crumbs.Update(labels)
		if len(stack) > 0 {
			a.menu.Update(a.registry.Hints(stack[len(stack)-1]))
		}
	})
}

func (a *App) setupLayout() {
	for name, c := range a.components {
		a.pages.AddPage(name, c, true, false)
	}

	header := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.sessionInfo, 40, 0, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(a.logo, 20, 0, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, headerHeight, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flash, 1, 0, false)
	a.root.SetBackgroundColor(a.theme.BgColor)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.capture)
	a.help.Update(a.registry.Sections(), commandHelp)
}

func (a *App) capture(ev *tcell.EventKey) *tcell.EventKey {
	if a.prompt.HasFocus() {
		return ev
	}

	focused := a.app.GetFocus()
	if _, ok := focused.(*tview.InputField); ok {
		switch ev.Key() {
		case tcell.KeyEscape:
			if focused == tview.Primitive(a.thread.Composer()) {
				a.app.SetFocus(a.thread.Messages())
			} else {
				a.back()
			}
			return nil
		case tcell.KeyTab:
			switch a.pages.Current() {
			case pageSearch:
				a.app.SetFocus(a.search.Results())
				return nil
			case pageNewChat:
				a.app.SetFocus(a.picker.List())
				return nil
			}
		}
		return ev
	}

	if a.registry.HandleEvent(a.pages.Current(), ev) {
		return nil
	}
	return ev
}

func (a *App) push(page string) {
	a.pages.Push(page)
	a.focusCurrent()
}

func (a *App) back() {
	if a.pages.Depth() <= 1 {
		if a.vm.State().SearchTerm != "" {
			a.vm.SetSearch("")
			a.refresh()
		}
		return
	}
	if a.pages.Current() == pageThread {
		a.vm.Close()
	}
	a.pages.Pop()
	if a.pages.Current() == pageThread {
		a.refreshThread()
	}
	a.focusCurrent()
	a.refresh()
}

func (a *App) focusCurrent() {
	switch a.pages.Current() {
	case pageChats:
		a.app.SetFocus(a.list)
	case pageThread:
		a.app.SetFocus(a.thread.Messages())
	case pageDetails:
		a.app.SetFocus(a.details)
	case pageSearch:
		a.app.SetFocus(a.search.Input())
	case pageNewChat:
		a.app.SetFocus(a.picker.Input())
	case pageHelp:
		a.app.SetFocus(a.help)
	}
}

func (a *App) openChat(id string) {
	if id == "" {
		return
	}
	if err := a.vm.Open(id); err != nil {
		a.updateFlash()
		return
	}
	a.refreshThread()
	a.push(pageThread)
	a.refresh()
}

func (a *App) startChat(contactID string) {
	c, err := a.vm.StartChat(contactID)
	if err != nil {
		a.updateFlash()
		return
	}
	if a.pages.Current() == pageNewChat {
		a.pages.Pop()
	}
	a.openChat(c.ID)
}

func (a *App) openSearchHit() {
	chatID, _ := a.search.SelectedResult()
	a.openChat(chatID)
}

func (a *App) showDetails(id string) {
	c, err := a.vm.Chat(id)
	if err != nil {
		return
	}
	a.detailsID = c.ID
	a.details.Update(c, a.vm.Me().ID)
	a.push(pageDetails)
}

func (a *App) showSearch(query string) {
	a.search.SetQuery(query)
	a.search.Update(query, a.vm.Search(query))
	a.push(pageSearch)
	if query != "" {
		a.app.SetFocus(a.search.Results())
	}
	a.updateFlash()
}

func (a *App) showNewChat() {
	a.picker.Reset()
	a.picker.Update(a.vm.FindContacts(""))
	a.push(pageNewChat)
}

func (a *App) showHelp() {
	a.push(pageHelp)
}

func (a *App) activatePrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.focusCurrent()
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "filter":
		if cmd.Args == "" {
			a.vm.Flash.Info("Filter: " + string(a.vm.State().Filter))
			return
		}
		_ = a.vm.ApplyFilter(cmd.Args)
	case "search":
		a.showSearch(cmd.Args)
	case "chat":
		c, ok := a.vm.FindChat(cmd.Args)
		if !ok {
			a.vm.Flash.Warn(fmt.Sprintf("No chat matching %q", cmd.Args))
			return
		}
		a.openChat(c.ID)
	case "new":
		if cmd.Args == "" {
			a.showNewChat()
			return
		}
		if c, err := a.vm.StartChatByName(cmd.Args); err == nil {
			a.openChat(c.ID)
		}
	case "help":
		a.showHelp()
	case "quit":
		a.app.Stop()
	default:
		a.vm.Flash.Warn("Unknown command: " + strings.TrimSpace(cmd.Name))
	}
}

func (a *App) withRefresh(err error) {
	if err == nil {
		a.refresh()
		return
	}
	a.updateFlash()
}

// refresh redraws every view from the current state. It must run on the
// UI goroutine.
func (a *App) refresh() {
	st := a.vm.State()
	a.list.Update(conversation.VisibleChats(st), st.Filter, st.SearchTerm, conversation.ArchivedCount(st))
	if a.pages.Has(pageThread) {
		a.refreshThread()
	}
	if a.pages.Current() == pageDetails {
		if c, ok := st.Chat(a.detailsID); ok {
			a.details.Update(c, a.vm.Me().ID)
		}
	}
	a.sessionInfo.Update(a.vm.SessionData())
	a.updateFlash()
}

func (a *App) refreshThread() {
	if c, ok := a.vm.ActiveChat(); ok {
		a.thread.Update(c)
	}
}

func (a *App) updateFlash() {
	a.flash.Update(a.vm.Flash.GetMessage())
}

// Run shows the chat list, reopening the chat that was active when the
// session was saved, and blocks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.pages.Reset(pageChats)
	a.focusCurrent()
	a.refresh()
	if c, ok := a.vm.ActiveChat(); ok {
		a.openChat(c.ID)
	}

	go a.vm.Run(ctx)
	go a.loop(ctx)

	return a.app.Run()
}

func (a *App) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-a.vm.RefreshCh():
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.vm.Flash.Watch():
			a.app.QueueUpdateDraw(a.updateFlash)
		case <-ticker.C:
			a.app.QueueUpdateDraw(func() {
				a.sessionInfo.Update(a.vm.SessionData())
				a.updateFlash()
			})
		}
	}
}

// Stop shuts down the TUI.
func (a *App) Stop() {
	a.app.Stop()
}
